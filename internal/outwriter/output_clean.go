package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gamelens/gamelens/internal/contract"
	"github.com/gamelens/gamelens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCleaningPlan prints detected quality issues, dispatching based
// on the configured output format.
func (ow *OutWriter) WriteCleaningPlan(plan *schema.CleaningPlan, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, plan)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"column", "kind", "severity", "affected_rows", "affected_pct", "action"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, issue := range plan.Issues {
					rec := []string{
						issue.Column,
						string(issue.Kind),
						string(issue.Severity),
						strconv.Itoa(issue.AffectedRows),
						fmtFloat(issue.AffectedPct),
						string(issue.Action),
					}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCleaningPlanTable(plan, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeCleaningPlanTable generates and writes the human-readable table.
func writeCleaningPlanTable(plan *schema.CleaningPlan, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	if len(plan.Issues) == 0 {
		_, err := fmt.Fprintf(writer, "No quality issues detected. Quality score: %s (%s)\n",
			fmtFloat(plan.QualityScore), contract.QualityLabel(plan.QualityScore, cfg.UseColors))
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Column", "Issue", "Severity", "Rows", "Pct", "Suggested Action"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, issue := range plan.Issues {
		data = append(data, []string{
			issue.Column,
			string(issue.Kind),
			contract.SeverityLabel(issue.Severity, cfg.UseColors),
			strconv.Itoa(issue.AffectedRows),
			fmtFloat(issue.AffectedPct) + "%",
			string(issue.Action),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Found %d issue(s). Quality score: %s (%s)\n",
		len(plan.Issues), fmtFloat(plan.QualityScore), contract.QualityLabel(plan.QualityScore, cfg.UseColors))
	return err
}

// WriteCleaningResult prints the outcome of applying a cleaning plan.
func (ow *OutWriter) WriteCleaningResult(result *schema.CleaningResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if _, err := fmt.Fprintf(w, "Removed %d row(s), modified %d row(s)\n", result.RowsRemoved, result.RowsModified); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "Quality score: %s -> %s (%s)\n",
				fmtFloat(result.ScoreBefore), fmtFloat(result.ScoreAfter),
				contract.QualityLabel(result.ScoreAfter, cfg.UseColors)); err != nil {
				return err
			}
			if len(result.Applied) > 0 {
				if _, err := fmt.Fprintf(w, "Applied actions: %v\n", result.Applied); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote summary")
	}
}
