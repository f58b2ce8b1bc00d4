package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/gamelens/gamelens/internal/contract"
	"github.com/gamelens/gamelens/internal/parquet"
	"github.com/gamelens/gamelens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteRuns prints persisted runs, dispatching based on the configured
// output format.
func (ow *OutWriter) WriteRuns(records []schema.RunRecord, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, records)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"run_id", "start_time", "duration_ms", "source", "original_rows", "sampled_rows", "game_type", "quality_score", "insight_count"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for _, r := range records {
					rec := []string{
						strconv.FormatInt(r.RunID, 10),
						r.StartTime.Format(contract.DateTimeFormat),
						strconv.FormatInt(r.DurationMs, 10),
						r.Source,
						strconv.Itoa(r.OriginalRows),
						strconv.Itoa(r.SampledRows),
						r.GameType,
						fmtFloat(r.QualityScore),
						strconv.Itoa(r.InsightCount),
					}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires --output-file")
		}
		if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(records), cfg.OutputFile); err != nil {
			return err
		}
		fmt.Printf("💾 Wrote %d run(s) to %s\n", len(records), cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRunsTable(records, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeRunsTable generates and writes the human-readable table.
func writeRunsTable(records []schema.RunRecord, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(writer, "No runs recorded yet.")
		return err
	}

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Run", "Started", "Duration", "Source", "Rows", "Genre", "Quality", "Insights"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxText := GetMaxTableTextWidth(cfg)
	var data [][]string
	for _, r := range records {
		data = append(data, []string{
			strconv.FormatInt(r.RunID, 10),
			r.StartTime.Format(contract.DateFormat),
			fmt.Sprintf("%dms", r.DurationMs),
			contract.Truncate(r.Source, maxText),
			fmt.Sprintf("%d/%d", r.SampledRows, r.OriginalRows),
			r.GameType,
			fmtFloat(r.QualityScore),
			strconv.Itoa(r.InsightCount),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(writer, "Showing %d run(s)\n", len(records))
	return err
}

// WriteRunStatus prints the run store status.
func (ow *OutWriter) WriteRunStatus(status schema.RunStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if _, err := fmt.Fprintf(w, "Backend: %s\nRuns recorded: %d\n", status.Backend, status.RunCount); err != nil {
				return err
			}
			if !status.LastRunAt.IsZero() {
				if _, err := fmt.Fprintf(w, "Last run: %s\n", status.LastRunAt.Format(contract.DateTimeFormat)); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote status")
	}
}
