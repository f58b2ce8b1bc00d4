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

// WriteInsights prints ranked insights, dispatching based on the
// configured output format.
func (ow *OutWriter) WriteInsights(insights []schema.Insight, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(2)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, insights)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"rank", "id", "type", "category", "title", "priority", "impact", "confidence", "revenue_impact", "source"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for i, ins := range insights {
					rec := []string{
						strconv.Itoa(i + 1),
						ins.ID,
						string(ins.Type),
						ins.Category,
						ins.Title,
						strconv.Itoa(ins.Priority),
						string(ins.Impact),
						fmtFloat(ins.Confidence),
						fmtFloat(ins.RevenueImpact),
						string(ins.Source),
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
		if err := parquet.WriteInsightsParquet(parquet.ConvertInsights(insights), cfg.OutputFile); err != nil {
			return err
		}
		fmt.Printf("💾 Wrote %d insight(s) to %s\n", len(insights), cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeInsightsTable(insights, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeInsightsTable generates and writes the human-readable table with
// recommendations below it.
func writeInsightsTable(insights []schema.Insight, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Type", "Title", "Impact", "Priority", "Confidence"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxText := GetMaxTableTextWidth(cfg)
	var data [][]string
	for i, ins := range insights {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.InsightLabel(ins.Type, cfg.UseColors),
			truncateText(ins.Title, maxText),
			string(ins.Impact),
			strconv.Itoa(ins.Priority),
			fmtFloat(ins.Confidence),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for i, ins := range insights {
		if _, err := fmt.Fprintf(writer, "\n%d. %s\n   %s\n", i+1, ins.Title, ins.Description); err != nil {
			return err
		}
		if ins.Recommendation != "" {
			if _, err := fmt.Fprintf(writer, "   Recommendation: %s\n", ins.Recommendation); err != nil {
				return err
			}
		}
		if ins.RevenueImpact > 0 {
			if _, err := fmt.Fprintf(writer, "   Estimated revenue impact: $%s\n", fmtFloat(ins.RevenueImpact)); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(writer, "\nShowing %d insight(s)\n", len(insights))
	return err
}
