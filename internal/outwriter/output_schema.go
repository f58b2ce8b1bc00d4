package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gamelens/gamelens/internal/contract"
	"github.com/gamelens/gamelens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteMeanings prints the detected column meanings, dispatching based
// on the configured output format.
func (ow *OutWriter) WriteMeanings(meanings []schema.ColumnMeaning, suggested []string, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(2)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, meanings)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"column", "primitive", "semantic", "confidence"}, func(cw *csv.Writer) error {
				for _, m := range meanings {
					rec := []string{m.Column, string(m.Primitive), string(m.Semantic), fmtFloat(m.Confidence)}
					if err := cw.Write(rec); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMeaningsTable(meanings, suggested, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeMeaningsTable generates and writes the human-readable table.
func writeMeaningsTable(meanings []schema.ColumnMeaning, suggested []string, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Column", "Type", "Semantic", "Confidence"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	known := 0
	for _, m := range meanings {
		if m.Semantic != schema.SemUnknown {
			known++
		}
		data = append(data, []string{
			m.Column,
			string(m.Primitive),
			string(m.Semantic),
			fmtFloat(m.Confidence),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Recognized %d of %d columns\n", known, len(meanings)); err != nil {
		return err
	}
	if len(suggested) > 0 {
		if _, err := fmt.Fprintf(writer, "Suggested metrics: %v\n", suggested); err != nil {
			return err
		}
	}
	return nil
}

// WriteSample prints a sampling summary, dispatching based on the
// configured output format.
func (ow *OutWriter) WriteSample(sr *schema.SampleResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, sr)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"original_rows", "sampled_rows", "strategy", "ratio"}, func(cw *csv.Writer) error {
				rec := []string{
					fmt.Sprintf("%d", sr.OriginalRows),
					fmt.Sprintf("%d", sr.SampledRows),
					string(sr.Strategy),
					fmt.Sprintf("%.4f", sr.Ratio()),
				}
				return cw.Write(rec)
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			if _, err := fmt.Fprintf(w, "Sampled %d of %d rows (%.1f%%) using %s strategy\n",
				sr.SampledRows, sr.OriginalRows, sr.Ratio()*100, sr.Strategy); err != nil {
				return err
			}
			if len(sr.Coverage) > 0 {
				if _, err := fmt.Fprintf(w, "Distinct values per column: %v\n", sr.Coverage); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote summary")
	}
}
