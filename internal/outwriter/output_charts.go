package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gamelens/gamelens/internal/contract"
	"github.com/gamelens/gamelens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCharts prints chart recommendations, dispatching based on the
// configured output format.
func (ow *OutWriter) WriteCharts(charts []schema.ChartRecommendation, layout *schema.DashboardLayout, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(2)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			payload := struct {
				Charts []schema.ChartRecommendation `json:"charts"`
				Layout *schema.DashboardLayout      `json:"layout,omitempty"`
			}{Charts: charts, Layout: layout}
			return writeJSON(w, payload)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"rank", "title", "kind", "category", "priority", "confidence", "essential", "columns"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				for i, c := range charts {
					rec := []string{
						strconv.Itoa(i + 1),
						c.Title,
						string(c.Kind),
						string(c.Category),
						strconv.Itoa(c.Priority),
						fmtFloat(c.Confidence),
						strconv.FormatBool(c.Essential),
						strings.Join(c.RequiredColumns, "|"),
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
			return writeChartsTable(charts, layout, cfg, fmtFloat, w)
		}, "Wrote table")
	}
}

// writeChartsTable generates and writes the human-readable table.
func writeChartsTable(charts []schema.ChartRecommendation, layout *schema.DashboardLayout, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Title", "Kind", "Category", "Priority", "Confidence"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxText := GetMaxTableTextWidth(cfg)
	var data [][]string
	for i, c := range charts {
		title := truncateText(c.Title, maxText)
		if c.Essential {
			title = title + " *"
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			title,
			string(c.Kind),
			string(c.Category),
			strconv.Itoa(c.Priority),
			fmtFloat(c.Confidence),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d chart(s). Essential charts marked with *\n", len(charts)); err != nil {
		return err
	}

	if layout != nil {
		if _, err := fmt.Fprintf(writer, "Dashboard: %d KPI, %d main, %d side, %d secondary\n",
			len(layout.KPIs), len(layout.MainCharts), len(layout.SideCharts), len(layout.SecondaryCharts)); err != nil {
			return err
		}
	}
	return nil
}
