package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/gamelens/gamelens/internal/contract"
	"github.com/gamelens/gamelens/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteMetrics prints computed metrics, dispatching based on the
// configured output format.
func (ow *OutWriter) WriteMetrics(metrics *schema.CalculatedMetrics, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, metrics)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsCSV(metrics, fmtFloat, w)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsText(metrics, fmtFloat, w)
		}, "Wrote metrics")
	}
}

// writeMetricsCSV flattens all metric blocks into name/value pairs.
func writeMetricsCSV(metrics *schema.CalculatedMetrics, fmtFloat func(float64) string, w io.Writer) error {
	return writeCSVWithHeader(w, []string{"metric", "value"}, func(cw *csv.Writer) error {
		for _, pair := range flattenMetrics(metrics, fmtFloat) {
			if err := cw.Write(pair); err != nil {
				return err
			}
		}
		return nil
	})
}

// flattenMetrics converts the nested metric blocks into ordered
// name/value rows.
func flattenMetrics(metrics *schema.CalculatedMetrics, fmtFloat func(float64) string) [][]string {
	var out [][]string
	add := func(name, value string) {
		out = append(out, []string{name, value})
	}

	if ret := metrics.Retention; ret != nil {
		for _, day := range sortedKeys(ret.Classic) {
			add(fmt.Sprintf("retention_d%d_classic", day), fmtFloat(ret.Classic[day]))
		}
		for _, day := range sortedKeys(ret.Rolling) {
			add(fmt.Sprintf("retention_d%d_rolling", day), fmtFloat(ret.Rolling[day]))
		}
		add("return_rate", fmtFloat(ret.ReturnRate))
	}
	if eng := metrics.Engagement; eng != nil {
		add("dau", fmtFloat(eng.DAU))
		add("wau", strconv.Itoa(eng.WAU))
		add("mau", strconv.Itoa(eng.MAU))
		add("stickiness", fmtFloat(eng.Stickiness))
		add("sessions_per_user", fmtFloat(eng.SessionsPerUser))
	}
	if mon := metrics.Monetization; mon != nil {
		add("total_revenue", fmtFloat(mon.TotalRevenue))
		add("arpu", fmtFloat(mon.ARPU))
		add("arppu", fmtFloat(mon.ARPPU))
		add("paying_users", strconv.Itoa(mon.PayingUsers))
		add("total_users", strconv.Itoa(mon.TotalUsers))
		add("conversion_rate", fmtFloat(mon.ConversionRate))
		add("ltv_projection", fmtFloat(mon.LTVProjection))
	}
	if prog := metrics.Progression; prog != nil {
		add("max_level", strconv.Itoa(prog.MaxLevel))
		add("avg_level", fmtFloat(prog.AvgLevel))
	}
	add("confidence", fmtFloat(metrics.Confidence))
	return out
}

// writeMetricsText renders each available metric block as its own
// section.
func writeMetricsText(metrics *schema.CalculatedMetrics, fmtFloat func(float64) string, w io.Writer) error {
	wrote := false

	if ret := metrics.Retention; ret != nil {
		wrote = true
		if _, err := fmt.Fprintln(w, "Retention:"); err != nil {
			return err
		}
		for _, day := range sortedKeys(ret.Classic) {
			rolling := ""
			if r, ok := ret.Rolling[day]; ok {
				rolling = fmt.Sprintf(" (rolling %s%%)", fmtFloat(r))
			}
			if _, err := fmt.Fprintf(w, "  D%d: %s%%%s\n", day, fmtFloat(ret.Classic[day]), rolling); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "  Return rate: %s%%\n", fmtFloat(ret.ReturnRate)); err != nil {
			return err
		}
	}

	if eng := metrics.Engagement; eng != nil {
		wrote = true
		if _, err := fmt.Fprintf(w, "Engagement:\n  DAU: %s  WAU: %d  MAU: %d\n  Stickiness: %s  Sessions/user: %s\n",
			fmtFloat(eng.DAU), eng.WAU, eng.MAU, fmtFloat(eng.Stickiness), fmtFloat(eng.SessionsPerUser)); err != nil {
			return err
		}
	}

	if mon := metrics.Monetization; mon != nil {
		wrote = true
		if _, err := fmt.Fprintf(w, "Monetization:\n  Revenue: %s  ARPU: %s  ARPPU: %s\n  Paying: %d of %d (%s%%)  LTV: %s\n",
			fmtFloat(mon.TotalRevenue), fmtFloat(mon.ARPU), fmtFloat(mon.ARPPU),
			mon.PayingUsers, mon.TotalUsers, fmtFloat(mon.ConversionRate), fmtFloat(mon.LTVProjection)); err != nil {
			return err
		}
		if len(mon.RevenueBySource) > 0 {
			if _, err := fmt.Fprintf(w, "  By source: %v\n", mon.RevenueBySource); err != nil {
				return err
			}
		}
	}

	if prog := metrics.Progression; prog != nil {
		wrote = true
		if _, err := fmt.Fprintf(w, "Progression:\n  Max level: %d  Avg level: %s\n", prog.MaxLevel, fmtFloat(prog.AvgLevel)); err != nil {
			return err
		}
		if err := writeLevelTable(prog.Levels, fmtFloat, w); err != nil {
			return err
		}
		if len(prog.DifficultySpikes) > 0 {
			if _, err := fmt.Fprintf(w, "  Difficulty spikes at levels: %v\n", prog.DifficultySpikes); err != nil {
				return err
			}
		}
	}

	if !wrote {
		if _, err := fmt.Fprintln(w, "No metrics available: required columns (user, timestamp, revenue, level) were not detected."); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Metric confidence: %s\n", fmtFloat(metrics.Confidence))
	return err
}

// writeLevelTable renders per-level completion rates.
func writeLevelTable(levels []schema.LevelStat, fmtFloat func(float64) string, w io.Writer) error {
	if len(levels) == 0 {
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Level", "Reached", "Completion"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, ls := range levels {
		data = append(data, []string{
			strconv.Itoa(ls.Level),
			strconv.Itoa(ls.UsersReached),
			fmtFloat(ls.CompletionRate) + "%",
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func sortedKeys(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
