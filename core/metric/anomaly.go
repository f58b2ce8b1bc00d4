package metric

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gamelens/gamelens/schema"
)

// Anomaly detection thresholds.
const (
	anomalySigma     = 2.0
	anomalyHighSigma = 3.0
	minAnomalyDays   = 7
)

// DetectAnomalies scans the per-day unique-user and revenue series for
// days that deviate sharply from the series mean. Series shorter than
// minAnomalyDays are too noisy to judge and yield nothing.
func (c *Calculator) DetectAnomalies(table *schema.Table, meanings []schema.ColumnMeaning) []schema.Anomaly {
	es := extractEvents(table, meanings)
	if !es.hasUsers() || !es.hasTimes() {
		return nil
	}

	usersByDay := make(map[time.Time]map[string]struct{})
	revenueByDay := make(map[time.Time]float64)
	for _, ev := range es.events {
		if ev.user == "" || !ev.hasTime {
			continue
		}
		day := schema.DayOf(ev.when)
		if usersByDay[day] == nil {
			usersByDay[day] = make(map[string]struct{})
		}
		usersByDay[day][ev.user] = struct{}{}
		if ev.hasRev {
			revenueByDay[day] += ev.revenue
		}
	}

	var anomalies []schema.Anomaly
	anomalies = append(anomalies, seriesAnomalies("daily_users", toSeries(usersByDay))...)
	if es.hasRevenue() {
		anomalies = append(anomalies, seriesAnomalies("daily_revenue", revenueSeries(usersByDay, revenueByDay))...)
	}
	sort.Slice(anomalies, func(i, j int) bool {
		return anomalies[i].Date.Before(anomalies[j].Date)
	})
	return anomalies
}

type dayValue struct {
	day   time.Time
	value float64
}

func toSeries(usersByDay map[time.Time]map[string]struct{}) []dayValue {
	out := make([]dayValue, 0, len(usersByDay))
	for day, users := range usersByDay {
		out = append(out, dayValue{day: day, value: float64(len(users))})
	}
	return out
}

// revenueSeries keys the revenue series off the active-day set so
// zero-revenue active days still appear in the series.
func revenueSeries(usersByDay map[time.Time]map[string]struct{}, revenueByDay map[time.Time]float64) []dayValue {
	out := make([]dayValue, 0, len(usersByDay))
	for day := range usersByDay {
		out = append(out, dayValue{day: day, value: revenueByDay[day]})
	}
	return out
}

func seriesAnomalies(metricName string, series []dayValue) []schema.Anomaly {
	if len(series) < minAnomalyDays {
		return nil
	}
	values := make([]float64, len(series))
	for i, dv := range series {
		values[i] = dv.value
	}
	mean, stddev := meanStddevSeries(values)
	if stddev == 0 {
		return nil
	}

	var out []schema.Anomaly
	for _, dv := range series {
		deviation := dv.value - mean
		abs := deviation
		if abs < 0 {
			abs = -abs
		}
		if abs <= anomalySigma*stddev {
			continue
		}
		severity := schema.MediumSeverity
		if abs > anomalyHighSigma*stddev {
			severity = schema.HighSeverity
		}
		direction := "spike"
		if deviation < 0 {
			direction = "drop"
		}
		out = append(out, schema.Anomaly{
			Metric:      metricName,
			Date:        dv.day,
			Value:       dv.value,
			Expected:    mean,
			Severity:    severity,
			Description: fmt.Sprintf("%s %s on %s: %.1f vs expected %.1f", metricName, direction, dv.day.Format("2006-01-02"), dv.value, mean),
		})
	}
	return out
}

func meanStddevSeries(values []float64) (float64, float64) {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}
