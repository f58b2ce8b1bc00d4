package metric

import (
	"sort"
	"time"

	"github.com/gamelens/gamelens/schema"
)

// maxCohortWeeks caps the width of the cohort matrix.
const maxCohortWeeks = 12

// CohortMatrix builds a week-based retention grid: users grouped by
// the week of their first activity, with the share of each cohort
// still active per week offset.
func (c *Calculator) CohortMatrix(table *schema.Table, meanings []schema.ColumnMeaning) *schema.CohortMatrix {
	es := extractEvents(table, meanings)
	if !es.hasUsers() || !es.hasTimes() {
		return nil
	}

	firstSeen := make(map[string]time.Time)
	activeWeeks := make(map[string]map[time.Time]struct{})
	for _, ev := range es.events {
		if ev.user == "" || !ev.hasTime {
			continue
		}
		week := weekOf(ev.when)
		if first, ok := firstSeen[ev.user]; !ok || week.Before(first) {
			firstSeen[ev.user] = week
		}
		if activeWeeks[ev.user] == nil {
			activeWeeks[ev.user] = make(map[time.Time]struct{})
		}
		activeWeeks[ev.user][week] = struct{}{}
	}
	if len(firstSeen) == 0 {
		return nil
	}

	cohortUsers := make(map[time.Time][]string)
	for user, week := range firstSeen {
		cohortUsers[week] = append(cohortUsers[week], user)
	}

	starts := make([]time.Time, 0, len(cohortUsers))
	for week := range cohortUsers {
		starts = append(starts, week)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	lastWeek := weekOf(es.maxDay)
	weeks := int(lastWeek.Sub(starts[0]).Hours()/(24*7)) + 1
	if weeks > maxCohortWeeks {
		weeks = maxCohortWeeks
	}

	rows := make([]schema.CohortRow, 0, len(starts))
	for _, start := range starts {
		users := cohortUsers[start]
		span := int(lastWeek.Sub(start).Hours()/(24*7)) + 1
		if span > weeks {
			span = weeks
		}
		percent := make([]float64, span)
		for offset := 0; offset < span; offset++ {
			target := start.AddDate(0, 0, offset*7)
			active := 0
			for _, u := range users {
				if _, ok := activeWeeks[u][target]; ok {
					active++
				}
			}
			percent[offset] = float64(active) / float64(len(users)) * 100
		}
		rows = append(rows, schema.CohortRow{
			Start:   start,
			Size:    len(users),
			Percent: percent,
		})
	}

	return &schema.CohortMatrix{Rows: rows, Weeks: weeks}
}

// weekOf truncates a timestamp to the Monday of its ISO week.
func weekOf(t time.Time) time.Time {
	day := schema.DayOf(t)
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return day.AddDate(0, 0, -(weekday - 1))
}
