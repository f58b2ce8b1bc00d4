package metric

import (
	"time"

	"github.com/gamelens/gamelens/schema"
)

// retention cohorts each user by first-seen day and measures classic
// and rolling Dn against the configured horizons. Only cohort members
// old enough to have reached a horizon count toward it, so young
// cohorts never drag percentages down.
func (c *Calculator) retention(es *eventSet) *schema.RetentionMetrics {
	firstSeen := make(map[string]time.Time)
	activeDays := make(map[string]map[time.Time]struct{})

	for _, ev := range es.events {
		if ev.user == "" || !ev.hasTime {
			continue
		}
		day := schema.DayOf(ev.when)
		if first, ok := firstSeen[ev.user]; !ok || day.Before(first) {
			firstSeen[ev.user] = day
		}
		if activeDays[ev.user] == nil {
			activeDays[ev.user] = make(map[time.Time]struct{})
		}
		activeDays[ev.user][day] = struct{}{}
	}
	if len(firstSeen) == 0 {
		return nil
	}

	classic := make(map[int]float64, len(c.opts.RetentionHorizons))
	rolling := make(map[int]float64, len(c.opts.RetentionHorizons))

	for _, horizon := range c.opts.RetentionHorizons {
		eligible := 0
		classicHits := 0
		rollingHits := 0
		for user, first := range firstSeen {
			target := first.AddDate(0, 0, horizon)
			if target.After(es.maxDay) {
				continue // too young to have reached this horizon
			}
			eligible++
			if _, ok := activeDays[user][target]; ok {
				classicHits++
			}
			for day := range activeDays[user] {
				if !day.Before(target) {
					rollingHits++
					break
				}
			}
		}
		if eligible == 0 {
			classic[horizon] = 0
			rolling[horizon] = 0
			continue
		}
		classic[horizon] = float64(classicHits) / float64(eligible) * 100
		rolling[horizon] = float64(rollingHits) / float64(eligible) * 100
	}

	returners := 0
	for _, days := range activeDays {
		if len(days) > 1 {
			returners++
		}
	}

	return &schema.RetentionMetrics{
		Classic:    classic,
		Rolling:    rolling,
		ReturnRate: float64(returners) / float64(len(firstSeen)),
	}
}
