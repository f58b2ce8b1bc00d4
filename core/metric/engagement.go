package metric

import (
	"time"

	"github.com/gamelens/gamelens/schema"
)

// engagement measures activity: DAU as the mean of per-day unique
// users, WAU/MAU as unique users within the most recent 7/30 calendar
// days present in the data, and sessions per user when a session
// column exists.
func (c *Calculator) engagement(es *eventSet) *schema.EngagementMetrics {
	usersByDay := make(map[time.Time]map[string]struct{})
	weekUsers := make(map[string]struct{})
	monthUsers := make(map[string]struct{})
	sessionsByUser := make(map[string]map[string]struct{})

	weekStart := es.maxDay.AddDate(0, 0, -6)
	monthStart := es.maxDay.AddDate(0, 0, -29)

	for _, ev := range es.events {
		if ev.user == "" || !ev.hasTime {
			continue
		}
		day := schema.DayOf(ev.when)
		if usersByDay[day] == nil {
			usersByDay[day] = make(map[string]struct{})
		}
		usersByDay[day][ev.user] = struct{}{}

		if !day.Before(weekStart) {
			weekUsers[ev.user] = struct{}{}
		}
		if !day.Before(monthStart) {
			monthUsers[ev.user] = struct{}{}
		}
		if ev.session != "" {
			if sessionsByUser[ev.user] == nil {
				sessionsByUser[ev.user] = make(map[string]struct{})
			}
			sessionsByUser[ev.user][ev.session] = struct{}{}
		}
	}
	if len(usersByDay) == 0 {
		return nil
	}

	var daySum float64
	for _, users := range usersByDay {
		daySum += float64(len(users))
	}
	dau := daySum / float64(len(usersByDay))

	stickiness := 0.0
	if len(monthUsers) > 0 {
		stickiness = dau / float64(len(monthUsers))
	}

	sessionsPerUser := 0.0
	if len(sessionsByUser) > 0 {
		var total float64
		for _, sessions := range sessionsByUser {
			total += float64(len(sessions))
		}
		sessionsPerUser = total / float64(len(sessionsByUser))
	}

	return &schema.EngagementMetrics{
		DAU:             dau,
		WAU:             len(weekUsers),
		MAU:             len(monthUsers),
		Stickiness:      stickiness,
		SessionsPerUser: sessionsPerUser,
	}
}
