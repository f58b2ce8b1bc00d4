package metric

import "github.com/gamelens/gamelens/schema"

// Funnel builds the step conversion report from the funnel-step
// column. Steps keep their first-seen row order, which is how ordered
// exports (tutorial_1, tutorial_2, ...) arrive in practice; user
// counts then show the drop-off between consecutive steps.
func (c *Calculator) Funnel(table *schema.Table, meanings []schema.ColumnMeaning) *schema.FunnelReport {
	es := extractEvents(table, meanings)
	if !es.hasUsers() || !es.hasFunnel() {
		return nil
	}

	usersByStep := make(map[string]map[string]struct{})
	var order []string
	for _, ev := range es.events {
		if ev.user == "" || ev.funnel == "" {
			continue
		}
		if usersByStep[ev.funnel] == nil {
			usersByStep[ev.funnel] = make(map[string]struct{})
			order = append(order, ev.funnel)
		}
		usersByStep[ev.funnel][ev.user] = struct{}{}
	}
	if len(order) == 0 {
		return nil
	}

	steps := make([]schema.FunnelStep, 0, len(order))
	prev := 0
	for i, step := range order {
		users := len(usersByStep[step])
		conversion := 100.0
		if i > 0 && prev > 0 {
			conversion = float64(users) / float64(prev) * 100
		}
		steps = append(steps, schema.FunnelStep{
			Step:       step,
			Users:      users,
			Conversion: conversion,
		})
		prev = users
	}
	return &schema.FunnelReport{Steps: steps}
}
