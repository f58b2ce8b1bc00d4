package metric

import "github.com/gamelens/gamelens/schema"

// monetization computes revenue metrics over all users. LTV projection
// is ARPU x horizon by default; when a retention curve is available,
// the projection scales by the summed classic retention percentages
// instead of assuming daily return.
func (c *Calculator) monetization(es *eventSet, retention *schema.RetentionMetrics) *schema.MonetizationMetrics {
	revenueByUser := make(map[string]float64)
	revenueBySource := make(map[string]float64)
	var total float64
	sawSource := false

	for _, ev := range es.events {
		if ev.user == "" {
			continue
		}
		if _, seen := revenueByUser[ev.user]; !seen {
			revenueByUser[ev.user] = 0
		}
		if !ev.hasRev {
			continue
		}
		revenueByUser[ev.user] += ev.revenue
		total += ev.revenue
		if ev.source != "" {
			revenueBySource[ev.source] += ev.revenue
			sawSource = true
		}
	}
	if len(revenueByUser) == 0 {
		return nil
	}

	paying := 0
	for _, rev := range revenueByUser {
		if rev > 0 {
			paying++
		}
	}

	totalUsers := len(revenueByUser)
	arpu := total / float64(totalUsers)
	arppu := 0.0
	if paying > 0 {
		arppu = total / float64(paying)
	}

	ltv := arpu * float64(c.opts.LTVHorizonDays)
	if retention != nil && len(retention.Classic) > 0 {
		var curve float64
		for _, pct := range retention.Classic {
			curve += pct
		}
		ltv = arpu * (curve / 100) * float64(c.opts.LTVHorizonDays)
	}

	m := &schema.MonetizationMetrics{
		TotalRevenue:   total,
		ARPU:           arpu,
		ARPPU:          arppu,
		PayingUsers:    paying,
		TotalUsers:     totalUsers,
		ConversionRate: float64(paying) / float64(totalUsers) * 100,
		LTVProjection:  ltv,
	}
	if sawSource {
		m.RevenueBySource = revenueBySource
	}
	return m
}
