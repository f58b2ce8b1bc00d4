package metric

import (
	"sort"

	"github.com/gamelens/gamelens/schema"
)

// Difficulty spike thresholds.
const (
	spikeDropPoints = 20.0 // completion drop in percentage points vs previous level
	spikeAvgFactor  = 0.5  // completion below half the dataset average
)

// progression measures how users move through levels. Completion of
// level N is inferred when a user reaches level N+1; a level whose
// completion rate collapses relative to its neighbor or the dataset
// average is flagged as a difficulty spike.
func (c *Calculator) progression(es *eventSet) *schema.ProgressionMetrics {
	maxLevelByUser := make(map[string]int)
	for _, ev := range es.events {
		if ev.user == "" || !ev.hasLvl {
			continue
		}
		if ev.level > maxLevelByUser[ev.user] {
			maxLevelByUser[ev.user] = ev.level
		}
	}
	if len(maxLevelByUser) == 0 {
		return nil
	}

	maxLevel := 0
	var levelSum float64
	for _, lvl := range maxLevelByUser {
		if lvl > maxLevel {
			maxLevel = lvl
		}
		levelSum += float64(lvl)
	}

	// reached[n] = users whose max level is at least n, built as a
	// suffix sum so cost stays linear in maxLevel.
	atLevel := make([]int, maxLevel+2)
	for _, lvl := range maxLevelByUser {
		atLevel[lvl]++
	}
	reached := make([]int, maxLevel+2)
	cum := 0
	for n := maxLevel; n >= 1; n-- {
		cum += atLevel[n]
		reached[n] = cum
	}

	levels := make([]schema.LevelStat, 0, maxLevel)
	var completionSum float64
	for n := 1; n <= maxLevel; n++ {
		if reached[n] == 0 {
			continue
		}
		rate := float64(reached[n+1]) / float64(reached[n]) * 100
		levels = append(levels, schema.LevelStat{
			Level:          n,
			UsersReached:   reached[n],
			CompletionRate: rate,
		})
		completionSum += rate
	}

	var spikes []int
	if len(levels) > 0 {
		avg := completionSum / float64(len(levels))
		for i, ls := range levels {
			if i > 0 && levels[i-1].CompletionRate-ls.CompletionRate > spikeDropPoints {
				spikes = append(spikes, ls.Level)
				continue
			}
			if ls.CompletionRate < avg*spikeAvgFactor {
				spikes = append(spikes, ls.Level)
			}
		}
	}
	sort.Ints(spikes)

	return &schema.ProgressionMetrics{
		MaxLevel:         maxLevel,
		AvgLevel:         levelSum / float64(len(maxLevelByUser)),
		Levels:           levels,
		DifficultySpikes: spikes,
	}
}
