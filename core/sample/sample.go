// Package sample reduces arbitrarily large tables to bounded,
// representative working sets.
package sample

import (
	"math/rand"
	"sort"

	"github.com/gamelens/gamelens/schema"
)

// Smart-strategy quota split.
const (
	smartHeadShare = 0.20
	smartTailShare = 0.10
)

// Options control one sampling call.
type Options struct {
	MaxRows         int
	Strategy        schema.SampleStrategy
	PriorityColumns []string
}

// Sampler draws bounded samples from tables. The random source is
// seeded explicitly so runs are reproducible.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler constructs a Sampler with a fixed default seed.
func NewSampler() *Sampler {
	return NewSamplerWithSeed(1)
}

// NewSamplerWithSeed constructs a Sampler with the given seed.
func NewSamplerWithSeed(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Sample reduces the table to at most opts.MaxRows rows. When the
// table already fits, the original table is returned unchanged with
// the trivial "full" strategy reported.
func (s *Sampler) Sample(table *schema.Table, opts Options) *schema.SampleResult {
	total := table.RowCount()
	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = total
	}

	if total <= maxRows {
		return &schema.SampleResult{
			Table:        table,
			OriginalRows: total,
			SampledRows:  total,
			Strategy:     schema.FullSample,
			Coverage:     coverage(table),
		}
	}

	strategy := opts.Strategy
	if strategy == "" {
		strategy = schema.SmartSample
	}

	var indices []int
	switch strategy {
	case schema.HeadSample:
		indices = rangeIndices(0, maxRows)
	case schema.TailSample:
		indices = rangeIndices(total-maxRows, total)
	case schema.RandomSample:
		indices = s.drawDistinct(total, maxRows, nil)
	case schema.SystematicSample:
		indices = systematicIndices(total, maxRows)
	case schema.StratifiedSample:
		if len(opts.PriorityColumns) == 0 {
			strategy = schema.RandomSample
			indices = s.drawDistinct(total, maxRows, nil)
		} else {
			indices = s.stratifiedIndices(table, opts.PriorityColumns[0], maxRows)
		}
	default: // smart
		strategy = schema.SmartSample
		indices = s.smartIndices(total, maxRows)
	}

	sort.Ints(indices)
	rows := make([]schema.Row, 0, len(indices))
	for _, i := range indices {
		rows = append(rows, table.Rows[i])
	}
	sampled := table.WithRows(rows)

	return &schema.SampleResult{
		Table:        sampled,
		OriginalRows: total,
		SampledRows:  len(rows),
		Strategy:     strategy,
		Coverage:     coverage(sampled),
	}
}

// rangeIndices returns [start, end).
func rangeIndices(start, end int) []int {
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

// systematicIndices takes every step-th row until count collected.
func systematicIndices(total, count int) []int {
	step := total / count
	if step < 1 {
		step = 1
	}
	out := make([]int, 0, count)
	for i := 0; i < total && len(out) < count; i += step {
		out = append(out, i)
	}
	return out
}

// drawDistinct draws count distinct indices from [0, total) uniformly
// without replacement, skipping any index in exclude. The selection
// never emits a duplicate row.
func (s *Sampler) drawDistinct(total, count int, exclude map[int]struct{}) []int {
	pool := make([]int, 0, total)
	for i := 0; i < total; i++ {
		if _, skip := exclude[i]; skip {
			continue
		}
		pool = append(pool, i)
	}
	if count >= len(pool) {
		return pool
	}
	// Partial Fisher-Yates over the candidate pool.
	for i := 0; i < count; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count]
}

// smartIndices draws 20% of the quota from the head, 10% from the
// tail, and the remaining 70% randomly from the interior. This keeps a
// recency bias without ignoring history.
func (s *Sampler) smartIndices(total, count int) []int {
	headN := int(float64(count) * smartHeadShare)
	tailN := int(float64(count) * smartTailShare)
	if headN < 1 {
		headN = 1
	}
	if tailN < 1 {
		tailN = 1
	}
	// Tiny quotas: the head keeps priority and the tail yields so the
	// total never exceeds count.
	if headN > count {
		headN = count
	}
	if headN+tailN > count {
		tailN = count - headN
	}
	used := make(map[int]struct{}, headN+tailN)
	out := make([]int, 0, count)
	for i := 0; i < headN && i < total; i++ {
		out = append(out, i)
		used[i] = struct{}{}
	}
	for i := total - tailN; i < total; i++ {
		if _, dup := used[i]; dup {
			continue
		}
		out = append(out, i)
		used[i] = struct{}{}
	}
	remaining := count - len(out)
	if remaining > 0 {
		out = append(out, s.drawDistinct(total, remaining, used)...)
	}
	return out
}

// stratifiedIndices groups rows by the priority column's string value
// and samples proportionally from each group (minimum 1), topping up
// with random fill from unused rows until exactly count.
func (s *Sampler) stratifiedIndices(table *schema.Table, column string, count int) []int {
	groups := make(map[string][]int)
	var order []string
	for i, r := range table.Rows {
		key := schema.AsString(r[column])
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}

	perGroup := count / len(groups)
	if perGroup < 1 {
		perGroup = 1
	}

	used := make(map[int]struct{}, count)
	out := make([]int, 0, count)
	for _, key := range order {
		members := groups[key]
		take := perGroup
		if take > len(members) {
			take = len(members)
		}
		// Shuffle the group and take its head for an unbiased pick.
		for i := 0; i < take; i++ {
			j := i + s.rng.Intn(len(members)-i)
			members[i], members[j] = members[j], members[i]
		}
		for _, idx := range members[:take] {
			if len(out) == count {
				break
			}
			out = append(out, idx)
			used[idx] = struct{}{}
		}
	}

	if remaining := count - len(out); remaining > 0 {
		out = append(out, s.drawDistinct(table.RowCount(), remaining, used)...)
	}
	return out
}

// coverage counts distinct values per column in one pass.
func coverage(table *schema.Table) map[string]int {
	distinct := make(map[string]map[string]struct{}, len(table.Columns))
	for _, c := range table.Columns {
		distinct[c] = make(map[string]struct{})
	}
	for _, r := range table.Rows {
		for _, c := range table.Columns {
			distinct[c][schema.AsString(r[c])] = struct{}{}
		}
	}
	out := make(map[string]int, len(table.Columns))
	for c, set := range distinct {
		out[c] = len(set)
	}
	return out
}
