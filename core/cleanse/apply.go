package cleanse

import (
	"hash/fnv"
	"math"
	"sort"
	"strings"

	"github.com/gamelens/gamelens/schema"
)

// Clean executes the approved subset of the plan in plan order over a
// clone of the table's rows. A nil or empty approved list means every
// suggested action runs. The original table is never mutated.
func (c *Cleaner) Clean(table *schema.Table, plan schema.CleaningPlan, approved []schema.RepairAction) schema.CleaningResult {
	approvedSet := make(map[schema.RepairAction]struct{}, len(approved))
	for _, a := range approved {
		approvedSet[a] = struct{}{}
	}
	allApproved := len(approved) == 0

	rows := table.CloneRows()
	scoreBefore := c.QualityScore(table.Rows, table.Columns)

	modified := 0
	removed := 0
	var applied []schema.RepairAction

	for _, issue := range plan.Issues {
		if issue.Action == schema.NoAction {
			continue
		}
		if !allApproved {
			if _, ok := approvedSet[issue.Action]; !ok {
				continue
			}
		}

		var m, r int
		switch issue.Action {
		case schema.RemoveRowsAction:
			rows, r = removeMissingRows(rows, issue.Column)
		case schema.FillModeAction:
			m = fillWithMode(rows, issue.Column)
		case schema.ParseNumberAction:
			m = parseNumbers(rows, issue.Column)
		case schema.TrimWhitespaceAction:
			m = trimWhitespace(rows, issue.Column)
		case schema.CapOutliersAction:
			m = capOutliers(rows, issue.Column)
		case schema.RemoveDuplicatesAction:
			rows, r = removeDuplicates(rows, table.Columns)
		}
		modified += m
		removed += r
		applied = append(applied, issue.Action)
	}

	return schema.CleaningResult{
		Table:        table.WithRows(rows),
		RowsRemoved:  removed,
		RowsModified: modified,
		ScoreBefore:  scoreBefore,
		ScoreAfter:   c.QualityScore(rows, table.Columns),
		Applied:      applied,
	}
}

// removeMissingRows replaces the working row set, dropping rows whose
// value in the column is missing.
func removeMissingRows(rows []schema.Row, col string) ([]schema.Row, int) {
	kept := rows[:0]
	removed := 0
	for _, r := range rows {
		if schema.IsMissing(r[col]) {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	return kept, removed
}

// fillWithMode fills missing values with the most frequent non-empty
// value of the column.
func fillWithMode(rows []schema.Row, col string) int {
	counts := make(map[string]int)
	var modeRaw any
	best := 0
	for _, r := range rows {
		v := r[col]
		if schema.IsMissing(v) {
			continue
		}
		key := schema.AsString(v)
		counts[key]++
		if counts[key] > best {
			best = counts[key]
			modeRaw = v
		}
	}
	if modeRaw == nil {
		return 0
	}
	modified := 0
	for _, r := range rows {
		if schema.IsMissing(r[col]) {
			r[col] = modeRaw
			modified++
		}
	}
	return modified
}

// parseNumbers coerces parseable string values to numbers in place.
func parseNumbers(rows []schema.Row, col string) int {
	modified := 0
	for _, r := range rows {
		v := r[col]
		if _, already := v.(float64); already || schema.IsMissing(v) {
			continue
		}
		if f, ok := schema.AsFloat(v); ok {
			r[col] = f
			modified++
		}
	}
	return modified
}

// trimWhitespace trims string values in place.
func trimWhitespace(rows []schema.Row, col string) int {
	modified := 0
	for _, r := range rows {
		if s, ok := r[col].(string); ok {
			trimmed := strings.TrimSpace(s)
			if trimmed != s {
				r[col] = trimmed
				modified++
			}
		}
	}
	return modified
}

// capOutliers clamps numeric values to the +-3 sigma band of the
// column as it currently stands.
func capOutliers(rows []schema.Row, col string) int {
	nums := make([]float64, 0, len(rows))
	for _, r := range rows {
		if f, ok := schema.AsFloat(r[col]); ok {
			nums = append(nums, f)
		}
	}
	if len(nums) < minOutlierCount {
		return 0
	}
	mean, stddev := meanStddev(nums)
	if stddev == 0 {
		return 0
	}
	lower := mean - outlierSigma*stddev
	upper := mean + outlierSigma*stddev

	modified := 0
	for _, r := range rows {
		f, ok := schema.AsFloat(r[col])
		if !ok {
			continue
		}
		clamped := math.Min(math.Max(f, lower), upper)
		if clamped != f {
			r[col] = clamped
			modified++
		}
	}
	return modified
}

// removeDuplicates drops rows whose canonical hash repeats, keeping
// the first occurrence.
func removeDuplicates(rows []schema.Row, columns []string) ([]schema.Row, int) {
	seen := make(map[uint64]struct{}, len(rows))
	kept := rows[:0]
	removed := 0
	for _, r := range rows {
		h := rowHash(r, columns)
		if _, dup := seen[h]; dup {
			removed++
			continue
		}
		seen[h] = struct{}{}
		kept = append(kept, r)
	}
	return kept, removed
}

// rowHash computes a canonical hash over sorted (column, value) pairs,
// so duplicate detection is insensitive to map iteration order.
func rowHash(r schema.Row, columns []string) uint64 {
	sorted := append([]string(nil), columns...)
	sort.Strings(sorted)
	h := fnv.New64a()
	for _, col := range sorted {
		_, _ = h.Write([]byte(col))
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(schema.AsString(r[col])))
		_, _ = h.Write([]byte{1})
	}
	return h.Sum64()
}
