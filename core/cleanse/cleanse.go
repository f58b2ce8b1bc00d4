// Package cleanse detects and repairs data-quality issues in telemetry
// tables.
package cleanse

import (
	"fmt"
	"math"
	"strings"

	"github.com/gamelens/gamelens/schema"
)

// Detection thresholds.
const (
	highMissingPct   = 20.0
	mediumMissingPct = 5.0
	outlierSigma     = 3.0
	minOutlierCount  = 10 // numeric columns below this are too small to call outliers
	maxExamples      = 3
)

// columnRule declares what values a semantic type tolerates.
type columnRule struct {
	AllowNull bool
	Numeric   bool
	Min       float64
	Max       float64
}

// semanticRules binds semantic types to their validation rules. Types
// not listed accept anything non-structural.
var semanticRules = map[schema.SemanticType]columnRule{
	schema.SemUserID:       {AllowNull: false},
	schema.SemSessionID:    {AllowNull: false},
	schema.SemTimestamp:    {AllowNull: false},
	schema.SemRevenue:      {AllowNull: true, Numeric: true, Min: 0, Max: math.Inf(1)},
	schema.SemPrice:        {AllowNull: true, Numeric: true, Min: 0, Max: math.Inf(1)},
	schema.SemLevel:        {AllowNull: true, Numeric: true, Min: 0, Max: math.Inf(1)},
	schema.SemRetentionDay: {AllowNull: true, Numeric: true, Min: 0, Max: 3650},
	schema.SemKills:        {AllowNull: true, Numeric: true, Min: 0, Max: math.Inf(1)},
	schema.SemDeaths:       {AllowNull: true, Numeric: true, Min: 0, Max: math.Inf(1)},
	schema.SemDamage:       {AllowNull: true, Numeric: true, Min: 0, Max: math.Inf(1)},
	schema.SemPlacement:    {AllowNull: true, Numeric: true, Min: 1, Max: 1000},
	schema.SemSpins:        {AllowNull: true, Numeric: true, Min: 0, Max: math.Inf(1)},
	schema.SemBet:          {AllowNull: true, Numeric: true, Min: 0, Max: math.Inf(1)},
	schema.SemLives:        {AllowNull: true, Numeric: true, Min: 0, Max: 1000},
	schema.SemMoves:        {AllowNull: true, Numeric: true, Min: 0, Max: math.Inf(1)},
	schema.SemPlaytime:     {AllowNull: true, Numeric: true, Min: 0, Max: math.Inf(1)},
	schema.SemScore:        {AllowNull: true, Numeric: true, Min: math.Inf(-1), Max: math.Inf(1)},
}

// Cleaner detects quality issues and applies approved repairs. It is
// stateless; every call works on its own row clone.
type Cleaner struct{}

// NewCleaner constructs a Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Analyze inspects the table column by column, then table-wide, and
// returns the ordered cleaning plan. It never fails: a table with no
// issues yields an empty plan.
func (c *Cleaner) Analyze(table *schema.Table, meanings []schema.ColumnMeaning) schema.CleaningPlan {
	var issues []schema.QualityIssue
	total := table.RowCount()

	semByColumn := make(map[string]schema.SemanticType, len(meanings))
	for _, m := range meanings {
		semByColumn[m.Column] = m.Semantic
	}

	for _, col := range table.Columns {
		values := table.ColumnValues(col)
		sem := semByColumn[col]

		if issue := detectMissing(col, sem, values, total); issue != nil {
			issues = append(issues, *issue)
		}
		if issue := detectTypeViolations(col, sem, values, total); issue != nil {
			issues = append(issues, *issue)
		}
		if issue := detectWhitespace(col, values, total); issue != nil {
			issues = append(issues, *issue)
		}
		if issue := detectOutliers(col, values, total); issue != nil {
			issues = append(issues, *issue)
		}
	}

	if issue := detectDuplicates(table); issue != nil {
		issues = append(issues, *issue)
	}

	return schema.CleaningPlan{
		Issues:       issues,
		QualityScore: c.QualityScore(table.Rows, table.Columns),
	}
}

// QualityScore grades the cell population 0-100: a cell scores 1 when
// fine, 0.8 when it is a string differing from its trimmed form, and 0
// when empty or null.
func (c *Cleaner) QualityScore(rows []schema.Row, columns []string) float64 {
	totalCells := len(rows) * len(columns)
	if totalCells == 0 {
		return 0
	}
	var sum float64
	for _, r := range rows {
		for _, col := range columns {
			v := r[col]
			if schema.IsMissing(v) {
				continue
			}
			if s, ok := v.(string); ok && s != strings.TrimSpace(s) {
				sum += 0.8
				continue
			}
			sum++
		}
	}
	return sum / float64(totalCells) * 100
}

func detectMissing(col string, sem schema.SemanticType, values []any, total int) *schema.QualityIssue {
	count := 0
	for _, v := range values {
		if schema.IsMissing(v) {
			count++
		}
	}
	if count == 0 {
		return nil
	}
	pct := float64(count) / float64(total) * 100

	severity := schema.LowSeverity
	if pct > highMissingPct {
		severity = schema.HighSeverity
	} else if pct > mediumMissingPct {
		severity = schema.MediumSeverity
	}

	action := schema.FillModeAction
	if rule, ok := semanticRules[sem]; ok && !rule.AllowNull {
		action = schema.RemoveRowsAction
	}

	return &schema.QualityIssue{
		Column:       col,
		Kind:         schema.MissingValuesIssue,
		Severity:     severity,
		AffectedRows: count,
		AffectedPct:  pct,
		Action:       action,
		Description:  fmt.Sprintf("%d of %d values in %q are missing", count, total, col),
	}
}

func detectTypeViolations(col string, sem schema.SemanticType, values []any, total int) *schema.QualityIssue {
	rule, ok := semanticRules[sem]
	if !ok || !rule.Numeric {
		return nil
	}
	count := 0
	var examples []string
	for _, v := range values {
		if schema.IsMissing(v) {
			continue
		}
		f, isNum := schema.AsFloat(v)
		if !isNum || f < rule.Min || f > rule.Max {
			count++
			if len(examples) < maxExamples {
				examples = append(examples, schema.AsString(v))
			}
		}
	}
	if count == 0 {
		return nil
	}
	pct := float64(count) / float64(total) * 100

	severity := schema.MediumSeverity
	if pct > highMissingPct {
		severity = schema.HighSeverity
	}

	return &schema.QualityIssue{
		Column:       col,
		Kind:         schema.TypeViolationIssue,
		Severity:     severity,
		AffectedRows: count,
		AffectedPct:  pct,
		Examples:     examples,
		Action:       schema.ParseNumberAction,
		Description:  fmt.Sprintf("%d values in %q violate the %s type or range rule", count, col, sem),
	}
}

func detectWhitespace(col string, values []any, total int) *schema.QualityIssue {
	count := 0
	var examples []string
	for _, v := range values {
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		if s != strings.TrimSpace(s) {
			count++
			if len(examples) < maxExamples {
				examples = append(examples, fmt.Sprintf("%q", s))
			}
		}
	}
	if count == 0 {
		return nil
	}
	return &schema.QualityIssue{
		Column:       col,
		Kind:         schema.WhitespaceIssue,
		Severity:     schema.LowSeverity,
		AffectedRows: count,
		AffectedPct:  float64(count) / float64(total) * 100,
		Examples:     examples,
		Action:       schema.TrimWhitespaceAction,
		Description:  fmt.Sprintf("%d values in %q carry surrounding whitespace", count, col),
	}
}

func detectOutliers(col string, values []any, total int) *schema.QualityIssue {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := schema.AsFloat(v); ok {
			nums = append(nums, f)
		}
	}
	if len(nums) < minOutlierCount {
		return nil
	}
	mean, stddev := meanStddev(nums)
	if stddev == 0 {
		return nil
	}

	count := 0
	var examples []string
	for _, f := range nums {
		if math.Abs(f-mean) > outlierSigma*stddev {
			count++
			if len(examples) < maxExamples {
				examples = append(examples, fmt.Sprintf("%.2f", f))
			}
		}
	}
	if count == 0 {
		return nil
	}
	return &schema.QualityIssue{
		Column:       col,
		Kind:         schema.OutlierIssue,
		Severity:     schema.MediumSeverity,
		AffectedRows: count,
		AffectedPct:  float64(count) / float64(total) * 100,
		Examples:     examples,
		Action:       schema.CapOutliersAction,
		Description:  fmt.Sprintf("%d values in %q fall outside the 3-sigma band", count, col),
	}
}

func detectDuplicates(table *schema.Table) *schema.QualityIssue {
	seen := make(map[uint64]struct{}, table.RowCount())
	count := 0
	for _, r := range table.Rows {
		h := rowHash(r, table.Columns)
		if _, dup := seen[h]; dup {
			count++
			continue
		}
		seen[h] = struct{}{}
	}
	if count == 0 {
		return nil
	}
	return &schema.QualityIssue{
		Column:       schema.TableWideColumn,
		Kind:         schema.DuplicateRowsIssue,
		Severity:     schema.MediumSeverity,
		AffectedRows: count,
		AffectedPct:  float64(count) / float64(table.RowCount()) * 100,
		Action:       schema.RemoveDuplicatesAction,
		Description:  fmt.Sprintf("%d duplicate rows detected", count),
	}
}

func meanStddev(nums []float64) (float64, float64) {
	var sum float64
	for _, f := range nums {
		sum += f
	}
	mean := sum / float64(len(nums))
	var variance float64
	for _, f := range nums {
		variance += (f - mean) * (f - mean)
	}
	variance /= float64(len(nums))
	return mean, math.Sqrt(variance)
}
