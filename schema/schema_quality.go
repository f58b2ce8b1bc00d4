package schema

// TableWideColumn marks issues that apply to the whole table rather
// than a single column.
const TableWideColumn = "*"

// QualityIssue is one detected data-quality problem and its suggested
// repair.
type QualityIssue struct {
	Column       string       `json:"column"` // column name or "*" for table-wide
	Kind         IssueKind    `json:"kind"`
	Severity     Severity     `json:"severity"`
	AffectedRows int          `json:"affectedRows"`
	AffectedPct  float64      `json:"affectedPct"`
	Examples     []string     `json:"examples,omitempty"`
	Action       RepairAction `json:"action"`
	Description  string       `json:"description"`
}

// CleaningPlan is the ordered list of issues found by analysis. Apply
// order matters: row-removing actions run against the same working row
// set that value-mutating actions operate on.
type CleaningPlan struct {
	Issues       []QualityIssue `json:"issues"`
	QualityScore float64        `json:"qualityScore"` // 0..100, before cleaning
}

// CleaningResult carries the repaired table and the before/after
// accounting of a clean() call.
type CleaningResult struct {
	Table        *Table         `json:"-"`
	RowsRemoved  int            `json:"rowsRemoved"`
	RowsModified int            `json:"rowsModified"`
	ScoreBefore  float64        `json:"scoreBefore"`
	ScoreAfter   float64        `json:"scoreAfter"`
	Applied      []RepairAction `json:"applied"`
}
