package schema

// SampleResult is the outcome of reducing a table to a bounded working
// set. SampledRows is always <= OriginalRows; when no reduction was
// needed the sampled table is the original, unchanged.
type SampleResult struct {
	Table        *Table         `json:"-"`
	OriginalRows int            `json:"originalRows"`
	SampledRows  int            `json:"sampledRows"`
	Strategy     SampleStrategy `json:"strategy"`
	Coverage     map[string]int `json:"coverage"` // per-column distinct values in the sample
}

// Ratio returns the sampling ratio in (0, 1].
func (r *SampleResult) Ratio() float64 {
	if r.OriginalRows == 0 {
		return 1
	}
	return float64(r.SampledRows) / float64(r.OriginalRows)
}
