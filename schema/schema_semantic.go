package schema

// ColumnMeaning is the semantic reading of one column. It is produced
// once by the schema analyzer and consumed read-only by every
// downstream stage.
type ColumnMeaning struct {
	Column     string        `json:"column"`     // Raw column name from the table
	Primitive  PrimitiveType `json:"primitive"`  // Detected storage type
	Semantic   SemanticType  `json:"semantic"`   // Inferred business meaning
	Confidence float64       `json:"confidence"` // 0..1 heuristic confidence
}

// FindMeaning returns the first meaning tagged with the given semantic
// type, or nil when the dataset has no such column.
func FindMeaning(meanings []ColumnMeaning, sem SemanticType) *ColumnMeaning {
	for i := range meanings {
		if meanings[i].Semantic == sem {
			return &meanings[i]
		}
	}
	return nil
}

// SemanticSet collects the distinct semantic types present in a
// meaning list, excluding unknown.
func SemanticSet(meanings []ColumnMeaning) map[SemanticType]struct{} {
	set := make(map[SemanticType]struct{}, len(meanings))
	for _, m := range meanings {
		if m.Semantic != SemUnknown {
			set[m.Semantic] = struct{}{}
		}
	}
	return set
}

// GameTypeResult is the genre classification of a dataset.
type GameTypeResult struct {
	GameType   GameType `json:"gameType"`
	Confidence float64  `json:"confidence"` // 0..0.95
	Reasons    []string `json:"reasons"`
}
