// Package pipeline models read-side aggregation as ordered, declarative stage
// lists. Builders produce one deterministic stage sequence per use case; the
// store executes it. Stages run in match -> search -> sort -> hydrate ->
// derive -> project order, with derivation always after hydration so derived
// fields can read joined records.
package pipeline

// Stage is one step of an aggregation plan. The concrete variants form a
// closed set understood by the store executor.
type Stage interface {
	stage()
}

// Match filters on equality against a single field.
type Match struct {
	Field string
	Value string
}

// Search filters on a case-insensitive substring across several fields,
// any of which may match.
type Search struct {
	Term   string
	Fields []string
}

// Sort orders the result by a single key. Ascending unless Descending is set.
type Sort struct {
	Key        string
	Descending bool
}

// Hydrate replaces a foreign reference field with a trimmed projection of the
// referenced record. Nested references use dotted paths ("video.owner").
type Hydrate struct {
	Field string
	From  string
}

// Derive computes a named field from the stages before it.
type Derive struct {
	Name string
}

// Project narrows the output to the listed fields.
type Project struct {
	Fields []string
}

func (Match) stage()   {}
func (Search) stage()  {}
func (Sort) stage()    {}
func (Hydrate) stage() {}
func (Derive) stage()  {}
func (Project) stage() {}

// stageRank assigns each variant its position in the canonical order.
func stageRank(s Stage) int {
	switch s.(type) {
	case Match:
		return 0
	case Search:
		return 1
	case Sort:
		return 2
	case Hydrate:
		return 3
	case Derive:
		return 4
	case Project:
		return 5
	default:
		return -1
	}
}

// Check verifies the stage list respects the canonical ordering. Builders in
// this package always satisfy it; executors call Check to reject hand-built
// plans that do not.
func Check(stages []Stage) error {
	last := 0
	for _, s := range stages {
		rank := stageRank(s)
		if rank < 0 {
			return errUnknownStage
		}
		if rank < last {
			return errStageOrder
		}
		last = rank
	}
	return nil
}
