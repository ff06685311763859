package pipeline

import "errors"

var (
	errUnknownStage = errors.New("pipeline: unknown stage variant")
	errStageOrder   = errors.New("pipeline: stages out of canonical order")
)
