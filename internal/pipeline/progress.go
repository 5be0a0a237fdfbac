package pipeline

import "clipforge/internal/stage"

// progressRange assigns each step a fixed share of overall run progress.
// Entering a step reports the lower bound, completing (or skipping) it the
// upper bound, so progress is monotonic across the whole run.
type progressRange struct {
	start float64
	end   float64
}

var progressRanges = map[stage.Category]progressRange{
	stage.Script:   {start: 0, end: 20},
	stage.Voice:    {start: 20, end: 40},
	stage.Media:    {start: 40, end: 60},
	stage.VideoAI:  {start: 60, end: 75},
	stage.Assembly: {start: 75, end: 100},
}

// ProgressOnStart returns the overall progress reported when a step begins.
func ProgressOnStart(c stage.Category) float64 {
	return progressRanges[c].start
}

// ProgressOnComplete returns the overall progress reported when a step
// completes or is skipped.
func ProgressOnComplete(c stage.Category) float64 {
	return progressRanges[c].end
}
