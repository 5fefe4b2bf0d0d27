// Package analyzer turns a run report into a canned assessment.
//
// Two assessments exist. Analyze produces a letter score with a list of
// insights and is what the analyser binary prints. AnalyzePerformance only
// looks at memory, uses a lower threshold and is what memcheck prints.
package analyzer

import "codeberg.org/iklabib/metriccull/model"

const (
	SlowRunMs       = 1000
	HighMemoryKb    = 100000
	MemoryWarningKb = 50000
)

const (
	ScoreOptimal = "A"
	ScoreFlagged = "B"

	StatusSuccess = "success"
)

const (
	InsightSlowRun    = "Execution took over 1 second. Consider optimizing loops."
	InsightHighMemory = "High memory footprint detected (>100MB)."
	InsightOptimal    = "Code looks optimal!"

	SuggestionMemoryFine = "Memory usage is fine."
	SuggestionMemoryHigh = "High memory usage detected!"
)

// Analyze checks time before memory, so insights keep that order.
func Analyze(report model.Report) model.Assessment {
	var insights []string

	if report.TotalTimeMs > SlowRunMs {
		insights = append(insights, InsightSlowRun)
	}

	if report.PeakMemoryKb > HighMemoryKb {
		insights = append(insights, InsightHighMemory)
	}

	if len(insights) == 0 {
		return model.Assessment{
			Score:       ScoreOptimal,
			Suggestions: []string{InsightOptimal},
		}
	}

	return model.Assessment{
		Score:       ScoreFlagged,
		Suggestions: insights,
	}
}

// AnalyzePerformance ignores execution time. A peak of exactly
// MemoryWarningKb already counts as high.
func AnalyzePerformance(report model.Report) model.MemoryVerdict {
	verdict := model.MemoryVerdict{
		Status:     StatusSuccess,
		Suggestion: SuggestionMemoryHigh,
	}

	if report.PeakMemoryKb < MemoryWarningKb {
		verdict.Suggestion = SuggestionMemoryFine
	}

	return verdict
}
