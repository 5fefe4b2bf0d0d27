package model

// Report is the run report produced by the profiling agent.
type Report struct {
	TotalTimeMs  float64 `config:"total_time_ms" json:"total_time_ms"`   // ms
	PeakMemoryKb float64 `config:"peak_memory_kb" json:"peak_memory_kb"` // kb
}

type Assessment struct {
	Score       string   `json:"score"`
	Suggestions []string `json:"suggestions"`
}

type MemoryVerdict struct {
	Status     string `json:"status"`
	Suggestion string `json:"suggestion"`
}
