package executor

// Summary is the caller-visible result of an orchestration run.
type Summary struct {
	Total     int  `json:"total"`
	Completed int  `json:"completed"`
	Failed    int  `json:"failed"`
	Success   bool `json:"success"`
	// Aborted is true when a required module's terminal failure stopped the
	// run before later batches could start.
	Aborted     bool     `json:"aborted"`
	Initialized []string `json:"initialized"`
	// FailedModules lists modules that exhausted their retry budget.
	FailedModules []string `json:"failed_modules"`
	// Unhealthy lists successfully initialized modules whose advisory health
	// check failed. They still count as initialized.
	Unhealthy []string `json:"unhealthy,omitempty"`
}

func (s *runState) summarize(unhealthy []string, aborted bool) *Summary {
	p := s.progress()
	return &Summary{
		Total:         p.Total,
		Completed:     p.Completed,
		Failed:        p.Failed,
		Success:       p.Failed == 0,
		Aborted:       aborted,
		Initialized:   s.initializedNames(),
		FailedModules: s.failedNames(),
		Unhealthy:     unhealthy,
	}
}
