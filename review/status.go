package review

// StatusReport describes the operational readiness of a Reviewer.
type StatusReport struct {
	// ClientConfigured reports whether the inference client is present
	// and, when it exposes a Configured method, credentialed.
	ClientConfigured bool `json:"client_configured"`

	// Stages lists the pipeline stages in execution order with the model
	// assigned to each LLM-backed stage.
	Stages []StageStatus `json:"stages"`
}

// StageStatus describes one configured pipeline stage.
type StageStatus struct {
	Stage Stage  `json:"stage"`
	Model string `json:"model,omitempty"`
}

// configurable is implemented by inference clients that can report
// whether credentials are set (e.g., the openai client).
type configurable interface {
	Configured() bool
}

// Status reports the Reviewer's configuration for diagnostics.
func (r *Reviewer) Status() StatusReport {
	configured := r.client != nil
	if c, ok := r.client.(configurable); ok {
		configured = c.Configured()
	}

	stages := make([]StageStatus, 0, len(Stages()))
	for _, stage := range Stages() {
		stages = append(stages, StageStatus{
			Stage: stage,
			Model: r.stages[stage].Model,
		})
	}

	return StatusReport{
		ClientConfigured: configured,
		Stages:           stages,
	}
}
