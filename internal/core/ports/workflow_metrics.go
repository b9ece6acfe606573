package ports

// WorkflowMetrics records the outcome of workflow operations.
type WorkflowMetrics interface {
	// ObserveTransition counts one attempt of action. A nil err is a success;
	// otherwise the error's kind is recorded.
	ObserveTransition(action string, err error)
}

// NopWorkflowMetrics discards every observation.
type NopWorkflowMetrics struct{}

func (NopWorkflowMetrics) ObserveTransition(string, error) {}
