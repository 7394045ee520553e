package semantic

// RunState is the state of a batch ingestion run.
type RunState string

const (
	// RunIdle means no run has started
	RunIdle RunState = "idle"

	// RunProcessing means pages are being fetched and embedded
	RunProcessing RunState = "processing"

	// RunCompleted means every page was attempted
	RunCompleted RunState = "completed"

	// RunError means the run stopped early
	RunError RunState = "error"
)

// String returns the string representation of RunState
func (s RunState) String() string {
	return string(s)
}

// IsActive returns true while the run is in progress
func (s RunState) IsActive() bool {
	return s == RunProcessing
}

// IsFinished returns true if the run completed or failed
func (s RunState) IsFinished() bool {
	return s == RunCompleted || s == RunError
}

// ProcessStatus reports batch ingestion progress. Processed never
// decreases within a run and never exceeds Total.
type ProcessStatus struct {
	Total     int      `json:"total"`
	Processed int      `json:"processed"`
	Status    RunState `json:"status"`
}
