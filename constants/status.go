package constants

// RunStatus is the canonical status for rows in the runs table.
type RunStatus string

// Stable values (store these exact strings in the results store).
const (
	RunStatusRunning   RunStatus = "RUNNING"   // batch in progress
	RunStatusCompleted RunStatus = "COMPLETED" // all documents attempted, metrics finalized
	RunStatusFailed    RunStatus = "FAILED"    // terminal failure before finalize
)
