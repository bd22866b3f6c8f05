package order

// Status tracks a submission through its lifecycle:
// Idle -> Validating -> Dispatching -> (Succeeded | Failed) -> Idle.
type Status string

const (
	StatusIdle        Status = "IDLE"
	StatusValidating  Status = "VALIDATING"
	StatusDispatching Status = "DISPATCHING"
	StatusSucceeded   Status = "SUCCEEDED"
	StatusFailed      Status = "FAILED"
)

func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}
