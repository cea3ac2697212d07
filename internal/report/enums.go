package report

// Status is the outcome for a single file.
type Status string

const (
	StatusChanged Status = "CHANGED"
	StatusClean   Status = "CLEAN"
	StatusFailed  Status = "FAILED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusChanged, StatusClean, StatusFailed:
		return true
	}
	return false
}

// order returns a sort key (lower = listed first).
func (s Status) order() int {
	switch s {
	case StatusFailed:
		return 0
	case StatusChanged:
		return 1
	case StatusClean:
		return 2
	default:
		return 3
	}
}
