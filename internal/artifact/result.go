package artifact

// Status distinguishes a legitimately missing optional artifact from one that
// is present but corrupted, so diagnostics do not mask real corruption.
type Status uint8

const (
	StatusLoaded Status = iota
	StatusAbsent
	StatusMalformed
)

func (s Status) String() string {
	switch s {
	case StatusLoaded:
		return "loaded"
	case StatusAbsent:
		return "absent"
	case StatusMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Result is the per-artifact load outcome. Err is set only for
// StatusMalformed.
type Result struct {
	Status Status
	Err    error
}

func loaded() Result {
	return Result{Status: StatusLoaded}
}

func absent() Result {
	return Result{Status: StatusAbsent}
}

func malformed(err error) Result {
	return Result{Status: StatusMalformed, Err: err}
}
