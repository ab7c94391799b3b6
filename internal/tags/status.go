package tags

import "errors"

// Phase is the lifecycle position of a dataset load.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseLoaded
	PhaseFailed
)

// parseFailedMessage is shown instead of reader internals when the file itself is unusable.
const parseFailedMessage = "Failed to parse CSV data."

// Status is what the UI knows about the dataset at a given moment.
type Status struct {
	Phase   Phase
	Records []Record
	Message string
}

// Loading is the initial status.
func Loading() Status {
	return Status{Phase: PhaseLoading}
}

// Loaded wraps a successful load.
func Loaded(records []Record) Status {
	return Status{Phase: PhaseLoaded, Records: records}
}

// Failed converts a load error into a user-facing status.
func Failed(err error) Status {
	msg := err.Error()
	if errors.Is(err, ErrParse) {
		msg = parseFailedMessage
	}
	return Status{Phase: PhaseFailed, Message: msg}
}

// StatusOf folds a Load result into a Status.
func StatusOf(records []Record, err error) Status {
	if err != nil {
		return Failed(err)
	}
	return Loaded(records)
}
