package scenario

import (
	"errors"
	"strings"
)

var (
	ErrNotFound            = errors.New("scenario not found")
	ErrMalformed           = errors.New("malformed scenario file")
	ErrMissingData         = errors.New("invalid file: missing participants or project params")
	ErrIncompatibleVersion = errors.New("incompatible version")
	ErrLotLimit            = errors.New("lot limit reached")
	ErrUnknownParticipant  = errors.New("unknown participant")
)

// ValidationError lists the invariant violations that kept a project from
// being stored.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid project: " + strings.Join(e.Problems, "; ")
}
