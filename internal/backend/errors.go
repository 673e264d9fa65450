package backend

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is returned for every operation attempted while the
	// backend endpoint or credential is missing.
	ErrUnavailable  = errors.New("backend not configured")
	ErrNotFound     = errors.New("row not found")
	ErrUnknownTable = errors.New("unknown table")
)

// codeNoRows is the PostgREST code for a single-row request that matched nothing.
const codeNoRows = "PGRST116"

// Error is a rejection reported by the backend itself.
type Error struct {
	StatusCode int
	Code       string
	Message    string
	Details    string
	Hint       string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Code == codeNoRows
}
