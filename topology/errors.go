package topology

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrPoolTooSmall is reported when the address pool cannot seat a full committee.
	ErrPoolTooSmall = errors.New("address pool too small")
	// ErrInvalidDocument is reported when a topology document breaks its invariants.
	ErrInvalidDocument = errors.New("invalid topology document")
)

// ConfigurationError is fatal for the operation that raised it. It carries the
// degree and/or document path so the operator can tell which committee or which
// file needs fixing.
type ConfigurationError struct {
	Degree int    // committee degree the operation was working on, -1 if unknown
	Path   string // document or address list involved, if any
	Err    error
}

func (e *ConfigurationError) Error() string {
	switch {
	case e.Path != "" && e.Degree >= 0:
		return fmt.Sprintf("topology config (degree %d, %s): %v", e.Degree, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("topology config (%s): %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("topology config (degree %d): %v", e.Degree, e.Err)
	}
}

func (e *ConfigurationError) Unwrap() error { return e.Err }
