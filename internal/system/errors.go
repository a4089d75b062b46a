package system

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched by every NotFoundError.
var ErrNotFound = errors.New("system not found")

// NotFoundError reports a host with no matching catalog rows.
type NotFoundError struct {
	Hostname string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("system not found: %q", e.Hostname)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
