package util

import (
	"github.com/oklog/ulid/v2"
)

// NewULID returns a new ULID string. ulid.Make is monotonic within a
// millisecond and safe for concurrent use.
func NewULID() string {
	return ulid.Make().String()
}
