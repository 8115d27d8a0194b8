package shared

import "github.com/google/uuid"

// NewID returns a random 128-bit identifier. Record identifiers were once
// derived from millisecond timestamps, which collide under rapid successive
// calls; random UUIDs remove that hazard.
func NewID() string {
	return uuid.NewString()
}
