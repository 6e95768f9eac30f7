package ids

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// Generator produces identifiers for new entities. Identifiers are never reused.
type Generator interface {
	New() uuid.UUID
}

// Random generates 128-bit random (version 4) UUIDs.
type Random struct{}

// New returns a fresh random UUID.
func (Random) New() uuid.UUID {
	return uuid.New()
}

// Sequence generates predictable version 4 UUIDs whose low bits count up from 1.
// It is meant for tests that compare boards by identity.
type Sequence struct {
	next uint64
}

// New returns the next identifier in the sequence.
func (s *Sequence) New() uuid.UUID {
	s.next++

	var id uuid.UUID
	binary.BigEndian.PutUint64(id[8:], s.next)
	id[6] = 0x40
	id[8] = (id[8] & 0x3f) | 0x80
	return id
}

// Short returns the first length characters of the canonical string form of id.
func Short(id uuid.UUID, length int) string {
	value := id.String()
	if length <= 0 || length > len(value) {
		return value
	}
	return value[:length]
}
