package kernel

import "strconv"

// ID is the opaque identity of a persisted entity.
// The zero value means the entity has not been stored yet; the persistence layer
// assigns the real value exactly once.
type ID uint64

// IsZero reports whether the identity has not been assigned yet.
func (id ID) IsZero() bool {
	return id == 0
}

// String returns the decimal representation of the identity.
func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
