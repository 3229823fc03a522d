package domain

import "github.com/google/uuid"

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// String returns the canonical UUID text form of the ID.
func (id UserID) String() string { return uuid.UUID(id).String() }

// MarshalText renders the ID as a canonical UUID string in JSON and text encodings.
func (id UserID) MarshalText() ([]byte, error) {
	return []byte(uuid.UUID(id).String()), nil
}

// UnmarshalText parses a canonical UUID string into the ID.
func (id *UserID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err //nolint: wrapcheck
	}
	*id = UserID(u)

	return nil
}
