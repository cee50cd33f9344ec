package utils

import "github.com/google/uuid"

// UUIDGenerator produces the identifiers handed to new entities and
// pending operations. Version 7 UUIDs are time-ordered, so identifiers
// created offline still sort by creation time once they reach the server.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a v7 UUID string, falling back to v4 if the
// monotonic source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
