package utils

import "github.com/google/uuid"

// UUIDGenerator hands out identifiers for records stored without one.
// Version 7 identifiers sort by creation time, which keeps the default
// listing order stable.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to a random v4 when the
// clock source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
