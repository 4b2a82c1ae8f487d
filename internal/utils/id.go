package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateID returns an opaque document identifier. IDs are unique within
// (and beyond) the process lifetime.
func GenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
