// uuid simple generator that allows mocking
package uuid

import (
	"github.com/google/uuid"
)

// choiceNamespace scopes content-derived identifiers so they never collide
// with identifiers derived for other purposes.
var choiceNamespace = uuid.MustParse("6f1b2a52-3c55-4d8e-9b6c-2f3f0c7f5a11")

// Generator is an interface for generating UUIDs
type Generator interface {
	New() string
}

// GoogleUUIDGenerator implements the Generator interface using Google's UUID package
type GoogleUUIDGenerator struct{}

// New generates a new UUID string
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates a new GoogleUUIDGenerator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// Derive returns a stable identifier for the given content. The same bytes
// always yield the same identifier.
func Derive(content []byte) string {
	return uuid.NewSHA1(choiceNamespace, content).String()
}
