// Package repository is the graph access layer: every Cypher statement the
// backend issues lives here, behind typed read and write methods. The
// detection core consumes it through narrow interfaces so it can be tested
// against an in-memory fake.
package repository

import (
	"github.com/ananya/fraudlens/backend/internal/graph"
)

// Repository encapsulates graph read and write operations.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}
