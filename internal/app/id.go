package app

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/webinardesk/webinardesk/internal/domain"
)

// Compile-time checks: both generators implement domain.IDGenerator.
var (
	_ domain.IDGenerator = (*RandomIDs)(nil)
	_ domain.IDGenerator = (*SequenceIDs)(nil)
)

// RandomIDs generates UUIDv4 identifiers for production use.
type RandomIDs struct{}

// NewRandomIDs creates the production identifier source.
func NewRandomIDs() *RandomIDs {
	return &RandomIDs{}
}

func (g *RandomIDs) NewID() string {
	return uuid.NewString()
}

// SequenceIDs generates the deterministic sequence id-1, id-2, ...
// for tests and fixtures. Safe for concurrent use.
type SequenceIDs struct {
	n atomic.Int64
}

// NewSequenceIDs creates a deterministic identifier source starting at id-1.
func NewSequenceIDs() *SequenceIDs {
	return &SequenceIDs{}
}

func (g *SequenceIDs) NewID() string {
	return fmt.Sprintf("id-%d", g.n.Add(1))
}
