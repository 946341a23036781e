// Package directory resolves party DIDs against the local organization
// registry. A real deployment would resolve did:web documents over HTTPS;
// the engine only needs names for rendering, so the registry suffices.
package directory

import (
	"context"
	"fmt"

	"github.com/example/tradeflow/internal/ports/secondary"
)

// Resolver implements secondary.IdentityResolver over the party repository.
type Resolver struct {
	parties secondary.PartyRepository
}

// NewResolver creates a resolver backed by the given party repository.
func NewResolver(parties secondary.PartyRepository) *Resolver {
	return &Resolver{parties: parties}
}

// Resolve returns the organization info for a DID.
func (r *Resolver) Resolve(ctx context.Context, did string) (*secondary.OrgInfo, error) {
	record, err := r.parties.GetByDID(ctx, did)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", did, err)
	}

	return &secondary.OrgInfo{
		DID:     record.DID,
		Name:    record.Name,
		Country: record.Country,
		Role:    record.Role,
	}, nil
}

// Ensure Resolver implements the interface
var _ secondary.IdentityResolver = (*Resolver)(nil)
