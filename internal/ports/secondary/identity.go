package secondary

import "context"

// OrgInfo is the human-readable identity of a counterparty.
type OrgInfo struct {
	DID     string
	Name    string
	Country string
	Role    string
}

// IdentityResolver defines the secondary port for DID resolution. It is
// used only to render party names; state-machine correctness never
// depends on it.
type IdentityResolver interface {
	Resolve(ctx context.Context, did string) (*OrgInfo, error)
}
