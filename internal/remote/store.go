// Package remote defines the contract with the remote draft store and its
// HTTP implementation. Only the request/response shapes matter here; the
// store's internals are an external collaborator.
package remote

import (
	"context"

	"github.com/harborline/draftquote/internal/wire"
)

// Store is the remote draft store contract. All failures wrap
// types.ErrRemote so callers can treat them uniformly as non-fatal.
type Store interface {
	// CreateDraft persists a new draft and returns the server's echo with
	// the assigned draft id.
	CreateDraft(ctx context.Context, req *wire.WireCreate) (*wire.WireResponse, error)

	// UpdateDraft replaces the draft with the given server id.
	UpdateDraft(ctx context.Context, draftID string, req *wire.WireUpdate) (*wire.WireResponse, error)

	// GetDraft loads the draft with the given server id.
	GetDraft(ctx context.Context, draftID string) (*wire.WireResponse, error)
}
