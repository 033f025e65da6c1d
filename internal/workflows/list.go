package workflows

import (
	"context"

	"github.com/credstore-io/credstore/internal/configs"
	"github.com/credstore-io/credstore/internal/store"
)

// ListOptions configures the list workflow.
type ListOptions struct {
	// Patterns filters names with glob syntax. Empty lists everything.
	Patterns []string
}

// ListResult contains the outcome of a list operation.
type ListResult struct {
	// Names are the matching secret names, sorted.
	Names []string

	// StoreDir is the directory that was listed.
	StoreDir string
}

// List enumerates the secrets in the store.
//
// Returns ErrStoreNotInitialized if the store directory does not exist.
func List(ctx context.Context, cfg *configs.Config, opts ListOptions) (*ListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	names, err := store.New(cfg).List(opts.Patterns)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Names:    names,
		StoreDir: cfg.StoreDir,
	}, nil
}
