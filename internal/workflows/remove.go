package workflows

import (
	"context"
	"fmt"

	"github.com/credstore-io/credstore/internal/audit"
	"github.com/credstore-io/credstore/internal/configs"
	kerrors "github.com/credstore-io/credstore/internal/errors"
	"github.com/credstore-io/credstore/internal/store"
	"github.com/credstore-io/credstore/internal/terminal"
)

// RemoveOptions configures the remove workflow.
type RemoveOptions struct {
	// Name is the secret to delete.
	Name string

	// Force skips the confirmation prompt.
	Force bool

	// Prompter supplies the confirmation. Required unless Force is set.
	Prompter terminal.Prompter
}

// RemoveResult contains the outcome of a remove operation.
type RemoveResult struct {
	// Path is the ciphertext file that was deleted.
	Path string
}

// Remove deletes one secret's ciphertext file.
//
// Returns ErrInvalidSecretName if the name is empty or unsafe.
// Returns ErrSecretNotFound if no ciphertext file exists.
// Returns ErrAborted if the user declines the confirmation.
func Remove(ctx context.Context, cfg *configs.Config, opts RemoveOptions) (*RemoveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st := store.New(cfg)

	path, err := st.SecretPath(opts.Name)
	if err != nil {
		return nil, err
	}

	exists, err := st.Exists(opts.Name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, opts.Name)
	}

	if !opts.Force {
		if opts.Prompter == nil {
			return nil, fmt.Errorf("%w: confirmation required to remove %s", kerrors.ErrAborted, opts.Name)
		}
		confirmed, err := opts.Prompter.Confirm(fmt.Sprintf("Remove secret %q?", opts.Name), false)
		if err != nil {
			return nil, fmt.Errorf("reading confirmation: %w", err)
		}
		if !confirmed {
			return nil, fmt.Errorf("%w: %s left unchanged", kerrors.ErrAborted, opts.Name)
		}
	}

	if err := st.Remove(opts.Name); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("rm")
	entry.Secret = opts.Name
	audit.ForStore(cfg.StoreDir).Log(entry)

	return &RemoveResult{Path: path}, nil
}
