package workflows

import (
	"context"
	"fmt"
	"os"

	"github.com/credstore-io/credstore/internal/audit"
	"github.com/credstore-io/credstore/internal/configs"
	kerrors "github.com/credstore-io/credstore/internal/errors"
	"github.com/credstore-io/credstore/internal/store"
	"github.com/credstore-io/credstore/internal/terminal"
	"github.com/credstore-io/credstore/internal/vault"
)

// InitOptions configures the init workflow.
type InitOptions struct {
	// Passphrase sets the shared passphrase directly. Nil means pull it
	// from the vault when configured, otherwise prompt twice.
	// The workflow zeroes this buffer before returning.
	Passphrase []byte

	// Force replaces an existing passphrase file without confirmation.
	Force bool

	// Prompter supplies interactive input.
	Prompter terminal.Prompter

	// VaultRunner executes ansible-vault when a vault is configured.
	// Nil selects the real CLI runner.
	VaultRunner vault.Runner
}

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// StoreDir is the directory that was created or reused.
	StoreDir string

	// PassphrasePath is where the shared passphrase was written.
	PassphrasePath string

	// PassphraseSource records where the passphrase came from
	// (vault, prompt, or caller).
	PassphraseSource string
}

// Init creates the store directory and writes the shared passphrase file.
//
// The directory is created with 0750 and the passphrase file with 0640,
// both chowned to the configured service identity. Re-running init against
// an existing passphrase file requires confirmation: replacing the
// passphrase silently would strand every existing ciphertext.
//
// Returns ErrAborted if the user declines to replace an existing
// passphrase file.
// Returns ErrEmptyValue if the prompted passphrases are empty or mismatch.
func Init(ctx context.Context, cfg *configs.Config, opts InitOptions) (*InitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st := store.New(cfg)
	passphrasePath := cfg.PassphrasePath()

	if _, err := os.Stat(passphrasePath); err == nil && !opts.Force {
		if opts.Prompter == nil {
			return nil, fmt.Errorf("%w: passphrase file already exists at %s", kerrors.ErrAborted, passphrasePath)
		}
		confirmed, err := opts.Prompter.Confirm(
			fmt.Sprintf("Passphrase file %s already exists. Replace it? Existing secrets will need re-encryption.", passphrasePath), false)
		if err != nil {
			return nil, fmt.Errorf("reading confirmation: %w", err)
		}
		if !confirmed {
			return nil, fmt.Errorf("%w: %s left unchanged", kerrors.ErrAborted, passphrasePath)
		}
	}

	passphrase, source, err := initPassphrase(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	defer zero(passphrase)

	if err := st.Init(); err != nil {
		return nil, err
	}

	if err := st.WritePassphraseFile(passphrasePath, passphrase); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("init")
	entry.Source = source
	audit.ForStore(cfg.StoreDir).Log(entry)

	return &InitResult{
		StoreDir:         cfg.StoreDir,
		PassphrasePath:   passphrasePath,
		PassphraseSource: source,
	}, nil
}

// initPassphrase picks the passphrase for a new store: caller-supplied,
// vault, or an interactive double-entry prompt.
func initPassphrase(ctx context.Context, cfg *configs.Config, opts InitOptions) ([]byte, string, error) {
	if opts.Passphrase != nil {
		if len(opts.Passphrase) == 0 {
			return nil, "", kerrors.ErrEmptyValue
		}
		return opts.Passphrase, "caller", nil
	}

	if cfg.VaultConfigured() {
		runner := opts.VaultRunner
		if runner == nil {
			runner = vault.CLIRunner{Binary: cfg.Vault.Binary}
		}
		passphrase, err := vault.Passphrase(ctx, runner, cfg.Vault)
		if err != nil {
			return nil, "", err
		}
		return []byte(passphrase), SourceVault, nil
	}

	if opts.Prompter == nil {
		return nil, "", fmt.Errorf("%w: no passphrase supplied and no prompt available", kerrors.ErrEmptyValue)
	}

	first, err := opts.Prompter.ReadSecret("Shared passphrase: ")
	if err != nil {
		return nil, "", fmt.Errorf("reading passphrase: %w", err)
	}
	second, err := opts.Prompter.ReadSecret("Confirm passphrase: ")
	if err != nil {
		zero(first)
		return nil, "", fmt.Errorf("reading passphrase confirmation: %w", err)
	}
	defer zero(second)

	if len(first) == 0 {
		zero(first)
		return nil, "", kerrors.ErrEmptyValue
	}
	if string(first) != string(second) {
		zero(first)
		return nil, "", fmt.Errorf("%w: passphrases do not match", kerrors.ErrEmptyValue)
	}

	return first, "prompt", nil
}
