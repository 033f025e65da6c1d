package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/credstore-io/credstore/internal/audit"
	"github.com/credstore-io/credstore/internal/cipher"
	"github.com/credstore-io/credstore/internal/configs"
	kerrors "github.com/credstore-io/credstore/internal/errors"
	"github.com/credstore-io/credstore/internal/store"
	"github.com/credstore-io/credstore/internal/terminal"
	"github.com/credstore-io/credstore/internal/vault"
)

// PutOptions configures the put workflow.
type PutOptions struct {
	// Name is the secret to create or replace.
	Name string

	// Value is the plaintext. Nil means prompt interactively (hidden input).
	// The workflow zeroes this buffer before returning.
	Value []byte

	// Force overwrites an existing secret without confirmation.
	Force bool

	// Prompter supplies interactive input. Required when Value is nil or an
	// overwrite confirmation may be needed.
	Prompter terminal.Prompter

	// VaultRunner executes ansible-vault when a vault is configured.
	// Nil selects the real CLI runner.
	VaultRunner vault.Runner
}

// PutResult contains the outcome of a put operation.
type PutResult struct {
	// Path is the ciphertext file that was written.
	Path string

	// Overwritten indicates an existing secret was replaced.
	Overwritten bool

	// PassphraseSource records where the passphrase came from (vault or file).
	PassphraseSource string
}

// Put encrypts one secret into the store.
//
// The plaintext comes from opts.Value or a non-echoing prompt. The
// passphrase comes from the vault when configured, otherwise from the
// store's passphrase file. Exactly one file is created or replaced; the
// write is staged and renamed so a concurrent reader never sees a partial
// ciphertext. Plaintext buffers are zeroed before returning, success or
// failure.
//
// Returns ErrInvalidSecretName if the name is empty or unsafe.
// Returns ErrStoreNotInitialized if the store directory does not exist.
// Returns ErrEmptyValue if the plaintext is empty.
// Returns ErrSecretExists if the secret exists and no prompter can confirm.
// Returns ErrAborted if the user declines the overwrite confirmation.
// Returns a configuration error if the passphrase source is missing.
// Returns ErrEncryptFailed if the cipher call fails.
func Put(ctx context.Context, cfg *configs.Config, opts PutOptions) (*PutResult, error) {
	st := store.New(cfg)

	path, err := st.SecretPath(opts.Name)
	if err != nil {
		return nil, err
	}

	if !st.Initialized() {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrStoreNotInitialized, cfg.StoreDir)
	}

	value := opts.Value
	if value == nil {
		if opts.Prompter == nil {
			return nil, fmt.Errorf("%w: no value supplied and no prompt available", kerrors.ErrEmptyValue)
		}
		value, err = opts.Prompter.ReadSecret(fmt.Sprintf("Value for %s: ", opts.Name))
		if err != nil {
			return nil, fmt.Errorf("reading secret value: %w", err)
		}
	}
	defer zero(value)

	// Reject empty plaintext before anything touches the filesystem.
	if len(value) == 0 {
		return nil, kerrors.ErrEmptyValue
	}

	exists, err := st.Exists(opts.Name)
	if err != nil {
		return nil, err
	}
	if exists && !opts.Force {
		if opts.Prompter == nil {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrSecretExists, opts.Name)
		}
		confirmed, err := opts.Prompter.Confirm(fmt.Sprintf("Secret %q already exists. Overwrite?", opts.Name), false)
		if err != nil {
			return nil, fmt.Errorf("reading confirmation: %w", err)
		}
		if !confirmed {
			return nil, fmt.Errorf("%w: %s left unchanged", kerrors.ErrAborted, opts.Name)
		}
	}

	runner := opts.VaultRunner
	if runner == nil {
		runner = vault.CLIRunner{Binary: cfg.Vault.Binary}
	}
	passphrase, source, err := resolvePassphrase(ctx, cfg, runner)
	if err != nil {
		return nil, err
	}
	defer zero(passphrase)

	c, err := cipher.FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	ciphertext, err := c.Encrypt(ctx, value, passphrase)
	if err != nil {
		if errors.Is(err, kerrors.ErrCipherUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrEncryptFailed, opts.Name, err)
	}

	if _, err := st.WriteCiphertext(opts.Name, ciphertext); err != nil {
		return nil, err
	}

	entry := audit.NewEntry("put")
	entry.Secret = opts.Name
	entry.Source = source
	audit.ForStore(cfg.StoreDir).Log(entry)

	return &PutResult{
		Path:             path,
		Overwritten:      exists,
		PassphraseSource: source,
	}, nil
}
