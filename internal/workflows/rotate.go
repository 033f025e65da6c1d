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

// RotateOptions configures the rotate workflow.
type RotateOptions struct {
	// NewPassphrase sets the replacement passphrase directly. Nil means
	// pull it from the vault when configured, otherwise prompt twice.
	// The workflow zeroes this buffer before returning.
	NewPassphrase []byte

	// Patterns limits rotation to matching secret names. Empty rotates
	// everything; the passphrase file is only replaced on a full rotation.
	Patterns []string

	// Prompter supplies interactive input.
	Prompter terminal.Prompter

	// VaultRunner executes ansible-vault when a vault is configured.
	// Nil selects the real CLI runner.
	VaultRunner vault.Runner
}

// RotateResult contains the outcome of a rotate operation.
type RotateResult struct {
	// Rotated lists the secret names that were re-encrypted.
	Rotated []string

	// PassphraseReplaced indicates the passphrase file was updated.
	PassphraseReplaced bool

	// PassphraseSource records where the new passphrase came from.
	PassphraseSource string
}

// Rotate re-encrypts secrets under a new shared passphrase.
//
// The workflow:
//  1. Reads the current passphrase from the passphrase file
//  2. Obtains the new passphrase (vault, prompt, or caller)
//  3. Decrypts every matching secret with the old passphrase
//  4. Writes the re-encrypted files and, on a full rotation, replaces
//     the passphrase file
//
// Every secret is decrypted before anything is written, so a wrong old
// passphrase or one corrupt file aborts the rotation with the store
// untouched. When the new passphrase comes from the vault, update the
// vault first and then run rotate.
//
// Returns ErrStoreNotInitialized if the store directory does not exist.
// Returns ErrPassphraseNotFound if the current passphrase file is missing.
// Returns ErrDecryptFailed naming the first secret that would not decrypt.
func Rotate(ctx context.Context, cfg *configs.Config, opts RotateOptions) (*RotateResult, error) {
	st := store.New(cfg)

	names, err := st.List(opts.Patterns)
	if err != nil {
		return nil, err
	}

	oldPassphrase, err := store.ReadPassphraseFile(cfg.PassphrasePath())
	if err != nil {
		return nil, err
	}
	defer zero(oldPassphrase)

	newPassphrase, source, err := rotatePassphrase(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	defer zero(newPassphrase)

	c, err := cipher.FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	// Decrypt everything up front; nothing is written until the whole
	// store proved decryptable under the old passphrase.
	plaintexts := make(map[string][]byte, len(names))
	defer func() {
		for _, p := range plaintexts {
			zero(p)
		}
	}()
	for _, name := range names {
		ciphertext, err := st.ReadCiphertext(name)
		if err != nil {
			return nil, err
		}
		plaintext, err := c.Decrypt(ctx, ciphertext, oldPassphrase)
		if err != nil {
			if errors.Is(err, kerrors.ErrCipherUnavailable) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrDecryptFailed, name, err)
		}
		plaintexts[name] = plaintext
	}

	for _, name := range names {
		ciphertext, err := c.Encrypt(ctx, plaintexts[name], newPassphrase)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrEncryptFailed, name, err)
		}
		if _, err := st.WriteCiphertext(name, ciphertext); err != nil {
			return nil, err
		}
	}

	fullRotation := len(opts.Patterns) == 0
	if fullRotation {
		if err := st.WritePassphraseFile(cfg.PassphrasePath(), newPassphrase); err != nil {
			return nil, err
		}
	}

	entry := audit.NewEntry("rotate")
	entry.Secrets = names
	entry.Count = len(names)
	entry.Source = source
	audit.ForStore(cfg.StoreDir).Log(entry)

	return &RotateResult{
		Rotated:            names,
		PassphraseReplaced: fullRotation,
		PassphraseSource:   source,
	}, nil
}

// rotatePassphrase picks the replacement passphrase.
func rotatePassphrase(ctx context.Context, cfg *configs.Config, opts RotateOptions) ([]byte, string, error) {
	if opts.NewPassphrase != nil {
		if len(opts.NewPassphrase) == 0 {
			return nil, "", kerrors.ErrEmptyValue
		}
		return opts.NewPassphrase, "caller", nil
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
		return nil, "", fmt.Errorf("%w: no new passphrase supplied and no prompt available", kerrors.ErrEmptyValue)
	}

	first, err := opts.Prompter.ReadSecret("New shared passphrase: ")
	if err != nil {
		return nil, "", fmt.Errorf("reading passphrase: %w", err)
	}
	second, err := opts.Prompter.ReadSecret("Confirm new passphrase: ")
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
