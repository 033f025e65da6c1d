// Package credstore reads secrets from a credential store directory. It is
// the library surface for services that only ever need to fetch one
// credential at startup; everything administrative lives in the CLI.
package credstore

import (
	"context"

	"github.com/credstore-io/credstore/internal/configs"
	kerrors "github.com/credstore-io/credstore/internal/errors"
	"github.com/credstore-io/credstore/internal/workflows"
)

// Errors returned by Get, suitable for errors.Is checks.
var (
	// ErrNotFound means no ciphertext file exists for the name.
	ErrNotFound = kerrors.ErrSecretNotFound

	// ErrDecryptFailed means the ciphertext exists but would not decrypt,
	// usually a wrong or stale passphrase file.
	ErrDecryptFailed = kerrors.ErrDecryptFailed
)

// Client reads secrets from one store directory. The zero value reads from
// the default store at /opt/credential_store using gpg.
type Client struct {
	// Dir is the store directory. Empty means the default store.
	Dir string

	// PassphraseFile overrides the passphrase file location.
	// Empty means <Dir>/.gpg_passphrase.
	PassphraseFile string

	// Cipher selects the cipher implementation: "gpg" (default) or "secretbox".
	Cipher string

	// GPGBinary is the gpg executable name or path. Empty means "gpg".
	GPGBinary string
}

// Get decrypts one secret and returns its value with a single trailing
// newline trimmed. The plaintext is never logged or written to disk.
func (c *Client) Get(ctx context.Context, name string) (string, error) {
	cfg := configs.Default()
	if c.Dir != "" {
		cfg.StoreDir = c.Dir
	}
	if c.PassphraseFile != "" {
		cfg.PassphraseFile = c.PassphraseFile
	}
	if c.Cipher != "" {
		cfg.Cipher = c.Cipher
	}
	if c.GPGBinary != "" {
		cfg.GPGBinary = c.GPGBinary
	}

	result, err := workflows.Get(ctx, cfg, workflows.GetOptions{Name: name})
	if err != nil {
		return "", err
	}
	return result.Value, nil
}

// Get decrypts one secret from the default store. Most services want exactly
// this call:
//
//	password, err := credstore.Get(ctx, "db_app")
func Get(ctx context.Context, name string) (string, error) {
	var c Client
	return c.Get(ctx, name)
}
