package workflows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/credstore-io/credstore/internal/cipher"
	"github.com/credstore-io/credstore/internal/configs"
	kerrors "github.com/credstore-io/credstore/internal/errors"
	"github.com/credstore-io/credstore/internal/store"
)

// GetOptions configures the get workflow.
type GetOptions struct {
	// Name is the secret to retrieve.
	Name string
}

// GetResult contains the outcome of a get operation.
type GetResult struct {
	// Value is the decrypted plaintext, with a single trailing newline
	// trimmed if the encrypted value carried one.
	Value string

	// Path is the ciphertext file that was decrypted.
	Path string
}

// Get retrieves and decrypts one secret.
//
// It locates the ciphertext at the store's fixed path for the name, reads
// the shared passphrase from the passphrase file, and decrypts via the
// configured cipher. The plaintext is never written anywhere; it is
// returned to the caller and nothing else.
//
// Returns ErrInvalidSecretName if the name is empty or unsafe.
// Returns ErrSecretNotFound if no ciphertext file exists.
// Returns ErrPassphraseNotFound if the passphrase file is missing.
// Returns ErrCipherUnavailable if the cipher tool is not installed.
// Returns ErrDecryptFailed for wrong passphrase or corrupt ciphertext.
func Get(ctx context.Context, cfg *configs.Config, opts GetOptions) (*GetResult, error) {
	st := store.New(cfg)

	path, err := st.SecretPath(opts.Name)
	if err != nil {
		return nil, err
	}

	ciphertext, err := st.ReadCiphertext(opts.Name)
	if err != nil {
		return nil, err
	}

	passphrase, err := store.ReadPassphraseFile(cfg.PassphrasePath())
	if err != nil {
		return nil, err
	}
	defer zero(passphrase)

	c, err := cipher.FromConfig(cfg)
	if err != nil {
		return nil, err
	}

	plaintext, err := c.Decrypt(ctx, ciphertext, passphrase)
	if err != nil {
		if errors.Is(err, kerrors.ErrCipherUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrDecryptFailed, opts.Name, err)
	}

	return &GetResult{
		Value: trimTrailingNewline(string(plaintext)),
		Path:  path,
	}, nil
}

// trimTrailingNewline removes exactly one trailing newline. Values are
// routinely piped through editors and heredocs that append one; anything
// beyond that single newline is treated as part of the secret.
func trimTrailingNewline(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
