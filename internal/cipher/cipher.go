package cipher

import (
	"context"
	"fmt"

	"github.com/credstore-io/credstore/internal/configs"
)

// Cipher is the narrow symmetric-encryption capability the rest of the tool
// depends on. Implementations may shell out to an external binary or use a
// native library; callers only see ciphertext in, plaintext out.
type Cipher interface {
	// Encrypt seals plaintext under the passphrase.
	Encrypt(ctx context.Context, plaintext, passphrase []byte) ([]byte, error)

	// Decrypt recovers the plaintext. A wrong passphrase or corrupt
	// ciphertext returns an error; callers cannot tell the two apart.
	Decrypt(ctx context.Context, ciphertext, passphrase []byte) ([]byte, error)
}

// FromConfig returns the Cipher selected by the configuration.
func FromConfig(cfg *configs.Config) (Cipher, error) {
	switch cfg.Cipher {
	case "", "gpg":
		return GPG{Binary: cfg.GPGBinary}, nil
	case "secretbox":
		return Secretbox{}, nil
	default:
		return nil, fmt.Errorf("unknown cipher %q (expected \"gpg\" or \"secretbox\")", cfg.Cipher)
	}
}
