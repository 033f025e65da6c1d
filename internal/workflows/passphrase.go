package workflows

import (
	"context"

	"github.com/credstore-io/credstore/internal/configs"
	"github.com/credstore-io/credstore/internal/store"
	"github.com/credstore-io/credstore/internal/vault"
)

// Passphrase source names recorded in results and the audit trail.
const (
	SourceVault = "vault"
	SourceFile  = "file"
)

// resolvePassphrase obtains the shared passphrase for administrative
// operations: from the vault when one is configured, otherwise from the
// store's passphrase file. Returns the passphrase and its source name.
func resolvePassphrase(ctx context.Context, cfg *configs.Config, runner vault.Runner) ([]byte, string, error) {
	if cfg.VaultConfigured() {
		passphrase, err := vault.Passphrase(ctx, runner, cfg.Vault)
		if err != nil {
			return nil, "", err
		}
		return []byte(passphrase), SourceVault, nil
	}

	passphrase, err := store.ReadPassphraseFile(cfg.PassphrasePath())
	if err != nil {
		return nil, "", err
	}
	return passphrase, SourceFile, nil
}

// zero overwrites a sensitive buffer. Plaintext and passphrase buffers are
// cleared as soon as an operation finishes with them, success or failure.
func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
