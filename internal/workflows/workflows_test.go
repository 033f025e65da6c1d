package workflows

import (
	"context"
	"os"
	"testing"

	"github.com/credstore-io/credstore/internal/cipher"
	"github.com/credstore-io/credstore/internal/configs"
	"github.com/credstore-io/credstore/internal/store"
)

// testConfig builds a config pointing at a fresh temp store using the native
// cipher, so tests do not depend on a gpg binary being installed.
func testConfig(t *testing.T) *configs.Config {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "credstore-workflows-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	cfg := configs.Default()
	cfg.StoreDir = tmpDir
	cfg.Cipher = "secretbox"
	return cfg
}

// writePassphrase puts the shared passphrase file into the test store.
func writePassphrase(t *testing.T, cfg *configs.Config, passphrase string) {
	t.Helper()
	if err := store.New(cfg).WritePassphraseFile(cfg.PassphrasePath(), []byte(passphrase)); err != nil {
		t.Fatalf("Failed to write passphrase file: %v", err)
	}
}

// seedSecret encrypts a value directly into the test store.
func seedSecret(t *testing.T, cfg *configs.Config, name, value, passphrase string) {
	t.Helper()
	ciphertext, err := cipher.Secretbox{}.Encrypt(context.Background(), []byte(value), []byte(passphrase))
	if err != nil {
		t.Fatalf("Failed to encrypt seed value: %v", err)
	}
	if _, err := store.New(cfg).WriteCiphertext(name, ciphertext); err != nil {
		t.Fatalf("Failed to write seed ciphertext: %v", err)
	}
}
