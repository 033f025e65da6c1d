package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	config := Default()

	if config.StoreDir != DefaultStoreDir {
		t.Errorf("Expected store dir %s, got %s", DefaultStoreDir, config.StoreDir)
	}
	if config.Cipher != "gpg" {
		t.Errorf("Expected cipher gpg, got %s", config.Cipher)
	}
	if config.Vault.Key != "gpg_passphrase" {
		t.Errorf("Expected vault key gpg_passphrase, got %s", config.Vault.Key)
	}
	if config.VaultConfigured() {
		t.Errorf("Expected vault to be unconfigured by default")
	}
}

func TestPassphrasePath(t *testing.T) {
	config := Default()
	want := filepath.Join(DefaultStoreDir, PassphraseFileName)
	if got := config.PassphrasePath(); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}

	config.PassphraseFile = "/run/secrets/passphrase"
	if got := config.PassphrasePath(); got != "/run/secrets/passphrase" {
		t.Errorf("Expected override to win, got %s", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "credstore-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configPath := filepath.Join(tempDir, "config.toml")
	content := `
store_dir = "/srv/secrets"
cipher = "secretbox"

[vault]
file = "/etc/ansible/vault.yml"
password_file = "/etc/ansible/.vault_pass"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("CREDSTORE_CONFIG", configPath)

	config, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if config.StoreDir != "/srv/secrets" {
		t.Errorf("Expected store dir /srv/secrets, got %s", config.StoreDir)
	}
	if config.Cipher != "secretbox" {
		t.Errorf("Expected cipher secretbox, got %s", config.Cipher)
	}
	if !config.VaultConfigured() {
		t.Errorf("Expected vault to be configured")
	}
	// Unset fields fall back to defaults.
	if config.GPGBinary != "gpg" {
		t.Errorf("Expected default gpg binary, got %s", config.GPGBinary)
	}
	if config.Vault.Key != "gpg_passphrase" {
		t.Errorf("Expected default vault key, got %s", config.Vault.Key)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("CREDSTORE_CONFIG", "/nonexistent/credstore.toml")

	if _, err := Load(); err == nil {
		t.Errorf("Expected error for missing explicit config file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "credstore-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configPath := filepath.Join(tempDir, "config.toml")
	if err := os.WriteFile(configPath, []byte(`store_dir = "/srv/secrets"`), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("CREDSTORE_CONFIG", configPath)
	t.Setenv("CREDSTORE_STORE_DIR", "/env/override")
	t.Setenv("CREDSTORE_VAULT_KEY", "shared_passphrase")

	config, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if config.StoreDir != "/env/override" {
		t.Errorf("Expected env override to win, got %s", config.StoreDir)
	}
	if config.Vault.Key != "shared_passphrase" {
		t.Errorf("Expected env vault key, got %s", config.Vault.Key)
	}
}

func TestSaveAndLoadTOMLRoundTrip(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "credstore-config-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configPath := filepath.Join(tempDir, "nested", "config.toml")
	original := Default()
	original.StoreDir = "/srv/secrets"
	original.Owner = "svcansible"
	original.Group = "svcgroup"

	if err := SaveTOML(configPath, original); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded := &Config{}
	if err := LoadTOML(configPath, loaded); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.StoreDir != original.StoreDir || loaded.Owner != original.Owner || loaded.Group != original.Group {
		t.Errorf("Round-trip mismatch: got %+v", loaded)
	}
}
