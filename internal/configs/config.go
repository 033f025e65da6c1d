package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultStoreDir is the runtime secret store location deployed by the
// Ansible playbooks.
const DefaultStoreDir = "/opt/credential_store"

// PassphraseFileName is the fixed name of the shared passphrase file inside
// the store directory.
const PassphraseFileName = ".gpg_passphrase"

// Config holds the resolved credstore configuration.
type Config struct {
	// StoreDir is the directory holding ciphertext files and the passphrase file.
	StoreDir string `toml:"store_dir"`

	// PassphraseFile overrides the passphrase file location.
	// Empty means <StoreDir>/.gpg_passphrase.
	PassphraseFile string `toml:"passphrase_file"`

	// Cipher selects the symmetric cipher implementation: "gpg" or "secretbox".
	Cipher string `toml:"cipher"`

	// GPGBinary is the gpg executable name or path.
	GPGBinary string `toml:"gpg_binary"`

	// Owner and Group name the service identity that secret files are chowned
	// to after an encrypt. Empty values skip the ownership change.
	Owner string `toml:"owner"`
	Group string `toml:"group"`

	Vault VaultConfig `toml:"vault"`
}

// VaultConfig locates the administrative vault holding the shared passphrase.
type VaultConfig struct {
	// File is the ansible-vault encrypted file. Empty disables the vault source.
	File string `toml:"file"`

	// PasswordFile is the vault unlock credential.
	PasswordFile string `toml:"password_file"`

	// Key is the YAML field inside the vault holding the shared passphrase.
	Key string `toml:"key"`

	// Binary is the ansible-vault executable name or path.
	Binary string `toml:"binary"`
}

// Default returns a Config populated with defaults only.
func Default() *Config {
	return &Config{
		StoreDir:  DefaultStoreDir,
		Cipher:    "gpg",
		GPGBinary: "gpg",
		Vault: VaultConfig{
			Key:    "gpg_passphrase",
			Binary: "ansible-vault",
		},
	}
}

// Load resolves the configuration from the config file and environment.
//
// The config file is taken from CREDSTORE_CONFIG if set, otherwise the first
// of /etc/credstore/config.toml and <user config dir>/credstore/config.toml
// that exists. A missing config file is not an error; defaults apply.
// CREDSTORE_* environment variables override file values.
func Load() (*Config, error) {
	config := Default()

	path, explicit := configFilePath()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := LoadTOML(path, config); err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
		} else if explicit {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	applyDefaults(config)
	applyEnvOverrides(config)

	return config, nil
}

// PassphrasePath returns the effective passphrase file location.
func (c *Config) PassphrasePath() string {
	if c.PassphraseFile != "" {
		return c.PassphraseFile
	}
	return filepath.Join(c.StoreDir, PassphraseFileName)
}

// VaultConfigured reports whether a vault source is set up.
func (c *Config) VaultConfigured() bool {
	return c.Vault.File != ""
}

// DefaultConfigPath returns the path `credstore config init` writes to.
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "credstore", "config.toml"), nil
}

// SaveTOML encodes data to a TOML file, creating parent directories as
// needed. Used by `credstore config init` to write a starter config.
func SaveTOML(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// LoadTOML decodes a TOML file into data.
func LoadTOML(path string, data any) error {
	_, err := toml.DecodeFile(path, data)
	return err
}

func configFilePath() (path string, explicit bool) {
	if p := os.Getenv("CREDSTORE_CONFIG"); p != "" {
		return p, true
	}

	system := filepath.Join("/etc", "credstore", "config.toml")
	if _, err := os.Stat(system); err == nil {
		return system, false
	}

	if userPath, err := DefaultConfigPath(); err == nil {
		return userPath, false
	}

	return "", false
}

// applyDefaults fills fields the config file left empty.
func applyDefaults(c *Config) {
	if c.StoreDir == "" {
		c.StoreDir = DefaultStoreDir
	}
	if c.Cipher == "" {
		c.Cipher = "gpg"
	}
	if c.GPGBinary == "" {
		c.GPGBinary = "gpg"
	}
	if c.Vault.Key == "" {
		c.Vault.Key = "gpg_passphrase"
	}
	if c.Vault.Binary == "" {
		c.Vault.Binary = "ansible-vault"
	}
}

func applyEnvOverrides(c *Config) {
	overrides := []struct {
		env    string
		target *string
	}{
		{"CREDSTORE_STORE_DIR", &c.StoreDir},
		{"CREDSTORE_PASSPHRASE_FILE", &c.PassphraseFile},
		{"CREDSTORE_CIPHER", &c.Cipher},
		{"CREDSTORE_GPG_BINARY", &c.GPGBinary},
		{"CREDSTORE_OWNER", &c.Owner},
		{"CREDSTORE_GROUP", &c.Group},
		{"CREDSTORE_VAULT_FILE", &c.Vault.File},
		{"CREDSTORE_VAULT_PASSWORD_FILE", &c.Vault.PasswordFile},
		{"CREDSTORE_VAULT_KEY", &c.Vault.Key},
		{"CREDSTORE_VAULT_BINARY", &c.Vault.Binary},
	}

	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.target = v
		}
	}
}
