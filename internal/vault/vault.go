package vault

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/credstore-io/credstore/internal/configs"
	kerrors "github.com/credstore-io/credstore/internal/errors"
)

// Runner executes the external vault tool's decrypt operation.
type Runner interface {
	// View returns the decrypted content of the vault file.
	View(ctx context.Context, vaultFile, passwordFile string) ([]byte, error)
}

// CLIRunner shells out to ansible-vault.
type CLIRunner struct {
	// Binary is the ansible-vault executable name or path. Empty means "ansible-vault".
	Binary string
}

func (r CLIRunner) View(ctx context.Context, vaultFile, passwordFile string) ([]byte, error) {
	binary := r.Binary
	if binary == "" {
		binary = "ansible-vault"
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, "view", "--vault-password-file", passwordFile, vaultFile)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s not found in PATH", kerrors.ErrVaultUnavailable, binary)
		}
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("%s view failed: %s", binary, detail)
	}

	return stdout.Bytes(), nil
}

// Available reports whether the ansible-vault binary can be found.
func (r CLIRunner) Available() bool {
	binary := r.Binary
	if binary == "" {
		binary = "ansible-vault"
	}
	_, err := exec.LookPath(binary)
	return err == nil
}

// Passphrase decrypts the configured vault and extracts the shared GPG
// passphrase field. The vault file and vault password file must both exist;
// their absence is reported as distinct configuration errors so `doctor`
// and error messages can point at the right file.
func Passphrase(ctx context.Context, runner Runner, cfg configs.VaultConfig) (string, error) {
	if cfg.File == "" {
		return "", fmt.Errorf("%w: no vault file configured", kerrors.ErrVaultNotFound)
	}
	if _, err := os.Stat(cfg.File); err != nil {
		return "", fmt.Errorf("%w: %s", kerrors.ErrVaultNotFound, cfg.File)
	}
	if cfg.PasswordFile == "" {
		return "", fmt.Errorf("%w: no vault password file configured", kerrors.ErrVaultPasswordNotFound)
	}
	if _, err := os.Stat(cfg.PasswordFile); err != nil {
		return "", fmt.Errorf("%w: %s", kerrors.ErrVaultPasswordNotFound, cfg.PasswordFile)
	}

	content, err := runner.View(ctx, cfg.File, cfg.PasswordFile)
	if err != nil {
		return "", err
	}

	key := cfg.Key
	if key == "" {
		key = "gpg_passphrase"
	}

	passphrase, err := ExtractField(content, key)
	if err != nil {
		return "", err
	}
	return passphrase, nil
}

// ExtractField pulls one scalar field out of decrypted vault content. The
// content is YAML; the value is returned trimmed and with surrounding
// quotes stripped, since vault files commonly quote the passphrase.
func ExtractField(content []byte, key string) (string, error) {
	var fields map[string]interface{}
	if err := yaml.Unmarshal(content, &fields); err != nil {
		return "", fmt.Errorf("failed to parse vault content: %w", err)
	}

	raw, ok := fields[key]
	if !ok {
		return "", fmt.Errorf("%w: %q", kerrors.ErrVaultKeyMissing, key)
	}

	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a string", kerrors.ErrVaultKeyMissing, key)
	}

	value = strings.TrimSpace(value)
	value = trimQuotes(value)
	if value == "" {
		return "", fmt.Errorf("%w: %q is empty", kerrors.ErrVaultKeyMissing, key)
	}
	return value, nil
}

// trimQuotes strips one matching pair of surrounding quote characters.
func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
