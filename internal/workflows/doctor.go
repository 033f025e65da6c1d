package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/credstore-io/credstore/internal/cipher"
	"github.com/credstore-io/credstore/internal/configs"
	"github.com/credstore-io/credstore/internal/store"
	"github.com/credstore-io/credstore/internal/vault"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct {
	// No options currently, but provides extensibility.
}

// Doctor runs health checks against the configured store.
//
// The doctor workflow checks:
//   - Store directory existence and permissions
//   - Passphrase file existence and permissions
//   - Cipher backend availability
//   - Vault files and ansible-vault availability (when configured)
//   - Secret inventory
func Doctor(ctx context.Context, cfg *configs.Config, opts DoctorOptions) (*DoctorResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	checks := []func(*configs.Config) CheckResult{
		checkStoreDir,
		checkStorePermissions,
		checkPassphraseFile,
		checkPassphrasePermissions,
		checkCipherBackend,
		checkVaultSetup,
		checkSecretInventory,
	}

	var results []CheckResult
	for _, check := range checks {
		result := check(cfg)
		results = append(results, result)
	}

	summary := calculateDoctorSummary(results)

	// Collect suggestions (deduplicated).
	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     summary,
		Suggestions: suggestions,
	}, nil
}

// checkStoreDir checks that the store directory exists.
func checkStoreDir(cfg *configs.Config) CheckResult {
	info, err := os.Stat(cfg.StoreDir)
	if os.IsNotExist(err) {
		return CheckResult{
			Name:       "Store directory",
			Status:     CheckError,
			Message:    fmt.Sprintf("Store directory %s does not exist", cfg.StoreDir),
			Suggestion: "Run 'credstore init' to create the store",
		}
	}
	if err != nil {
		return CheckResult{
			Name:       "Store directory",
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to stat store directory: %v", err),
			Suggestion: "Check that the store directory is accessible",
		}
	}
	if !info.IsDir() {
		return CheckResult{
			Name:       "Store directory",
			Status:     CheckError,
			Message:    fmt.Sprintf("%s exists but is not a directory", cfg.StoreDir),
			Suggestion: "Remove the file and run 'credstore init'",
		}
	}

	return CheckResult{
		Name:    "Store directory",
		Status:  CheckPass,
		Message: fmt.Sprintf("Store directory %s exists", cfg.StoreDir),
	}
}

// checkStorePermissions checks the store directory mode.
func checkStorePermissions(cfg *configs.Config) CheckResult {
	info, err := os.Stat(cfg.StoreDir)
	if err != nil {
		return CheckResult{
			Name:       "Store permissions",
			Status:     CheckError,
			Message:    "Store directory not found (skipping permissions check)",
			Suggestion: "Run 'credstore init' to create the store",
		}
	}

	mode := info.Mode().Perm()
	if mode&0007 != 0 {
		return CheckResult{
			Name:       "Store permissions",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Store directory is world-accessible (%04o)", mode),
			Suggestion: fmt.Sprintf("Run 'chmod 750 %s' to restrict access", cfg.StoreDir),
		}
	}

	return CheckResult{
		Name:    "Store permissions",
		Status:  CheckPass,
		Message: fmt.Sprintf("Store directory has restrictive permissions (%04o)", mode),
	}
}

// checkPassphraseFile checks that the passphrase file exists and is non-empty.
func checkPassphraseFile(cfg *configs.Config) CheckResult {
	path := cfg.PassphrasePath()
	passphrase, err := store.ReadPassphraseFile(path)
	if err != nil {
		return CheckResult{
			Name:       "Passphrase file",
			Status:     CheckError,
			Message:    fmt.Sprintf("Passphrase file not usable: %v", err),
			Suggestion: "Run 'credstore init' to write the shared passphrase",
		}
	}
	zero(passphrase)

	return CheckResult{
		Name:    "Passphrase file",
		Status:  CheckPass,
		Message: fmt.Sprintf("Passphrase file %s exists and is non-empty", path),
	}
}

// checkPassphrasePermissions checks the passphrase file mode.
func checkPassphrasePermissions(cfg *configs.Config) CheckResult {
	path := cfg.PassphrasePath()
	info, err := os.Stat(path)
	if err != nil {
		return CheckResult{
			Name:       "Passphrase permissions",
			Status:     CheckError,
			Message:    "Passphrase file not found (skipping permissions check)",
			Suggestion: "Run 'credstore init' to write the shared passphrase",
		}
	}

	mode := info.Mode().Perm()
	if mode&0004 != 0 {
		return CheckResult{
			Name:       "Passphrase permissions",
			Status:     CheckWarning,
			Message:    fmt.Sprintf("Passphrase file is world-readable (%04o)", mode),
			Suggestion: fmt.Sprintf("Run 'chmod 640 %s' to restrict access", path),
		}
	}

	return CheckResult{
		Name:    "Passphrase permissions",
		Status:  CheckPass,
		Message: fmt.Sprintf("Passphrase file has restrictive permissions (%04o)", mode),
	}
}

// checkCipherBackend checks that the configured cipher can run.
func checkCipherBackend(cfg *configs.Config) CheckResult {
	c, err := cipher.FromConfig(cfg)
	if err != nil {
		return CheckResult{
			Name:       "Cipher backend",
			Status:     CheckError,
			Message:    fmt.Sprintf("Invalid cipher configuration: %v", err),
			Suggestion: "Set cipher to \"gpg\" or \"secretbox\" in the config file",
		}
	}

	if g, ok := c.(cipher.GPG); ok {
		if !g.Available() {
			return CheckResult{
				Name:       "Cipher backend",
				Status:     CheckError,
				Message:    "gpg binary not found on PATH",
				Suggestion: "Install GnuPG, or switch cipher to \"secretbox\"",
			}
		}
		return CheckResult{
			Name:    "Cipher backend",
			Status:  CheckPass,
			Message: "gpg binary is available",
		}
	}

	return CheckResult{
		Name:    "Cipher backend",
		Status:  CheckPass,
		Message: "Native secretbox cipher requires no external binary",
	}
}

// checkVaultSetup checks the vault configuration when one is set.
func checkVaultSetup(cfg *configs.Config) CheckResult {
	if !cfg.VaultConfigured() {
		return CheckResult{
			Name:    "Vault setup",
			Status:  CheckPass,
			Message: "No vault configured (passphrase file is the source)",
		}
	}

	if _, err := os.Stat(cfg.Vault.File); os.IsNotExist(err) {
		return CheckResult{
			Name:       "Vault setup",
			Status:     CheckError,
			Message:    fmt.Sprintf("Vault file %s does not exist", cfg.Vault.File),
			Suggestion: "Fix vault.file in the config, or deploy the vault file",
		}
	}
	if _, err := os.Stat(cfg.Vault.PasswordFile); os.IsNotExist(err) {
		return CheckResult{
			Name:       "Vault setup",
			Status:     CheckError,
			Message:    fmt.Sprintf("Vault password file %s does not exist", cfg.Vault.PasswordFile),
			Suggestion: "Fix vault.password_file in the config, or deploy the password file",
		}
	}

	runner := vault.CLIRunner{Binary: cfg.Vault.Binary}
	if !runner.Available() {
		return CheckResult{
			Name:       "Vault setup",
			Status:     CheckError,
			Message:    "ansible-vault binary not found on PATH",
			Suggestion: "Install Ansible, or clear the vault configuration",
		}
	}

	return CheckResult{
		Name:    "Vault setup",
		Status:  CheckPass,
		Message: "Vault file, password file, and ansible-vault are all present",
	}
}

// checkSecretInventory counts the secrets in the store.
func checkSecretInventory(cfg *configs.Config) CheckResult {
	names, err := store.New(cfg).List(nil)
	if err != nil {
		return CheckResult{
			Name:       "Secret inventory",
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to list secrets: %v", err),
			Suggestion: "Run 'credstore init' to create the store",
		}
	}

	if len(names) == 0 {
		return CheckResult{
			Name:    "Secret inventory",
			Status:  CheckWarning,
			Message: "Store contains no secrets",
		}
	}

	return CheckResult{
		Name:    "Secret inventory",
		Status:  CheckPass,
		Message: fmt.Sprintf("Store contains %d secret(s)", len(names)),
	}
}

// calculateDoctorSummary calculates the counts of checks by status.
func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, result := range results {
		switch result.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}
