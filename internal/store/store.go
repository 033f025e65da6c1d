package store

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/credstore-io/credstore/internal/configs"
	kerrors "github.com/credstore-io/credstore/internal/errors"
)

// CiphertextSuffix is the fixed suffix of every secret file in the store.
// Runtime scripts on deployed hosts construct paths with this exact suffix,
// so it never varies, not even for the native cipher.
const CiphertextSuffix = "_secret.txt.gpg"

// SecretFileMode grants owner read/write and group read, nothing to others.
const SecretFileMode = 0640

// DirMode is the store directory mode: group members may list and read.
const DirMode = 0750

// nameRegexp accepts filesystem-safe secret names. No separators, no
// leading dot, so a name can never escape the store directory.
var nameRegexp = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Store provides access to one secret store directory.
type Store struct {
	// Dir is the store directory.
	Dir string

	// Owner and Group, when non-empty, name the identity written files are
	// chowned to. Requires the caller to run with sufficient privilege.
	Owner string
	Group string
}

// New builds a Store from the resolved configuration.
func New(cfg *configs.Config) *Store {
	return &Store{
		Dir:   cfg.StoreDir,
		Owner: cfg.Owner,
		Group: cfg.Group,
	}
}

// ValidateName checks that a secret name is non-empty and filesystem-safe.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", kerrors.ErrInvalidSecretName)
	}
	if !nameRegexp.MatchString(name) {
		return fmt.Errorf("%w: %q (allowed: letters, digits, '.', '_', '-')", kerrors.ErrInvalidSecretName, name)
	}
	return nil
}

// SecretPath returns the ciphertext file path for a secret name.
func (s *Store) SecretPath(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, name+CiphertextSuffix), nil
}

// Initialized reports whether the store directory exists.
func (s *Store) Initialized() bool {
	info, err := os.Stat(s.Dir)
	return err == nil && info.IsDir()
}

// Init creates the store directory with restrictive permissions and applies
// the configured ownership.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.Dir, DirMode); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	// MkdirAll does not tighten an existing directory.
	if err := os.Chmod(s.Dir, DirMode); err != nil {
		return fmt.Errorf("failed to set store directory mode: %w", err)
	}
	return s.applyOwnership(s.Dir)
}

// Exists reports whether a ciphertext file exists for the name.
func (s *Store) Exists(name string) (bool, error) {
	path, err := s.SecretPath(name)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ReadCiphertext reads the ciphertext for a secret name.
// Returns ErrSecretNotFound if no file exists.
func (s *Store) ReadCiphertext(name string) ([]byte, error) {
	path, err := s.SecretPath(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, name)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// WriteCiphertext writes the ciphertext for a secret name with restricted
// permissions and configured ownership. The write is staged to a temporary
// file in the same directory and renamed into place, so readers never see a
// partial file. Returns the final path.
func (s *Store) WriteCiphertext(name string, ciphertext []byte) (string, error) {
	path, err := s.SecretPath(name)
	if err != nil {
		return "", err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, ciphertext, SecretFileMode); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	// WriteFile mode is masked by umask; make the bits explicit.
	if err := os.Chmod(tmpPath, SecretFileMode); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to set mode on %s: %w", tmpPath, err)
	}
	if err := s.applyOwnership(tmpPath); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move %s into place: %w", tmpPath, err)
	}

	return path, nil
}

// Remove deletes the ciphertext file for a secret name.
// Returns ErrSecretNotFound if no file exists.
func (s *Store) Remove(name string) error {
	path, err := s.SecretPath(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", kerrors.ErrSecretNotFound, name)
		}
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// List returns the secret names in the store, sorted. When patterns are
// given, only names matching at least one pattern are returned. Patterns
// use glob syntax (including '**' and '{a,b}' alternates).
func (s *Store) List(patterns []string) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", kerrors.ErrStoreNotInitialized, s.Dir)
		}
		return nil, fmt.Errorf("failed to read store directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := NameFromFile(entry.Name())
		if !ok {
			continue
		}
		matched, err := matchesAny(name, patterns)
		if err != nil {
			return nil, err
		}
		if matched {
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names, nil
}

// ReadPassphraseFile reads the shared passphrase from a file, trimming the
// trailing newline editors and deployment templates leave behind.
// Returns ErrPassphraseNotFound if the file is missing or unreadable.
func ReadPassphraseFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrPassphraseNotFound, path)
	}
	passphrase := strings.TrimRight(string(data), "\r\n")
	if passphrase == "" {
		return nil, fmt.Errorf("%w: %s is empty", kerrors.ErrPassphraseNotFound, path)
	}
	return []byte(passphrase), nil
}

// WritePassphraseFile writes the shared passphrase with restricted
// permissions and configured ownership.
func (s *Store) WritePassphraseFile(path string, passphrase []byte) error {
	data := append(append([]byte(nil), passphrase...), '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, SecretFileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, SecretFileMode); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set mode on %s: %w", tmpPath, err)
	}
	if err := s.applyOwnership(tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move %s into place: %w", tmpPath, err)
	}
	return nil
}

// NameFromFile extracts the secret name from a store filename.
// Returns false for files that are not ciphertext files.
func NameFromFile(filename string) (string, bool) {
	if !strings.HasSuffix(filename, CiphertextSuffix) {
		return "", false
	}
	name := strings.TrimSuffix(filename, CiphertextSuffix)
	if ValidateName(name) != nil {
		return "", false
	}
	return name, true
}

func matchesAny(name string, patterns []string) (bool, error) {
	if len(patterns) == 0 {
		return true, nil
	}
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// applyOwnership chowns path to the configured owner/group, if any.
func (s *Store) applyOwnership(path string) error {
	if s.Owner == "" && s.Group == "" {
		return nil
	}

	uid, gid := -1, -1

	if s.Owner != "" {
		u, err := user.Lookup(s.Owner)
		if err != nil {
			return fmt.Errorf("failed to look up owner %q: %w", s.Owner, err)
		}
		parsed, err := strconv.Atoi(u.Uid)
		if err != nil {
			return fmt.Errorf("non-numeric uid %q for owner %q", u.Uid, s.Owner)
		}
		uid = parsed
	}

	if s.Group != "" {
		g, err := user.LookupGroup(s.Group)
		if err != nil {
			return fmt.Errorf("failed to look up group %q: %w", s.Group, err)
		}
		parsed, err := strconv.Atoi(g.Gid)
		if err != nil {
			return fmt.Errorf("non-numeric gid %q for group %q", g.Gid, s.Group)
		}
		gid = parsed
	}

	if err := os.Chown(path, uid, gid); err != nil {
		return fmt.Errorf("failed to chown %s to %s:%s: %w", path, s.Owner, s.Group, err)
	}
	return nil
}
