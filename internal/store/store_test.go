package store

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	kerrors "github.com/credstore-io/credstore/internal/errors"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "credstore-store-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	return &Store{Dir: tmpDir}
}

func TestValidateName(t *testing.T) {
	valid := []string{"db_test", "ldap.bind", "a", "A-1", "oud_user", "x_9.z-w"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", ".hidden", "../escape", "a/b", "a b", "a\x00b", "-leading", "a:b"}
	for _, name := range invalid {
		err := ValidateName(name)
		if err == nil {
			t.Errorf("ValidateName(%q) = nil, want error", name)
			continue
		}
		if !errors.Is(err, kerrors.ErrInvalidSecretName) {
			t.Errorf("ValidateName(%q): expected ErrInvalidSecretName, got %v", name, err)
		}
	}
}

func TestSecretPath(t *testing.T) {
	s := &Store{Dir: "/opt/credential_store"}

	path, err := s.SecretPath("db_test")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	want := filepath.Join("/opt/credential_store", "db_test_secret.txt.gpg")
	if path != want {
		t.Errorf("Expected %s, got %s", want, path)
	}

	if _, err := s.SecretPath("../etc/passwd"); err == nil {
		t.Errorf("Expected error for traversal name")
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := tempStore(t)

	ciphertext := []byte("opaque bytes")
	path, err := s.WriteCiphertext("db_test", ciphertext)
	if err != nil {
		t.Fatalf("WriteCiphertext failed: %v", err)
	}

	// No leftover temp file.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("Temp file left behind")
	}

	data, err := s.ReadCiphertext("db_test")
	if err != nil {
		t.Fatalf("ReadCiphertext failed: %v", err)
	}
	if string(data) != string(ciphertext) {
		t.Errorf("Round trip mismatch: got %q", data)
	}

	exists, err := s.Exists("db_test")
	if err != nil || !exists {
		t.Errorf("Expected secret to exist (err: %v)", err)
	}
}

func TestWriteCiphertextPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission bits not meaningful on Windows")
	}

	s := tempStore(t)
	path, err := s.WriteCiphertext("db_test", []byte("opaque"))
	if err != nil {
		t.Fatalf("WriteCiphertext failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat secret file: %v", err)
	}
	if info.Mode().Perm() != SecretFileMode {
		t.Errorf("Expected mode %o, got %o", SecretFileMode, info.Mode().Perm())
	}
}

func TestReadCiphertextNotFound(t *testing.T) {
	s := tempStore(t)

	_, err := s.ReadCiphertext("missing_secret")
	if err == nil {
		t.Fatalf("Expected error for missing secret")
	}
	if !errors.Is(err, kerrors.ErrSecretNotFound) {
		t.Errorf("Expected ErrSecretNotFound, got: %v", err)
	}
}

func TestRemove(t *testing.T) {
	s := tempStore(t)

	if _, err := s.WriteCiphertext("db_test", []byte("opaque")); err != nil {
		t.Fatalf("WriteCiphertext failed: %v", err)
	}
	if err := s.Remove("db_test"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	err := s.Remove("db_test")
	if !errors.Is(err, kerrors.ErrSecretNotFound) {
		t.Errorf("Expected ErrSecretNotFound on second remove, got: %v", err)
	}
}

func TestList(t *testing.T) {
	s := tempStore(t)

	for _, name := range []string{"db_test", "db_prod", "ldap_bind"} {
		if _, err := s.WriteCiphertext(name, []byte("opaque")); err != nil {
			t.Fatalf("WriteCiphertext failed: %v", err)
		}
	}
	// Files that are not ciphertext files are ignored.
	if err := os.WriteFile(filepath.Join(s.Dir, ".gpg_passphrase"), []byte("p\n"), 0640); err != nil {
		t.Fatalf("Failed to write passphrase file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, "README"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write stray file: %v", err)
	}

	names, err := s.List(nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"db_prod", "db_test", "ldap_bind"}
	if len(names) != len(want) {
		t.Fatalf("Expected %d names, got %d: %v", len(want), len(names), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected names[%d]=%s, got %s", i, want[i], names[i])
		}
	}

	filtered, err := s.List([]string{"db_*"})
	if err != nil {
		t.Fatalf("List with pattern failed: %v", err)
	}
	if len(filtered) != 2 {
		t.Errorf("Expected 2 names for db_*, got %v", filtered)
	}

	if _, err := s.List([]string{"[bad"}); err == nil {
		t.Errorf("Expected error for malformed pattern")
	}
}

func TestListUninitializedStore(t *testing.T) {
	s := &Store{Dir: filepath.Join(os.TempDir(), "credstore-does-not-exist")}

	_, err := s.List(nil)
	if !errors.Is(err, kerrors.ErrStoreNotInitialized) {
		t.Errorf("Expected ErrStoreNotInitialized, got: %v", err)
	}
}

func TestReadPassphraseFile(t *testing.T) {
	s := tempStore(t)
	path := filepath.Join(s.Dir, ".gpg_passphrase")

	if err := os.WriteFile(path, []byte("correct-horse\n"), 0640); err != nil {
		t.Fatalf("Failed to write passphrase file: %v", err)
	}

	passphrase, err := ReadPassphraseFile(path)
	if err != nil {
		t.Fatalf("ReadPassphraseFile failed: %v", err)
	}
	if string(passphrase) != "correct-horse" {
		t.Errorf("Expected trailing newline trimmed, got %q", passphrase)
	}
}

func TestReadPassphraseFileMissing(t *testing.T) {
	s := tempStore(t)

	_, err := ReadPassphraseFile(filepath.Join(s.Dir, ".gpg_passphrase"))
	if !errors.Is(err, kerrors.ErrPassphraseNotFound) {
		t.Errorf("Expected ErrPassphraseNotFound, got: %v", err)
	}
}

func TestReadPassphraseFileEmpty(t *testing.T) {
	s := tempStore(t)
	path := filepath.Join(s.Dir, ".gpg_passphrase")

	if err := os.WriteFile(path, []byte("\n"), 0640); err != nil {
		t.Fatalf("Failed to write passphrase file: %v", err)
	}

	_, err := ReadPassphraseFile(path)
	if !errors.Is(err, kerrors.ErrPassphraseNotFound) {
		t.Errorf("Expected ErrPassphraseNotFound for empty file, got: %v", err)
	}
}

func TestWritePassphraseFile(t *testing.T) {
	s := tempStore(t)
	path := filepath.Join(s.Dir, ".gpg_passphrase")

	if err := s.WritePassphraseFile(path, []byte("correct-horse")); err != nil {
		t.Fatalf("WritePassphraseFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read passphrase file: %v", err)
	}
	if string(data) != "correct-horse\n" {
		t.Errorf("Expected newline-terminated passphrase, got %q", data)
	}

	passphrase, err := ReadPassphraseFile(path)
	if err != nil || string(passphrase) != "correct-horse" {
		t.Errorf("Round trip mismatch: %q (err: %v)", passphrase, err)
	}
}

func TestNameFromFile(t *testing.T) {
	tests := []struct {
		filename string
		wantName string
		wantOK   bool
	}{
		{"db_test_secret.txt.gpg", "db_test", true},
		{"ldap.bind_secret.txt.gpg", "ldap.bind", true},
		{".gpg_passphrase", "", false},
		{"README", "", false},
		{"_secret.txt.gpg", "", false},
		{"db_test_secret.txt.gpg.tmp", "", false},
	}

	for _, tt := range tests {
		name, ok := NameFromFile(tt.filename)
		if name != tt.wantName || ok != tt.wantOK {
			t.Errorf("NameFromFile(%q) = (%q, %t), want (%q, %t)", tt.filename, name, ok, tt.wantName, tt.wantOK)
		}
	}
}

func TestInit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission bits not meaningful on Windows")
	}

	tmpDir, err := os.MkdirTemp("", "credstore-store-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	s := &Store{Dir: filepath.Join(tmpDir, "credential_store")}
	if s.Initialized() {
		t.Fatalf("Expected store to be uninitialized")
	}

	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !s.Initialized() {
		t.Fatalf("Expected store to be initialized")
	}

	info, err := os.Stat(s.Dir)
	if err != nil {
		t.Fatalf("Failed to stat store dir: %v", err)
	}
	if info.Mode().Perm() != DirMode {
		t.Errorf("Expected mode %o, got %o", DirMode, info.Mode().Perm())
	}
}
