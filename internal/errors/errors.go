package errors

import "errors"

// Store errors indicate a problem locating secrets or the store itself.
var (
	// ErrSecretNotFound indicates no ciphertext file exists for the requested name.
	ErrSecretNotFound = errors.New("secret not found")

	// ErrSecretExists indicates a ciphertext file already exists for the name.
	ErrSecretExists = errors.New("secret already exists")

	// ErrStoreNotInitialized indicates the store directory does not exist.
	ErrStoreNotInitialized = errors.New("secret store has not been initialized")

	// ErrInvalidSecretName indicates the secret name is empty or not filesystem-safe.
	ErrInvalidSecretName = errors.New("invalid secret name")
)

// Cryptographic errors indicate failures in the underlying cipher tool.
var (
	// ErrEncryptFailed indicates the cipher could not produce ciphertext.
	ErrEncryptFailed = errors.New("failed to encrypt secret")

	// ErrDecryptFailed indicates the cipher could not recover the plaintext.
	// Wrong passphrase and corrupt ciphertext both surface as this error.
	ErrDecryptFailed = errors.New("failed to decrypt secret")

	// ErrCipherUnavailable indicates the external cipher binary could not be found.
	ErrCipherUnavailable = errors.New("cipher tool not available")
)

// Configuration errors indicate a required supporting file is missing or unusable.
var (
	// ErrPassphraseNotFound indicates the shared passphrase file is missing or unreadable.
	ErrPassphraseNotFound = errors.New("passphrase file not found")

	// ErrVaultNotFound indicates the configured vault file does not exist.
	ErrVaultNotFound = errors.New("vault file not found")

	// ErrVaultPasswordNotFound indicates the vault password file does not exist.
	ErrVaultPasswordNotFound = errors.New("vault password file not found")

	// ErrVaultKeyMissing indicates the vault decrypted but the passphrase field is absent or empty.
	ErrVaultKeyMissing = errors.New("passphrase field not found in vault")

	// ErrVaultUnavailable indicates the vault tool could not be found or executed.
	ErrVaultUnavailable = errors.New("vault tool not available")
)

// Input errors indicate the caller supplied unusable values.
var (
	// ErrEmptyValue indicates an empty plaintext was supplied for encryption.
	ErrEmptyValue = errors.New("secret value is empty")

	// ErrAborted indicates the user declined a confirmation prompt.
	ErrAborted = errors.New("operation aborted")
)
