// Package errors provides typed error values for the credstore application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors map to the four failure kinds of the tool:
//
//   - Store errors: a secret or the store itself is missing (ErrSecretNotFound)
//   - Crypto errors: the cipher tool failed (ErrDecryptFailed, ErrEncryptFailed)
//   - Configuration errors: a supporting file is missing (ErrPassphraseNotFound, ErrVaultNotFound)
//   - Input errors: unusable caller input (ErrEmptyValue, ErrAborted)
//
// Usage errors (wrong argument count) are handled by cobra argument validation
// in the CLI layer and never reach these sentinels.
//
// # Usage
//
// Return errors from internal packages:
//
//	if !exists {
//	    return nil, kerrors.ErrSecretNotFound
//	}
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.Get(ctx, cfg, opts)
//	if errors.Is(err, kerrors.ErrSecretNotFound) {
//	    // Show user-friendly message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: %v", kerrors.ErrDecryptFailed, err)
package errors
