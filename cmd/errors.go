package cmd

import (
	"errors"

	kerrors "github.com/credstore-io/credstore/internal/errors"
	"github.com/credstore-io/credstore/internal/ui"
)

// cliError carries a pre-formatted, user-facing message. main prints it
// verbatim and exits 1.
type cliError struct {
	message string
	cause   error
}

func (e *cliError) Error() string { return e.message }
func (e *cliError) Unwrap() error { return e.cause }

// failure wraps an error in the house style: a red cross, the explanation,
// and (when we have one) a cyan hint on the next line.
func failure(cause error, message, hint string) error {
	formatted := ui.Error.Sprint("✗") + " " + message
	if hint != "" {
		formatted += "\n" + ui.Info.Sprint("→") + " " + hint
	}
	return &cliError{message: formatted, cause: cause}
}

// describeFailure maps workflow errors to user-facing messages and hints.
func describeFailure(err error) error {
	switch {
	case errors.Is(err, kerrors.ErrStoreNotInitialized):
		return failure(err, "The credential store has not been initialized",
			"Run "+ui.Code.Sprint("credstore init")+" first")

	case errors.Is(err, kerrors.ErrSecretNotFound):
		return failure(err, err.Error(),
			"Run "+ui.Code.Sprint("credstore list")+" to see available secrets")

	case errors.Is(err, kerrors.ErrSecretExists):
		return failure(err, err.Error(),
			"Pass "+ui.Code.Sprint("--force")+" to overwrite without confirmation")

	case errors.Is(err, kerrors.ErrInvalidSecretName):
		return failure(err, err.Error(), "")

	case errors.Is(err, kerrors.ErrPassphraseNotFound):
		return failure(err, err.Error(),
			"Run "+ui.Code.Sprint("credstore init")+" to write the shared passphrase")

	case errors.Is(err, kerrors.ErrCipherUnavailable):
		return failure(err, err.Error(),
			"Install GnuPG, or set cipher to "+ui.Code.Sprint("secretbox")+" in the config")

	case errors.Is(err, kerrors.ErrDecryptFailed):
		return failure(err, err.Error(),
			"The passphrase file may be stale; check the vault and re-run "+ui.Code.Sprint("credstore rotate"))

	case errors.Is(err, kerrors.ErrEncryptFailed):
		return failure(err, err.Error(), "")

	case errors.Is(err, kerrors.ErrVaultNotFound),
		errors.Is(err, kerrors.ErrVaultPasswordNotFound),
		errors.Is(err, kerrors.ErrVaultKeyMissing),
		errors.Is(err, kerrors.ErrVaultUnavailable):
		return failure(err, err.Error(),
			"Run "+ui.Code.Sprint("credstore doctor")+" to check the vault configuration")

	case errors.Is(err, kerrors.ErrEmptyValue):
		return failure(err, err.Error(), "")

	case errors.Is(err, kerrors.ErrAborted):
		return failure(err, err.Error(), "")

	default:
		return failure(err, err.Error(), "")
	}
}
