// Package workflows provides high-level orchestration for credstore commands.
//
// Workflows coordinate multiple operations across packages (store, cipher,
// vault, audit) to implement complete user-facing features. Each workflow
// handles a single command's business logic, independent of CLI concerns
// like flag parsing, spinners, and output formatting.
//
// # Design Philosophy
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// Workflows handle everything else:
//   - Validating the secret name and store state
//   - Resolving the passphrase source (vault or passphrase file)
//   - Performing the core operation through the Cipher interface
//   - Recording audit trail entries for administrative operations
//
// Every workflow takes the resolved configuration explicitly; nothing reads
// ambient global state, so tests can point workflows at temporary stores.
// Interactive input goes through an injected terminal.Prompter.
//
// # Available Workflows
//
//   - Get: decrypts one secret and returns the plaintext
//   - Put: encrypts one secret from prompted or supplied plaintext
//   - List: enumerates secret names, optionally filtered by glob patterns
//   - Remove: deletes one ciphertext file
//   - Init: creates the store directory and passphrase file
//   - Rotate: re-encrypts every secret under a new passphrase
//   - Doctor: runs environment health checks
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching. Use errors.Is() to check for specific error conditions:
//
//	result, err := workflows.Get(ctx, cfg, opts)
//	if errors.Is(err, kerrors.ErrSecretNotFound) {
//	    // Show user-friendly message
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Cancellation propagates into the gpg and ansible-vault subprocesses.
package workflows
