// Package cipher provides the symmetric encryption capability for credstore.
//
// All encryption and decryption goes through the Cipher interface with two
// operations: seal plaintext under a passphrase, and open ciphertext with
// the same passphrase. No cryptography is designed here; both
// implementations delegate to mature primitives.
//
// # Implementations
//
//   - GPG: shells out to the gpg binary in batch mode. This matches the
//     deployed format, where secret files are standard OpenPGP symmetric
//     ciphertext that any gpg installation can decrypt. The passphrase is
//     passed over a pipe on fd 3, never via argv or the environment.
//
//   - Secretbox: NaCl secretbox with an scrypt-derived key. A native
//     fallback for hosts without gpg, and what the test suites use so they
//     do not depend on an installed binary.
//
// The store's on-disk layout is identical for both; the ciphertext file
// suffix is contractual and does not vary with the cipher.
//
// # Errors
//
// A missing external binary surfaces as ErrCipherUnavailable so callers can
// distinguish "tool not installed" from "wrong passphrase". All other
// failures are plain errors; workflows wrap them with ErrEncryptFailed or
// ErrDecryptFailed.
package cipher
