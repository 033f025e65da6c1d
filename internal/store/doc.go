// Package store manages the on-disk secret store.
//
// A store is a single flat directory holding one ciphertext file per secret
// plus the shared passphrase file:
//
//	/opt/credential_store/
//	├── .gpg_passphrase            shared passphrase, 0640
//	├── db_test_secret.txt.gpg     one encrypted secret
//	└── ldap_bind_secret.txt.gpg
//
// The layout is contractual: runtime scripts on deployed hosts build these
// paths by concatenation, so the directory structure and the
// `_secret.txt.gpg` suffix must never change.
//
// Access control is entirely POSIX ownership and permission bits; this
// package applies the configured owner/group and 0640/0750 modes on write
// but enforces nothing at read time, trusting the operating system.
//
// Secret names are validated to a filesystem-safe character set before any
// path is built, so a name can never traverse outside the store directory.
package store
