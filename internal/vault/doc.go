// Package vault is a thin adapter over ansible-vault.
//
// Administrators keep the shared GPG passphrase inside an Ansible Vault
// file, unlocked by a separate vault password known only to them. This
// package runs `ansible-vault view` and extracts the one recognized field
// from the decrypted YAML; it implements no vault cryptography of its own.
//
// The Runner interface isolates the subprocess call so tests can supply a
// fake that returns canned vault content.
package vault
