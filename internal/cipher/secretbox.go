package cipher

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

// Secretbox implements Cipher natively with NaCl secretbox and an
// scrypt-derived key. It exists for hosts without gpg and for tests.
//
// Ciphertext layout: magic || salt (16) || nonce (24) || sealed payload.
type Secretbox struct{}

var secretboxMagic = []byte("CSBX1")

const (
	saltSize  = 16
	nonceSize = 24

	// scrypt parameters, interactive-strength.
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

func (Secretbox) Encrypt(ctx context.Context, plaintext, passphrase []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var salt [saltSize]byte
	if _, err := io.ReadFull(rand.Reader, salt[:]); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := deriveKey(passphrase, salt[:])
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, len(secretboxMagic)+saltSize+nonceSize+len(plaintext)+secretbox.Overhead)
	out = append(out, secretboxMagic...)
	out = append(out, salt[:]...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plaintext, &nonce, key), nil
}

func (Secretbox) Decrypt(ctx context.Context, ciphertext, passphrase []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	header := len(secretboxMagic) + saltSize + nonceSize
	if len(ciphertext) < header+secretbox.Overhead {
		return nil, fmt.Errorf("ciphertext too short")
	}
	if string(ciphertext[:len(secretboxMagic)]) != string(secretboxMagic) {
		return nil, fmt.Errorf("not a secretbox ciphertext")
	}

	salt := ciphertext[len(secretboxMagic) : len(secretboxMagic)+saltSize]
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	copy(nonce[:], ciphertext[len(secretboxMagic)+saltSize:header])

	plaintext, ok := secretbox.Open(nil, ciphertext[header:], &nonce, key)
	if !ok {
		return nil, fmt.Errorf("decryption failed (wrong passphrase or corrupt data)")
	}
	return plaintext, nil
}

func deriveKey(passphrase, salt []byte) (*[32]byte, error) {
	derived, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, 32)
	if err != nil {
		return nil, fmt.Errorf("key derivation failed: %w", err)
	}
	var key [32]byte
	copy(key[:], derived)
	return &key, nil
}
