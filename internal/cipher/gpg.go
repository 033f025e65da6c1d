package cipher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	kerrors "github.com/credstore-io/credstore/internal/errors"
)

// GPG implements Cipher by invoking the gpg binary in batch mode. The
// passphrase is delivered over an inherited pipe (fd 3), never on the
// command line where other processes could read it.
type GPG struct {
	// Binary is the gpg executable name or path. Empty means "gpg".
	Binary string
}

func (g GPG) Encrypt(ctx context.Context, plaintext, passphrase []byte) ([]byte, error) {
	return g.run(ctx, plaintext, passphrase,
		"--symmetric", "--cipher-algo", "AES256", "--output", "-")
}

func (g GPG) Decrypt(ctx context.Context, ciphertext, passphrase []byte) ([]byte, error) {
	return g.run(ctx, ciphertext, passphrase, "--decrypt")
}

func (g GPG) run(ctx context.Context, input, passphrase []byte, args ...string) ([]byte, error) {
	binary := g.Binary
	if binary == "" {
		binary = "gpg"
	}

	// The read end of this pipe becomes fd 3 in the child via ExtraFiles.
	passphraseReader, passphraseWriter, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create passphrase pipe: %w", err)
	}
	defer passphraseReader.Close()

	// GnuPG 2.1+ only honors --passphrase-fd with loopback pinentry.
	gpgArgs := append([]string{"--batch", "--quiet", "--yes", "--pinentry-mode", "loopback", "--passphrase-fd", "3"}, args...)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, gpgArgs...)
	cmd.Stdin = bytes.NewReader(input)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.ExtraFiles = []*os.File{passphraseReader}

	if err := cmd.Start(); err != nil {
		passphraseWriter.Close()
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s not found in PATH", kerrors.ErrCipherUnavailable, binary)
		}
		return nil, fmt.Errorf("failed to start %s: %w", binary, err)
	}

	_, writeErr := passphraseWriter.Write(passphrase)
	passphraseWriter.Close()

	if err := cmd.Wait(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return nil, fmt.Errorf("%s: %s", binary, detail)
	}
	if writeErr != nil {
		return nil, fmt.Errorf("failed to deliver passphrase to %s: %w", binary, writeErr)
	}

	return stdout.Bytes(), nil
}

// Available reports whether the gpg binary can be found.
func (g GPG) Available() bool {
	binary := g.Binary
	if binary == "" {
		binary = "gpg"
	}
	_, err := exec.LookPath(binary)
	return err == nil
}
