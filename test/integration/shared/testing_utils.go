// Package shared contains testing utilities used by the integration tests.
// It seeds throwaway stores, points the CLI at them through CREDSTORE_*
// environment variables, and captures command output.
package shared

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/credstore-io/credstore/cmd"
)

// SetupStore creates a temp store directory with a passphrase file and points
// the CLI at it via environment variables. The native cipher keeps the tests
// independent of a gpg installation.
func SetupStore(t *testing.T, passphrase string) string {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "credstore-integration-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	if err := os.WriteFile(filepath.Join(tmpDir, ".gpg_passphrase"), []byte(passphrase+"\n"), 0640); err != nil {
		t.Fatalf("Failed to write passphrase file: %v", err)
	}

	t.Setenv("CREDSTORE_STORE_DIR", tmpDir)
	t.Setenv("CREDSTORE_CIPHER", "secretbox")

	return tmpDir
}

// RunCommand executes the CLI with the given arguments and returns the
// combined stdout and stderr.
func RunCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd.ResetGlobalState()
	root := cmd.GetRootCmd()
	root.SetArgs(args)

	return CaptureOutput(root.Execute)
}

// RunCommandWithStdin executes the CLI with stdin replaced by the given input.
func RunCommandWithStdin(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create stdin pipe: %v", err)
	}
	originalStdin := os.Stdin
	os.Stdin = reader
	defer func() { os.Stdin = originalStdin }()

	go func() {
		_, _ = writer.Write([]byte(stdin))
		writer.Close()
	}()

	return RunCommand(t, args...)
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to copy stdout: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to copy stderr: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}
