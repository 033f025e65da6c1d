// Package cmd testing utilities shared between command tests. Provides
// helpers for pointing commands at a throwaway store and capturing their
// output.
package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"testing"

	"github.com/credstore-io/credstore/internal/configs"
)

// setupTestStore points the global config at a fresh temp store using the
// native cipher, and restores the previous config afterwards.
func setupTestStore(t *testing.T) *configs.Config {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "credstore-cmd-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	original := cfg
	t.Cleanup(func() {
		cfg = original
		os.RemoveAll(tmpDir)
	})

	// Env overrides cover invocations that go through PersistentPreRunE.
	t.Setenv("CREDSTORE_STORE_DIR", tmpDir)
	t.Setenv("CREDSTORE_CIPHER", "secretbox")

	cfg = configs.Default()
	cfg.StoreDir = tmpDir
	cfg.Cipher = "secretbox"
	return cfg
}

// captureStdout captures only stdout during function execution; stderr goes
// through untouched. Use it to check what a shell substitution would see.
func captureStdout(fn func() error) (string, error) {
	originalStdout := os.Stdout

	stdoutReader, stdoutWriter, _ := os.Pipe()
	os.Stdout = stdoutWriter

	outputChan := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to copy stdout: %s", err)
		}
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	os.Stdout = originalStdout

	return <-outputChan, err
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
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
