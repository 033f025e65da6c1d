package terminal

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter abstracts interactive input so workflows can be tested with
// canned responses instead of a real terminal.
type Prompter interface {
	// ReadLine prompts for a single line of echoed input.
	ReadLine(prompt string) (string, error)

	// ReadSecret prompts for a line of input without echoing it.
	ReadSecret(prompt string) ([]byte, error)

	// Confirm asks a yes/no question and returns the answer.
	// An empty response returns def.
	Confirm(prompt string, def bool) (bool, error)
}

// TTY is a Prompter backed by the controlling terminal. Prompts are written
// to stderr so stdout stays clean for captured output.
type TTY struct{}

func (TTY) ReadLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (TTY) ReadSecret(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read secret: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	return secret, nil
}

func (t TTY) Confirm(prompt string, def bool) (bool, error) {
	suffix := " [y/N] "
	if def {
		suffix = " [Y/n] "
	}

	answer, err := t.ReadLine(prompt + suffix)
	if err != nil {
		return false, err
	}

	return ParseConfirmation(answer, def), nil
}

// ParseConfirmation interprets a yes/no answer. Empty input returns def;
// anything other than a y/yes variant is treated as no.
func ParseConfirmation(answer string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
