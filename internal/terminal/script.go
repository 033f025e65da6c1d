package terminal

import "fmt"

// Script is a Prompter that replays canned responses in order. It exists for
// tests and for driving workflows non-interactively.
type Script struct {
	// Lines are consumed by ReadLine and Confirm calls.
	Lines []string

	// Secrets are consumed by ReadSecret calls.
	Secrets []string

	lineIndex   int
	secretIndex int
}

func (s *Script) ReadLine(prompt string) (string, error) {
	if s.lineIndex >= len(s.Lines) {
		return "", fmt.Errorf("no scripted response for prompt %q", prompt)
	}
	line := s.Lines[s.lineIndex]
	s.lineIndex++
	return line, nil
}

func (s *Script) ReadSecret(prompt string) ([]byte, error) {
	if s.secretIndex >= len(s.Secrets) {
		return nil, fmt.Errorf("no scripted secret for prompt %q", prompt)
	}
	secret := s.Secrets[s.secretIndex]
	s.secretIndex++
	return []byte(secret), nil
}

func (s *Script) Confirm(prompt string, def bool) (bool, error) {
	answer, err := s.ReadLine(prompt)
	if err != nil {
		return false, err
	}
	return ParseConfirmation(answer, def), nil
}
