// Package terminal provides interactive prompting for credstore commands.
//
// Workflows that need user input depend on the Prompter interface rather
// than reading the terminal directly. The TTY implementation reads from
// stdin (hidden input via golang.org/x/term for secrets); the Script
// implementation replays canned responses for tests.
//
// Prompts are written to stderr so that stdout carries only command output,
// which matters for callers capturing a decrypted value with command
// substitution.
package terminal
