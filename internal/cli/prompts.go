package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/mrz1836/slip39/pkg/slip39err"
)

// zeroBytes overwrites data with zeros, used to scrub passwords and
// passphrases from memory once they are no longer needed.
func zeroBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// promptPasswordFn is a function variable so tests can substitute a mock
// implementation without touching the terminal.
//
//nolint:gochecknoglobals // Swappable for testing
var promptPasswordFn = promptPassword

// promptPassword prompts for a password with hidden input.
// The caller is responsible for zeroing the returned bytes after use.
func promptPassword(prompt string) ([]byte, error) {
	out(os.Stderr, "%s", prompt)

	password, err := term.ReadPassword(syscall.Stdin)
	outln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	return password, nil
}

// promptNewPasswordFn is a function variable so tests can substitute a mock
// implementation without touching the terminal.
//
//nolint:gochecknoglobals // Swappable for testing
var promptNewPasswordFn = promptNewPassword

// promptNewPassword prompts for a new backup encryption password with
// confirmation. The caller is responsible for zeroing the returned bytes
// after use.
func promptNewPassword() ([]byte, error) {
	password, err := promptPasswordFn("Enter backup password: ")
	if err != nil {
		return nil, err
	}

	if len(password) < 8 {
		zeroBytes(password)
		return nil, slip39err.New(slip39err.ArgumentError, "password must be at least 8 characters")
	}

	confirm, err := promptPasswordFn("Confirm password: ")
	if err != nil {
		zeroBytes(password)
		return nil, err
	}
	defer zeroBytes(confirm)

	if string(password) != string(confirm) {
		zeroBytes(password)
		return nil, slip39err.New(slip39err.ArgumentError, "passwords do not match")
	}

	return password, nil
}

// promptPassphraseFn is a function variable so tests can substitute a mock
// implementation without touching the terminal.
//
//nolint:gochecknoglobals // Swappable for testing
var promptPassphraseFn = promptPassphrase

// promptPassphrase prompts for the optional SLIP-39 passphrase used to
// encrypt the master secret, with confirmation. An empty passphrase is
// allowed and simply means no extra encryption layer.
func promptPassphrase() (string, error) {
	outln(os.Stderr, "\nSLIP-39 passphrase (optional extra encryption layer):")
	outln(os.Stderr, "If you lose this passphrase, the shares alone cannot recover the secret.")

	passphrase, err := promptPasswordFn("Enter passphrase (leave blank for none): ")
	if err != nil {
		return "", err
	}

	if len(passphrase) == 0 {
		return "", nil
	}

	confirm, err := promptPasswordFn("Confirm passphrase: ")
	if err != nil {
		zeroBytes(passphrase)
		return "", err
	}
	defer zeroBytes(confirm)

	if string(passphrase) != string(confirm) {
		zeroBytes(passphrase)
		return "", slip39err.New(slip39err.ArgumentError, "passphrases do not match")
	}

	result := string(passphrase)
	zeroBytes(passphrase)
	return result, nil
}

// promptConfirmFn is a function variable so tests can substitute a mock
// implementation without touching the terminal.
//
//nolint:gochecknoglobals // Swappable for testing
var promptConfirmFn = promptConfirmation

// promptConfirmation asks the user to confirm a destructive or sensitive
// action.
func promptConfirmation() bool {
	out(os.Stderr, "Proceed? [y/N]: ")

	var response string
	_, err := fmt.Scanln(&response)
	if err != nil {
		return false
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}

// promptMnemonicFn is a function variable so tests can substitute a mock
// implementation without touching the terminal.
//
//nolint:gochecknoglobals // Swappable for testing
var promptMnemonicFn = promptMnemonic

// promptMnemonic reads one share mnemonic from stdin, a line of
// space-separated words.
func promptMnemonic(prompt string) (string, error) {
	out(os.Stderr, "%s", prompt)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", slip39err.Wrap(slip39err.ArgumentError, err, "reading mnemonic")
	}

	return strings.TrimSpace(line), nil
}
