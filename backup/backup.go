// Package backup bundles every mnemonic produced by one GenerateMnemonics
// call into a single age-scrypt-encrypted file, so a full share set can be
// stored off-site and restored as a unit.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"filippo.io/age"

	"github.com/mrz1836/slip39/internal/fileutil"
	"github.com/mrz1836/slip39/pkg/slip39err"
)

const (
	// FileExtension is the extension backup files are written with.
	FileExtension = ".slip39"

	// DirPermissions is the permission mode for the backup directory.
	DirPermissions = 0o750

	// FilePermissions is the permission mode for backup files.
	FilePermissions = 0o600
)

// Manifest describes the shape of a bundled share set, without any secret
// material.
type Manifest struct {
	Identifier     uint16 `json:"identifier"`
	GroupThreshold int    `json:"group_threshold"`
	GroupCount     int    `json:"group_count"`
	CreatedAtUnix  int64  `json:"created_at_unix"`
}

// Bundle is every group's mnemonics from one GenerateMnemonics call, keyed
// by group index, plus its manifest.
type Bundle struct {
	Manifest  Manifest   `json:"manifest"`
	Mnemonics [][]string `json:"mnemonics"` // mnemonics[group][member]
}

// Encrypt serializes bundle as JSON and encrypts it with an age scrypt
// recipient under passphrase.
func Encrypt(bundle Bundle, passphrase string) ([]byte, error) {
	plaintext, err := json.Marshal(bundle)
	if err != nil {
		return nil, slip39err.Wrap(slip39err.ValueError, err, "serializing backup bundle")
	}

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, slip39err.Wrap(slip39err.ValueError, err, "building backup recipient")
	}

	buf := &bytes.Buffer{}
	w, err := age.Encrypt(buf, recipient)
	if err != nil {
		return nil, slip39err.Wrap(slip39err.ValueError, err, "opening backup encryption stream")
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, slip39err.Wrap(slip39err.ValueError, err, "writing backup plaintext")
	}
	if err := w.Close(); err != nil {
		return nil, slip39err.Wrap(slip39err.ValueError, err, "closing backup encryption stream")
	}

	return buf.Bytes(), nil
}

// Decrypt reverses Encrypt.
func Decrypt(ciphertext []byte, passphrase string) (Bundle, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return Bundle{}, slip39err.Wrap(slip39err.ValueError, err, "building backup identity")
	}

	r, err := age.Decrypt(bytes.NewReader(ciphertext), identity)
	if err != nil {
		return Bundle{}, slip39err.Wrap(slip39err.ValueError, err, "decrypting backup")
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return Bundle{}, slip39err.Wrap(slip39err.ValueError, err, "reading decrypted backup")
	}

	var bundle Bundle
	if err := json.Unmarshal(plaintext, &bundle); err != nil {
		return Bundle{}, slip39err.Wrap(slip39err.ValueError, err, "parsing backup bundle")
	}
	return bundle, nil
}

// WriteFile encrypts bundle and writes it to dir, returning the path
// written.
func WriteFile(dir, filename string, bundle Bundle, passphrase string) (string, error) {
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return "", slip39err.Wrap(slip39err.ConfigError, err, "creating backup directory")
	}

	ciphertext, err := Encrypt(bundle, passphrase)
	if err != nil {
		return "", err
	}

	if filepath.Ext(filename) != FileExtension {
		filename += FileExtension
	}
	path := filepath.Join(dir, filename)

	if err := fileutil.WriteAtomic(path, ciphertext, FilePermissions); err != nil {
		return "", slip39err.Wrap(slip39err.ConfigError, err, "writing backup file")
	}
	return path, nil
}

// ReadFile decrypts a backup file written by WriteFile.
func ReadFile(path, passphrase string) (Bundle, error) {
	// #nosec G304 -- path is caller-supplied by design (a CLI restore target)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Bundle{}, slip39err.New(slip39err.ConfigError, "backup file not found: %s", path)
		}
		return Bundle{}, slip39err.Wrap(slip39err.ConfigError, err, "reading backup file")
	}
	return Decrypt(data, passphrase)
}

// Flatten returns a copy of the bundle's mnemonics as one slice per group,
// in group order, each holding that group's space-joined mnemonic strings.
// The groups are not merged into one list and the mnemonics are not split
// into words.
func (b Bundle) Flatten() [][]string {
	var out [][]string
	for _, group := range b.Mnemonics {
		out = append(out, group)
	}
	return out
}

// String renders the manifest for display.
func (m Manifest) String() string {
	return fmt.Sprintf("identifier=%d group_threshold=%d group_count=%d", m.Identifier, m.GroupThreshold, m.GroupCount)
}
