package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/slip39"
	"github.com/mrz1836/slip39/backup"
	"github.com/mrz1836/slip39/pkg/slip39err"
)

// backupCmd is the parent for bundling and restoring share sets.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Bundle or restore a full SLIP-39 share set",
	Long: `Backup bundles every mnemonic from one generate call into a single
age-scrypt-encrypted file, so a complete share set can be archived off-site
and restored as a unit, or restores a bundle previously written this way.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	backupExportMnemonics []string
	backupExportOut       string
	backupRestoreFile     string
	backupRestoreHex      bool
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Bundle mnemonic shares into an encrypted backup file",
	Long: `Export reassembles a flat list of mnemonic shares back into their
group structure and writes them, encrypted under a password, to a single
backup file.

Group boundaries are taken from each mnemonic's own group index, so
--share flags may be given in any order.`,
	Example: `  slip39 backup export --share "..." --share "..." --out vault-shares`,
	RunE:    runBackupExport,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Decrypt a backup file and print its mnemonic shares",
	Long: `Restore decrypts a backup file written by "backup export" and prints
every mnemonic it contains, grouped as they were originally split.`,
	Example: `  slip39 backup restore --file vault-shares.slip39`,
	RunE:    runBackupRestore,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command and flag registration
func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.GroupID = groupIDShares
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupRestoreCmd)

	backupExportCmd.Flags().StringArrayVar(&backupExportMnemonics, "share", nil,
		"a share mnemonic, space-separated words (repeatable)")
	backupExportCmd.Flags().StringVar(&backupExportOut, "out", "shares",
		"backup file name, written under the configured home directory")

	backupRestoreCmd.Flags().StringVar(&backupRestoreFile, "file", "",
		"path to the backup file to restore")
	backupRestoreCmd.Flags().BoolVar(&backupRestoreHex, "hex", false,
		"also print each mnemonic's raw share value as hex")
}

func runBackupExport(cmd *cobra.Command, _ []string) error {
	cmdCtx := GetCmdContext(cmd)
	w := cmd.OutOrStdout()

	if len(backupExportMnemonics) == 0 {
		return slip39err.New(slip39err.ArgumentError, "at least one --share is required")
	}

	shares := make([]slip39.Share, len(backupExportMnemonics))
	for i, m := range backupExportMnemonics {
		share, err := slip39.ShareFromMnemonic(strings.Fields(m), cmdCtx.Wordlist)
		if err != nil {
			return err
		}
		shares[i] = share
	}

	bundle, err := bundleShares(shares, backupExportMnemonics)
	if err != nil {
		return err
	}

	password, err := promptNewPasswordFn()
	if err != nil {
		return err
	}
	defer zeroBytes(password)

	path, err := backup.WriteFile(cmdCtx.Cfg.GetHome(), backupExportOut, bundle, string(password))
	if err != nil {
		return err
	}

	out(w, "wrote %s\n", path)
	return nil
}

func runBackupRestore(cmd *cobra.Command, _ []string) error {
	cmdCtx := GetCmdContext(cmd)
	w := cmd.OutOrStdout()

	if backupRestoreFile == "" {
		return slip39err.New(slip39err.ArgumentError, "--file is required")
	}

	password, err := promptPasswordFn("Enter backup password: ")
	if err != nil {
		return err
	}
	defer zeroBytes(password)

	bundle, err := backup.ReadFile(backupRestoreFile, string(password))
	if err != nil {
		return err
	}

	out(w, "%s\n", bundle.Manifest.String())
	for gi, group := range bundle.Mnemonics {
		out(w, "group %d:\n", gi+1)
		for _, m := range group {
			out(w, "  %s\n", m)
			if backupRestoreHex {
				share, shareErr := slip39.ShareFromMnemonic(strings.Fields(m), cmdCtx.Wordlist)
				if shareErr != nil {
					return shareErr
				}
				out(w, "    value: %x\n", share.Value)
			}
		}
	}

	return nil
}

// bundleShares groups decoded shares by their group index and assembles a
// backup.Bundle, deriving the manifest from the first share since every
// share in one split carries identical group-level metadata.
func bundleShares(shares []slip39.Share, mnemonics []string) (backup.Bundle, error) {
	if len(shares) == 0 {
		return backup.Bundle{}, slip39err.New(slip39err.ArgumentError, "no shares given")
	}

	first := shares[0]
	groups := make([][]string, first.GroupCount)
	for i, share := range shares {
		if share.Identifier != first.Identifier {
			return backup.Bundle{}, slip39err.New(slip39err.ArgumentError,
				"share %d belongs to a different split (identifier %d, expected %d)",
				i, share.Identifier, first.Identifier)
		}
		groups[share.GroupIndex] = append(groups[share.GroupIndex], mnemonics[i])
	}

	return backup.Bundle{
		Manifest: backup.Manifest{
			Identifier:     first.Identifier,
			GroupThreshold: int(first.GroupThreshold),
			GroupCount:     int(first.GroupCount),
			CreatedAtUnix:  time.Now().Unix(),
		},
		Mnemonics: groups,
	}, nil
}
