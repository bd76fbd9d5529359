package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/slip39"
	"github.com/mrz1836/slip39/pkg/slip39err"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	recoverMnemonics    []string
	recoverWithPassword bool
	recoverHex          bool
)

// recoverCmd recombines a qualifying set of SLIP-39 mnemonics into the
// original master secret.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Recover a secret from its SLIP-39 mnemonic shares",
	Long: `Recover combines a quorum of SLIP-39 mnemonic shares back into the
original master secret.

Shares can be supplied with repeated --share flags, or interactively one
line at a time if no --share flag is given.`,
	Example: `  slip39 recover --share "shield academic acid ..." --share "shield academic agency ..."
  slip39 recover`,
	RunE: runRecover,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(recoverCmd)
	recoverCmd.GroupID = groupIDShares

	recoverCmd.Flags().StringArrayVar(&recoverMnemonics, "share", nil,
		"a share mnemonic, space-separated words (repeatable)")
	recoverCmd.Flags().BoolVar(&recoverWithPassword, "passphrase", false,
		"prompt for the SLIP-39 passphrase used when the shares were generated")
	recoverCmd.Flags().BoolVar(&recoverHex, "hex", false,
		"print the recovered secret as hex instead of raw bytes")
}

func runRecover(cmd *cobra.Command, _ []string) error {
	cmdCtx := GetCmdContext(cmd)
	w := cmd.OutOrStdout()

	mnemonics := recoverMnemonics
	if len(mnemonics) == 0 {
		collected, err := collectMnemonicsInteractively()
		if err != nil {
			return err
		}
		mnemonics = collected
	}

	words := make([][]string, len(mnemonics))
	for i, m := range mnemonics {
		words[i] = strings.Fields(m)
	}

	passphrase, err := resolvePassphrase(recoverWithPassword)
	if err != nil {
		return err
	}

	secret, err := slip39.CombineMnemonicsSecure(words, passphrase, cmdCtx.Wordlist)
	if err != nil {
		return err
	}
	defer secret.Destroy()

	if recoverHex {
		out(w, "%x\n", secret.Bytes())
	} else {
		_, writeErr := w.Write(secret.Bytes())
		if writeErr != nil {
			return writeErr
		}
		outln(w)
	}

	return nil
}

// collectMnemonicsInteractively prompts for share mnemonics one at a time
// until the user enters a blank line.
func collectMnemonicsInteractively() ([]string, error) {
	outln(os.Stderr, "Enter each share mnemonic on its own line.")

	var mnemonics []string
	for {
		line, err := promptMnemonicFn("Enter share (blank line to finish): ")
		if err != nil {
			return nil, err
		}
		if line == "" {
			break
		}
		mnemonics = append(mnemonics, line)
	}

	if len(mnemonics) == 0 {
		return nil, slip39err.New(slip39err.ArgumentError, "no shares were entered")
	}

	return mnemonics, nil
}
