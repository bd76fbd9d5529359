package cli

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/slip39"
	"github.com/mrz1836/slip39/pkg/slip39err"
	"github.com/mrz1836/slip39/secmem"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	generateGroups            []string
	generateGroupThreshold    int
	generateStrengthBits      int
	generateSecretHex         string
	generateIterationExponent int
	generateWithPassphrase    bool
)

// generateCmd splits a master secret into SLIP-39 mnemonic shares.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Split a secret into SLIP-39 mnemonic shares",
	Long: `Generate splits a master secret into one or more groups of mnemonic
shares, recoverable by a quorum of groups, each itself recoverable by a
quorum of its member shares.

With no --group flags, generate produces a single group using the
configured default member threshold and count. A fresh random secret is
generated unless --secret-hex supplies one explicitly.`,
	Example: `  slip39 generate
  slip39 generate --group 2/3 --group-threshold 1
  slip39 generate --group 2/3 --group 3/5 --group-threshold 2
  slip39 generate --secret-hex 0123456789abcdef0123456789abcdef`,
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.GroupID = groupIDShares

	generateCmd.Flags().StringArrayVar(&generateGroups, "group", nil,
		"group shape as threshold/count, e.g. 2/3 (repeatable)")
	generateCmd.Flags().IntVar(&generateGroupThreshold, "group-threshold", 1,
		"number of groups required to recover the secret")
	generateCmd.Flags().IntVar(&generateStrengthBits, "strength", 128,
		"bit strength of a freshly generated secret (multiple of 16, at least 128)")
	generateCmd.Flags().StringVar(&generateSecretHex, "secret-hex", "",
		"hex-encoded master secret to split, instead of generating one")
	generateCmd.Flags().IntVar(&generateIterationExponent, "iteration-exponent", -1,
		"PBKDF2 iteration exponent override (0-31); defaults to the configured value")
	generateCmd.Flags().BoolVar(&generateWithPassphrase, "passphrase", false,
		"prompt for an optional SLIP-39 passphrase")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cmdCtx := GetCmdContext(cmd)
	w := cmd.OutOrStdout()

	groups, err := parseGroupSpecs(generateGroups, cmdCtx.Cfg)
	if err != nil {
		return err
	}
	if generateGroupThreshold > len(groups) || generateGroupThreshold < 1 {
		return slip39err.New(slip39err.ArgumentError,
			"group threshold must be between 1 and %d, got %d", len(groups), generateGroupThreshold)
	}

	iterationExponent := cmdCtx.Cfg.GetSplitter().IterationExponent
	if generateIterationExponent >= 0 {
		iterationExponent = generateIterationExponent
	}

	passphrase, err := resolvePassphrase(generateWithPassphrase)
	if err != nil {
		return err
	}

	var groupShares []slip39.GroupShare
	if generateSecretHex != "" {
		secret, decodeErr := hex.DecodeString(generateSecretHex)
		if decodeErr != nil {
			return slip39err.Wrap(slip39err.ArgumentError, decodeErr, "decoding --secret-hex")
		}
		groupShares, err = slip39.GenerateMnemonics(
			generateGroupThreshold, groups, secret, passphrase, byte(iterationExponent))
	} else {
		var secret *secmem.Bytes
		groupShares, secret, err = slip39.GenerateMnemonicsRandomSecure(
			generateGroupThreshold, groups, generateStrengthBits, passphrase, byte(iterationExponent))
		if secret != nil {
			secret.Destroy()
		}
	}
	if err != nil {
		return err
	}

	for _, gs := range groupShares {
		desc, descErr := gs.Describe(cmdCtx.Wordlist)
		if descErr != nil {
			return descErr
		}
		out(w, "%s\n", desc)
	}

	return nil
}

// parseGroupSpecs parses repeated "threshold/count" flags into GroupSpecs,
// falling back to a single group shaped by the configured splitter defaults.
func parseGroupSpecs(raw []string, cfg ConfigProvider) ([]slip39.GroupSpec, error) {
	if len(raw) == 0 {
		splitter := cfg.GetSplitter()
		return []slip39.GroupSpec{{
			MemberThreshold: splitter.DefaultThreshold,
			MemberCount:     splitter.DefaultGroupCount,
		}}, nil
	}

	groups := make([]slip39.GroupSpec, len(raw))
	for i, r := range raw {
		spec, err := parseGroupSpec(r)
		if err != nil {
			return nil, err
		}
		groups[i] = spec
	}
	return groups, nil
}

// resolvePassphrase prompts for a SLIP-39 passphrase if requested, or
// returns an empty passphrase otherwise.
func resolvePassphrase(prompt bool) (string, error) {
	if !prompt {
		return "", nil
	}
	return promptPassphraseFn()
}

// parseGroupSpec parses a single "threshold/count" group shape string.
func parseGroupSpec(raw string) (slip39.GroupSpec, error) {
	parts := strings.SplitN(raw, "/", 2)
	if len(parts) != 2 {
		return slip39.GroupSpec{}, slip39err.New(slip39err.ArgumentError,
			"invalid group shape %q, expected threshold/count", raw)
	}
	threshold, err := strconv.Atoi(parts[0])
	if err != nil {
		return slip39.GroupSpec{}, slip39err.Wrap(slip39err.ArgumentError, err, "parsing group threshold %q", parts[0])
	}
	count, err := strconv.Atoi(parts[1])
	if err != nil {
		return slip39.GroupSpec{}, slip39err.Wrap(slip39err.ArgumentError, err, "parsing group count %q", parts[1])
	}
	if threshold < 1 || threshold > count {
		return slip39.GroupSpec{}, slip39err.New(slip39err.ArgumentError,
			"group threshold must be between 1 and its member count, got %d/%d", threshold, count)
	}
	return slip39.GroupSpec{MemberThreshold: threshold, MemberCount: count}, nil
}
