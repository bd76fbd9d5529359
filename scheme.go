// Package slip39 implements SLIP-0039: splitting a master secret into a
// two-level hierarchy of mnemonic shares recoverable only by a quorum of
// member shares within a quorum of groups.
package slip39

import (
	"crypto/rand"
	"fmt"
	"sort"

	"github.com/mrz1836/slip39/feistel"
	"github.com/mrz1836/slip39/pkg/slip39err"
	"github.com/mrz1836/slip39/secmem"
	"github.com/mrz1836/slip39/shamir"
	"github.com/mrz1836/slip39/wordlist"
)

// GroupSpec describes one group's shape: how many member shares it has and
// how many of them are required to recover its group share.
type GroupSpec struct {
	MemberThreshold int
	MemberCount     int
}

// GroupShare is one group's worth of member shares, plus the metadata
// common to the whole split.
type GroupShare struct {
	GroupID           uint16
	IterationExponent byte
	GroupIndex        byte
	GroupThreshold    byte
	GroupCount        byte
	MemberThreshold   byte
	MemberShares      []Share
}

// Mnemonics returns each member share's mnemonic word sequence, encoded
// with wl.
func (g GroupShare) Mnemonics(wl *wordlist.List) ([][]string, error) {
	out := make([][]string, len(g.MemberShares))
	for i, s := range g.MemberShares {
		words, err := s.Mnemonic(wl)
		if err != nil {
			return nil, err
		}
		out[i] = words
	}
	return out, nil
}

// Describe returns a human-readable summary of the group and its member
// mnemonics, in the spirit of the reference scheme's group display.
func (g GroupShare) Describe(wl *wordlist.List) (string, error) {
	mnemonics, err := g.Mnemonics(wl)
	if err != nil {
		return "", err
	}
	out := fmt.Sprintf("Group %d of %d - %d of %d shares required:\n",
		g.GroupIndex+1, g.GroupCount, g.MemberThreshold, len(g.MemberShares))
	for i, words := range mnemonics {
		out += fmt.Sprintf("  %d: %s\n", i+1, joinWords(words))
	}
	return out, nil
}

func joinWords(words []string) string {
	out := ""
	for i, w := range words {
		if i > 0 {
			out += " "
		}
		out += w
	}
	return out
}

// GenerateMnemonics splits masterSecret, encrypted under passphrase, into
// the group/member hierarchy described by groups, groupThreshold of which
// are required to recover it.
func GenerateMnemonics(groupThreshold int, groups []GroupSpec, masterSecret []byte, passphrase string, iterationExponent byte) ([]GroupShare, error) {
	if err := feistel.ValidateSecretLength(masterSecret); err != nil {
		return nil, err
	}
	if len(masterSecret)*8 < MinStrengthBits {
		return nil, slip39err.New(slip39err.ValueError, "master secret must be at least %d bits", MinStrengthBits)
	}
	if len(groups) == 0 || len(groups) > shamir.MaxShareCount {
		return nil, slip39err.New(slip39err.ArgumentError, "number of groups must be between 1 and %d", shamir.MaxShareCount)
	}
	if groupThreshold < 1 || groupThreshold > len(groups) {
		return nil, slip39err.New(slip39err.ArgumentError, "group threshold must be between 1 and the number of groups")
	}
	for _, g := range groups {
		if g.MemberThreshold < 1 || g.MemberThreshold > g.MemberCount {
			return nil, slip39err.New(slip39err.ArgumentError, "each group's member threshold must be between 1 and its member count")
		}
	}

	identifier, err := randomIdentifier()
	if err != nil {
		return nil, err
	}

	ems := feistel.Encrypt(masterSecret, passphrase, iterationExponent, identifier)

	groupParts, err := shamir.Split(groupThreshold, len(groups), ems)
	if err != nil {
		return nil, err
	}

	result := make([]GroupShare, len(groups))
	for i, spec := range groups {
		memberParts, err := shamir.Split(spec.MemberThreshold, spec.MemberCount, groupParts[i].Value)
		if err != nil {
			return nil, err
		}

		members := make([]Share, len(memberParts))
		for j, mp := range memberParts {
			members[j] = Share{
				Identifier:        identifier,
				IterationExponent: iterationExponent,
				GroupIndex:        byte(i),
				GroupThreshold:    byte(groupThreshold),
				GroupCount:        byte(len(groups)),
				MemberIndex:       mp.Index,
				MemberThreshold:   byte(spec.MemberThreshold),
				Value:             mp.Value,
			}
		}

		result[i] = GroupShare{
			GroupID:           identifier,
			IterationExponent: iterationExponent,
			GroupIndex:        byte(i),
			GroupThreshold:    byte(groupThreshold),
			GroupCount:        byte(len(groups)),
			MemberThreshold:   byte(spec.MemberThreshold),
			MemberShares:      members,
		}
	}

	return result, nil
}

// GenerateMnemonicsRandom is GenerateMnemonics with a freshly generated
// random master secret of strengthBits bits.
func GenerateMnemonicsRandom(groupThreshold int, groups []GroupSpec, strengthBits int, passphrase string, iterationExponent byte) ([]GroupShare, []byte, error) {
	if strengthBits < MinStrengthBits || strengthBits%16 != 0 {
		return nil, nil, slip39err.New(slip39err.ValueError, "strength must be at least %d bits and a multiple of 16", MinStrengthBits)
	}
	secret := make([]byte, strengthBits/8)
	if _, err := rand.Read(secret); err != nil {
		return nil, nil, slip39err.Wrap(slip39err.ValueError, err, "failed to generate random master secret")
	}
	groupShares, err := GenerateMnemonics(groupThreshold, groups, secret, passphrase, iterationExponent)
	if err != nil {
		return nil, nil, err
	}
	return groupShares, secret, nil
}

// GenerateMnemonicsRandomSecure is GenerateMnemonicsRandom, returning the
// freshly generated master secret in mlock'd, zero-on-destroy memory
// instead of a plain byte slice. Callers that would otherwise hold a
// master secret in an ordinary slice for any length of time should prefer
// this form; the caller must call Destroy on the returned Bytes once done.
func GenerateMnemonicsRandomSecure(groupThreshold int, groups []GroupSpec, strengthBits int, passphrase string, iterationExponent byte) ([]GroupShare, *secmem.Bytes, error) {
	groupShares, secret, err := GenerateMnemonicsRandom(groupThreshold, groups, strengthBits, passphrase, iterationExponent)
	if err != nil {
		return nil, nil, err
	}
	sb := secmem.FromSlice(secret)
	for i := range secret {
		secret[i] = 0
	}
	return groupShares, sb, nil
}

func randomIdentifier() (uint16, error) {
	b := make([]byte, 2)
	if _, err := rand.Read(b); err != nil {
		return 0, slip39err.Wrap(slip39err.ValueError, err, "failed to generate random identifier")
	}
	v := uint16(b[0])<<8 | uint16(b[1])
	return v & ((1 << IDLengthBits) - 1), nil
}

// CombineMnemonics decodes a flat set of member mnemonics (which may span
// multiple groups) against wl, and recovers the master secret if they form
// a qualifying quorum.
func CombineMnemonics(mnemonics [][]string, passphrase string, wl *wordlist.List) ([]byte, error) {
	if len(mnemonics) == 0 {
		return nil, slip39err.New(slip39err.ValueError, "at least one mnemonic is required")
	}

	shares := make([]Share, len(mnemonics))
	for i, words := range mnemonics {
		s, err := ShareFromMnemonic(words, wl)
		if err != nil {
			return nil, err
		}
		shares[i] = s
	}

	first := shares[0]
	for _, s := range shares[1:] {
		if s.Identifier != first.Identifier || s.IterationExponent != first.IterationExponent ||
			s.GroupThreshold != first.GroupThreshold || s.GroupCount != first.GroupCount {
			return nil, slip39err.New(slip39err.MnemonicError, "mnemonics are not from the same share set")
		}
	}

	byGroup := map[byte][]Share{}
	for _, s := range shares {
		byGroup[s.GroupIndex] = append(byGroup[s.GroupIndex], s)
	}

	var groupParts []shamir.Part
	for groupIndex, groupShares := range byGroup {
		threshold := groupShares[0].MemberThreshold
		for _, s := range groupShares {
			if s.MemberThreshold != threshold {
				return nil, slip39err.New(slip39err.MnemonicError, "inconsistent member threshold within group %d", groupIndex)
			}
		}
		if len(groupShares) < int(threshold) {
			continue // not enough member shares for this group to qualify
		}

		sort.Slice(groupShares, func(i, j int) bool { return groupShares[i].MemberIndex < groupShares[j].MemberIndex })

		memberParts := make([]shamir.Part, 0, threshold)
		seen := map[byte]bool{}
		for _, s := range groupShares {
			if seen[s.MemberIndex] {
				continue
			}
			seen[s.MemberIndex] = true
			memberParts = append(memberParts, shamir.Part{Index: s.MemberIndex, Value: s.Value})
			if len(memberParts) == int(threshold) {
				break
			}
		}
		if len(memberParts) < int(threshold) {
			continue
		}

		groupValue, err := shamir.Recover(memberParts, int(threshold))
		if err != nil {
			return nil, err
		}
		groupParts = append(groupParts, shamir.Part{Index: groupIndex, Value: groupValue})
	}

	if len(groupParts) < int(first.GroupThreshold) {
		return nil, slip39err.New(slip39err.MnemonicError, "not enough groups to meet the group threshold")
	}

	sort.Slice(groupParts, func(i, j int) bool { return groupParts[i].Index < groupParts[j].Index })
	groupParts = groupParts[:first.GroupThreshold]

	ems, err := shamir.Recover(groupParts, int(first.GroupThreshold))
	if err != nil {
		return nil, err
	}

	return feistel.Decrypt(ems, passphrase, first.IterationExponent, first.Identifier), nil
}

// CombineMnemonicsSecure is CombineMnemonics, returning the recovered
// secret in mlock'd, zero-on-destroy memory instead of a plain byte slice.
// The caller must call Destroy on the returned Bytes once done.
func CombineMnemonicsSecure(mnemonics [][]string, passphrase string, wl *wordlist.List) (*secmem.Bytes, error) {
	secret, err := CombineMnemonics(mnemonics, passphrase, wl)
	if err != nil {
		return nil, err
	}
	sb := secmem.FromSlice(secret)
	for i := range secret {
		secret[i] = 0
	}
	return sb, nil
}
