package slip39

import (
	"github.com/mrz1836/slip39/bitpacker"
	"github.com/mrz1836/slip39/pkg/slip39err"
	"github.com/mrz1836/slip39/rs1024"
	"github.com/mrz1836/slip39/wordlist"
)

// Wire format constants, per the SLIP-39 scheme's default configuration.
const (
	RadixBits              = 10
	Radix                  = 1 << RadixBits
	IDLengthBits           = 15
	IterationExpLengthBits = 5
	ChecksumLengthWords    = 3
	CustomizationString    = "shamir"
	MinStrengthBits        = 128

	idExpLengthWords       = (IDLengthBits + IterationExpLengthBits) / RadixBits
	metadataLengthWords    = idExpLengthWords + 2 + ChecksumLengthWords
	MinMnemonicLengthWords = metadataLengthWords + 13 // ceil(MinStrengthBits / RadixBits)

	headerBits = IDLengthBits + IterationExpLengthBits + 4 + 4 + 4 + 4 + 4 // 40
)

// Share is one member share record: the common group metadata plus this
// member's share value.
type Share struct {
	Identifier        uint16
	IterationExponent byte
	GroupIndex        byte
	GroupThreshold    byte // actual value, 1..16
	GroupCount        byte // actual value, 1..16
	MemberIndex       byte
	MemberThreshold   byte // actual value, 1..16
	Value             []byte
}

// packBits builds the bit sequence: header fields, left padding, the share
// value, and a trailing RS1024 checksum.
func (s Share) packBits() (*bitpacker.BitPacker, error) {
	bp := bitpacker.New()

	appends := []struct {
		val  uint64
		bits int
	}{
		{uint64(s.Identifier), IDLengthBits},
		{uint64(s.IterationExponent), IterationExpLengthBits},
		{uint64(s.GroupIndex), 4},
		{uint64(s.GroupThreshold - 1), 4},
		{uint64(s.GroupCount - 1), 4},
		{uint64(s.MemberIndex), 4},
		{uint64(s.MemberThreshold - 1), 4},
	}
	for _, a := range appends {
		if err := bp.AppendUint(a.val, a.bits); err != nil {
			return nil, err
		}
	}

	valueBits := len(s.Value) * 8
	padding := (RadixBits - (valueBits % RadixBits)) % RadixBits
	bp.AppendPadding(padding)
	bp.AppendBytes(s.Value)

	if bp.Len()%RadixBits != 0 {
		return nil, slip39err.New(slip39err.MnemonicError, "incorrect share bit length: must be a multiple of %d, got %d", RadixBits, bp.Len())
	}

	sumData, err := wordGroups(bp)
	if err != nil {
		return nil, err
	}
	checksum := rs1024.CreateChecksum([]byte(CustomizationString), sumData, ChecksumLengthWords)
	for _, c := range checksum {
		if err := bp.AppendUint(uint64(c), RadixBits); err != nil {
			return nil, err
		}
	}

	return bp, nil
}

// wordGroups reads every RadixBits-wide group out of bp as a uint32.
func wordGroups(bp *bitpacker.BitPacker) ([]uint32, error) {
	n := bp.Len() / RadixBits
	out := make([]uint32, n)
	for i := 0; i < n; i++ {
		v, err := bp.GetUint(i*RadixBits, RadixBits)
		if err != nil {
			return nil, err
		}
		out[i] = uint32(v)
	}
	return out, nil
}

// Mnemonic encodes the share as a sequence of words drawn from wl.
func (s Share) Mnemonic(wl *wordlist.List) ([]string, error) {
	bp, err := s.packBits()
	if err != nil {
		return nil, err
	}
	groups, err := wordGroups(bp)
	if err != nil {
		return nil, err
	}
	words := make([]string, len(groups))
	for i, g := range groups {
		w, err := wl.Word(uint16(g))
		if err != nil {
			return nil, err
		}
		words[i] = w
	}
	return words, nil
}

// Bytes encodes the share as the octet-aligned auxiliary codec (the same
// bit layout as Mnemonic, but read out as whole bytes rather than 10-bit
// words).
func (s Share) Bytes() ([]byte, error) {
	bp, err := s.packBits()
	if err != nil {
		return nil, err
	}
	return bp.GetBytes(0, (bp.Len()+7)/8)
}

// ShareFromMnemonic decodes a mnemonic word sequence, produced by wl, back
// into a Share, verifying its RS1024 checksum and stripping padding.
func ShareFromMnemonic(words []string, wl *wordlist.List) (Share, error) {
	if len(words) < MinMnemonicLengthWords {
		return Share{}, slip39err.New(slip39err.MnemonicError, "mnemonic must contain at least %d words, got %d", MinMnemonicLengthWords, len(words))
	}

	bp := bitpacker.New()
	for _, w := range words {
		idx, err := wl.Index(w)
		if err != nil {
			return Share{}, err
		}
		if err := bp.AppendUint(uint64(idx), RadixBits); err != nil {
			return Share{}, err
		}
	}

	return shareFromBits(bp)
}

// ShareFromBytes decodes the octet-aligned auxiliary codec produced by
// Share.Bytes back into a Share. Bytes rounds the RadixBits-aligned wire
// format up to a whole byte, so up to 7 zero bits of byte-alignment
// padding may trail the real data; those are trimmed before checksum
// verification proceeds exactly as it does for the mnemonic codec.
func ShareFromBytes(data []byte) (Share, error) {
	raw := bitpacker.New()
	raw.AppendBytes(data)

	logicalBits := raw.Len() - (raw.Len() % RadixBits)
	if logicalBits < MinMnemonicLengthWords*RadixBits {
		return Share{}, slip39err.New(slip39err.MnemonicError, "share data too short")
	}

	bp, err := raw.SplitOut(0, logicalBits)
	if err != nil {
		return Share{}, err
	}

	return shareFromBits(bp)
}

// shareFromBits decodes a RadixBits-aligned bit sequence (whether it came
// from mnemonic words or the raw byte codec) into a Share.
func shareFromBits(bp *bitpacker.BitPacker) (Share, error) {
	sumData, err := wordGroups(bp)
	if err != nil {
		return Share{}, err
	}

	valueWords := len(sumData) - metadataLengthWords
	if (RadixBits*valueWords)%16 > 8 {
		return Share{}, slip39err.New(slip39err.MnemonicError, "invalid mnemonic length")
	}

	if !rs1024.VerifyChecksum([]byte(CustomizationString), sumData) {
		return Share{}, slip39err.New(slip39err.ChecksumError, "invalid mnemonic checksum")
	}

	var s Share
	v, err := bp.GetUint(0, IDLengthBits)
	if err != nil {
		return Share{}, err
	}
	s.Identifier = uint16(v)

	v, err = bp.GetUint(IDLengthBits, IterationExpLengthBits)
	if err != nil {
		return Share{}, err
	}
	s.IterationExponent = byte(v)

	v, err = bp.GetUint(IDLengthBits+IterationExpLengthBits, 4)
	if err != nil {
		return Share{}, err
	}
	s.GroupIndex = byte(v)

	v, err = bp.GetUint(24, 4)
	if err != nil {
		return Share{}, err
	}
	s.GroupThreshold = byte(v) + 1

	v, err = bp.GetUint(28, 4)
	if err != nil {
		return Share{}, err
	}
	s.GroupCount = byte(v) + 1

	v, err = bp.GetUint(32, 4)
	if err != nil {
		return Share{}, err
	}
	s.MemberIndex = byte(v)

	v, err = bp.GetUint(36, 4)
	if err != nil {
		return Share{}, err
	}
	s.MemberThreshold = byte(v) + 1

	if s.GroupCount < s.GroupThreshold {
		return Share{}, slip39err.New(slip39err.MnemonicError, "group threshold cannot be greater than group count")
	}

	checksumBits := RadixBits * ChecksumLengthWords
	body, err := bp.SplitOut(headerBits, bp.Len()-checksumBits)
	if err != nil {
		return Share{}, err
	}
	if err := body.RemovePadding(body.Len() % 16); err != nil {
		return Share{}, err
	}
	s.Value, err = body.GetBytes(0, body.Len()/8)
	if err != nil {
		return Share{}, err
	}

	return s, nil
}
