// Package bitpacker implements a growable, big-endian bit buffer: append and
// read arbitrary-width integer fields, normalize the buffer length to a
// radix boundary, split it, and strip zero padding. This is the wire-level
// plumbing the mnemonic codec packs its fields into before splitting the
// result into fixed-width word symbols.
package bitpacker

import "github.com/mrz1836/slip39/pkg/slip39err"

// BitPacker is a sequence of bits, most-significant-bit first, backed by a
// growable slice.
type BitPacker struct {
	bits []bool
}

// New returns an empty BitPacker.
func New() *BitPacker {
	return &BitPacker{}
}

// Len returns the number of bits currently held.
func (b *BitPacker) Len() int {
	return len(b.bits)
}

// AppendUint appends the low numBits bits of val, most-significant-bit
// first. numBits must be between 0 and 64.
func (b *BitPacker) AppendUint(val uint64, numBits int) error {
	if numBits < 0 || numBits > 64 {
		return slip39err.New(slip39err.BitVecError, "number of bits to pack must be <= 64, got %d", numBits)
	}
	for i := numBits - 1; i >= 0; i-- {
		b.bits = append(b.bits, (val>>uint(i))&1 == 1)
	}
	return nil
}

// AppendBytes appends every byte of data as a full 8-bit field.
func (b *BitPacker) AppendBytes(data []byte) {
	for _, by := range data {
		_ = b.AppendUint(uint64(by), 8)
	}
}

// AppendPadding appends numBits zero bits.
func (b *BitPacker) AppendPadding(numBits int) {
	for i := 0; i < numBits; i++ {
		b.bits = append(b.bits, false)
	}
}

// Normalize pads the buffer with trailing zero bits until its length is a
// multiple of radixBits, returning the number of padding bits added.
func (b *BitPacker) Normalize(radixBits int) int {
	rem := len(b.bits) % radixBits
	if rem == 0 {
		return 0
	}
	pad := radixBits - rem
	b.AppendPadding(pad)
	return pad
}

// GetUint reads numBits bits starting at bit offset index, most-significant
// first, and returns them as a uint64. Bits at or beyond the buffer's
// current length read as zero, mirroring the reference packer's
// out-of-range behavior for checksum fields appended after the fact.
func (b *BitPacker) GetUint(index, numBits int) (uint64, error) {
	if numBits < 0 || numBits > 64 {
		return 0, slip39err.New(slip39err.BitVecError, "number of bits to read must be <= 64, got %d", numBits)
	}
	if index < 0 {
		return 0, slip39err.New(slip39err.BitVecError, "negative index %d", index)
	}
	var val uint64
	for i := index; i < index+numBits; i++ {
		val <<= 1
		if i < len(b.bits) && b.bits[i] {
			val |= 1
		}
	}
	return val, nil
}

// GetBytes reads numBytes full bytes (8 bits each) starting at bit offset
// index.
func (b *BitPacker) GetBytes(index, numBytes int) ([]byte, error) {
	out := make([]byte, numBytes)
	for i := 0; i < numBytes; i++ {
		v, err := b.GetUint(index+i*8, 8)
		if err != nil {
			return nil, err
		}
		out[i] = byte(v)
	}
	return out, nil
}

// SplitOut returns a new BitPacker containing bits [m, n).
func (b *BitPacker) SplitOut(m, n int) (*BitPacker, error) {
	if m < 0 || n < m || n > len(b.bits) {
		return nil, slip39err.New(slip39err.BitVecError, "range [%d,%d) out of bounds (len=%d)", m, n, len(b.bits))
	}
	return &BitPacker{bits: append([]bool(nil), b.bits[m:n]...)}, nil
}

// RemovePadding strips the first numBits bits from the buffer, returning an
// error if any of them is set — per the wire format, padding is always
// zero.
func (b *BitPacker) RemovePadding(numBits int) error {
	if numBits < 0 || numBits > len(b.bits) {
		return slip39err.New(slip39err.BitVecError, "cannot remove %d padding bits from %d", numBits, len(b.bits))
	}
	for i := 0; i < numBits; i++ {
		if b.bits[i] {
			return slip39err.New(slip39err.PaddingError, "all padding bits must be 0")
		}
	}
	b.bits = b.bits[numBits:]
	return nil
}

// Bytes returns the buffer's bits packed into bytes, padding the final byte
// with trailing zero bits on the right if the length isn't a multiple of 8.
func (b *BitPacker) Bytes() []byte {
	out := make([]byte, (len(b.bits)+7)/8)
	for i, bit := range b.bits {
		if bit {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}
