package bitpacker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitPackerMixedWidths(t *testing.T) {
	bp := New()
	require.NoError(t, bp.AppendUint(32534, 15))
	require.NoError(t, bp.AppendUint(12, 5))
	require.NoError(t, bp.AppendUint(15, 4))
	require.NoError(t, bp.AppendUint(8, 4))
	require.NoError(t, bp.AppendUint(934, 10))

	require.Equal(t, 38, bp.Len())

	v1, err := bp.GetUint(0, 15)
	require.NoError(t, err)
	require.EqualValues(t, 32534, v1)

	v2, err := bp.GetUint(15, 5)
	require.NoError(t, err)
	require.EqualValues(t, 12, v2)

	v3, err := bp.GetUint(20, 4)
	require.NoError(t, err)
	require.EqualValues(t, 15, v3)

	v4, err := bp.GetUint(24, 4)
	require.NoError(t, err)
	require.EqualValues(t, 8, v4)

	v5, err := bp.GetUint(28, 10)
	require.NoError(t, err)
	require.EqualValues(t, 934, v5)
}

func TestNormalize(t *testing.T) {
	bp := New()
	require.NoError(t, bp.AppendUint(1, 13))
	pad := bp.Normalize(10)
	require.Equal(t, 7, pad)
	require.Equal(t, 20, bp.Len())
}

func TestNormalizeNoOpWhenAligned(t *testing.T) {
	bp := New()
	require.NoError(t, bp.AppendUint(1, 20))
	require.Equal(t, 0, bp.Normalize(10))
}

func TestRemovePaddingRejectsNonzeroBits(t *testing.T) {
	bp := New()
	require.NoError(t, bp.AppendUint(1, 1))
	require.NoError(t, bp.AppendUint(0xff, 8))
	err := bp.RemovePadding(1)
	require.Error(t, err)
}

func TestRemovePaddingStripsZeroBits(t *testing.T) {
	bp := New()
	require.NoError(t, bp.AppendUint(0, 3))
	require.NoError(t, bp.AppendUint(0xAB, 8))
	require.NoError(t, bp.RemovePadding(3))
	require.Equal(t, 8, bp.Len())
	v, err := bp.GetUint(0, 8)
	require.NoError(t, err)
	require.EqualValues(t, 0xAB, v)
}

func TestSplitOutAndBytes(t *testing.T) {
	bp := New()
	bp.AppendBytes([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	sub, err := bp.SplitOut(8, 24)
	require.NoError(t, err)
	require.Equal(t, []byte{0xAD, 0xBE}, sub.Bytes())
}

func TestGetBytes(t *testing.T) {
	bp := New()
	bp.AppendBytes([]byte{0x01, 0x02, 0x03})
	got, err := bp.GetBytes(8, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0x02, 0x03}, got)
}

func TestAppendUintRejectsOversizedWidth(t *testing.T) {
	bp := New()
	require.Error(t, bp.AppendUint(1, 65))
}
