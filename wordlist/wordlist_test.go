package wordlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultHasRadixWords(t *testing.T) {
	l := Default()
	require.Len(t, l.words, Radix)
}

func TestWordIndexRoundTrip(t *testing.T) {
	l := Default()
	for _, sym := range []uint16{0, 1, 511, 1023} {
		w, err := l.Word(sym)
		require.NoError(t, err)
		got, err := l.Index(w)
		require.NoError(t, err)
		require.Equal(t, sym, got)
	}
}

func TestLoadRejectsWrongLength(t *testing.T) {
	_, err := Load("alpha beta gamma")
	require.Error(t, err)
}

func TestLoadRejectsDuplicates(t *testing.T) {
	words := make([]string, Radix)
	for i := range words {
		words[i] = "same"
	}
	_, err := Load(strings.Join(words, " "))
	require.Error(t, err)
}

func TestLoadRejectsUppercase(t *testing.T) {
	words := make([]string, Radix)
	for i := range words {
		words[i] = "word"
	}
	words[0] = "Word"
	_, err := Load(strings.Join(words, " "))
	require.Error(t, err)
}

func TestIndexUnknownWord(t *testing.T) {
	l := Default()
	_, err := l.Index("definitely-not-a-word")
	require.Error(t, err)
}

func TestSuggestFindsCloseTypo(t *testing.T) {
	l := Default()
	w, err := l.Word(0)
	require.NoError(t, err)
	typo := w[:len(w)-1] // drop the last letter
	suggestion, ok := l.Suggest(typo)
	require.True(t, ok)
	require.Equal(t, w, suggestion)
}

func TestDetectTyposSkipsValidWords(t *testing.T) {
	l := Default()
	w0, _ := l.Word(0)
	w1, _ := l.Word(1)
	typos := l.DetectTypos([]string{w0, w1})
	require.Empty(t, typos)
}

func TestDetectTyposFindsMistyped(t *testing.T) {
	l := Default()
	w0, _ := l.Word(0)
	mistyped := w0[:len(w0)-1]
	typos := l.DetectTypos([]string{mistyped})
	require.Len(t, typos, 1)
	require.Equal(t, w0, typos[0].Suggestion)
}
