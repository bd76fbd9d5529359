// Package wordlist provides the 1024-entry word list the mnemonic codec
// maps 10-bit symbols to, a validator for caller-supplied replacements, and
// Levenshtein-distance typo suggestion for interactive mnemonic entry.
//
// The embedded default list is a structurally valid, alphabetically
// sorted, 1024-word placeholder generated for this module — not the
// canonical SLIP-39 English word list, which is an environment-supplied
// asset outside this package's scope (see DESIGN.md). Load accepts any
// 1024-word list, including the genuine one, so swapping in the canonical
// asset at deploy time requires no code change.
package wordlist

import (
	_ "embed"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mrz1836/slip39/pkg/slip39err"
)

//go:embed wordlist.txt
var defaultWordlist string

// Radix is the number of entries a valid word list must have: one per
// possible 10-bit symbol value.
const Radix = 1024

// List is an ordered, validated word list together with its reverse index.
type List struct {
	words []string
	index map[string]uint16
}

// Default returns the module's embedded placeholder word list.
func Default() *List {
	l, err := Load(defaultWordlist)
	if err != nil {
		// The embedded asset is generated and checked in by this module;
		// a failure here means the build is broken, not that the caller
		// did anything wrong.
		panic("wordlist: embedded default list failed validation: " + err.Error())
	}
	return l
}

// Load parses and validates a whitespace-separated word list, returning a
// ConfigError if it does not contain exactly Radix unique, lowercase
// entries.
func Load(data string) (*List, error) {
	words := strings.Fields(data)
	if len(words) != Radix {
		return nil, slip39err.New(slip39err.ConfigError, "word list must contain %d words, got %d", Radix, len(words))
	}

	index := make(map[string]uint16, len(words))
	for i, w := range words {
		lw := strings.ToLower(w)
		if lw != w {
			return nil, slip39err.New(slip39err.ConfigError, "word list entries must be lowercase, got %q", w)
		}
		if _, dup := index[w]; dup {
			return nil, slip39err.New(slip39err.ConfigError, "word list contains duplicate entry %q", w)
		}
		index[w] = uint16(i)
	}

	return &List{words: words, index: index}, nil
}

// Word returns the word for a 10-bit symbol value.
func (l *List) Word(symbol uint16) (string, error) {
	if int(symbol) >= len(l.words) {
		return "", slip39err.New(slip39err.MnemonicError, "symbol %d out of range", symbol)
	}
	return l.words[symbol], nil
}

// Index returns the symbol value for a word.
func (l *List) Index(word string) (uint16, error) {
	idx, ok := l.index[strings.ToLower(word)]
	if !ok {
		return 0, slip39err.New(slip39err.MnemonicError, "%q is not in the word list", word)
	}
	return idx, nil
}

// Contains reports whether word is present in the list.
func (l *List) Contains(word string) bool {
	_, ok := l.index[strings.ToLower(word)]
	return ok
}

// MaxTypoDistance is the largest Levenshtein distance Suggest will offer a
// correction for.
const MaxTypoDistance = 2

// Suggest returns the closest word list entry to word by Levenshtein
// distance, and whether a suggestion within MaxTypoDistance was found.
func (l *List) Suggest(word string) (string, bool) {
	word = strings.ToLower(word)
	best := ""
	bestDist := MaxTypoDistance + 1
	for _, w := range l.words {
		d := levenshtein.ComputeDistance(word, w)
		if d < bestDist {
			bestDist = d
			best = w
		}
	}
	if bestDist > MaxTypoDistance {
		return "", false
	}
	return best, true
}

// Typo describes a mistyped mnemonic word and its suggested correction.
type Typo struct {
	Index      int
	Word       string
	Suggestion string
	Distance   int
}

// DetectTypos scans a mnemonic's words for entries absent from the list and
// returns a suggested correction for each.
func (l *List) DetectTypos(words []string) []Typo {
	var typos []Typo
	for i, w := range words {
		if l.Contains(w) {
			continue
		}
		suggestion, ok := l.Suggest(w)
		if !ok {
			continue
		}
		typos = append(typos, Typo{
			Index:      i,
			Word:       w,
			Suggestion: suggestion,
			Distance:   levenshtein.ComputeDistance(strings.ToLower(w), suggestion),
		})
	}
	return typos
}
