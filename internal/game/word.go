// internal/game/word.go
//
// Canonical word form shared by guesses, targets and providers.
// Words are trimmed, NFC-composed and upper-cased for the round's language.
// Upper-casing is done one letter at a time and never changes the letter
// count: a letter whose upper case is longer (ß -> SS) is kept as is.

package game

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Word is a canonical (upper-cased, NFC-composed) sequence of letters.
type Word string

// Canonical trims s, composes it to NFC and upper-cases it using the casing
// rules of tag, so that "i" becomes "İ" under Turkish and "ñ" stays a single
// letter. The result has as many runes as the NFC form of s.
func Canonical(tag language.Tag, s string) Word {
	s = norm.NFC.String(strings.TrimSpace(s))
	// A Caser keeps state between calls; build one per use.
	upper := cases.Upper(tag)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		u := upper.String(string(r))
		if utf8.RuneCountInString(u) != 1 {
			u = string(unicode.ToUpper(r))
		}
		b.WriteString(u)
	}
	return Word(b.String())
}

// Len is the number of letters (runes), not bytes.
func (w Word) Len() int { return utf8.RuneCountInString(string(w)) }

// Letters splits the word into runes.
func (w Word) Letters() []rune { return []rune(string(w)) }

func (w Word) String() string { return string(w) }

// IsLetters reports whether w is non-empty and made only of letters.
func (w Word) IsLetters() bool {
	if w == "" {
		return false
	}
	for _, r := range string(w) {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
