package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// separators may sit inside a word without making it symbolic.
const separators = " _-./'"

// Rejection says why a prefix is not worth completing.
type Rejection int

const (
	Accepted Rejection = iota
	RejectEmpty
	RejectNumeric    // digits only, "2024"
	RejectSymbol     // anything but letters, digits and separators, "a@b"
	RejectRepetitive // one rune three or more times, "www"
)

func (r Rejection) String() string {
	switch r {
	case Accepted:
		return "accepted"
	case RejectEmpty:
		return "empty"
	case RejectNumeric:
		return "numeric"
	case RejectSymbol:
		return "symbol"
	case RejectRepetitive:
		return "repetitive"
	}
	return "unknown"
}

// ClassifyInput inspects s in a single pass and reports the first rule it breaks.
func ClassifyInput(s string) Rejection {
	if s == "" {
		return RejectEmpty
	}
	first, _ := utf8.DecodeRuneInString(s)
	digitsOnly, sameRune, count := true, true, 0
	for _, r := range s {
		count++
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune(separators, r) {
			return RejectSymbol
		}
		digitsOnly = digitsOnly && unicode.IsDigit(r)
		sameRune = sameRune && r == first
	}
	switch {
	case digitsOnly:
		return RejectNumeric
	case sameRune && count > 2:
		return RejectRepetitive
	}
	return Accepted
}

// IsValidInput reports whether s should be completed at all.
func IsValidInput(s string) bool {
	return ClassifyInput(s) == Accepted
}
