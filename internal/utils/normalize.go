package utils

import (
	"strconv"
	"strings"
)

// NormalizeWord trims surrounding whitespace and lower-cases s.
// Both the dictionary loader and the completer run words through it
// so stored words and typed prefixes compare equal.
func NormalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CreateRankList creates a slice of ranks based on position.
// The rank starts at 1 for the first item and increments for subsequent items.
// Useful for ranking items that are already sorted.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := 0; i < count; i++ {
		ranks[i] = uint16(i + 1)
	}
	return ranks
}

// FormatWithCommas formats an integer with comma separators
func FormatWithCommas(n int) string {
	s := strings.Builder{}
	str := strconv.Itoa(n)
	if n < 0 {
		s.WriteByte('-')
		str = str[1:]
	}
	for i, ch := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			s.WriteByte(',')
		}
		s.WriteRune(ch)
	}
	return s.String()
}
