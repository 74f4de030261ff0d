// Package suggest is the layer between user input and the prefix index: it normalizes what was typed,
// walks the index for completions and remembers the picks in the search history.
package suggest

// ICompleter defines the interface for word completion engines
type ICompleter interface {
	// Complete returns suggestions for a given prefix with a limit (0 for all)
	Complete(prefix string, limit int) []Suggestion

	// Accepts reports whether Complete would search for prefix at all
	Accepts(prefix string) bool

	// AddWord adds a word to the completer
	AddWord(word string)

	// Select records a chosen word in the search history
	Select(word string) error

	// Recent returns the search history, most recent first
	Recent() ([]string, error)

	// ClearRecent forgets the search history
	ClearRecent() error

	// Stats returns statistics about the loaded dictionary
	Stats() map[string]int
}
