package suggest

import (
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/dictionary"
	"github.com/bastiangx/wordtrie/pkg/history"
	"github.com/bastiangx/wordtrie/pkg/index"
	"github.com/charmbracelet/log"
)

// Suggestion is one completion with its 1-based position in the result.
type Suggestion struct {
	Word string
	Rank uint16
}

// Completer answers completion requests from a prefix index.
// Loading takes the write lock; completions share the read lock.
type Completer struct {
	index        *index.PrefixIndex
	history      *history.History
	filterInput  bool
	requestCount atomic.Int64
	mu           sync.RWMutex
}

// Option configures a Completer.
type Option func(*Completer)

// WithHistory records selections in h.
func WithHistory(h *history.History) Option {
	return func(c *Completer) {
		c.history = h
	}
}

// WithInputFilter toggles rejection of numeric, symbolic and repetitive prefixes.
func WithInputFilter(enabled bool) Option {
	return func(c *Completer) {
		c.filterInput = enabled
	}
}

// NewCompleter creates a completer over an empty index with in-memory history and input filtering on.
func NewCompleter(opts ...Option) *Completer {
	c := &Completer{
		index:       index.New(),
		filterInput: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.history == nil {
		c.history = history.New(history.NewMemoryStore(), history.DefaultCapacity)
	}
	return c
}

// AddWord normalizes word and adds it to the index. Words that are not valid UTF-8 are dropped.
func (c *Completer) AddWord(word string) {
	if !utf8.ValidString(word) {
		log.Warnf("Ignoring word with invalid UTF-8: %q", word)
		return
	}
	word = utils.NormalizeWord(word)
	if word == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index.Insert(word)
}

// Load bulk-loads a word list (file or directory) into the index.
func (c *Completer) Load(path string) (dictionary.Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats, err := dictionary.Load(path, c.index)
	if err != nil {
		return stats, err
	}
	log.Debugf("Dictionary loaded: %d words from %d file(s), index holds %d words in %d nodes",
		stats.Inserted, stats.Files, c.index.Len(), c.index.Nodes())
	return stats, nil
}

// Accepts reports whether Complete will search for prefix. Blank input never is;
// with the input filter on, numeric, symbolic and repetitive prefixes are refused too.
func (c *Completer) Accepts(prefix string) bool {
	lowerPrefix := utils.NormalizeWord(prefix)
	if lowerPrefix == "" {
		return false
	}
	if !c.filterInput {
		return true
	}
	if why := utils.ClassifyInput(lowerPrefix); why != utils.Accepted {
		log.Debugf("Prefix %q filtered out: %v", lowerPrefix, why)
		return false
	}
	return true
}

// Complete returns up to limit words starting with prefix, in lexicographic order.
// A limit below 1 returns every match. Empty or filtered-out input yields no suggestions.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	if !c.Accepts(prefix) {
		return []Suggestion{}
	}
	lowerPrefix := utils.NormalizeWord(prefix)

	c.mu.RLock()
	defer c.mu.RUnlock()
	c.requestCount.Add(1)

	suggestions := make([]Suggestion, 0, min(max(limit, 0), 64))
	c.index.Walk(lowerPrefix, func(word string) bool {
		rank := len(suggestions) + 1
		if rank > 0xFFFF {
			rank = 0xFFFF
		}
		suggestions = append(suggestions, Suggestion{Word: word, Rank: uint16(rank)})
		return limit < 1 || len(suggestions) < limit
	})
	return suggestions
}

// Words returns every word in the index in lexicographic order.
func (c *Completer) Words() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.index.WordsWithPrefix("")
}

// Select records word as a chosen search.
func (c *Completer) Select(word string) error {
	return c.history.Add(utils.NormalizeWord(word))
}

// Recent returns the search history, most recent first.
func (c *Completer) Recent() ([]string, error) {
	return c.history.List()
}

// ClearRecent forgets the search history.
func (c *Completer) ClearRecent() error {
	return c.history.Clear()
}

// Stats reports index size and traffic.
func (c *Completer) Stats() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]int{
		"totalWords":      c.index.Len(),
		"nodes":           c.index.Nodes(),
		"historyCapacity": c.history.Capacity(),
		"requests":        int(c.requestCount.Load()),
	}
}
