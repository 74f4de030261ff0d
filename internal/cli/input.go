// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/internal/utils"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
)

// clearCommand wipes the recent searches.
const clearCommand = ":clear"

// InputHandler reads one prefix per line and prints its completions.
// Enter acts like picking the first suggestion: it goes into the search history.
// An empty line shows the recent searches instead.
type InputHandler struct {
	completer       suggest.ICompleter
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	in              io.Reader
	out             *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters.
// Which prefixes get filtered is up to the completer.
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int) *InputHandler {
	return NewInputHandlerWithIO(completer, minLength, maxLength, limit, os.Stdin, os.Stdout)
}

// NewInputHandlerWithIO is NewInputHandler over explicit streams.
func NewInputHandlerWithIO(completer suggest.ICompleter, minLength, maxLength, limit int, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		completer:       completer,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		in:              in,
		out:             logger.NewWithConfig(out, "", log.GetLevel(), false, false, log.TextFormatter),
	}
}

// Start begins the interface loop.
// It keeps reading lines until the input ends, which returns nil.
func (h *InputHandler) Start() error {
	h.out.Print("wordtrie CLI")
	h.out.Print("type a prefix and press Enter (empty line: recent searches, " + clearCommand + ": forget them, Ctrl+C to exit):")

	scanner := bufio.NewScanner(h.in)
	for {
		h.out.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			h.showHistory()
		case clearCommand:
			h.clearHistory()
		default:
			h.handleInput(line)
		}
	}
}

// handleInput validates the prefix's length and content, then asks the completer for
// suggestions and prints them.
func (h *InputHandler) handleInput(prefix string) {
	prefixLen := utf8.RuneCountInString(prefix)
	if prefixLen < h.minPrefixLength {
		log.Errorf("Prefix too short: %s", prefix)
		return
	}
	if prefixLen > h.maxPrefixLength {
		log.Errorf("Prefix too long: %s", prefix)
		return
	}

	if !h.completer.Accepts(prefix) {
		h.out.Printf("No suggestions for prefix: '%s' (filtered out)", prefix)
		return
	}

	start := time.Now()
	suggestions := h.completer.Complete(prefix, h.suggestLimit)
	log.Debugf("Took [ %v ] for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) == 0 {
		h.out.Printf("No suggestions for prefix: '%s'", prefix)
		return
	}

	h.out.Printf("Found %s suggestions for prefix '%s':", utils.FormatWithCommas(len(suggestions)), prefix)
	for _, s := range suggestions {
		h.out.Printf("%2d. %s", s.Rank, s.Word)
	}

	if err := h.completer.Select(suggestions[0].Word); err != nil {
		log.Warnf("Could not save '%s' to history: %v", suggestions[0].Word, err)
	}
}

func (h *InputHandler) showHistory() {
	recent, err := h.completer.Recent()
	if err != nil {
		log.Errorf("Reading history: %v", err)
		return
	}
	if len(recent) == 0 {
		h.out.Print("No recent searches")
		return
	}
	h.out.Print("Recent Searches")
	for _, term := range recent {
		h.out.Printf("  %s", term)
	}
}

func (h *InputHandler) clearHistory() {
	if err := h.completer.ClearRecent(); err != nil {
		log.Errorf("Clearing history: %v", err)
		return
	}
	h.out.Print("History cleared")
}
