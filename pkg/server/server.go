package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtrie/internal/logger"
	"github.com/bastiangx/wordtrie/pkg/config"
	"github.com/bastiangx/wordtrie/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	codeBadRequest = 400
	codeInternal   = 500
)

// Server handles the IPC for word completions
type Server struct {
	completer suggest.ICompleter
	config    *config.Config
	reader    *bufio.Reader
	decoder   *msgpack.Decoder
	writer    *bufio.Writer
	encoder   *msgpack.Encoder
	log       *log.Logger
}

// NewServer creates a completion server using stdin/stdout for IPC
func NewServer(completer suggest.ICompleter, cfg *config.Config) *Server {
	return NewServerWithIO(completer, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a completion server reading requests from r and writing responses to w.
func NewServerWithIO(completer suggest.ICompleter, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	br := bufio.NewReader(r)
	bw := bufio.NewWriter(w)
	return &Server{
		completer: completer,
		config:    cfg,
		reader:    br,
		decoder:   msgpack.NewDecoder(br),
		writer:    bw,
		encoder:   msgpack.NewEncoder(bw),
		log:       logger.New("server"),
	}
}

// Start reads requests until the input ends. EOF between requests returns nil;
// EOF inside a request is answered with an error and returns io.ErrUnexpectedEOF.
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")

	for {
		// the decoder shares s.reader, so a peeked byte is still there for it
		if _, err := s.reader.Peek(1); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("Input closed, stopping server")
				return nil
			}
			return fmt.Errorf("failed to read request: %w", err)
		}

		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.log.Errorf("Input ended inside a request: %v", err)
				s.sendError("", "Truncated request", codeBadRequest)
				return fmt.Errorf("failed to read request: %w", io.ErrUnexpectedEOF)
			}
			s.log.Errorf("Reading request stream: %v", err)
			s.sendError("", "Malformed msgpack stream", codeBadRequest)
			return fmt.Errorf("failed to read request: %w", err)
		}

		var request Request
		if err := msgpack.Unmarshal(raw, &request); err != nil {
			s.log.Errorf("Unmarshaling request: %v", err)
			s.sendError("", "Invalid request", codeBadRequest)
			continue
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches on the action field.
func (s *Server) handleRequest(request Request) {
	switch request.Action {
	case "", ActionComplete:
		s.handleComplete(request)
	case ActionHistoryGet, ActionHistoryAdd, ActionHistoryClear:
		s.handleHistory(request)
	case ActionStats:
		stats := s.completer.Stats()
		s.sendResponse(StatsResponse{
			ID:       request.ID,
			Status:   "ok",
			Words:    stats["totalWords"],
			Nodes:    stats["nodes"],
			Requests: stats["requests"],
		})
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown action: %s", request.Action), codeBadRequest)
	}
}

// handleComplete validates the prefix length against the config, clamps the limit
// and answers with the completions in index order.
func (s *Server) handleComplete(request Request) {
	prefix := request.Prefix
	cfg := s.config.Server

	if prefix == "" {
		s.sendError(request.ID, "Missing 'p' (prefix) parameter", codeBadRequest)
		return
	}

	prefixLen := utf8.RuneCountInString(prefix)
	if prefixLen < cfg.MinPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix must be at least %d characters", cfg.MinPrefix), codeBadRequest)
		return
	}
	if prefixLen > cfg.MaxPrefix {
		s.sendError(request.ID, fmt.Sprintf("Prefix exceeds maximum length of %d characters", cfg.MaxPrefix), codeBadRequest)
		return
	}

	limit := request.Limit
	if limit < 1 {
		limit = cfg.DefaultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}

	start := time.Now()
	suggestions := s.completer.Complete(prefix, limit)
	elapsed := time.Since(start)

	response := CompletionResponse{
		ID:          request.ID,
		Suggestions: make([]CompletionSuggestion, len(suggestions)),
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	}
	for i, sg := range suggestions {
		response.Suggestions[i] = CompletionSuggestion{Word: sg.Word, Rank: sg.Rank}
	}
	s.log.Debugf("Completed %q: %d suggestions in %v", prefix, len(suggestions), elapsed)
	s.sendResponse(response)
}

func (s *Server) handleHistory(request Request) {
	var err error
	switch request.Action {
	case ActionHistoryAdd:
		if request.Term == "" {
			s.sendError(request.ID, "Missing 'term' parameter", codeBadRequest)
			return
		}
		err = s.completer.Select(request.Term)
	case ActionHistoryClear:
		err = s.completer.ClearRecent()
	}
	if err != nil {
		s.log.Errorf("History %s: %v", request.Action, err)
		s.sendError(request.ID, "History unavailable", codeInternal)
		return
	}

	items, err := s.completer.Recent()
	if err != nil {
		s.log.Errorf("History read: %v", err)
		s.sendError(request.ID, "History unavailable", codeInternal)
		return
	}
	if items == nil {
		items = []string{}
	}
	s.sendResponse(HistoryResponse{ID: request.ID, Status: "ok", Items: items})
}

// sendResponse encodes response and flushes it so the client sees it immediately.
func (s *Server) sendResponse(response any) {
	if err := s.encoder.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.log.Errorf("Writing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(CompletionError{ID: id, Error: message, Code: code})
}
