package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/langstats/pkg/grams"
	"github.com/bastiangx/langstats/pkg/langstats"
	"github.com/bastiangx/langstats/pkg/statfile"
	"github.com/bastiangx/langstats/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Error codes sent in ErrorResponse.
const (
	CodeBadRequest = 400
	CodeForbidden  = 403
	CodeNotFound   = 404
	CodeTooLarge   = 413
	CodeInternal   = 500
)

// Options are the per-process defaults of the server.
type Options struct {
	Language     string
	UseSpaces    bool
	DefaultOrder grams.Order
	// MaxTextLength bounds cost and ioc texts in runes; 0 disables the check.
	MaxTextLength int
	MaxLimit      int
	CompleteLimit int
	DictEnabled   bool
}

// requestError is a client error with its reply code.
type requestError struct {
	msg  string
	code int
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...), code: CodeBadRequest}
}

// Server handles the IPC for language statistics
type Server struct {
	cache   *langstats.Cache
	opts    Options
	metrics *Metrics
	indexes map[string]*suggest.Index

	dec    *msgpack.Decoder
	writer *bufio.Writer
	enc    *msgpack.Encoder
}

// NewServer creates a server using stdin/stdout for IPC
func NewServer(cache *langstats.Cache, opts Options, metrics *Metrics) *Server {
	return NewServerIO(cache, opts, metrics, os.Stdin, os.Stdout)
}

// NewServerIO creates a server reading requests from r and writing responses
// to w. A nil metrics gets a private registry.
func NewServerIO(cache *langstats.Cache, opts Options, metrics *Metrics, r io.Reader, w io.Writer) *Server {
	if metrics == nil {
		metrics = NewMetrics()
	}
	if !opts.DefaultOrder.Valid() {
		opts.DefaultOrder = grams.Tetragrams
	}
	bw := bufio.NewWriter(w)
	return &Server{
		cache:   cache,
		opts:    opts,
		metrics: metrics,
		indexes: make(map[string]*suggest.Index),
		dec:     msgpack.NewDecoder(bufio.NewReader(r)),
		writer:  bw,
		enc:     msgpack.NewEncoder(bw),
	}
}

// Start begins listening for IPC requests. It returns nil on EOF.
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		var raw msgpack.RawMessage
		if err := s.dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Client disconnected (EOF)")
				return nil
			}
			log.Errorf("Reading request stream: %v", err)
			return err
		}
		s.handleRequest(raw)
	}
}

// handleRequest decodes and answers a single request frame.
func (s *Server) handleRequest(raw msgpack.RawMessage) {
	start := time.Now()

	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		log.Errorf("Unmarshaling request: %v", err)
		s.sendError("", "Invalid msgpack request", CodeBadRequest)
		s.metrics.observe("invalid", CodeBadRequest, time.Since(start))
		return
	}

	label := req.Action
	var resp any
	var err error
	switch req.Action {
	case ActionCost:
		resp, err = s.handleCost(req, start)
	case ActionContains:
		resp, err = s.handleContains(req, start)
	case ActionIoC:
		resp, err = s.handleIoC(req, start)
	case ActionComplete:
		resp, err = s.handleComplete(req, start)
	case ActionInfo:
		resp, err = s.handleInfo(req)
	case ActionHealth:
		resp = StatusResponse{ID: req.ID, Status: "ok"}
	default:
		label = "unknown"
		err = badRequest("Unknown action: %q", req.Action)
	}

	code := 0
	if err != nil {
		code = errorCode(err)
		log.Debugf("Request %s (%s) failed with %d: %v", req.ID, req.Action, code, err)
		s.sendError(req.ID, err.Error(), code)
	} else {
		s.sendResponse(resp)
	}
	s.metrics.observe(label, code, time.Since(start))
}

// errorCode maps a handler error to its reply code.
func errorCode(err error) int {
	var re *requestError
	var missing *statfile.MissingResourceError
	var order *grams.UnsupportedOrderError
	switch {
	case errors.As(err, &re):
		return re.code
	case errors.As(err, &missing):
		return CodeNotFound
	case errors.As(err, &order), errors.Is(err, langstats.ErrUnknownLanguage):
		return CodeBadRequest
	default:
		return CodeInternal
	}
}

// sendResponse encodes one response frame and flushes it.
func (s *Server) sendResponse(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.sendResponse(ErrorResponse{ID: id, Error: message, Code: code})
}

func (s *Server) language(req Request) string {
	if req.Language != "" {
		return strings.ToLower(req.Language)
	}
	return s.opts.Language
}

func (s *Server) checkText(text string) error {
	if s.opts.MaxTextLength > 0 && utf8.RuneCountInString(text) > s.opts.MaxTextLength {
		return &requestError{
			msg:  fmt.Sprintf("Text exceeds maximum length of %d characters", s.opts.MaxTextLength),
			code: CodeTooLarge,
		}
	}
	return nil
}

// handleCost scores the upper-cased text with the requested gram order.
func (s *Server) handleCost(req Request, start time.Time) (any, error) {
	order := s.opts.DefaultOrder
	if req.Order != 0 {
		o, err := grams.OrderFromSize(req.Order)
		if err != nil {
			return nil, err
		}
		order = o
	}
	if err := s.checkText(req.Text); err != nil {
		return nil, err
	}

	model, err := s.cache.Grams(s.language(req), order, s.opts.UseSpaces)
	if err != nil {
		return nil, err
	}
	numbers := langstats.MapTextToNumbers(strings.ToUpper(req.Text), model.Alphabet())

	return CostResponse{
		ID:        req.ID,
		Cost:      model.Cost(numbers),
		Order:     int(order),
		Symbols:   len(numbers),
		TimeTaken: time.Since(start).Microseconds(),
	}, nil
}

func (s *Server) handleContains(req Request, start time.Time) (any, error) {
	if !s.opts.DictEnabled {
		return nil, &requestError{msg: "Dictionary lookups are disabled", code: CodeForbidden}
	}
	if len(req.Words) == 0 {
		return nil, badRequest("Missing 'words' parameter")
	}
	tree, err := s.cache.WordTree(s.language(req))
	if err != nil {
		return nil, err
	}

	results := make([]bool, len(req.Words))
	for i, w := range req.Words {
		if req.Exact {
			results[i] = tree.ContainsCompleteWord(w)
		} else {
			results[i] = tree.ContainsWord(w)
		}
	}
	return ContainsResponse{ID: req.ID, Results: results, TimeTaken: time.Since(start).Microseconds()}, nil
}

func (s *Server) handleIoC(req Request, start time.Time) (any, error) {
	if err := s.checkText(req.Text); err != nil {
		return nil, err
	}
	return IoCResponse{
		ID:        req.ID,
		IoC:       langstats.CalculateIoC(req.Text),
		TimeTaken: time.Since(start).Microseconds(),
	}, nil
}

func (s *Server) handleComplete(req Request, start time.Time) (any, error) {
	if !s.opts.DictEnabled {
		return nil, &requestError{msg: "Dictionary lookups are disabled", code: CodeForbidden}
	}
	if req.Prefix == "" {
		return nil, badRequest("Missing 'p' parameter")
	}

	limit := req.Limit
	if limit < 1 {
		limit = s.opts.CompleteLimit
	}
	if s.opts.MaxLimit > 0 && limit > s.opts.MaxLimit {
		limit = s.opts.MaxLimit
	}

	idx, err := s.index(s.language(req))
	if err != nil {
		return nil, err
	}
	suggestions := idx.Complete(req.Prefix, limit)
	if suggestions == nil {
		suggestions = []suggest.Suggestion{}
	}
	return CompletionResponse{
		ID:          req.ID,
		Suggestions: suggestions,
		Count:       len(suggestions),
		TimeTaken:   time.Since(start).Microseconds(),
	}, nil
}

// index returns the completion index of language, building it on first use.
// Requests are handled one at a time, so the map needs no lock.
func (s *Server) index(language string) (*suggest.Index, error) {
	if idx, ok := s.indexes[language]; ok {
		return idx, nil
	}
	tree, err := s.cache.WordTree(language)
	if err != nil {
		return nil, err
	}
	idx := suggest.NewIndex(tree)
	s.indexes[language] = idx
	return idx, nil
}

func (s *Server) handleInfo(req Request) (any, error) {
	lang := s.language(req)
	alphabet, ok := langstats.Alphabet(lang, s.opts.UseSpaces)
	if !ok {
		return nil, fmt.Errorf("%w: %q", langstats.ErrUnknownLanguage, lang)
	}
	name, _ := langstats.LanguageName(lang)

	resp := InfoResponse{
		ID:        req.ID,
		Language:  lang,
		Name:      name,
		Alphabet:  alphabet,
		UseSpaces: s.opts.UseSpaces,
		Orders:    []int{},
	}
	for _, o := range s.cache.Loaded(lang, s.opts.UseSpaces) {
		resp.Orders = append(resp.Orders, int(o))
	}
	if s.opts.DictEnabled {
		if tree, err := s.cache.WordTree(lang); err == nil {
			resp.Words = tree.MarkedWords
		} else {
			log.Debugf("No dictionary for %s: %v", lang, err)
		}
	}
	return resp, nil
}
