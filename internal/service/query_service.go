// Package service drives one query through search and then summarize, and
// owns the loading, error and paging state the renderer reads.
//
// Network steps never touch state. Each submission is tagged with a
// generation number; outcomes from an older generation are dropped, so a
// slow response can never overwrite a newer query's state.
package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"ragclient/internal/domain"
	"ragclient/internal/pager"
)

// DefaultTopK is the number of documents requested per search.
const DefaultTopK = 5

// User-visible messages.
const (
	MsgNoResults    = "No relevant documents found."
	MsgNoSummary    = "No summary generated."
	MsgSearchError  = "Error during search or summarization."
	MsgSummaryError = "Error generating summary."
)

// State is the display state of the latest submission.
type State struct {
	Generation uint64
	Query      string
	Length     domain.SummaryLength

	Loading bool
	// Message is informational, e.g. the no-results text.
	Message string
	// Error is set when the search step failed.
	Error string

	ResultsVisible bool

	Summary        string
	SummaryVisible bool
	SummaryError   string
}

// Snapshot is State plus a copy of the paging position.
type Snapshot struct {
	State
	Results    []domain.Document
	Visible    []domain.Document
	Offset     int
	Page       int
	TotalPages int
	CanPrev    bool
	CanNext    bool
}

// SearchTicket identifies a pending search.
type SearchTicket struct {
	Gen    uint64
	Query  domain.Query
	Length domain.SummaryLength
}

// SearchOutcome is the result of running a SearchTicket.
type SearchOutcome struct {
	Ticket   SearchTicket
	Response domain.SearchResponse
	Err      error
}

// SummaryTicket identifies a pending summarize call.
type SummaryTicket struct {
	Gen       uint64
	Documents []any
	Length    domain.SummaryLength
}

// SummaryOutcome is the result of running a SummaryTicket.
type SummaryOutcome struct {
	Ticket   SummaryTicket
	Response domain.SummaryResponse
	Err      error
}

// QueryService is the query orchestrator.
type QueryService struct {
	mu      sync.Mutex
	api     domain.SearchService
	history domain.HistoryLog
	pager   *pager.Pager
	logger  *zap.Logger
	topK    int

	gen   uint64
	state State
}

// NewQueryService wires the orchestrator. p may be nil for a default pager.
func NewQueryService(api domain.SearchService, history domain.HistoryLog, p *pager.Pager, topK int, logger *zap.Logger) *QueryService {
	if p == nil {
		p = pager.New(pager.DefaultPageSize)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryService{api: api, history: history, pager: p, topK: topK, logger: logger}
}

// Submit starts a new query. Blank input is ignored and reports false.
// Any submission still in flight is superseded.
func (s *QueryService) Submit(input string, length domain.SummaryLength) (SearchTicket, bool) {
	q, err := domain.NewQuery(input)
	if err != nil {
		return SearchTicket{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Loading {
		s.logger.Debug("superseding in-flight query",
			zap.Uint64("generation", s.gen),
			zap.String("query", s.state.Query))
	}
	s.gen++
	s.state = State{
		Generation: s.gen,
		Query:      q.String(),
		Length:     length,
		Loading:    true,
	}
	s.logger.Info("query submitted",
		zap.Uint64("generation", s.gen),
		zap.String("query", q.String()),
		zap.String("length", string(length)))
	return SearchTicket{Gen: s.gen, Query: q, Length: length}, true
}

// SelectSuggestion submits a chosen suggestion exactly like typed input.
func (s *QueryService) SelectSuggestion(suggestion string, length domain.SummaryLength) (SearchTicket, bool) {
	return s.Submit(suggestion, length)
}

// Search calls the search service for t. It is safe to run off the state
// goroutine.
func (s *QueryService) Search(ctx context.Context, t SearchTicket) SearchOutcome {
	resp, err := s.api.Search(ctx, t.Query, s.topK)
	return SearchOutcome{Ticket: t, Response: resp, Err: err}
}

// ApplySearch folds a search outcome into state. When documents came back it
// returns the summarize step to run next.
func (s *QueryService) ApplySearch(o SearchOutcome) (SummaryTicket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.Ticket.Gen != s.gen {
		s.logger.Debug("dropping stale search outcome",
			zap.Uint64("generation", o.Ticket.Gen),
			zap.Uint64("current", s.gen))
		return SummaryTicket{}, false
	}

	if o.Err != nil {
		s.logger.Warn("search failed",
			zap.String("query", o.Ticket.Query.String()),
			zap.Error(o.Err))
		s.pager.Clear()
		s.state.Error = MsgSearchError
		s.state.ResultsVisible = false
		s.state.SummaryVisible = false
		s.state.Loading = false
		return SummaryTicket{}, false
	}

	results := o.Response.Results
	if len(results) == 0 {
		msg := o.Response.Message
		if msg == "" {
			msg = MsgNoResults
		}
		s.logger.Info("search returned no documents", zap.String("query", o.Ticket.Query.String()))
		s.pager.Clear()
		s.state.Message = msg
		s.state.ResultsVisible = false
		s.state.SummaryVisible = false
		s.state.Loading = false
		return SummaryTicket{}, false
	}

	s.pager.Reset(results)
	s.state.ResultsVisible = true
	s.logger.Info("search returned documents",
		zap.String("query", o.Ticket.Query.String()),
		zap.Int("count", len(results)))

	if s.history != nil {
		if err := s.history.Append(o.Ticket.Query.String()); err != nil {
			s.logger.Warn("history append failed", zap.Error(err))
		}
	}

	docs := make([]any, len(results))
	for i, d := range results {
		docs[i] = d.SummaryInput()
	}
	return SummaryTicket{Gen: o.Ticket.Gen, Documents: docs, Length: o.Ticket.Length}, true
}

// Summarize calls the summarize endpoint for t without touching state.
func (s *QueryService) Summarize(ctx context.Context, t SummaryTicket) SummaryOutcome {
	resp, err := s.api.Summarize(ctx, t.Documents, t.Length)
	return SummaryOutcome{Ticket: t, Response: resp, Err: err}
}

// ApplySummary folds a summarize outcome into state and reports whether it
// was current. A failure keeps the results on screen and only hides the
// summary.
func (s *QueryService) ApplySummary(o SummaryOutcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o.Ticket.Gen != s.gen {
		s.logger.Debug("dropping stale summary outcome",
			zap.Uint64("generation", o.Ticket.Gen),
			zap.Uint64("current", s.gen))
		return false
	}

	if o.Err != nil {
		s.logger.Warn("summarize failed", zap.Error(o.Err))
		s.state.Summary = ""
		s.state.SummaryVisible = false
		s.state.SummaryError = MsgSummaryError
		s.state.Loading = false
		return true
	}

	summary := o.Response.Summary
	if summary == "" {
		summary = MsgNoSummary
	}
	s.state.Summary = summary
	s.state.SummaryVisible = true
	s.state.Loading = false
	return true
}

// Run submits input and drives both steps to completion on the calling
// goroutine. Blank input returns the unchanged state.
func (s *QueryService) Run(ctx context.Context, input string, length domain.SummaryLength) State {
	t, ok := s.Submit(input, length)
	if !ok {
		return s.State()
	}
	if st, ok := s.ApplySearch(s.Search(ctx, t)); ok {
		s.ApplySummary(s.Summarize(ctx, st))
	}
	return s.State()
}

// GoTo moves the result cursor. It is rejected while no results are shown.
func (s *QueryService) GoTo(page int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.ResultsVisible {
		return false
	}
	return s.pager.GoTo(page)
}

// NextPage advances the pager while results are shown.
func (s *QueryService) NextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ResultsVisible && s.pager.Next()
}

// PrevPage steps the pager back while results are shown.
func (s *QueryService) PrevPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ResultsVisible && s.pager.Prev()
}

// State returns a copy of the current display state.
func (s *QueryService) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the display state together with the paging position.
func (s *QueryService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:      s.state,
		Results:    s.pager.Results(),
		Visible:    s.pager.VisibleSlice(),
		Offset:     s.pager.Offset(),
		Page:       s.pager.Current(),
		TotalPages: s.pager.TotalPages(),
		CanPrev:    s.pager.CanGoPrev(),
		CanNext:    s.pager.CanGoNext(),
	}
}
