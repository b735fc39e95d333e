package audit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/designlens/designlens/internal/merge"
	"github.com/designlens/designlens/internal/model"
)

// Store abstracts the persistence layer a Session saves through.
type Store interface {
	// Load returns the accumulated report for domain, or (nil, nil) when
	// no report exists yet.
	Load(ctx context.Context, domain string) (*model.AccumulatedReport, error)

	// Save persists report, replacing any previous report for its domain.
	Save(ctx context.Context, report *model.AccumulatedReport) error
}

// Session accumulates per-page results into one site-wide report and
// persists each merge through its Store. Page analysis may run
// concurrently; merges are serialized by the session so the accumulated
// report sees one writer at a time.
type Session struct {
	// domain is the site being audited.
	domain string

	// store receives the report after every merge. Nil disables
	// persistence.
	store Store

	// logger for structured logging.
	logger *slog.Logger

	// mu serializes access to report.
	mu sync.Mutex

	// report is the accumulated site-wide report.
	report *model.AccumulatedReport
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithStore sets the persistence layer.
func WithStore(store Store) SessionOption {
	return func(s *Session) {
		s.store = store
	}
}

// WithSessionLogger sets a custom logger.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a session for domain. When a store is configured,
// Resume loads any previously persisted report so repeated runs extend
// the same audit instead of starting over.
func NewSession(domain string, opts ...SessionOption) *Session {
	s := &Session{
		domain: domain,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Resume loads the persisted report for the session's domain, if any.
// Without a store or a prior report this is a no-op.
func (s *Session) Resume(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	report, err := s.store.Load(ctx, s.domain)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if report != nil {
		s.logger.Info("resuming previous audit",
			"domain", s.domain,
			"pages", len(report.Metadata.PagesAnalyzed),
		)
		s.report = report
	}
	return nil
}

// MergePage folds one page result into the accumulated report and
// persists the result. It reports whether the page's normalized path was
// already analyzed; duplicate pages leave the report untouched and skip
// the save.
func (s *Session) MergePage(ctx context.Context, page *model.PageResult) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged, already := merge.Merge(s.report, page)
	s.report = merged
	if already {
		s.logger.Debug("page already analyzed", "path", page.Path)
		return true, nil
	}

	if s.store != nil {
		if err := s.store.Save(ctx, s.report); err != nil {
			return false, err
		}
	}
	return false, nil
}

// Report returns the accumulated report. Before any page has been
// merged it returns an empty report for the session's domain.
func (s *Session) Report() *model.AccumulatedReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.report == nil {
		return model.NewAccumulatedReport(s.domain)
	}
	return s.report
}

// Reset drops the in-memory report. Persisted state is left to the
// store's own Reset operation.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.report = nil
}
