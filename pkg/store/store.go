// Package store owns the fetched issues and their lazily loaded comments.
package store

import (
	"context"
	"log/slog"

	"github.com/kraitsura/backlog_viewer/pkg/model"
	"github.com/kraitsura/backlog_viewer/pkg/selection"
)

// CommentFetcher loads the comment thread of one issue. *backlog.Client
// implements it.
type CommentFetcher interface {
	FetchComments(ctx context.Context, issueKey string) ([]model.Comment, error)
}

// Stats counts comment loading activity since the store was created.
type Stats struct {
	Issues   int // issues in the store
	Loaded   int // issues whose comments are cached
	Fetches  int // fetch attempts, successful or not
	Failures int // failed fetch attempts
}

// IssueStore holds the issue list and is the only writer of
// Issue.Comments. It is not safe for concurrent use; the UI drives it
// from a single goroutine.
type IssueStore struct {
	list    *selection.List[model.Issue]
	fetcher CommentFetcher
	policy  selection.Policy
	logger  *slog.Logger
	stats   Stats
}

// Option configures an IssueStore.
type Option func(*IssueStore)

// WithPolicy sets the cursor policy used by Load.
func WithPolicy(p selection.Policy) Option {
	return func(s *IssueStore) {
		s.policy = p
	}
}

// WithLogger sets the logger that records swallowed fetch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *IssueStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an empty store.
func New(fetcher CommentFetcher, opts ...Option) *IssueStore {
	s := &IssueStore{
		fetcher: fetcher,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.list = selection.New[model.Issue](nil, selection.WithPolicy(s.policy))
	return s
}

// Load replaces the issue collection. The cursor starts unset.
func (s *IssueStore) Load(issues []model.Issue) {
	s.list = selection.New(issues, selection.WithPolicy(s.policy))
	s.stats = Stats{}
}

// List exposes the cursor for navigation.
func (s *IssueStore) List() *selection.List[model.Issue] {
	return s.list
}

// Issues returns the issues for rendering. Callers must treat them as
// read-only.
func (s *IssueStore) Issues() []model.Issue {
	return s.list.Items()
}

// SelectedIssue returns a copy of the issue under the cursor. The cached
// comments stay owned by the store.
func (s *IssueStore) SelectedIssue() (model.Issue, bool) {
	issue, ok := s.list.Selected()
	if !ok {
		return model.Issue{}, false
	}
	return issue.Clone(), true
}

// EnsureCommentsLoaded fetches the comments of the issue at index unless
// they are already cached. A failed fetch leaves the issue untouched so
// the next call retries; the error is logged and returned.
func (s *IssueStore) EnsureCommentsLoaded(ctx context.Context, index int) error {
	issue := s.list.At(index)
	if issue == nil || issue.CommentsLoaded() {
		return nil
	}

	s.stats.Fetches++
	comments, err := s.fetcher.FetchComments(ctx, issue.IssueKey)
	if err != nil {
		s.stats.Failures++
		s.logger.Warn("comment fetch failed",
			"issue", issue.IssueKey,
			"error", err,
		)
		return err
	}

	kept := make([]model.Comment, 0, len(comments))
	for _, c := range comments {
		if !c.IsNoise() {
			kept = append(kept, c)
		}
	}
	issue.Comments = kept
	s.logger.Debug("comments loaded", "issue", issue.IssueKey, "count", len(kept))
	return nil
}

// EnsureSelectedLoaded runs EnsureCommentsLoaded for the cursor position.
// It does nothing when nothing is selected.
func (s *IssueStore) EnsureSelectedLoaded(ctx context.Context) error {
	i, ok := s.list.Index()
	if !ok {
		return nil
	}
	return s.EnsureCommentsLoaded(ctx, i)
}

// Stats returns the current counters.
func (s *IssueStore) Stats() Stats {
	st := s.stats
	st.Issues = s.list.Len()
	for _, issue := range s.list.Items() {
		if issue.CommentsLoaded() {
			st.Loaded++
		}
	}
	return st
}
