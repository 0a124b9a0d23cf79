// Package nav turns input actions into cursor moves and comment loads.
package nav

import (
	"context"
	"log/slog"

	"github.com/kraitsura/backlog_viewer/pkg/store"
)

// Action is a discrete input symbol after key mapping.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionClearSelection
	ActionMoveDown
	ActionMoveUp
	ActionOpenBrowser
	ActionCopyURL
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionClearSelection:
		return "clear-selection"
	case ActionMoveDown:
		return "move-down"
	case ActionMoveUp:
		return "move-up"
	case ActionOpenBrowser:
		return "open-browser"
	case ActionCopyURL:
		return "copy-url"
	}
	return "none"
}

// IssueLinker builds the browser URL of an issue.
type IssueLinker interface {
	IssueURL(issueKey string) string
}

// URLHandler does something with an issue URL: open it, copy it.
type URLHandler interface {
	Handle(url string) error
}

// URLHandlerFunc adapts a function to URLHandler.
type URLHandlerFunc func(url string) error

func (f URLHandlerFunc) Handle(url string) error { return f(url) }

// Result reports what the UI should do after an action.
type Result struct {
	Quit    bool
	Message string // one-line feedback for the status bar, may be empty
}

// Controller dispatches actions against an IssueStore. Handle blocks
// until any comment fetch it starts has settled.
type Controller struct {
	store  *store.IssueStore
	linker IssueLinker
	open   URLHandler
	copy   URLHandler
	logger *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLinker enables the URL actions.
func WithLinker(l IssueLinker) Option {
	return func(c *Controller) { c.linker = l }
}

// WithOpener sets the handler for ActionOpenBrowser.
func WithOpener(h URLHandler) Option {
	return func(c *Controller) { c.open = h }
}

// WithCopier sets the handler for ActionCopyURL.
func WithCopier(h URLHandler) Option {
	return func(c *Controller) { c.copy = h }
}

// WithLogger sets the controller's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a controller over s.
func New(s *store.IssueStore, opts ...Option) *Controller {
	c := &Controller{
		store:  s,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Handle applies a single action. Comment fetch failures are swallowed:
// the issue is shown without comments and the next selection retries.
func (c *Controller) Handle(ctx context.Context, a Action) Result {
	switch a {
	case ActionQuit:
		return Result{Quit: true}

	case ActionClearSelection:
		c.store.List().Unselect()

	case ActionMoveDown:
		c.store.List().Next()
		c.ensureSelected(ctx)

	case ActionMoveUp:
		c.store.List().Previous()
		c.ensureSelected(ctx)

	case ActionOpenBrowser:
		return c.withURL(c.open, "opened")

	case ActionCopyURL:
		return c.withURL(c.copy, "copied")
	}
	return Result{}
}

func (c *Controller) ensureSelected(ctx context.Context) {
	// The store logs the failure; nothing reaches the screen.
	_ = c.store.EnsureSelectedLoaded(ctx)
}

func (c *Controller) withURL(h URLHandler, verb string) Result {
	if h == nil || c.linker == nil {
		return Result{}
	}
	issue, ok := c.store.SelectedIssue()
	if !ok {
		return Result{}
	}
	url := c.linker.IssueURL(issue.IssueKey)
	if err := h.Handle(url); err != nil {
		c.logger.Warn("url action failed", "url", url, "action", verb, "error", err)
		return Result{Message: "could not handle " + url}
	}
	return Result{Message: verb + " " + url}
}
