package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/kraitsura/backlog_viewer/pkg/backlog"
	"github.com/kraitsura/backlog_viewer/pkg/browser"
	"github.com/kraitsura/backlog_viewer/pkg/config"
	"github.com/kraitsura/backlog_viewer/pkg/model"
	"github.com/kraitsura/backlog_viewer/pkg/nav"
	"github.com/kraitsura/backlog_viewer/pkg/store"
	"github.com/kraitsura/backlog_viewer/pkg/ui"
	"github.com/kraitsura/backlog_viewer/pkg/version"
)

type rootOptions struct {
	configFile string
	logOutput  string
	logLevel   string
	list       bool
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "blv",
		Short: "Browse Backlog issues in the terminal",
		Long: `blv lists the issues of a Backlog project and shows each issue's
description and comments. Comments are fetched the first time an issue
is selected.

Configuration comes from BACKLOG_* environment variables, a .env file in
the working directory, or the file given with --config.

Example:
  BACKLOG_SPACE_ID=acme BACKLOG_API_KEY=... \
  BACKLOG_PROJECT_ID=10 BACKLOG_STATUS_ID_LIST=1,2 blv`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v, opts)
		},
	}

	cmd.Version = version.Short()
	cmd.SetVersionTemplate(version.Info() + "\n")

	f := cmd.Flags()
	f.StringVar(&opts.configFile, "config", "", "config file: YAML, TOML, JSON or dotenv (default ./.env)")
	f.StringVar(&opts.logOutput, "log-output", "", "write JSON log records to this file")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	f.BoolVar(&opts.list, "list", false, "print the issues as a table and exit")
	f.String("base-url", "", "API base URL, overrides the space id (e.g. https://acme.backlog.jp/api/v2)")
	f.Int("page-size", 0, "number of issues to fetch, at most 100")
	f.String("cursor-policy", "", "cursor behaviour at the list ends: wrap or clamp")
	f.Duration("timeout", 0, "timeout for each API request")

	for key, flag := range map[string]string{
		"base_url":      "base-url",
		"page_size":     "page-size",
		"cursor_policy": "cursor-policy",
		"timeout":       "timeout",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper, opts *rootOptions) error {
	logger, closeLog, err := newLogger(opts.logOutput, opts.logLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.Load(v, opts.configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	clientOpts := cfg.ClientOptions()
	clientOpts.Logger = logger
	client, err := backlog.NewClient(clientOpts)
	if err != nil {
		return err
	}

	issues, err := loadIssues(cmd.Context(), client, cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.list || !isTerminal(out) {
		return writeTable(out, issues, terminalWidth(out))
	}

	s := store.New(client,
		store.WithPolicy(cfg.Policy()),
		store.WithLogger(logger),
	)
	s.Load(issues)

	ctrl := nav.New(s,
		nav.WithLinker(client),
		nav.WithOpener(browser.NewOpener()),
		nav.WithCopier(browser.NewClipboard()),
		nav.WithLogger(logger),
	)

	m := ui.New(s, ctrl, ui.WithActionTimeout(cfg.Timeout))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run viewer: %w", err)
	}

	st := s.Stats()
	logger.Info("viewer closed",
		"issues", st.Issues,
		"loaded", st.Loaded,
		"fetches", st.Fetches,
		"failures", st.Failures,
	)
	return nil
}

// loadIssues performs the one listing request made per run. Issues the
// server returns without an id or key are dropped.
func loadIssues(ctx context.Context, client *backlog.Client, cfg *config.Config, logger *slog.Logger) ([]model.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	issues, err := client.FetchIssues(ctx, cfg.IssueQuery())
	if err != nil {
		return nil, fmt.Errorf("load issues: %w", err)
	}

	valid := issues[:0]
	for _, issue := range issues {
		if err := issue.Validate(); err != nil {
			logger.Warn("skipping issue", "id", issue.ID, "error", err)
			continue
		}
		valid = append(valid, issue)
	}
	logger.Info("issues loaded", "project", cfg.ProjectID, "count", len(valid))
	return valid, nil
}

// newLogger returns a JSON file logger, or a discarding logger when path
// is empty. The terminal belongs to the UI, so nothing goes to stderr.
func newLogger(path, level string) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler), func() { file.Close() }, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTableWidth
}
