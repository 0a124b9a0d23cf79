// Package browser hands issue URLs to the desktop: the system browser or
// the clipboard.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"time"

	"github.com/atotto/clipboard"
)

// DefaultOpenTimeout bounds how long the launcher command may run.
const DefaultOpenTimeout = 5 * time.Second

// Opener launches URLs with the platform's opener command.
type Opener struct {
	goos    string
	timeout time.Duration

	// For testing: allow overriding command execution
	runCommand func(ctx context.Context, name string, args ...string) error
}

// OpenerOption configures an Opener.
type OpenerOption func(*Opener)

// WithOpenTimeout sets the launcher timeout.
func WithOpenTimeout(timeout time.Duration) OpenerOption {
	return func(o *Opener) {
		o.timeout = timeout
	}
}

// NewOpener creates an Opener for the running platform.
func NewOpener(opts ...OpenerOption) *Opener {
	o := &Opener{
		goos:       runtime.GOOS,
		timeout:    DefaultOpenTimeout,
		runCommand: defaultRunCommand,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Handle opens rawURL. Only http and https URLs are accepted so nothing
// else can reach the shell-level opener.
func (o *Opener) Handle(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("refusing to open %q: unsupported scheme", rawURL)
	}

	name, args := o.command(u.String())
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()
	if err := o.runCommand(ctx, name, args...); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

// command returns the launcher for the platform.
func (o *Opener) command(target string) (string, []string) {
	switch o.goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

func defaultRunCommand(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Clipboard copies URLs to the system clipboard.
type Clipboard struct {
	// For testing: allow overriding the clipboard backend
	write func(string) error
}

// NewClipboard creates a Clipboard backed by the system clipboard.
func NewClipboard() *Clipboard {
	if clipboard.Unsupported {
		return &Clipboard{write: func(string) error {
			return fmt.Errorf("no clipboard utility found")
		}}
	}
	return &Clipboard{write: clipboard.WriteAll}
}

// Handle copies text to the clipboard.
func (c *Clipboard) Handle(text string) error {
	if err := c.write(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
