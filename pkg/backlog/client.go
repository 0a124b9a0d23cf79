// Package backlog is a read-only client for the two Backlog API v2
// endpoints the viewer needs: the issue listing and an issue's comments.
package backlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kraitsura/backlog_viewer/pkg/model"
)

// DefaultTimeout bounds every request when no HTTP client is supplied.
const DefaultTimeout = 10 * time.Second

// maxErrorBody is how much of a failed response is read for the message.
const maxErrorBody = 64 * 1024

// Options configures a Client.
type Options struct {
	SpaceID    string        // Required: the "xxx" in xxx.backlog.com
	APIKey     string        // Required: sent as the apiKey query parameter
	BaseURL    string        // Overrides https://{space}.backlog.com/api/v2
	HTTPClient *http.Client  // Defaults to a client with Timeout
	Timeout    time.Duration // Ignored when HTTPClient is set
	Logger     *slog.Logger
}

// Client talks to a single Backlog space. It holds no domain state and is
// safe for concurrent use.
type Client struct {
	baseURL string
	webURL  string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient validates opts and returns a Client.
func NewClient(opts Options) (*Client, error) {
	const op = "new client"
	if strings.TrimSpace(opts.SpaceID) == "" && opts.BaseURL == "" {
		return nil, configError(op, "space id is required")
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, configError(op, "api key is required")
	}

	base := strings.TrimRight(opts.BaseURL, "/")
	web := ""
	if base == "" {
		web = fmt.Sprintf("https://%s.backlog.com", opts.SpaceID)
		base = web + "/api/v2"
	} else {
		if _, err := url.Parse(base); err != nil {
			return nil, configError(op, "invalid base url %q: %v", opts.BaseURL, err)
		}
		web = strings.TrimSuffix(base, "/api/v2")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL: base,
		webURL:  web,
		apiKey:  opts.APIKey,
		http:    httpClient,
		logger:  logger,
	}, nil
}

// IssueURL returns the browser URL of an issue.
func (c *Client) IssueURL(issueKey string) string {
	return c.webURL + "/view/" + url.PathEscape(issueKey)
}

// FetchIssues lists issues matching q in server order.
func (c *Client) FetchIssues(ctx context.Context, q IssueQuery) ([]model.Issue, error) {
	query, err := q.values()
	if err != nil {
		return nil, err
	}

	var issues []model.Issue
	if err := c.get(ctx, "fetch issues", "/issues", query, &issues); err != nil {
		return nil, err
	}
	if issues == nil {
		issues = []model.Issue{}
	}
	return issues, nil
}

// FetchComments returns an issue's comments, oldest first, without the
// content-less entries Backlog uses to record field changes. The result
// is never nil.
func (c *Client) FetchComments(ctx context.Context, issueKey string) ([]model.Comment, error) {
	op := "fetch comments " + issueKey
	if strings.TrimSpace(issueKey) == "" {
		return nil, configError(op, "issue key is required")
	}

	var raw []model.Comment
	path := "/issues/" + url.PathEscape(issueKey) + "/comments"
	if err := c.get(ctx, op, path, commentValues(), &raw); err != nil {
		return nil, err
	}

	comments := make([]model.Comment, 0, len(raw))
	for _, comment := range raw {
		if comment.IsNoise() {
			continue
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// apiErrorBody is the error envelope Backlog returns with 4xx/5xx.
type apiErrorBody struct {
	Errors []struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"errors"`
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: redact(err, c.apiKey)}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("backlog request failed", "path", path, "error", redact(err, c.apiKey))
		return &Error{Kind: KindTransport, Op: op, Err: redact(err, c.apiKey)}
	}
	defer resp.Body.Close()

	c.logger.Debug("backlog request",
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:       KindStatus,
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        statusMessage(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindDecode, Op: op, Err: err}
	}
	return nil
}

// statusMessage extracts the first Backlog error message from a failed
// response, falling back to the raw body.
func statusMessage(body io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(data) == 0 {
		return errors.New("empty response body")
	}
	var envelope apiErrorBody
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Errors) > 0 {
		return errors.New(envelope.Errors[0].Message)
	}
	return errors.New(strings.TrimSpace(string(data)))
}

// redact removes the api key from errors that embed the request URL.
func redact(err error, apiKey string) error {
	if apiKey == "" {
		return err
	}
	msg := err.Error()
	escaped := url.QueryEscape(apiKey)
	if !strings.Contains(msg, apiKey) && !strings.Contains(msg, escaped) {
		return err
	}
	msg = strings.ReplaceAll(msg, apiKey, "REDACTED")
	msg = strings.ReplaceAll(msg, escaped, "REDACTED")
	return errors.New(msg)
}
