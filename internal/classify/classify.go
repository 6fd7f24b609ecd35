// Package classify wraps the external LLM call that judges whether a
// discovered document is a genuine payroll/tax/labor regulatory update.
package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/jonathan/payroll-radar/internal/extract"
	"github.com/jonathan/payroll-radar/internal/prompts"
	"github.com/jonathan/payroll-radar/internal/types"
)

// DefaultModel is the Gemini model used for classification. A lite tier is
// enough for a yes/no verdict with a one-line summary.
const DefaultModel = "gemini-2.5-flash-lite"

// Retry policy for transient API failures.
const (
	DefaultAttempts     = 3
	DefaultRetryBackoff = 3 * time.Second
)

// Result is the classifier's verdict on one document.
type Result struct {
	Relevant bool
	Category types.Category
	Summary  string
}

// unknownResult is returned when classification degrades: treat as not
// relevant so the document is persisted and never retried, but not alerted.
func unknownResult() Result {
	return Result{Relevant: false, Category: types.CategoryOther, Summary: "analysis unavailable"}
}

// Error represents a classification failure after retries were exhausted.
type Error struct {
	Title   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("classification error for %q: %s: %v", e.Title, e.Message, e.Cause)
	}
	return fmt.Sprintf("classification error for %q: %s", e.Title, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Classifier calls Gemini to judge documents. Create one per scan and Close
// it when done.
type Classifier struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	attempts int
	backoff  time.Duration
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithAttempts overrides the retry attempt cap.
func WithAttempts(n int) Option {
	return func(c *Classifier) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithBackoff overrides the base retry delay.
func WithBackoff(d time.Duration) Option {
	return func(c *Classifier) {
		if d > 0 {
			c.backoff = d
		}
	}
}

// New creates a Classifier backed by the given API key and model name
// (empty for DefaultModel).
func New(ctx context.Context, apiKey, modelName string, opts ...Option) (*Classifier, error) {
	if apiKey == "" {
		return nil, errors.New("classifier API key is required")
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.1)
	model.SetMaxOutputTokens(200)

	c := &Classifier{
		client:   client,
		model:    model,
		attempts: DefaultAttempts,
		backoff:  DefaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Close releases the underlying API client.
func (c *Classifier) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Classify judges one document. When snippet is an extraction sentinel the
// prompt falls back to title-only mode. On transient API failures the call
// is retried with linearly increasing backoff; once attempts are exhausted
// it returns the unknown verdict together with the error, never panicking
// or aborting the scan.
func (c *Classifier) Classify(ctx context.Context, doc types.Document) (Result, error) {
	prompt := c.buildPrompt(doc)

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
		if err == nil {
			answer, err := responseText(resp)
			if err != nil {
				return unknownResult(), &Error{Title: doc.Title, Message: "empty response", Cause: err}
			}
			return ParseVerdict(answer), nil
		}

		lastErr = err
		if !isTransient(err) {
			return unknownResult(), &Error{Title: doc.Title, Message: "API call failed", Cause: err}
		}
		if attempt < c.attempts {
			select {
			case <-ctx.Done():
				return unknownResult(), &Error{Title: doc.Title, Message: "canceled", Cause: ctx.Err()}
			case <-time.After(c.backoff * time.Duration(attempt)):
			}
		}
	}

	return unknownResult(), &Error{Title: doc.Title, Message: "retries exhausted", Cause: lastErr}
}

func (c *Classifier) buildPrompt(doc types.Document) string {
	data := map[string]string{
		"Jurisdiction": doc.Jurisdiction,
		"Agency":       doc.Agency,
		"Title":        doc.Title,
	}

	if doc.Snippet == "" || extract.IsSentinel(doc.Snippet) {
		return prompts.Format(prompts.MustGet("classify.json", "title-only"), data)
	}

	snippet := doc.Snippet
	if len(snippet) > 2000 {
		snippet = snippet[:2000]
	}
	data["Content"] = snippet
	return prompts.Format(prompts.MustGet("classify.json", "document"), data)
}

// isTransient reports whether an API error is worth retrying: rate limits,
// server-side hiccups, timeouts.
func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "unavailable") ||
		strings.Contains(msg, "timeout")
}

// responseText flattens the first candidate's text parts.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no candidates in response")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", errors.New("response contained no text parts")
	}
	return out, nil
}
