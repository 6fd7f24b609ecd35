// Package notify delivers formatted scan reports to a Telegram chat.
// Delivery is best effort: the alert channel being down must never abort or
// corrupt a scan, so failures are logged and swallowed.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// Telegram message limits. The API rejects messages over 4096 characters;
// truncation happens well under that to leave room for the marker.
const (
	MaxMessageLength = 4096
	TruncateAt       = 4000
	truncationMarker = "\n\n_(truncated)_"
)

// DefaultAPIBase is the Telegram Bot API endpoint.
const DefaultAPIBase = "https://api.telegram.org"

const sendTimeout = 15 * time.Second

// Telegram sends messages through the Bot API.
type Telegram struct {
	token   string
	chatID  string
	apiBase string
	http    *http.Client
	logger  *log.Logger
}

// Option configures a Telegram notifier.
type Option func(*Telegram)

// WithAPIBase overrides the API base URL. Used by tests.
func WithAPIBase(base string) Option {
	return func(t *Telegram) { t.apiBase = base }
}

// WithLogger overrides the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(t *Telegram) { t.logger = logger }
}

// NewTelegram creates a notifier for the given bot token and chat.
func NewTelegram(token, chatID string, opts ...Option) *Telegram {
	t := &Telegram{
		token:   token,
		chatID:  chatID,
		apiBase: DefaultAPIBase,
		http:    &http.Client{Timeout: sendTimeout},
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Send delivers one message, truncating it to the transport ceiling first.
// It reports whether delivery succeeded; failures are logged, never raised.
func (t *Telegram) Send(ctx context.Context, text string) bool {
	text = Truncate(text)

	if err := t.post(ctx, text, "Markdown"); err != nil {
		// Markdown parsing is the usual culprit (unbalanced markers in
		// scraped titles); retry once as plain text.
		t.logger.Warn("telegram send failed, retrying without markdown", "err", err)
		if err := t.post(ctx, text, ""); err != nil {
			t.logger.Warn("telegram send failed", "err", err)
			return false
		}
	}
	return true
}

// Truncate enforces the message ceiling with a visible marker. The cut
// backs up to a rune boundary so multibyte link text survives intact.
func Truncate(text string) string {
	if len(text) <= MaxMessageLength {
		return text
	}
	cut := TruncateAt
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + truncationMarker
}

func (t *Telegram) post(ctx context.Context, text, parseMode string) error {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:                t.chatID,
		Text:                  text,
		ParseMode:             parseMode,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("telegram API returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
