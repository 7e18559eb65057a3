package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-pkgz/lgr"
)

// MaxMessageLength is the hard limit the Bot API puts on a single message.
const MaxMessageLength = 4096

const (
	defaultAPI    = "https://api.telegram.org"
	respReadLimit = 16384
)

// Client sends messages to a single Telegram chat via the Bot API.
type Client struct {
	token  string
	chatID string
	api    string
	httpc  *http.Client
}

// New creates a client for the given bot token and chat.
func New(token, chatID string, timeout time.Duration) *Client {
	return NewWithEndpoint(defaultAPI, token, chatID, timeout)
}

// NewWithEndpoint creates a client against a custom API base URL, used in tests.
func NewWithEndpoint(endpoint, token, chatID string, timeout time.Duration) *Client {
	return &Client{
		token:  token,
		chatID: chatID,
		api:    endpoint,
		httpc:  &http.Client{Timeout: timeout},
	}
}

// DeliveryError reports a failed sendMessage call for a specific chunk.
type DeliveryError struct {
	Chunk      int // 1-based index of the failed chunk
	Chunks     int // total chunks the message was split into
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("send chunk %d of %d: status %d: %s", e.Chunk, e.Chunks, e.StatusCode, e.Body)
}

// https://core.telegram.org/bots/api#sendmessage
type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// Send delivers text to the configured chat as HTML. Messages over
// MaxMessageLength are split into ordered chunks sent as independent
// messages. The operation is not atomic: chunks sent before a failure stay
// delivered, the rest are aborted. No retries.
func (c *Client) Send(ctx context.Context, text string) error {
	chunks := split(text, MaxMessageLength)
	if len(chunks) > 1 {
		lgr.Printf("[INFO] message too long, sending %d chunks", len(chunks))
	}

	for i, chunk := range chunks {
		if err := c.sendMessage(ctx, chunk, i+1, len(chunks)); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) sendMessage(ctx context.Context, text string, chunk, chunks int) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    c.chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("marshal sendMessage request: %w", err)
	}

	url := c.api + "/bot" + c.token + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("call sendMessage: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, respReadLimit))
		return &DeliveryError{Chunk: chunk, Chunks: chunks, StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}

// split slices text into consecutive rune chunks of at most limit, the last
// one may be shorter. Concatenated chunks equal the original text.
func split(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	chunks := make([]string, 0, (len(runes)+limit-1)/limit)
	for start := 0; start < len(runes); start += limit {
		end := min(start+limit, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
