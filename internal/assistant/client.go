// Package assistant talks to the remote portfolio assistant: the chat
// endpoint behind the site's chat widget, its health probe and the admin
// chat log.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ResumeMarker in an answer asks the widget to offer the résumé download.
const ResumeMarker = "||RESUME||"

var (
	// ErrUnavailable means the assistant could not be reached or answered
	// with a failure status.
	ErrUnavailable = errors.New("assistant unavailable")
	// ErrUnauthorized means the admin token was rejected.
	ErrUnauthorized = errors.New("invalid password or unauthorized access")
)

// Reply is a parsed chat answer.
type Reply struct {
	Text   string
	Resume bool
}

// ChatLog is one conversation entry recorded by the assistant backend.
type ChatLog struct {
	Timestamp string `json:"timestamp"`
	Location  string `json:"location"`
	Company   string `json:"company"`
	Query     string `json:"query"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the assistant root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

// Chat sends one question and returns the parsed answer.
func (c *Client) Chat(ctx context.Context, query string) (Reply, error) {
	body, err := json.Marshal(chatRequest{Query: query})
	if err != nil {
		return Reply{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return Reply{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Reply{}, fmt.Errorf("%w: chat returned %s", ErrUnavailable, resp.Status)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Reply{}, fmt.Errorf("%w: decoding answer: %v", ErrUnavailable, err)
	}
	return ParseAnswer(out.Answer), nil
}

// ParseAnswer strips the first résumé marker from an answer.
func ParseAnswer(answer string) Reply {
	if !strings.Contains(answer, ResumeMarker) {
		return Reply{Text: answer}
	}
	return Reply{
		Text:   strings.Replace(answer, ResumeMarker, "", 1),
		Resume: true,
	}
}

// Health probes the assistant. A nil error means it is online.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: health returned %s", ErrUnavailable, resp.Status)
	}
	return nil
}

// ChatLogs fetches the assistant's recorded conversations using the admin
// token.
func (c *Client) ChatLogs(ctx context.Context, token string) ([]ChatLog, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/admin-stats", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-admin-token", token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: admin stats returned %s", ErrUnavailable, resp.Status)
	}

	var logs []ChatLog
	if err := json.NewDecoder(resp.Body).Decode(&logs); err != nil {
		return nil, fmt.Errorf("decoding chat logs: %w", err)
	}
	return logs, nil
}
