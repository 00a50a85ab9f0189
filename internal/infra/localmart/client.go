package localmart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"localmart_go/internal/domain"
	"localmart_go/internal/infra"
	"localmart_go/internal/session"
)

// FollowMirror is the local copy of the buyer's following list, kept in
// sync with the backend so the list stays readable offline.
type FollowMirror interface {
	FollowStore(storeID, name, marketID string) error
	UnfollowStore(storeID string) error
	GetFollowedStores() ([]domain.FollowedStore, error)
}

// Client is the LocalMart REST API client (Boundary Layer). All
// authenticated endpoints attach the session's bearer token; any 401
// invalidates the session process-wide before the error is surfaced.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	mirror     FollowMirror
	logger     *slog.Logger
}

// NewClient creates a new LocalMart API client. mirror may be nil, in
// which case follow state is not cached locally.
func NewClient(cfg *infra.Config, sess *session.Session, mirror FollowMirror) *Client {
	timeout := 10 * time.Second
	if cfg.API.TimeoutSec > 0 {
		timeout = time.Duration(cfg.API.TimeoutSec) * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.API.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		session: sess,
		mirror:  mirror,
		logger:  slog.Default().With("module", "localmart_client"),
	}
}

// doRequest handles auth headers, serialization, and error normalization.
// On success the raw response body is returned for the caller to decode.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewBuffer(jsonBytes)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", infra.DefaultUserAgent)
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		infra.GlobalMetrics.RecordError()
		return nil, domain.NewNetworkError(method+" "+path, err)
	}
	defer resp.Body.Close()
	infra.GlobalMetrics.RecordRequest(time.Since(start).Nanoseconds())

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewNetworkError("read "+path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// Hard failure: clear the session and force re-authentication.
		c.logger.Warn("Unauthorized response, invalidating session", slog.String("path", path))
		c.session.Invalidate()
		return nil, domain.ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.normalizeError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// normalizeError extracts a human-readable message from an error response.
// The backend usually returns {"message": "..."} but validation errors may
// arrive as plain text; the raw text then becomes the message.
func (c *Client) normalizeError(status int, body []byte) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Title   string `json:"title"` // ASP.NET problem-details shape
	}

	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			msg = payload.Message
		case payload.Error != "":
			msg = payload.Error
		case payload.Title != "":
			msg = payload.Title
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	return &domain.APIError{StatusCode: status, Message: msg}
}

// get performs a GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", path, err)
	}
	return nil
}

// post performs a POST and decodes the JSON response into out when non-nil.
func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := c.doRequest(ctx, http.MethodPost, path, nil, in)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", path, err)
	}
	return nil
}
