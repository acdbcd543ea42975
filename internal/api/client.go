package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the GoTicket REST backend.  A single instance is shared
// by the whole application; every method takes the caller's bearer token
// explicitly since tokens live in the per-request session, not in the
// client.  No retries: any failure is surfaced to the caller once.
type Client struct {
	base   string
	hc     *http.Client
	events EventCache
}

// New builds a Client for the given backend base URL.  The timeout bounds
// every call including body read; individual requests may be cancelled
// earlier through their context.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		hc:   &http.Client{Timeout: timeout},
	}
}

// do performs one backend call.  A non-empty token is attached as a bearer
// Authorization header; an empty token sends the request unauthenticated
// and leaves rejection to the backend.  Responses with status >= 400
// become *Error values carrying the decoded backend message.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return &Error{Message: "encode request", cause: err}
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return &Error{Message: "build request", cause: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return &Error{cause: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return &Error{Status: res.StatusCode, cause: err}
	}
	if res.StatusCode >= 400 {
		return &Error{Status: res.StatusCode, Message: messageFrom(data)}
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Status: res.StatusCode, Message: "malformed response", cause: err}
		}
	}
	return nil
}

// messageFrom pulls a human-readable message out of an error body.  The
// backend is inconsistent: auth endpoints use {"message": ...}, most others
// use {"error": ...}.
func messageFrom(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
