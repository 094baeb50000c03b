// Package api implements the single HTTP gateway to the CINEBASE backend.
//
// Every outgoing request is rate limited, tagged with a request ID, and
// augmented with the stored bearer token when one exists; an absent token
// means the request goes out unauthenticated and the server decides. Every
// response is inspected: a 401 synchronously fires the registered teardown
// hook (session storage clear) before the tagged error is returned, a 403 is
// reported to the caller with no state mutation, and other failures carry the
// server message verbatim. The client performs no navigation; that is the
// top-level effect handler's job.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/olivier-stoked/cinebase/internal/shared"
)

const defaultBaseURL = "http://localhost:8080/api"

// Client is the API gateway client. One instance serves all resource clients.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         oauth2.TokenSource
	limiter        *rate.Limiter
	onUnauthorized func()
	logger         *log.Logger
}

// Opts contains configuration options for creating a [Client].
type Opts struct {
	Config shared.APIConfig
	// Tokens supplies the bearer token per request; typically the session
	// store's TokenSource. A nil source or an errored lookup sends the
	// request unauthenticated.
	Tokens oauth2.TokenSource
	// OnUnauthorized runs synchronously on every 401 before the error is
	// returned. Wired to the session controller's Invalidate.
	OnUnauthorized func()
	// HTTPClient overrides the default client; its timeout is forced to the
	// configured fixed bound.
	HTTPClient *http.Client
	Logger     *log.Logger
}

// NewClient creates a gateway client for the configured base URL.
func NewClient(opts Opts) *Client {
	baseURL := opts.Config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = opts.Config.Timeout()

	rps := opts.Config.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Client{
		baseURL:        baseURL,
		httpClient:     httpClient,
		tokens:         opts.Tokens,
		limiter:        rate.NewLimiter(rate.Limit(rps), rps),
		onUnauthorized: opts.OnUnauthorized,
		logger:         logger,
	}
}

// Get performs a GET request and decodes the response into result.
func (c *Client) Get(ctx context.Context, op, path string, result any) error {
	return c.do(ctx, http.MethodGet, op, path, nil, result)
}

// Post performs a POST request with a JSON body and decodes the response into result.
func (c *Client) Post(ctx context.Context, op, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, op, path, body, result)
}

// Put performs a PUT request with a JSON body and decodes the response into result.
func (c *Client) Put(ctx context.Context, op, path string, body, result any) error {
	return c.do(ctx, http.MethodPut, op, path, body, result)
}

// Delete performs a DELETE request, discarding any response body.
func (c *Client) Delete(ctx context.Context, op, path string) error {
	return c.do(ctx, http.MethodDelete, op, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, op, path string, body, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &Error{Kind: KindNetwork, Op: op, Message: "request cancelled", err: err}
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindDomain, Op: op, Message: "failed to encode request body", err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Message: "failed to create request", err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", shared.GenerateID())

	if c.tokens != nil {
		if token, err := c.tokens.Token(); err == nil && token.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+token.AccessToken)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.transportError(op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Message: "failed to read response", err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		// Global, unconditional policy: any 401 tears the session down,
		// regardless of which endpoint was called. Sibling in-flight
		// requests resolving 401 afterwards re-run an idempotent clear.
		c.logger.Warn("token rejected, tearing down session", "op", op)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &Error{Kind: KindUnauthorized, Status: resp.StatusCode, Op: op, Message: "session expired", err: shared.ErrSessionExpired}

	case resp.StatusCode == http.StatusForbidden:
		return &Error{Kind: KindForbidden, Status: resp.StatusCode, Op: op, Message: serverMessage(respBody, "insufficient permissions"), err: shared.ErrForbidden}

	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &Error{
			Kind:    KindDomain,
			Status:  resp.StatusCode,
			Op:      op,
			Message: serverMessage(respBody, fmt.Sprintf("request failed with status %d", resp.StatusCode)),
			err:     shared.ErrAPIRequest,
		}
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &Error{Kind: KindDomain, Status: resp.StatusCode, Op: op, Message: "failed to decode response", err: err}
		}
	}

	return nil
}

// transportError classifies a failed round trip, keeping timeouts
// distinguishable from other network failures in the message.
func (c *Client) transportError(op string, err error) *Error {
	msg := "request failed"
	if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		msg = "request timed out"
		err = fmt.Errorf("%w: %v", shared.ErrTimeout, err)
	}
	return &Error{Kind: KindNetwork, Op: op, Message: msg, err: err}
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// serverMessage extracts the backend's error text from a response body.
// The backend uses both {"error": ...} and {"message": ...} shapes.
func serverMessage(body []byte, fallback string) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fallback
}
