// Package api is the HTTP client for the manager-assessment backend.
//
// Every JSON endpoint follows the envelope convention
// {success: bool, ...payload, error?: string}. An OK response carrying
// success=false is surfaced exactly like a transport failure: both
// normalize to *Error so callers handle one error shape (empty result
// sets are not errors).
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/pinka12/amdash/internal/logging"
)

// SupportedBackends is the semver range of backend versions this client is
// tested against. The /health handshake warns outside this window but does
// not refuse to operate.
const SupportedBackends = ">= 3.0.0, < 4.0.0"

// ErrorKind classifies a request failure.
type ErrorKind int

const (
	// KindTransport covers network errors and non-2xx HTTP statuses.
	KindTransport ErrorKind = iota
	// KindApplication covers OK responses with success=false.
	KindApplication
	// KindDecode covers responses that are not valid JSON for the
	// expected shape.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the normalized failure for any backend request.
type Error struct {
	// Op names the operation that failed, e.g. "list managers".
	Op string
	// Kind classifies the failure.
	Kind ErrorKind
	// Status is the HTTP status code, 0 for network-level failures.
	Status int
	// Message is the user-visible error text.
	Message string
	// Err is the underlying error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op + ": request failed"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsApplicationError reports whether err is a backend success=false failure.
func IsApplicationError(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindApplication
}

// Envelope carries the response convention shared by all JSON endpoints.
// Response types embed it so the client can check success uniformly.
type Envelope struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error,omitempty"`
}

func (e Envelope) ok() bool           { return e.Success }
func (e Envelope) errMessage() string { return e.ErrorMessage }

// enveloped is implemented by every decoded response body.
type enveloped interface {
	ok() bool
	errMessage() string
}

// Client talks to the assessment backend.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a Client for the backend at baseURL. A zero timeout
// uses 30 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Propagate the invocation trace ID so backend logs correlate with
	// ours; mint a fresh one for untraced contexts.
	traceID := logging.TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = logging.NewTraceID()
	}
	req.Header.Set("X-Request-ID", traceID)

	return req, nil
}

// doJSON executes the request and decodes the body into out, normalizing
// transport, decode, and application failures into *Error.
func (c *Client) doJSON(ctx context.Context, op, method, path string, query url.Values, body io.Reader, out enveloped) error {
	log := logging.FromContext(ctx)

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		log.Warn().Ctx(ctx).Str("op", op).Err(err).Msg("request failed")
		return &Error{Op: op, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	log.Debug().Ctx(ctx).
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := readErrorMessage(resp.Body)
		return &Error{Op: op, Kind: KindTransport, Status: resp.StatusCode, Message: msg}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Kind: KindDecode, Status: resp.StatusCode, Err: err}
	}

	if !out.ok() {
		msg := out.errMessage()
		if msg == "" {
			msg = "backend reported failure"
		}
		return &Error{Op: op, Kind: KindApplication, Status: resp.StatusCode, Message: msg}
	}

	return nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out enveloped) error {
	return c.doJSON(ctx, op, http.MethodGet, path, query, nil, out)
}

func (c *Client) postJSON(ctx context.Context, op, path string, payload any, out enveloped) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return &Error{Op: op, Kind: KindDecode, Err: err}
		}
		body = strings.NewReader(string(data))
	}
	return c.doJSON(ctx, op, http.MethodPost, path, nil, body, out)
}

// download streams a file endpoint to dest and returns the bytes written.
func (c *Client) download(ctx context.Context, op, path, dest string) (int64, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return 0, &Error{Op: op, Kind: KindTransport, Err: err}
	}
	req.Header.Del("Accept")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, &Error{Op: op, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg := readErrorMessage(resp.Body)
		return 0, &Error{Op: op, Kind: KindTransport, Status: resp.StatusCode, Message: msg}
	}

	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("%s: creating %s: %w", op, dest, err)
	}

	n, err := io.Copy(f, resp.Body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return n, fmt.Errorf("%s: writing %s: %w", op, dest, err)
	}
	return n, nil
}

// readErrorMessage pulls an error string out of a failure body when the
// backend sent one ({"error": ...} or FastAPI-style {"detail": ...}).
func readErrorMessage(r io.Reader) string {
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 4096)).Decode(&body); err != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Detail
}

// healthResponse is the /health payload. It predates the success envelope,
// so status stands in for it.
type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (h healthResponse) ok() bool           { return h.Status != "" }
func (h healthResponse) errMessage() string { return "backend unhealthy" }

// CheckVersion fetches the backend version from /health and reports whether
// it falls inside SupportedBackends. An unparseable version counts as
// incompatible rather than an error so a dev backend ("dev", "local")
// still works with a warning.
func (c *Client) CheckVersion(ctx context.Context) (version string, compatible bool, err error) {
	var health healthResponse
	if err := c.getJSON(ctx, "health check", "/health", nil, &health); err != nil {
		return "", false, err
	}

	constraint, err := semver.NewConstraint(SupportedBackends)
	if err != nil {
		return health.Version, false, err
	}
	v, err := semver.NewVersion(health.Version)
	if err != nil {
		return health.Version, false, nil
	}
	return health.Version, constraint.Check(v), nil
}
