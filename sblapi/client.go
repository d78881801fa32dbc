package sblapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultTimeout       = 15 * time.Second
	DefaultHealthTimeout = 10 * time.Second
	UserAgent            = "SBL-Discord-Bot"
	DiscordUserHeader    = "X-Discord-User-Id"

	diagnosticBodyLimit = 200
)

// CallObserver receives one notification per completed call
type CallObserver interface {
	RecordAPICall(ctx context.Context, endpoint string, status int, reason string, duration time.Duration)
}

// ClientConfig configures a Client
type ClientConfig struct {
	BaseURL       string
	Token         string
	Timeout       time.Duration
	HealthTimeout time.Duration
	HTTPClient    *http.Client
	Observer      CallObserver
}

// Client performs single-attempt JSON calls against the league API
type Client struct {
	httpClient    *http.Client
	baseURL       string
	token         string
	timeout       time.Duration
	healthTimeout time.Duration
	observer      CallObserver
}

// Params are query parameters. Nil values, including typed nil pointers, are omitted.
type Params map[string]any

// Request describes one call
type Request struct {
	Method   string
	Endpoint string
	Query    Params
	Body     any
	Timeout  time.Duration
	Headers  map[string]string
}

// Result is a successful response
type Result struct {
	Data         json.RawMessage
	ResponseTime time.Duration
	HTTPStatus   int
}

// NewClient creates a Client. The transport is instrumented with otelhttp.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	healthTimeout := cfg.HealthTimeout
	if healthTimeout <= 0 {
		healthTimeout = DefaultHealthTimeout
	}

	return &Client{
		httpClient:    httpClient,
		baseURL:       NormalizeBaseURL(cfg.BaseURL),
		token:         strings.TrimSpace(cfg.Token),
		timeout:       timeout,
		healthTimeout: healthTimeout,
		observer:      cfg.Observer,
	}
}

// NormalizeBaseURL adds a scheme when missing and drops trailing slashes
func NormalizeBaseURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return ""
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return base
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// BuildURL joins the base URL, endpoint and non-nil query parameters
func (c *Client) BuildURL(endpoint string, query Params) string {
	target := c.baseURL
	if endpoint = strings.TrimLeft(endpoint, "/"); endpoint != "" {
		target += "/" + endpoint
	}

	values := url.Values{}
	for key, raw := range query {
		if v, ok := paramValue(raw); ok {
			values.Set(key, v)
		}
	}
	if encoded := values.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return target
}

func paramValue(raw any) (string, bool) {
	switch v := raw.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case *int:
		if v == nil {
			return "", false
		}
		return fmt.Sprint(*v), true
	case *int64:
		if v == nil {
			return "", false
		}
		return fmt.Sprint(*v), true
	case *bool:
		if v == nil {
			return "", false
		}
		return fmt.Sprint(*v), true
	default:
		return fmt.Sprint(v), true
	}
}

// Call performs the request once. Failures are always *Failure.
func (c *Client) Call(ctx context.Context, req Request) (*Result, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	target := c.BuildURL(req.Endpoint, req.Query)

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	result, err := c.do(callCtx, method, target, req)
	elapsed := time.Since(start)

	c.observe(ctx, req.Endpoint, result, err, elapsed)
	if err != nil {
		log.WithFields(log.Fields{
			"method":   method,
			"url":      target,
			"duration": elapsed,
		}).WithError(err).Warn("SBL API call failed")
		return nil, err
	}

	result.ResponseTime = elapsed
	return result, nil
}

func (c *Client) do(ctx context.Context, method, target string, req Request) (*Result, error) {
	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &Failure{Reason: ReasonUnknown, Message: "failed to encode request body", URL: target, Err: err}
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &Failure{Reason: ReasonUnknown, Message: "failed to build request", URL: target, Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", UserAgent)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(ctx, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransportError(ctx, target, err)
	}

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	if success && len(bytes.TrimSpace(data)) == 0 {
		return &Result{Data: json.RawMessage("null"), HTTPStatus: resp.StatusCode}, nil
	}

	if !isJSON(resp.Header.Get("Content-Type")) {
		snippet := []rune(string(data))
		if len(snippet) > diagnosticBodyLimit {
			snippet = snippet[:diagnosticBodyLimit]
		}
		log.WithFields(log.Fields{
			"url":          target,
			"status":       resp.StatusCode,
			"content_type": resp.Header.Get("Content-Type"),
			"body":         string(snippet),
		}).Debug("SBL API returned a non-JSON body")
		return nil, &Failure{
			HTTPStatus: resp.StatusCode,
			Reason:     ReasonNonJSONResponse,
			Message:    "response is not JSON",
			URL:        target,
		}
	}

	if !success {
		return nil, &Failure{
			HTTPStatus: resp.StatusCode,
			Reason:     ReasonHTTPError,
			Message:    upstreamMessage(data, resp.StatusCode),
			URL:        target,
		}
	}

	if !json.Valid(data) {
		return nil, &Failure{
			HTTPStatus: resp.StatusCode,
			Reason:     ReasonNonJSONResponse,
			Message:    "response body is not valid JSON",
			URL:        target,
		}
	}

	return &Result{Data: json.RawMessage(data), HTTPStatus: resp.StatusCode}, nil
}

func (c *Client) observe(ctx context.Context, endpoint string, result *Result, err error, elapsed time.Duration) {
	if c.observer == nil {
		return
	}
	status, reason := 0, ""
	if result != nil {
		status = result.HTTPStatus
	}
	if f, ok := AsFailure(err); ok {
		status, reason = f.HTTPStatus, string(f.Reason)
	}
	c.observer.RecordAPICall(ctx, endpointLabel(endpoint), status, reason, elapsed)
}

// endpointLabel collapses numeric path segments so metrics stay low-cardinality
func endpointLabel(endpoint string) string {
	parts := strings.Split(strings.Trim(endpoint, "/"), "/")
	for i, p := range parts {
		if p != "" && strings.Trim(p, "0123456789") == "" {
			parts[i] = "{id}"
		}
	}
	label := strings.Join(parts, "/")
	if label == "" {
		return "/"
	}
	return label
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "application/json")
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func upstreamMessage(data []byte, status int) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return http.StatusText(status)
}

func classifyTransportError(ctx context.Context, target string, err error) *Failure {
	f := &Failure{URL: target, Err: err, Message: err.Error()}

	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		f.Reason = ReasonTimeout
		f.Message = "request timed out"
	case errors.As(err, &dnsErr):
		f.Reason = ReasonDNSFailure
		f.Message = fmt.Sprintf("could not resolve host %s", dnsErr.Name)
	case errors.Is(err, syscall.ECONNREFUSED):
		f.Reason = ReasonConnectionRefused
		f.Message = "connection refused"
	case errors.As(err, &netErr) && netErr.Timeout():
		f.Reason = ReasonTimeout
		f.Message = "request timed out"
	default:
		f.Reason = ReasonUnknown
	}
	return f
}

// Decode unmarshals a result into T, reporting a shape mismatch as NonJsonResponse
func Decode[T any](res *Result, target string) (T, error) {
	var out T
	if err := json.Unmarshal(res.Data, &out); err != nil {
		return out, &Failure{
			HTTPStatus: res.HTTPStatus,
			Reason:     ReasonNonJSONResponse,
			Message:    "unexpected response shape",
			URL:        target,
			Err:        err,
		}
	}
	return out, nil
}
