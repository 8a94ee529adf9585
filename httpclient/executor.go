package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"

	"github.com/coder/quartz"

	"github.com/snapmill/snapmill-go/logger"
	"github.com/snapmill/snapmill-go/trace"
)

// Client executes API requests. It holds no per-call state; concurrent
// calls on one instance are safe without locking.
type Client struct {
	httpClient *nethttp.Client
	config     *Config
	log        logger.Logger
	clock      quartz.Clock
}

// New creates a pipeline client. The base URL loses any trailing slashes
// and the retry configuration is validated up front.
func New(cfg *Config, log logger.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if err := cfg.Retry.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retry config: %w", err)
	}

	c := *cfg
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Client{
		// The attempt deadline lives on the per-attempt context, not here.
		httpClient: &nethttp.Client{},
		config:     &c,
		log:        log,
		clock:      quartz.NewReal(),
	}, nil
}

// WithTransport replaces the underlying HTTP transport. Used by callers
// that need custom TLS or proxy settings.
func (c *Client) WithTransport(rt nethttp.RoundTripper) *Client {
	c.httpClient.Transport = rt
	return c
}

// execute performs exactly one network attempt under a fresh timeout.
func (c *Client) execute(ctx context.Context, req *Request) (*Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	httpReq, err := c.buildRequest(attemptCtx, req)
	if err != nil {
		return nil, err
	}

	c.logRequest(httpReq, req)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		// Mid-body deadline expiry surfaces here rather than from Do.
		return nil, classifyTransport(err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Raw:        body,
	}
	c.logResponse(resp)

	if !IsSuccessStatus(httpResp.StatusCode) {
		retryAfter := parseRetryAfter(httpResp.Header.Get("Retry-After"))
		return nil, Classify(httpResp.StatusCode, body, retryAfter)
	}
	return resp, nil
}

// buildRequest composes the target URL, encodes the body, and sets the
// credential, content negotiation, and correlation headers.
func (c *Client) buildRequest(ctx context.Context, req *Request) (*nethttp.Request, error) {
	target := c.config.BaseURL + req.Path
	if query := encodeQuery(req.Query); query != "" {
		target += "?" + query
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, NewValidationError(fmt.Sprintf("failed to encode request body: %v", err), nil)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := nethttp.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("failed to build request: %v", err), nil)
	}

	httpReq.Header.Set(HeaderAccessKey, c.config.AccessKey)
	httpReq.Header.Set(trace.HeaderXRequestID, trace.EnsureRequestID(ctx))
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", contentTypeJSON)
	}
	if req.Binary {
		httpReq.Header.Set("Accept", acceptBinary)
	} else {
		httpReq.Header.Set("Accept", contentTypeJSON)
	}
	return httpReq, nil
}

// encodeQuery renders the query map, skipping nil-valued entries.
func encodeQuery(query map[string]any) string {
	if len(query) == 0 {
		return ""
	}
	values := url.Values{}
	for key, value := range query {
		if value == nil {
			continue
		}
		values.Set(key, fmt.Sprint(value))
	}
	return values.Encode()
}
