package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/vidscribe/logger"
)

// Client sends single, non-retried requests to one service.
type Client struct {
	http   *http.Client
	config Config
	log    *logger.Logger
}

// New validates cfg and builds a Client with its own transport.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		http: &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   cfg.Timeout,
		},
		config: cfg,
		log:    logger.Get("httpclient"),
	}, nil
}

// Do sends req and reads the whole response. A non-2xx status returns the
// response together with a KindStatus *Error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.resolve(req.Path), bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("httpclient: build request: %w", err)
	}
	if len(req.Query) > 0 {
		httpReq.URL.RawQuery = req.Query.Encode()
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	req.Auth.set(httpReq.Header)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, exchangeError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, exchangeError(ctx, fmt.Errorf("read response body: %w", err))
	}
	c.log.Debug("http exchange", logger.MergeWithDuration(logger.Fields(
		"method", httpReq.Method,
		"url", httpReq.URL.Redacted(),
		logger.FieldStatus, resp.StatusCode,
		"request_bytes", len(req.Body),
		"response_bytes", len(body),
	), time.Since(start)))

	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}
	if statusErr := checkStatus(resp.StatusCode, body); statusErr != nil {
		return out, statusErr
	}
	return out, nil
}

func (c *Client) resolve(path string) string {
	if c.config.BaseURL == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// exchangeError tells a deadline from every other failure. A cancelled
// context is a transport failure, not a timeout.
func exchangeError(ctx context.Context, err error) *Error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Err: err}
	case ctx.Err() != nil:
		return &Error{Kind: KindTransport, Err: err}
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Err: err}
	}
	return &Error{Kind: KindTransport, Err: err}
}
