package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultEndpoint = "http://localhost:5000/analyze"
	DefaultTimeout  = 30 * time.Second

	// responses larger than this are rejected as a transport failure
	maxResponseSize = 10 << 20
)

// Options configures a Client
type Options struct {
	Endpoint string
	Timeout  time.Duration
	Logger   *logrus.Logger
}

// Client submits URLs to the external analysis service
type Client struct {
	endpoint string
	client   *http.Client
	log      *logrus.Logger
}

// New creates a new Client instance
func New(opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		endpoint: opts.Endpoint,
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		log: opts.Logger,
	}
}

// Endpoint returns the analysis endpoint URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Analyze posts the URL to the analysis endpoint and returns the payload.
// Empty input fails with ErrEmptyURL before any request is made.
func (c *Client) Analyze(ctx context.Context, rawURL string) (*Result, error) {
	target := strings.TrimSpace(rawURL)
	if target == "" {
		return nil, ErrEmptyURL
	}

	start := time.Now()
	entry := c.log.WithFields(logrus.Fields{"url": target, "endpoint": c.endpoint})

	form := url.Values{"url": {target}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "SeoTagInspector/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		entry.WithError(err).Warn("analysis request failed")
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}
	if len(body) > maxResponseSize {
		return nil, &TransportError{Err: fmt.Errorf("response exceeds %d bytes", maxResponseSize)}
	}

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("invalid response (status %d): %w", resp.StatusCode, err)}
	}

	if !envelope.Success {
		entry.WithField("status", resp.StatusCode).Info("analysis rejected by service")
		return nil, &AppError{Message: envelope.Error, StatusCode: resp.StatusCode}
	}
	if envelope.Data == nil {
		return nil, &AppError{Message: "analysis response contained no data", StatusCode: resp.StatusCode}
	}

	entry.WithField("elapsed", time.Since(start).String()).Debug("analysis received")
	return envelope.Data, nil
}
