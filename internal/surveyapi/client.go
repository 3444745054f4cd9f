package surveyapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/survey/internal/survey"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 1 << 20

// SubmitRequest is the POST body sent on submit.
type SubmitRequest struct {
	SurveyResult string `json:"surveyResult"`
}

// Client talks to the members survey endpoint.
type Client struct {
	baseURL  string
	surveyID int
	client   *http.Client
	timeout  time.Duration
	logger   *zap.Logger
}

var _ survey.Backend = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout bounds each request. 0 disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the survey with the given ID under baseURL.
func New(baseURL string, surveyID int, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		surveyID: surveyID,
		client:   http.DefaultClient,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the survey resource URL used for both GET and POST.
func (c *Client) Endpoint() string {
	return fmt.Sprintf("%s/api/v1/members/survey/%d", c.baseURL, c.surveyID)
}

// FetchQuestions retrieves the question set.
func (c *Client) FetchQuestions(ctx context.Context) ([]survey.Item, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		return nil, statusError(req, status, body)
	}

	if err := validatePayload(body); err != nil {
		return nil, err
	}

	var items []survey.Item
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, &InvalidPayloadError{Content: body, Err: err}
	}
	return items, nil
}

// Submit posts the joined answers and returns the HTTP status code. The
// status is also returned alongside a *StatusError.
func (c *Client) Submit(ctx context.Context, result string) (int, error) {
	payload, err := json.Marshal(SubmitRequest{SurveyResult: result})
	if err != nil {
		return 0, fmt.Errorf("marshal submit request: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return 0, err
	}
	if !isSuccess(status) {
		return status, statusError(req, status, body)
	}
	return status, nil
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return resp.StatusCode, nil, fmt.Errorf("%s %s: %w (limit %d bytes)",
			req.Method, req.URL, ErrResponseTooLarge, maxBodyBytes)
	}

	c.logger.Debug("survey request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)
	return resp.StatusCode, body, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}

func statusError(req *http.Request, status int, body []byte) error {
	return &StatusError{
		Method:     req.Method,
		URL:        req.URL.String(),
		StatusCode: status,
		Body:       strings.TrimSpace(string(body)),
	}
}
