package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/dmitrijs2005/idolcode/internal/common"
	"github.com/dmitrijs2005/idolcode/internal/logging"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

var _ Client = (*HTTPClient)(nil)

// HTTPClient talks to the backend over HTTP with JSON bodies.
type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger

	mu    sync.RWMutex
	token string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout bounds every request that has no earlier deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient returns a client rooted at baseURL, e.g.
// "https://api.example.com". Paths are appended below it.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", baseURL)
	}

	c := &HTTPClient{
		baseURL: u,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetToken sets the bearer token sent with every request. Empty clears it.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, c.endpoint(nil, "api", "health"), nil, nil)
}

func (c *HTTPClient) SearchCoders(ctx context.Context, query string, limit int) ([]models.Coder, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("limit", strconv.Itoa(limit))

	var coders []models.Coder
	if err := c.do(ctx, http.MethodGet, c.endpoint(q, "api", "coders", "search"), nil, &coders); err != nil {
		return nil, err
	}
	return coders, nil
}

type credentials struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

func (c *HTTPClient) Login(ctx context.Context, handle, password string) (*AuthResult, error) {
	return c.auth(ctx, "login", handle, password)
}

func (c *HTTPClient) Register(ctx context.Context, handle, password string) (*AuthResult, error) {
	return c.auth(ctx, "register", handle, password)
}

func (c *HTTPClient) auth(ctx context.Context, action, handle, password string) (*AuthResult, error) {
	var body map[string]any
	err := c.do(ctx, http.MethodPost, c.endpoint(nil, "api", "auth", action), credentials{handle, password}, &body)
	if err != nil {
		return nil, err
	}

	if ok, _ := body["success"].(bool); !ok {
		detail, _ := body["detail"].(string)
		return nil, &APIError{StatusCode: http.StatusOK, Detail: detail, Err: ErrRejected}
	}

	result := &AuthResult{Handle: handle, Profile: body}
	if h, ok := body["handle"].(string); ok && h != "" {
		result.Handle = h
	}
	if token, ok := body["token"].(string); ok && token != "" {
		c.SetToken(token)
	}
	return result, nil
}

func (c *HTTPClient) SaveIdol(ctx context.Context, handle, idolHandle string) error {
	req := struct {
		Handle     string `json:"handle"`
		IdolHandle string `json:"idolHandle"`
	}{handle, idolHandle}
	return c.do(ctx, http.MethodPut, c.endpoint(nil, "api", "auth", "idol"), req, nil)
}

func (c *HTTPClient) Dashboard(ctx context.Context, handle, idolHandle string, refresh bool) (*models.DashboardData, error) {
	q := url.Values{}
	q.Set("refresh", strconv.FormatBool(refresh))
	q.Set("idol", idolHandle)

	var data models.DashboardData
	if err := c.do(ctx, http.MethodGet, c.endpoint(q, "api", "dashboard-data", handle), nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *HTTPClient) SkillComparison(ctx context.Context, handle, idolHandle string, topics []string) (*models.SkillComparison, error) {
	var q url.Values
	if len(topics) > 0 {
		q = url.Values{}
		q.Set("topics", strings.Join(topics, ","))
	}

	var data models.SkillComparison
	if err := c.do(ctx, http.MethodGet, c.endpoint(q, "api", "skill-comparison", handle, idolHandle), nil, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *HTTPClient) ProblemHistory(ctx context.Context, handle string) ([]models.HistoryEntry, error) {
	var resp struct {
		History []models.HistoryEntry `json:"history"`
	}
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "api", "problem-history", handle), nil, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}

func (c *HTTPClient) RecordHistory(ctx context.Context, entry models.HistoryEntry) error {
	return c.do(ctx, http.MethodPost, c.endpoint(nil, "api", "problem-history"), entry, nil)
}

func (c *HTTPClient) CheckSubmissions(ctx context.Context, handle string, problemIDs []string) (map[string]models.SubmissionStatus, error) {
	q := url.Values{}
	q.Set("problem_ids", strings.Join(problemIDs, ","))

	var resp struct {
		Submissions map[string]models.SubmissionStatus `json:"submissions"`
	}
	if err := c.do(ctx, http.MethodGet, c.endpoint(q, "api", "check-submissions", handle), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Submissions == nil {
		resp.Submissions = map[string]models.SubmissionStatus{}
	}
	return resp.Submissions, nil
}

func (c *HTTPClient) Problem(ctx context.Context, contestID, index string) (*models.Problem, error) {
	var p models.Problem
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "api", "problem", contestID, index), nil, &p); err != nil {
		return nil, err
	}
	if p.ContestID == "" {
		p.ContestID = models.FlexString(contestID)
	}
	if p.Index == "" {
		p.Index = index
	}
	return &p, nil
}

func (c *HTTPClient) TestCode(ctx context.Context, req models.TestCodeRequest) (*models.TestReport, error) {
	var report models.TestReport
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "api", "test-code"), req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *HTTPClient) DuckChat(ctx context.Context, req models.DuckChatRequest) (string, error) {
	var resp struct {
		Reply string `json:"reply"`
	}
	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "api", "duck-chat"), req, &resp); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

func (c *HTTPClient) endpoint(q url.Values, segments ...string) string {
	u := c.baseURL.JoinPath(segments...)
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		c.logger.Debug(ctx, "request failed", "method", method, "url", endpoint, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.logger.Debug(ctx, "request done",
		"method", method, "url", endpoint, "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Detail:     parseDetail(data),
			Err:        sentinelFor(resp.StatusCode),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

// parseDetail extracts the message from an error body. The backend sends
// either {"detail": "text"} or a list of validation problems with a "msg"
// field each.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return s
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
