// Package client talks to the task REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/errors"
)

// DefaultBaseURL is the tasks collection URL used when none is configured.
const DefaultBaseURL = "http://localhost:5000/api/tasks"

const maxErrorBody = 4 << 10

// Client is an HTTP client for the tasks collection. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A nil client keeps
// the default.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout. It is applied to a copy of the
// HTTP client, whichever option order is used.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// New returns a client for the collection at baseURL,
// e.g. http://localhost:5000/api/tasks.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.NewInvalidInputError("baseURL", baseURL, "must be an absolute http(s) URL")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// BaseURL returns the collection URL the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// List fetches every task.
func (c *Client) List(ctx context.Context) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := c.do(ctx, http.MethodGet, c.baseURL, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// Get fetches one task by id.
func (c *Client) Get(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodGet, c.taskURL(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Create posts a new task.
func (c *Client) Create(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error) {
	body := map[string]interface{}{
		"title":       in.Title,
		"description": in.Description,
	}
	if in.Status != "" {
		body["status"] = in.Status
	}
	if in.DueDate != nil {
		body["dueDate"] = in.DueDate.String()
	}

	var task domain.Task
	if err := c.do(ctx, http.MethodPost, c.baseURL, body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update sends a partial update. Only the fields set in patch are
// transmitted; ClearDueDate sends an explicit null.
func (c *Client) Update(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPatch, c.taskURL(id), patchBody(patch), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Delete removes a task.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.taskURL(id), nil, nil)
}

func (c *Client) taskURL(id string) string {
	return c.baseURL + "/" + url.PathEscape(id)
}

func patchBody(patch domain.TaskPatch) map[string]interface{} {
	body := map[string]interface{}{}
	if patch.Title != nil {
		body["title"] = *patch.Title
	}
	if patch.Description != nil {
		body["description"] = *patch.Description
	}
	if patch.Status != nil {
		body["status"] = *patch.Status
	}
	switch {
	case patch.ClearDueDate:
		body["dueDate"] = nil
	case patch.DueDate != nil:
		body["dueDate"] = patch.DueDate.String()
	}
	return body
}

func (c *Client) do(ctx context.Context, method, target string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.WrapError(err, errors.ErrorTypeInvalidInput, "failed to encode request")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return errors.NewTransportError(method, target, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewTransportError(method, target, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(method, target, resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.NewTransportError(method, target, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusError maps a non-2xx response back onto the error taxonomy.
func statusError(method, target string, resp *http.Response) error {
	var payload apiError
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	json.Unmarshal(data, &payload)

	message := payload.Message
	if message == "" {
		message = strings.TrimSpace(string(data))
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusBadRequest:
		return errors.NewValidationError(message, nil)
	case http.StatusNotFound:
		appErr := errors.NewTransportError(method, target, resp.StatusCode, nil)
		appErr.Type = errors.ErrorTypeNotFound
		appErr.Code = "NOT_FOUND"
		appErr.Message = message
		return appErr
	default:
		return errors.NewTransportError(method, target, resp.StatusCode, fmt.Errorf("%s", message))
	}
}
