package remote

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

	"tableflip.dev/tempo/pkg/plan"
)

const defaultTimeout = 30 * time.Second

// APIError is a non-2xx response decoded from the service's {error} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote: server returned %d", e.StatusCode)
	}
	return e.Message
}

// Client implements Repository against a base URL.
type Client struct {
	base string
	http *http.Client
}

// NewClient builds a Client for the given base URL, for example
// "https://plan.example.com".
func NewClient(base string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client. Intended for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

var _ Repository = (*Client)(nil)

// Events lists events, keeping only ACTIVE ones.
func (c *Client) Events(ctx context.Context) ([]plan.Event, error) {
	var all []plan.Event
	if err := c.do(ctx, http.MethodGet, "/api/events", nil, nil, &all); err != nil {
		return nil, err
	}
	active := all[:0]
	for _, e := range all {
		if e.Status == plan.StatusActive {
			active = append(active, e)
		}
	}
	return active, nil
}

func (c *Client) Locations(ctx context.Context) ([]plan.Location, error) {
	var out []plan.Location
	err := c.do(ctx, http.MethodGet, "/api/locations", nil, nil, &out)
	return out, err
}

func (c *Client) EventLocations(ctx context.Context) ([]plan.EventLocation, error) {
	var out []plan.EventLocation
	err := c.do(ctx, http.MethodGet, "/api/event-locations", nil, nil, &out)
	return out, err
}

func (c *Client) WorkCategories(ctx context.Context, eventID string) ([]plan.WorkCategory, error) {
	q := url.Values{}
	if eventID != "" {
		q.Set("eventId", eventID)
	}
	var out []plan.WorkCategory
	err := c.do(ctx, http.MethodGet, "/api/work-categories", q, nil, &out)
	return out, err
}

func (c *Client) Allocations(ctx context.Context) ([]plan.Allocation, error) {
	var out []plan.Allocation
	err := c.do(ctx, http.MethodGet, "/api/allocations", nil, nil, &out)
	return out, err
}

func (c *Client) CreateAllocation(ctx context.Context, change AllocationChange) (plan.Allocation, error) {
	var out plan.Allocation
	err := c.do(ctx, http.MethodPost, "/api/allocations", nil, change, &out)
	return out, err
}

func (c *Client) UpdateAllocation(ctx context.Context, id string, change AllocationChange) (plan.Allocation, error) {
	var out plan.Allocation
	err := c.do(ctx, http.MethodPatch, "/api/allocations/"+url.PathEscape(id), nil, change, &out)
	return out, err
}

func (c *Client) DeleteAllocation(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/allocations/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) Evaluation(ctx context.Context, eventID string) (plan.Evaluation, error) {
	q := url.Values{}
	if eventID != "" {
		q.Set("eventId", eventID)
	}
	var out plan.Evaluation
	err := c.do(ctx, http.MethodGet, "/api/evaluation", q, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("remote: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("remote: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("remote: decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(data) > 0 {
		var body struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &body) == nil {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}
