// Package client talks to the availability API and holds the editor and
// browser state used by mentor and mentee calendar screens.
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
	"time"

	"mentorhub/internal/modules/availability"
	"mentorhub/internal/pkg/response"
)

// ErrNetwork wraps transport failures. No request is retried.
var ErrNetwork = errors.New("network error")

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error %d %s", e.Status, e.Code)
	}
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MentorDay returns the signed-in mentor's day including booked slots.
func (c *Client) MentorDay(ctx context.Context, date string) (*availability.DayAvailability, error) {
	var out availability.DayAvailability
	q := url.Values{"date": {date}}
	if err := c.do(ctx, http.MethodGet, "/api/v1/mentor/availability", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OpenDay returns the unbooked slots of a mentor on date.
func (c *Client) OpenDay(ctx context.Context, mentorID int64, date string) (*availability.DayAvailability, error) {
	var out availability.DayAvailability
	q := url.Values{"mentorId": {strconv.FormatInt(mentorID, 10)}, "date": {date}}
	if err := c.do(ctx, http.MethodGet, "/api/v1/availability", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Month returns the days of month (YYYY-MM) that have at least one slot.
func (c *Client) Month(ctx context.Context, mentorID int64, month string) (*availability.MonthIndex, error) {
	var out availability.MonthIndex
	q := url.Values{"mentorId": {strconv.FormatInt(mentorID, 10)}, "month": {month}}
	if err := c.do(ctx, http.MethodGet, "/api/v1/availability", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveDay replaces the mentor's whole day with req.
func (c *Client) SaveDay(ctx context.Context, req availability.SaveDayRequest) (*availability.DayAvailability, error) {
	var out availability.DayAvailability
	if err := c.do(ctx, http.MethodPost, "/api/v1/availability", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Message(apiErr.Code)
		}
		return apiErr
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}
