package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"equipment-tracker-backend/internal/model"
)

const equipmentPath = "/api/equipment"

// APIError is a non-2xx answer from the equipment service.
type APIError struct {
	StatusCode int
	Message    string   // set for not-found and internal errors
	Errors     []string // set for validation failures
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("%d: %s", e.StatusCode, strings.Join(e.Errors, "; "))
	}
	if e.Message != "" {
		return fmt.Sprintf("%d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// NotFound reports whether the service answered 404.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

type errorBody struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors"`
}

// Client talks to the equipment REST API.
type Client struct {
	http *resty.Client
}

// New creates a client for the service at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// List returns every equipment record.
func (c *Client) List(ctx context.Context) ([]model.Equipment, error) {
	var out []model.Equipment
	if err := c.do(ctx, http.MethodGet, equipmentPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create adds a new record.
func (c *Client) Create(ctx context.Context, in model.EquipmentInput) (model.Equipment, error) {
	var out model.Equipment
	err := c.do(ctx, http.MethodPost, equipmentPath, in, &out)
	return out, err
}

// Update replaces the editable fields of record id.
func (c *Client) Update(ctx context.Context, id int64, in model.EquipmentInput) (model.Equipment, error) {
	var out model.Equipment
	err := c.do(ctx, http.MethodPut, itemPath(id), in, &out)
	return out, err
}

// Delete removes record id and returns it.
func (c *Client) Delete(ctx context.Context, id int64) (model.Equipment, error) {
	var out model.Equipment
	err := c.do(ctx, http.MethodDelete, itemPath(id), nil, &out)
	return out, err
}

func itemPath(id int64) string {
	return equipmentPath + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var apiErr errorBody
	req := c.http.R().
		SetContext(ctx).
		SetResult(out).
		SetError(&apiErr)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		return &APIError{
			StatusCode: resp.StatusCode(),
			Message:    apiErr.Error,
			Errors:     apiErr.Errors,
		}
	}
	if !resp.IsSuccess() {
		return &APIError{StatusCode: resp.StatusCode()}
	}
	return nil
}
