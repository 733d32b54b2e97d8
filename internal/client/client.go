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

	"github.com/JustJay7/nyaya-mitra/internal/database"
)

// APIError is a non-2xx response from the case service.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
	Detail     string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%d): %s", e.Message, e.StatusCode, e.Detail)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s (%d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("HTTP error! Status: %d", e.StatusCode)
}

// NewCase is the input of CreateCase.
type NewCase struct {
	CaseTitle       string `json:"caseTitle"`
	PartiesInvolved string `json:"partiesInvolved"`
	CaseDescription string `json:"caseDescription"`
}

// Client talks to the case service's JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for an API root such as http://localhost:5000/api.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// CreateCase submits a new case.
func (c *Client) CreateCase(ctx context.Context, in NewCase) (*database.Case, error) {
	var out database.Case
	if err := c.do(ctx, http.MethodPost, "/cases", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCases returns every case, newest first.
func (c *Client) ListCases(ctx context.Context) ([]database.Case, error) {
	var out []database.Case
	if err := c.do(ctx, http.MethodGet, "/cases", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCase fetches one case.
func (c *Client) GetCase(ctx context.Context, id string) (*database.Case, error) {
	var out database.Case
	if err := c.do(ctx, http.MethodGet, "/cases/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateJudgment triggers judgment generation and returns the updated case.
func (c *Client) GenerateJudgment(ctx context.Context, id string) (*database.Case, error) {
	var out database.Case
	path := "/cases/" + url.PathEscape(id) + "/generate-judgment"
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(data, apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
