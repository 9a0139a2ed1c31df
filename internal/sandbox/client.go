package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client executes code snippets through a Piston-compatible sandbox API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("sandbox base url is required")
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// ExecuteRequest mirrors the Piston execute payload.
type ExecuteRequest struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Files    []File `json:"files"`
	Stdin    string `json:"stdin,omitempty"`
}

type File struct {
	Name    string `json:"name,omitempty"`
	Content string `json:"content"`
}

// ExecuteResult carries the run output.
type ExecuteResult struct {
	Language string `json:"language"`
	Version  string `json:"version"`
	Run      Stage  `json:"run"`
	Compile  *Stage `json:"compile,omitempty"`
}

type Stage struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Code   *int   `json:"code"`
	Signal string `json:"signal,omitempty"`
	Output string `json:"output"`
}

// Execute runs the snippet and returns the sandbox output.
func (c *Client) Execute(ctx context.Context, req ExecuteRequest) (ExecuteResult, error) {
	if req.Language == "" {
		return ExecuteResult{}, errors.New("language is required")
	}
	if len(req.Files) == 0 {
		return ExecuteResult{}, errors.New("at least one file is required")
	}
	if req.Version == "" {
		req.Version = "*"
	}

	body, err := json.Marshal(req)
	if err != nil {
		return ExecuteResult{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/execute", bytes.NewReader(body))
	if err != nil {
		return ExecuteResult{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ExecuteResult{}, fmt.Errorf("sandbox request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return ExecuteResult{}, fmt.Errorf("sandbox status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out ExecuteResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return ExecuteResult{}, fmt.Errorf("sandbox response decode: %w", err)
	}
	return out, nil
}
