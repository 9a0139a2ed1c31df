package gists

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

const defaultAPIURL = "https://api.github.com/gists"

// Client creates GitHub gists for sharing rewritten code.
type Client struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

func NewClient(token string) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("gist token is required")
	}
	return &Client{
		token:      token,
		apiURL:     defaultAPIURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type createRequest struct {
	Description string                 `json:"description"`
	Public      bool                   `json:"public"`
	Files       map[string]gistContent `json:"files"`
}

type gistContent struct {
	Content string `json:"content"`
}

type createResponse struct {
	HTMLURL string `json:"html_url"`
}

// Create publishes a single-file gist and returns its HTML URL.
func (c *Client) Create(ctx context.Context, description, fileName, content string, public bool) (string, error) {
	if strings.TrimSpace(fileName) == "" {
		fileName = "snippet.txt"
	}
	if content == "" {
		return "", errors.New("gist content is empty")
	}

	body, err := json.Marshal(createRequest{
		Description: description,
		Public:      public,
		Files:       map[string]gistContent{fileName: {Content: content}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gist request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("gist create status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out createResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("gist response decode: %w", err)
	}
	if out.HTMLURL == "" {
		return "", errors.New("gist response missing html_url")
	}
	return out.HTMLURL, nil
}
