package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Vividata-Research/Atlas-OCR/core"
)

// parseRequest is the wire format sent to the backend's parse endpoint.
type parseRequest struct {
	FileData    string  `json:"file_data"`
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	DPI         int     `json:"dpi"`
	Threads     int     `json:"num_threads"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`
}

// parsePage is one per-page entry in the backend response. The backend
// may return a second rendition with headers and footers stripped.
type parsePage struct {
	Page         int    `json:"page"`
	Markdown     string `json:"markdown"`
	MarkdownNoHF string `json:"markdown_nohf,omitempty"`
}

type parseResponse struct {
	Pages []parsePage `json:"pages"`
}

// Client is the HTTP Invoker implementation.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Invoker = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default tuned HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithClientLogger sets a custom logger. Default is slog.Default().
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// NewClient creates an HTTP Invoker. The default client carries a tuned
// transport sized for a handful of concurrent long-running calls and no
// overall timeout: a recognition call blocks for as long as the backend
// needs.
func NewClient(opts ...ClientOption) *Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxConnsPerHost:     8,
		MaxIdleConnsPerHost: 8,
		MaxIdleConns:        32,
		IdleConnTimeout:     90 * time.Second,
	}
	c := &Client{
		httpClient: &http.Client{Transport: transport},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invoke posts the staged file to <backend>/parse and writes each returned
// page's markdown into the work directory as <id>_page_<n>.md, with a
// _nohf sibling when the backend supplies the stripped rendition.
func (c *Client) Invoke(ctx context.Context, req Request) ([]core.PageResult, error) {
	raw, err := os.ReadFile(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("%w: read staged input: %w", core.ErrInference, err)
	}

	payload := parseRequest{
		FileData:    base64.StdEncoding.EncodeToString(raw),
		Model:       req.Options.Model,
		Prompt:      req.Options.Prompt,
		DPI:         req.Options.DPI,
		Threads:     req.Options.Threads,
		Temperature: req.Options.Temperature,
		TopP:        req.Options.TopP,
		MaxTokens:   req.Options.MaxTokens,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", core.ErrInference, err)
	}

	url := req.Options.BackendURL + "/parse"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInference, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("invoking backend",
		"document_id", req.DocumentID,
		"url", url,
		"bytes", len(raw))
	started := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInference, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: %w: %d: %s",
			core.ErrInference, ErrBackendStatus, resp.StatusCode, string(detail))
	}

	var parsed parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", core.ErrInference, err)
	}

	results, err := c.writeArtifacts(req, parsed.Pages)
	if err != nil {
		return nil, err
	}

	c.logger.Info("backend call complete",
		"document_id", req.DocumentID,
		"pages", len(results),
		"elapsed", time.Since(started))
	return results, nil
}

func (c *Client) writeArtifacts(req Request, pages []parsePage) ([]core.PageResult, error) {
	if err := os.MkdirAll(req.WorkDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create work dir: %w", core.ErrInference, err)
	}

	results := make([]core.PageResult, 0, len(pages))
	for _, page := range pages {
		result := core.PageResult{Page: page.Page}

		if page.Markdown != "" {
			name := fmt.Sprintf("%s_page_%d.md", req.DocumentID, page.Page)
			path := filepath.Join(req.WorkDir, name)
			if err := os.WriteFile(path, []byte(page.Markdown), 0644); err != nil {
				return nil, fmt.Errorf("%w: write page artifact: %w", core.ErrInference, err)
			}
			result.MarkdownPath = path
		}

		if page.MarkdownNoHF != "" {
			name := fmt.Sprintf("%s_page_%d_nohf.md", req.DocumentID, page.Page)
			path := filepath.Join(req.WorkDir, name)
			if err := os.WriteFile(path, []byte(page.MarkdownNoHF), 0644); err != nil {
				return nil, fmt.Errorf("%w: write page artifact: %w", core.ErrInference, err)
			}
		}

		results = append(results, result)
	}
	return results, nil
}
