// Package openai implements a minimal client for the OpenAI Responses
// API, covering the two calls aide makes: plain text generation and
// agent turns with remote MCP tools attached. It is not a general SDK;
// only the fields aide reads and writes are modeled.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"aide/internal/config"
	"aide/internal/httpkit"
)

// Client talks to an OpenAI-compatible Responses API endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Responses API client. baseURL is the API root
// (e.g. "https://api.openai.com/v1"); the /responses path is appended
// per request.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	// Model responses can take a long time before headers arrive
	// (thinking, server-side MCP round trips). Use a generous response
	// header timeout and no overall client timeout; callers bound
	// requests with ctx deadlines.
	t := httpkit.NewTransport()
	t.ResponseHeaderTimeout = 120 * time.Second

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger.With("provider", "openai"),
		httpClient: httpkit.NewClient(
			httpkit.WithTimeout(0),
			httpkit.WithTransport(t),
		),
	}
}

// Message is one input item in a Responses API request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MCPTool configures a server-side MCP tool attachment. The API
// connects to the MCP server itself; aide only supplies the coordinates.
type MCPTool struct {
	Type              string            `json:"type"` // always "mcp"
	ServerLabel       string            `json:"server_label"`
	ServerDescription string            `json:"server_description,omitempty"`
	ServerURL         string            `json:"server_url"`
	RequireApproval   string            `json:"require_approval,omitempty"` // "never" or "always"
	Headers           map[string]string `json:"headers,omitempty"`
}

// Request is a Responses API request.
type Request struct {
	Model       string    `json:"model"`
	Input       []Message `json:"input"`
	Tools       []MCPTool `json:"tools,omitempty"`
	Temperature *float64  `json:"temperature,omitempty"`
}

// ContentPart is one part of an output message's content.
type ContentPart struct {
	Type string `json:"type"` // "output_text", "refusal", ...
	Text string `json:"text,omitempty"`
}

// OutputItem is one item in a response's output array. The set of
// populated fields depends on Type:
//
//   - "message": Role and Content
//   - "mcp_call": Name, Arguments, Output, Error
//   - "mcp_list_tools": ServerLabel
type OutputItem struct {
	Type        string        `json:"type"`
	Role        string        `json:"role,omitempty"`
	Content     []ContentPart `json:"content,omitempty"`
	Name        string        `json:"name,omitempty"`
	Arguments   string        `json:"arguments,omitempty"`
	Output      string        `json:"output,omitempty"`
	Error       string        `json:"error,omitempty"`
	ServerLabel string        `json:"server_label,omitempty"`
}

// Usage reports token consumption for a response.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Response is a Responses API response.
type Response struct {
	ID     string       `json:"id"`
	Model  string       `json:"model"`
	Status string       `json:"status"`
	Output []OutputItem `json:"output"`
	Usage  *Usage       `json:"usage,omitempty"`
}

// OutputText aggregates all output_text parts from assistant messages,
// in order. Mirrors the SDK convenience field of the same name.
func (r *Response) OutputText() string {
	var parts []string
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "output_text" && c.Text != "" {
				parts = append(parts, c.Text)
			}
		}
	}
	return strings.Join(parts, "")
}

// TextParts returns every output_text part as a separate string. Used
// by callers that try to JSON-decode each part independently.
func (r *Response) TextParts() []string {
	var parts []string
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "output_text" {
				parts = append(parts, c.Text)
			}
		}
	}
	return parts
}

// ToolCalls returns the mcp_call items from the output, in order.
func (r *Response) ToolCalls() []OutputItem {
	var calls []OutputItem
	for _, item := range r.Output {
		if item.Type == "mcp_call" {
			calls = append(calls, item)
		}
	}
	return calls
}

// Responses sends a request to POST {base}/responses and decodes the
// result. Non-2xx statuses are returned as errors carrying the status
// code and a body snippet.
func (c *Client) Responses(ctx context.Context, req *Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	c.logger.Log(ctx, config.LevelTrace, "responses request", "payload", string(body))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("responses request: %w", err)
	}
	defer httpkit.DrainAndClose(httpResp.Body, 1<<20)

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		errBody := httpkit.ReadErrorBody(httpResp.Body, 4<<10)
		return nil, fmt.Errorf("responses API returned %d: %s", httpResp.StatusCode, errBody)
	}

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	c.logger.Log(ctx, config.LevelTrace, "responses response", "payload", string(respBody))

	var resp Response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	c.logger.Debug("responses call complete",
		"response_id", resp.ID,
		"model", resp.Model,
		"status", resp.Status,
		"elapsed", time.Since(start).Truncate(time.Millisecond),
	)

	return &resp, nil
}
