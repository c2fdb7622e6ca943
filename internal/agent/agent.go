// Package agent runs conversations through the Responses API with a
// server-side MCP tool attachment. The API connects to the MCP server
// itself; the agent supplies coordinates and credentials, prints the
// exchange, and records the transcript.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"

	"aide/internal/history"
	"aide/internal/openai"
)

// MCPServer holds the coordinates of the MCP service attached to every
// model request.
type MCPServer struct {
	URL         string
	Label       string
	Description string
	Token       string
	AutoApprove bool
}

// Config configures an Agent.
type Config struct {
	Client      *openai.Client
	Model       string
	Temperature *float64
	MCP         MCPServer

	// History receives the transcript when non-nil. Conversations run
	// fine without it.
	History   *history.Store
	SessionID string

	// Verbose prints request and response detail to Out. The final
	// assistant text is printed regardless.
	Verbose bool
	Out     io.Writer
	Logger  *slog.Logger
}

// Agent drives Responses API conversations with MCP tools attached.
type Agent struct {
	client      *openai.Client
	model       string
	temperature *float64
	tools       []openai.MCPTool

	store     *history.Store
	sessionID string

	verbose bool
	out     io.Writer
	logger  *slog.Logger
}

// New creates an agent. A session ID is generated when cfg.SessionID
// is empty.
func New(cfg Config) *Agent {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.SessionID == "" {
		if id, err := uuid.NewV7(); err == nil {
			cfg.SessionID = id.String()
		}
	}

	approval := "always"
	if cfg.MCP.AutoApprove {
		approval = "never"
	}

	a := &Agent{
		client:      cfg.Client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		store:       cfg.History,
		sessionID:   cfg.SessionID,
		verbose:     cfg.Verbose,
		out:         cfg.Out,
		logger:      cfg.Logger,
	}

	if cfg.MCP.URL != "" {
		tool := openai.MCPTool{
			Type:              "mcp",
			ServerLabel:       cfg.MCP.Label,
			ServerDescription: cfg.MCP.Description,
			ServerURL:         cfg.MCP.URL,
			RequireApproval:   approval,
		}
		if cfg.MCP.Token != "" {
			tool.Headers = map[string]string{
				"Authorization": "Bearer " + cfg.MCP.Token,
			}
		}
		a.tools = []openai.MCPTool{tool}
	}

	return a
}

// SessionID returns the transcript session identifier.
func (a *Agent) SessionID() string {
	return a.sessionID
}

// RunConversation sends one user query, prints the exchange, and
// returns the assistant's aggregated output text. systemPrompt is
// included when non-empty; callers pass it on the first turn only.
func (a *Agent) RunConversation(ctx context.Context, query, systemPrompt string) (string, error) {
	var input []openai.Message

	if systemPrompt != "" {
		input = append(input, openai.Message{Role: "system", Content: systemPrompt})
		a.printMessage("system", systemPrompt)
		a.record(ctx, history.Record{Role: "system", Content: systemPrompt})
	}

	input = append(input, openai.Message{Role: "user", Content: query})
	a.printMessage("user", query)
	a.record(ctx, history.Record{Role: "user", Content: query})

	a.printSeparator("calling responses api")

	resp, err := a.client.Responses(ctx, &openai.Request{
		Model:       a.model,
		Input:       input,
		Tools:       a.tools,
		Temperature: a.temperature,
	})
	if err != nil {
		return "", err
	}

	a.printResponseInfo(resp)

	for _, call := range resp.ToolCalls() {
		a.printToolCall(call)
	}

	text := resp.OutputText()
	if text != "" {
		a.printMessage("assistant", text)
	}

	rec := history.Record{Role: "assistant", Content: text, Model: resp.Model}
	if resp.Usage != nil {
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
	}
	a.record(ctx, rec)

	return text, nil
}

// Chat reads queries from in, one per line, until exit, quit, or EOF.
// The first turn carries the system prompt.
func (a *Agent) Chat(ctx context.Context, in io.Reader, systemPrompt string) error {
	scanner := bufio.NewScanner(in)
	first := true

	for {
		fmt.Fprint(a.out, "\n> ")
		if !scanner.Scan() {
			fmt.Fprintln(a.out, "\nbye")
			return scanner.Err()
		}

		query := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(query) {
		case "":
			continue
		case "exit", "quit", "q":
			fmt.Fprintln(a.out, "bye")
			return nil
		}

		prompt := ""
		if first {
			prompt = systemPrompt
		}

		text, err := a.RunConversation(ctx, query, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(a.out, "error: %v\n", err)
			continue
		}
		first = false

		if !a.verbose && text != "" {
			fmt.Fprintln(a.out, text)
		}
	}
}

// record appends to the transcript store. Store failures are logged
// and never interrupt a conversation.
func (a *Agent) record(ctx context.Context, rec history.Record) {
	if a.store == nil {
		return
	}
	rec.SessionID = a.sessionID
	if err := a.store.Append(ctx, rec); err != nil {
		a.logger.Warn("failed to record transcript message",
			"session", a.sessionID,
			"role", rec.Role,
			"error", err,
		)
	}
}

func (a *Agent) printSeparator(title string) {
	if !a.verbose {
		return
	}
	line := strings.Repeat("=", 60)
	if title != "" {
		fmt.Fprintf(a.out, "\n%s\n%s\n%s\n", line, title, line)
	} else {
		fmt.Fprintln(a.out, line)
	}
}

func (a *Agent) printMessage(role, content string) {
	if !a.verbose {
		return
	}
	fmt.Fprintf(a.out, "\n[%s]:\n%s\n", strings.ToUpper(role), content)
}

func (a *Agent) printToolCall(call openai.OutputItem) {
	if !a.verbose {
		return
	}
	fmt.Fprintf(a.out, "\n[tool call] %s\n", call.Name)
	if call.Arguments != "" {
		fmt.Fprintf(a.out, "arguments: %s\n", call.Arguments)
	}
	if call.Error != "" {
		fmt.Fprintf(a.out, "error: %s\n", call.Error)
	} else if call.Output != "" {
		fmt.Fprintf(a.out, "output: %s\n", call.Output)
	}
}

func (a *Agent) printResponseInfo(resp *openai.Response) {
	if !a.verbose {
		return
	}
	line := strings.Repeat("-", 60)
	fmt.Fprintf(a.out, "\n%s\nresponse detail\n%s\n", line, line)
	fmt.Fprintf(a.out, "Response ID: %s\n", resp.ID)
	fmt.Fprintf(a.out, "Model: %s\n", resp.Model)
	fmt.Fprintf(a.out, "Status: %s\n", resp.Status)

	if resp.Usage != nil {
		fmt.Fprintln(a.out, "\nToken usage:")
		fmt.Fprintf(a.out, "  - Input: %d\n", resp.Usage.InputTokens)
		fmt.Fprintf(a.out, "  - Output: %d\n", resp.Usage.OutputTokens)
		fmt.Fprintf(a.out, "  - Total: %d\n", resp.Usage.TotalTokens)
	}
}
