// Aide is a toolbox of small assistant commands: an OPML-driven RSS
// poller, a file-change watcher that shells out to a command, a
// JSON-RPC client for listing MCP tools, and a Responses API agent
// with a server-side MCP tool attachment.
//
// Configuration is loaded from a single YAML file discovered
// automatically (see [config.DefaultSearchPaths]); OPENAI_* and MCP_*
// environment variables fill in anything the file leaves empty.
//
// Usage:
//
//	aide fetch <file.opml>      Fetch every feed once (add -loop to repeat)
//	aide watch <target> <cmd>   Run a command when files change
//	aide tools <endpoint>       List the tools an MCP endpoint offers
//	aide similar <query>        Generate similar questions for a query
//	aide agent <query>          One-shot agent query with MCP tools
//	aide chat                   Interactive agent conversation
//	aide history list           List recorded conversations
//	aide version                Print version and build information
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"aide/internal/agent"
	"aide/internal/buildinfo"
	"aide/internal/config"
	"aide/internal/feeds"
	"aide/internal/history"
	"aide/internal/mcp"
	"aide/internal/openai"
	"aide/internal/similar"
	"aide/internal/watch"
)

// main is intentionally minimal. It constructs the OS-level environment
// (context, stdio, argv) and delegates immediately to [run] so the full
// lifecycle can be driven from tests.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// globalOpts are the flags accepted before the subcommand name.
type globalOpts struct {
	configPath string
	logLevel   string
	logFormat  string
}

// run is the real entry point for the aide command. OS-level
// dependencies are injected: ctx controls the process lifetime, stdout
// and stderr receive all output, and args is os.Args[1:].
//
// Arguments are parsed by hand. The flag package relies on global state
// (flag.CommandLine), which makes it impossible to call run()
// concurrently from tests, and the argument surface is small enough
// that manual parsing is clearer than a CLI framework.
func run(ctx context.Context, stdout io.Writer, stderr io.Writer, args []string) error {
	var g globalOpts
	var command string
	var cmdArgs []string

	for i := 0; i < len(args); i++ {
		switch {
		case command != "":
			cmdArgs = append(cmdArgs, args[i])
		case args[i] == "-config" && i+1 < len(args):
			g.configPath = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-config="):
			g.configPath = strings.TrimPrefix(args[i], "-config=")
		case args[i] == "-log-level" && i+1 < len(args):
			g.logLevel = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-log-level="):
			g.logLevel = strings.TrimPrefix(args[i], "-log-level=")
		case args[i] == "-log-format" && i+1 < len(args):
			g.logFormat = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-log-format="):
			g.logFormat = strings.TrimPrefix(args[i], "-log-format=")
		case args[i] == "-h" || args[i] == "-help" || args[i] == "--help":
			return printUsage(stdout)
		case !strings.HasPrefix(args[i], "-"):
			command = args[i]
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	switch command {
	case "fetch":
		return runFetch(ctx, stdout, g, cmdArgs)
	case "watch":
		return runWatch(ctx, stdout, g, cmdArgs)
	case "tools":
		return runTools(ctx, stdout, g, cmdArgs)
	case "similar":
		return runSimilar(ctx, stdout, g, cmdArgs)
	case "agent":
		return runAgent(ctx, stdout, g, cmdArgs)
	case "chat":
		return runChat(ctx, stdout, g, cmdArgs)
	case "history":
		return runHistory(ctx, stdout, g, cmdArgs)
	case "version":
		return runVersion(stdout, cmdArgs)
	case "":
		return printUsage(stdout)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// setup loads and validates configuration and builds the logger.
// Command-line level and format override the file.
func setup(stdout io.Writer, g globalOpts) (*config.Config, *slog.Logger, error) {
	cfg, _, err := loadConfig(g.configPath)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	levelName := cfg.LogLevel
	if g.logLevel != "" {
		levelName = g.logLevel
	}
	level, err := config.ParseLogLevel(levelName)
	if err != nil {
		return nil, nil, err
	}

	format := cfg.LogFormat
	if g.logFormat != "" {
		format = g.logFormat
	}

	return cfg, newLogger(stdout, level, format), nil
}

// runFetch handles "aide fetch <file.opml>". The OPML file is loaded
// once before the first round; a parse failure is the only error that
// affects exit status. Interrupting a looped fetch is a clean exit.
func runFetch(ctx context.Context, stdout io.Writer, g globalOpts, args []string) error {
	var opmlPath string
	var loop bool
	maxConcurrent := 0
	waitSec := -1

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-loop":
			loop = true
		case args[i] == "-max-concurrent" && i+1 < len(args):
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				return fmt.Errorf("invalid -max-concurrent: %s", args[i+1])
			}
			maxConcurrent = n
			i++
		case args[i] == "-wait" && i+1 < len(args):
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				return fmt.Errorf("invalid -wait: %s", args[i+1])
			}
			waitSec = n
			i++
		case !strings.HasPrefix(args[i], "-") && opmlPath == "":
			opmlPath = args[i]
		default:
			return fmt.Errorf("unknown fetch argument: %s", args[i])
		}
	}
	if opmlPath == "" {
		return fmt.Errorf("usage: aide fetch <file.opml> [-loop] [-max-concurrent n] [-wait sec]")
	}

	cfg, logger, err := setup(stdout, g)
	if err != nil {
		return err
	}
	if maxConcurrent == 0 {
		maxConcurrent = cfg.Feeds.MaxConcurrent
	}
	wait := cfg.FeedWait()
	if waitSec == 0 {
		wait = -1 // cooldown disabled
	} else if waitSec > 0 {
		wait = time.Duration(waitSec) * time.Second
	}

	urls, err := feeds.LoadOPML(opmlPath, logger)
	if err != nil {
		return fmt.Errorf("load %s: %w", opmlPath, err)
	}

	f := feeds.NewFetcher(feeds.Config{
		MaxConcurrent: maxConcurrent,
		BaseWait:      wait,
		Logger:        logger,
	})
	f.Run(ctx, urls, loop)
	return nil
}

// runWatch handles "aide watch <target> <command...>". Everything after
// the flags and target joins into a single shell command.
func runWatch(ctx context.Context, stdout io.Writer, g globalOpts, args []string) error {
	var target string
	var cmdParts []string
	var runOnStart bool
	debounceMS := 0
	timeoutSec := 0

	for i := 0; i < len(args); i++ {
		switch {
		case len(cmdParts) > 0:
			cmdParts = append(cmdParts, args[i])
		case args[i] == "-run-on-start":
			runOnStart = true
		case args[i] == "-debounce" && i+1 < len(args):
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				return fmt.Errorf("invalid -debounce: %s", args[i+1])
			}
			debounceMS = n
			i++
		case args[i] == "-timeout" && i+1 < len(args):
			n, err := strconv.Atoi(args[i+1])
			if err != nil {
				return fmt.Errorf("invalid -timeout: %s", args[i+1])
			}
			timeoutSec = n
			i++
		case target == "":
			target = args[i]
		default:
			cmdParts = append(cmdParts, args[i])
		}
	}
	if target == "" || len(cmdParts) == 0 {
		return fmt.Errorf("usage: aide watch <target> <command...> [-debounce ms] [-timeout sec] [-run-on-start]")
	}

	cfg, logger, err := setup(stdout, g)
	if err != nil {
		return err
	}
	if debounceMS == 0 {
		debounceMS = cfg.Watch.DebounceMS
	}
	if timeoutSec == 0 {
		timeoutSec = cfg.Watch.CmdTimeoutSec
	}

	runner := watch.NewRunner(watch.RunnerConfig{
		Timeout:        time.Duration(timeoutSec) * time.Second,
		MaxOutputBytes: cfg.Watch.MaxOutputBytes,
	})

	w, err := watch.New(watch.Config{
		Target:     target,
		Command:    strings.Join(cmdParts, " "),
		Debounce:   time.Duration(debounceMS) * time.Millisecond,
		RunOnStart: runOnStart,
		Runner:     runner,
		Out:        stdout,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	return w.Watch(ctx)
}

// runTools handles "aide tools <endpoint>". The endpoint must speak
// streamable HTTP JSON-RPC; tools/list is issued without a handshake,
// matching what most servers accept for a read-only listing.
func runTools(ctx context.Context, stdout io.Writer, g globalOpts, args []string) error {
	var endpoint, token string

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-token" && i+1 < len(args):
			token = args[i+1]
			i++
		case !strings.HasPrefix(args[i], "-") && endpoint == "":
			endpoint = args[i]
		default:
			return fmt.Errorf("unknown tools argument: %s", args[i])
		}
	}
	if endpoint == "" {
		return fmt.Errorf("usage: aide tools <endpoint> [-token t]")
	}

	cfg, logger, err := setup(stdout, g)
	if err != nil {
		return err
	}
	if token == "" {
		token = cfg.MCP.Token
	}

	var headers map[string]string
	if token != "" {
		headers = map[string]string{"Authorization": "Bearer " + token}
	}

	transport := mcp.NewHTTPTransport(mcp.HTTPConfig{
		URL:     endpoint,
		Headers: headers,
		Logger:  logger,
	})
	client := mcp.NewClient(transport, logger)
	defer client.Close()

	tools, err := client.ListTools(ctx)
	if err != nil {
		return fmt.Errorf("list tools: %w", err)
	}

	if len(tools) == 0 {
		fmt.Fprintln(stdout, "no tools available")
		return nil
	}

	fmt.Fprintf(stdout, "found %d tools:\n\n", len(tools))
	for i, tool := range tools {
		fmt.Fprintf(stdout, "%d. %s\n", i+1, tool.Name)
		if tool.Description != "" {
			fmt.Fprintf(stdout, "   description: %s\n", tool.Description)
		}
		if len(tool.InputSchema) > 0 {
			schema, err := json.MarshalIndent(tool.InputSchema, "   ", "  ")
			if err == nil {
				fmt.Fprintf(stdout, "   schema: %s\n", schema)
			}
		}
		fmt.Fprintln(stdout)
	}
	return nil
}

// runSimilar handles "aide similar <query>". Generated questions print
// one per line; no decodable model output prints nothing.
func runSimilar(ctx context.Context, stdout io.Writer, g globalOpts, args []string) error {
	var query, baseURL, apiKey, model string
	topn := similar.DefaultTopN

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-topn" && i+1 < len(args):
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 1 {
				return fmt.Errorf("invalid -topn: %s", args[i+1])
			}
			topn = n
			i++
		case args[i] == "-base-url" && i+1 < len(args):
			baseURL = args[i+1]
			i++
		case args[i] == "-api-key" && i+1 < len(args):
			apiKey = args[i+1]
			i++
		case args[i] == "-model" && i+1 < len(args):
			model = args[i+1]
			i++
		case !strings.HasPrefix(args[i], "-") && query == "":
			query = args[i]
		default:
			return fmt.Errorf("unknown similar argument: %s", args[i])
		}
	}
	if query == "" {
		return fmt.Errorf("usage: aide similar <query> [-topn n] [-base-url u] [-api-key k] [-model m]")
	}

	cfg, logger, err := setup(stdout, g)
	if err != nil {
		return err
	}
	oc := cfg.OpenAI
	if baseURL != "" {
		oc.BaseURL = baseURL
	}
	if apiKey != "" {
		oc.APIKey = apiKey
	}
	if model != "" {
		oc.Model = model
	}
	if !oc.Configured() {
		return missingSettings(oc, "")
	}

	gen := similar.NewGenerator(openai.NewClient(oc.BaseURL, oc.APIKey, logger), oc.Model, logger)
	questions, err := gen.Generate(ctx, query, topn)
	if err != nil {
		return err
	}
	for _, q := range questions {
		fmt.Fprintln(stdout, q)
	}
	return nil
}

// agentOpts are the flag overrides shared by agent and chat.
type agentOpts struct {
	query    string
	mcpURL   string
	mcpToken string
	mcpLabel string
	quiet    bool
}

func parseAgentArgs(args []string, wantQuery bool) (agentOpts, error) {
	var o agentOpts
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-mcp-url" && i+1 < len(args):
			o.mcpURL = args[i+1]
			i++
		case args[i] == "-mcp-token" && i+1 < len(args):
			o.mcpToken = args[i+1]
			i++
		case args[i] == "-mcp-label" && i+1 < len(args):
			o.mcpLabel = args[i+1]
			i++
		case args[i] == "-quiet":
			o.quiet = true
		case !strings.HasPrefix(args[i], "-") && wantQuery && o.query == "":
			o.query = args[i]
		default:
			return o, fmt.Errorf("unknown argument: %s", args[i])
		}
	}
	if wantQuery && o.query == "" {
		return o, fmt.Errorf("usage: aide agent <query> [-mcp-url u] [-mcp-token t] [-mcp-label l] [-quiet]")
	}
	return o, nil
}

// newAgent builds an agent from config plus flag overrides. The
// transcript store is optional; a store that fails to open degrades to
// an unrecorded conversation.
func newAgent(o agentOpts, cfg *config.Config, stdout io.Writer, logger *slog.Logger) (*agent.Agent, func(), error) {
	oc := cfg.OpenAI
	mc := cfg.MCP
	if o.mcpURL != "" {
		mc.URL = o.mcpURL
	}
	if o.mcpToken != "" {
		mc.Token = o.mcpToken
	}
	if o.mcpLabel != "" {
		mc.Label = o.mcpLabel
	}

	if !oc.Configured() || mc.Token == "" || mc.URL == "" {
		return nil, nil, missingSettingsMCP(oc, mc)
	}

	autoApprove := true
	if mc.AutoApprove != nil {
		autoApprove = *mc.AutoApprove
	}

	var temperature *float64
	if oc.Temperature != 0 {
		t := oc.Temperature
		temperature = &t
	}

	var store *history.Store
	cleanup := func() {}
	dbPath := cfg.HistoryDBPath()
	if dbPath != "" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			logger.Warn("transcript store unavailable", "path", dbPath, "error", err)
		} else if s, err := history.Open(dbPath); err != nil {
			logger.Warn("transcript store unavailable", "path", dbPath, "error", err)
		} else {
			store = s
			cleanup = func() { s.Close() }
		}
	}

	a := agent.New(agent.Config{
		Client:      openai.NewClient(oc.BaseURL, oc.APIKey, logger),
		Model:       oc.Model,
		Temperature: temperature,
		MCP: agent.MCPServer{
			URL:         mc.URL,
			Label:       mc.Label,
			Description: mc.Description,
			Token:       mc.Token,
			AutoApprove: autoApprove,
		},
		History: store,
		Verbose: !o.quiet,
		Out:     stdout,
		Logger:  logger,
	})
	return a, cleanup, nil
}

// runAgent handles "aide agent <query>": one conversation turn with the
// MCP tool attached, then the final text.
func runAgent(ctx context.Context, stdout io.Writer, g globalOpts, args []string) error {
	o, err := parseAgentArgs(args, true)
	if err != nil {
		return err
	}

	cfg, logger, err := setup(stdout, g)
	if err != nil {
		return err
	}

	a, cleanup, err := newAgent(o, cfg, stdout, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	text, err := a.RunConversation(ctx, o.query, systemPrompt)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, text)
	return nil
}

// runChat handles "aide chat": a line-oriented conversation loop until
// exit, quit, or EOF.
func runChat(ctx context.Context, stdout io.Writer, g globalOpts, args []string) error {
	o, err := parseAgentArgs(args, false)
	if err != nil {
		return err
	}

	cfg, logger, err := setup(stdout, g)
	if err != nil {
		return err
	}

	a, cleanup, err := newAgent(o, cfg, stdout, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Fprintln(stdout, "interactive mode. type 'exit' or 'quit' to leave.")
	fmt.Fprintf(stdout, "session: %s\n", a.SessionID())
	return a.Chat(ctx, os.Stdin, systemPrompt)
}

// systemPrompt frames the agent's use of the attached MCP tools.
const systemPrompt = `You are a helpful assistant. You can use the attached MCP tools to look up information on the user's behalf. Pick the right tool for each question and answer clearly and concisely.`

// runHistory handles "aide history list|show|export".
func runHistory(ctx context.Context, stdout io.Writer, g globalOpts, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: aide history list | show <session> | export <session> -o <file.html>")
	}

	cfg, _, err := setup(stdout, g)
	if err != nil {
		return err
	}
	dbPath := cfg.HistoryDBPath()
	if dbPath == "" {
		return fmt.Errorf("no history database path configured")
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open history %s: %w", dbPath, err)
	}
	defer store.Close()

	switch args[0] {
	case "list":
		sessions, err := store.Sessions(ctx)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Fprintln(stdout, "no recorded conversations")
			return nil
		}
		for _, s := range sessions {
			fmt.Fprintf(stdout, "%s  %s  %d messages\n",
				s.Started.Local().Format("2006-01-02 15:04"), s.ID, s.Messages)
		}
		return nil

	case "show":
		if len(args) < 2 {
			return fmt.Errorf("usage: aide history show <session>")
		}
		records, err := store.BySession(ctx, args[1])
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return fmt.Errorf("no such session: %s", args[1])
		}
		for _, rec := range records {
			fmt.Fprintf(stdout, "[%s] %s\n%s\n\n",
				rec.Role, rec.Timestamp.Local().Format("2006-01-02 15:04:05"), rec.Content)
		}
		return nil

	case "export":
		var session, outPath string
		for i := 1; i < len(args); i++ {
			switch {
			case args[i] == "-o" && i+1 < len(args):
				outPath = args[i+1]
				i++
			case !strings.HasPrefix(args[i], "-") && session == "":
				session = args[i]
			default:
				return fmt.Errorf("unknown export argument: %s", args[i])
			}
		}
		if session == "" || outPath == "" {
			return fmt.Errorf("usage: aide history export <session> -o <file.html>")
		}

		records, err := store.BySession(ctx, session)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return fmt.Errorf("no such session: %s", session)
		}

		out, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer out.Close()

		if err := history.ExportHTML(out, session, records); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "exported %d messages to %s\n", len(records), outPath)
		return nil

	default:
		return fmt.Errorf("unknown history command: %s", args[0])
	}
}

// runVersion prints build metadata, as text or JSON.
func runVersion(w io.Writer, args []string) error {
	format := "text"
	for i := 0; i < len(args); i++ {
		switch {
		case (args[i] == "-o" || args[i] == "--output") && i+1 < len(args):
			format = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-o="):
			format = strings.TrimPrefix(args[i], "-o=")
		default:
			return fmt.Errorf("unknown version argument: %s", args[i])
		}
	}

	info := buildinfo.Info()
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	case "text":
		fmt.Fprintln(w, buildinfo.String())
		for _, k := range []string{"version", "git_commit", "build_time", "go_version", "os", "arch"} {
			if v, ok := info[k]; ok {
				fmt.Fprintf(w, "  %-12s %s\n", k+":", v)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %q (expected text or json)", format)
	}
}

// missingSettings reports which Responses API settings are absent.
func missingSettings(oc config.OpenAIConfig, extra string) error {
	var missing []string
	if oc.BaseURL == "" {
		missing = append(missing, "base_url (OPENAI_BASE_URL)")
	}
	if oc.APIKey == "" {
		missing = append(missing, "api_key (OPENAI_API_KEY)")
	}
	if oc.Model == "" {
		missing = append(missing, "model (OPENAI_MODEL)")
	}
	if extra != "" {
		missing = append(missing, extra)
	}
	return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
}

func missingSettingsMCP(oc config.OpenAIConfig, mc config.MCPConfig) error {
	var extra []string
	if mc.URL == "" {
		extra = append(extra, "mcp.url (MCP_URL)")
	}
	if mc.Token == "" {
		extra = append(extra, "mcp.token (MCP_TOKEN)")
	}
	return missingSettings(oc, strings.Join(extra, ", "))
}

// newLogger builds a structured logger writing to w.
func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: config.ReplaceLogLevelNames,
	}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// loadConfig locates and parses the YAML configuration file. If
// explicit is non-empty that exact path is used and must exist;
// otherwise [config.FindConfig] searches the default locations, and no
// file at all yields the built-in defaults.
func loadConfig(explicit string) (*config.Config, string, error) {
	cfgPath, err := config.FindConfig(explicit)
	if err != nil {
		return nil, "", err
	}
	if cfgPath == "" {
		cfg := config.Default()
		cfg.ApplyEnv()
		return cfg, "", nil
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, cfgPath, fmt.Errorf("load config %s: %w", cfgPath, err)
	}
	return cfg, cfgPath, nil
}

// printUsage writes the top-level help text to w.
func printUsage(w io.Writer) error {
	fmt.Fprintln(w, "Aide - assistant command toolbox")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: aide [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  fetch <file.opml>        Fetch every feed once (-loop to repeat)")
	fmt.Fprintln(w, "  watch <target> <cmd...>  Run a command when files change")
	fmt.Fprintln(w, "  tools <endpoint>         List the tools an MCP endpoint offers")
	fmt.Fprintln(w, "  similar <query>          Generate similar questions for a query")
	fmt.Fprintln(w, "  agent <query>            One-shot agent query with MCP tools")
	fmt.Fprintln(w, "  chat                     Interactive agent conversation")
	fmt.Fprintln(w, "  history list|show|export Inspect recorded conversations")
	fmt.Fprintln(w, "  version                  Show version information (-o json)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -config <path>      Path to config file (default: auto-discover)")
	fmt.Fprintln(w, "  -log-level <level>  trace, debug, info, warn, or error")
	fmt.Fprintln(w, "  -log-format <fmt>   text (default) or json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config search order:")
	fmt.Fprintln(w, "  ./aide.yaml, ~/.config/aide/config.yaml, /etc/aide/config.yaml")
	return nil
}
