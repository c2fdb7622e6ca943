// Package watch runs a shell command whenever a watched file or
// directory changes.
package watch

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Runner executes the configured shell command with a timeout and
// captured, size-capped output.
type Runner struct {
	workingDir     string
	timeout        time.Duration
	maxOutputBytes int
}

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	WorkingDir     string
	Timeout        time.Duration // default 30s
	MaxOutputBytes int           // default 100KB
}

// NewRunner creates a command runner.
func NewRunner(cfg RunnerConfig) *Runner {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxOutputBytes <= 0 {
		cfg.MaxOutputBytes = 100 * 1024
	}
	return &Runner{
		workingDir:     cfg.WorkingDir,
		timeout:        cfg.Timeout,
		maxOutputBytes: cfg.MaxOutputBytes,
	}
}

// Result contains the outcome of one command execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
}

// Run executes command via `sh -c`. A non-zero exit is reported in the
// Result, not as an error; the returned error covers only failures to
// start the process.
func (r *Runner) Run(ctx context.Context, command string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &Result{
		Stdout: truncateOutput(stdout.String(), r.maxOutputBytes),
		Stderr: truncateOutput(stderr.String(), r.maxOutputBytes),
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = -1
		return result, nil
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return nil, err
	}

	return result, nil
}

// truncateOutput truncates output to maxBytes, adding a note if truncated.
func truncateOutput(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	return s[:maxBytes] + "\n\n[... output truncated ...]"
}
