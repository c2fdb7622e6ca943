package watch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Config configures a Watcher.
type Config struct {
	// Target is the file or directory to watch. Directories are
	// watched recursively.
	Target string

	// Command is the shell command to run when the target changes.
	Command string

	// Debounce is the minimum interval between two command runs.
	// Change events inside the window are dropped. Default 500ms.
	Debounce time.Duration

	// RunOnStart executes the command once before watching begins.
	RunOnStart bool

	// Runner executes the command. A default runner is built when nil.
	Runner *Runner

	// Out receives the command's captured stdout/stderr. Default os.Stdout.
	Out io.Writer

	// Logger receives watch diagnostics.
	Logger *slog.Logger
}

// Watcher watches a file or directory tree and runs a command on
// change, with debouncing. The watch loop runs until its context is
// cancelled; command failures are reported and never stop the loop.
type Watcher struct {
	target      string // absolute
	targetIsDir bool
	command     string
	debounce    time.Duration
	runOnStart  bool
	runner      *Runner
	out         io.Writer
	logger      *slog.Logger

	// exec is replaced in tests to count trigger decisions.
	exec func(ctx context.Context)
}

// New creates a watcher for cfg.Target, which must exist.
func New(cfg Config) (*Watcher, error) {
	target, err := filepath.Abs(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("resolve target: %w", err)
	}
	// Resolve symlinks so a target given through a linked path still
	// matches the real paths that notify events carry.
	if resolved, err := filepath.EvalSymlinks(target); err == nil {
		target = resolved
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("watch target: %w", err)
	}

	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	if cfg.Runner == nil {
		cfg.Runner = NewRunner(RunnerConfig{})
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	w := &Watcher{
		target:      target,
		targetIsDir: info.IsDir(),
		command:     cfg.Command,
		debounce:    cfg.Debounce,
		runOnStart:  cfg.RunOnStart,
		runner:      cfg.Runner,
		out:         cfg.Out,
		logger:      cfg.Logger,
	}
	w.exec = w.runCommand
	return w, nil
}

// Watch blocks, running the command on relevant changes, until ctx is
// cancelled. The underlying notify watcher is registered on the target
// directory (or the target's parent for file targets) and on every
// subdirectory; directories created while watching are added on the fly.
func (w *Watcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	root := w.target
	if !w.targetIsDir {
		root = filepath.Dir(w.target)
	}
	if err := addRecursive(fsw, root); err != nil {
		return err
	}

	// The startup run counts as a trigger: events landing inside the
	// debounce window right after it are dropped.
	var lastTrigger time.Time
	if w.runOnStart {
		w.logger.Info("running command on start", "command", w.command)
		w.exec(ctx)
		lastTrigger = time.Now()
	}

	w.logger.Info("watching for changes",
		"target", w.target,
		"command", w.command,
		"debounce", w.debounce,
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watch stopped")
			return nil

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			// New subdirectories need their own watch registration.
			if w.targetIsDir && event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(fsw, event.Name); err != nil {
						w.logger.Warn("failed to watch new directory",
							"dir", event.Name,
							"error", err,
						)
					}
				}
			}

			if !w.relevant(event) {
				continue
			}

			now := time.Now()
			if now.Sub(lastTrigger) < w.debounce {
				continue
			}
			lastTrigger = now

			w.logger.Info("change detected",
				"path", event.Name,
				"op", opNames(event.Op),
			)
			w.exec(ctx)
		}
	}
}

// relevant reports whether an event should trigger the command. For
// directory targets every event under the tree counts; for file
// targets only events on the file itself count.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == 0 {
		return false
	}
	if w.targetIsDir {
		return true
	}
	name := filepath.Clean(event.Name)
	if resolved, err := filepath.EvalSymlinks(name); err == nil {
		name = resolved
	}
	return name == w.target
}

// runCommand executes the configured command and reports the outcome.
func (w *Watcher) runCommand(ctx context.Context) {
	result, err := w.runner.Run(ctx, w.command)
	if err != nil {
		w.logger.Error("command failed to start", "error", err)
		return
	}

	w.logger.Info("command finished",
		"exit_code", result.ExitCode,
		"timed_out", result.TimedOut,
	)
	if result.Stdout != "" {
		fmt.Fprint(w.out, result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Fprint(w.out, result.Stderr)
	}
}

// addRecursive registers dir and every subdirectory with the watcher.
// fsnotify watches are not recursive on their own.
func addRecursive(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// opNames renders an fsnotify op mask as a comma-separated string.
func opNames(op fsnotify.Op) string {
	var names []string
	for _, o := range []fsnotify.Op{
		fsnotify.Create, fsnotify.Write, fsnotify.Remove, fsnotify.Rename, fsnotify.Chmod,
	} {
		if op.Has(o) {
			names = append(names, strings.ToLower(o.String()))
		}
	}
	if len(names) == 0 {
		return op.String()
	}
	return strings.Join(names, ",")
}
