package watch

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWatcher(t *testing.T, cfg Config) (*Watcher, *atomic.Int64) {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = discard()
	}
	w, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var runs atomic.Int64
	w.exec = func(ctx context.Context) { runs.Add(1) }
	return w, &runs
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestNew_MissingTarget(t *testing.T) {
	_, err := New(Config{Target: filepath.Join(t.TempDir(), "nope"), Command: "true"})
	if err == nil {
		t.Fatal("expected error for missing target")
	}
}

func TestWatch_DirectoryChangeTriggers(t *testing.T) {
	dir := t.TempDir()
	w, runs := newTestWatcher(t, Config{Target: dir, Command: "true", Debounce: 50 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !waitFor(t, 2*time.Second, func() bool { return runs.Load() >= 1 }) {
		t.Fatal("command never triggered")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch: %v", err)
	}
}

func TestWatch_DebounceSuppressesBursts(t *testing.T) {
	dir := t.TempDir()
	w, runs := newTestWatcher(t, Config{Target: dir, Command: "true", Debounce: time.Second})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Watch(ctx)

	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(dir, "a.txt")
	for i := 0; i < 10; i++ {
		if err := os.WriteFile(path, []byte{byte(i)}, 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	waitFor(t, 2*time.Second, func() bool { return runs.Load() >= 1 })
	time.Sleep(200 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("runs = %d, want 1 inside debounce window", got)
	}
}

func TestWatch_FileTargetIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "watched.txt")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	w, runs := newTestWatcher(t, Config{Target: target, Command: "true", Debounce: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Watch(ctx)

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if got := runs.Load(); got != 0 {
		t.Fatalf("runs = %d after sibling write, want 0", got)
	}

	if err := os.WriteFile(target, []byte("z"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, 2*time.Second, func() bool { return runs.Load() >= 1 }) {
		t.Fatal("write to target never triggered")
	}
}

func TestWatch_NewSubdirectoryIsWatched(t *testing.T) {
	dir := t.TempDir()
	w, runs := newTestWatcher(t, Config{Target: dir, Command: "true", Debounce: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Watch(ctx)

	time.Sleep(100 * time.Millisecond)
	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, 2*time.Second, func() bool { return runs.Load() >= 1 }) {
		t.Fatal("mkdir never triggered")
	}
	before := runs.Load()

	// Give the new directory time to be registered, then write inside it.
	time.Sleep(200 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(sub, "b.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !waitFor(t, 2*time.Second, func() bool { return runs.Load() > before }) {
		t.Fatal("write inside new subdirectory never triggered")
	}
}

func TestWatch_RunOnStart(t *testing.T) {
	dir := t.TempDir()
	w, runs := newTestWatcher(t, Config{Target: dir, Command: "true", RunOnStart: true})

	ctx, cancel := context.WithCancel(context.Background())
	go w.Watch(ctx)

	if !waitFor(t, 2*time.Second, func() bool { return runs.Load() == 1 }) {
		t.Fatal("run-on-start never executed")
	}
	cancel()
}

func TestWatch_RunOnStartArmsDebounce(t *testing.T) {
	dir := t.TempDir()
	w, runs := newTestWatcher(t, Config{
		Target:     dir,
		Command:    "true",
		Debounce:   2 * time.Second,
		RunOnStart: true,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Watch(ctx)

	if !waitFor(t, 2*time.Second, func() bool { return runs.Load() == 1 }) {
		t.Fatal("run-on-start never executed")
	}

	// A change right after the startup run lands inside the debounce
	// window and must not re-execute the command.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(500 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("runs = %d inside debounce window after startup run, want 1", got)
	}
}

func TestWatch_SymlinkedFileTarget(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real.txt")
	if err := os.WriteFile(real, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "link.txt")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	w, err := New(Config{Target: link, Command: "true", Logger: discard()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Notify events carry the real path; a target given through the
	// link must still match.
	if !w.relevant(fsnotify.Event{Name: real, Op: fsnotify.Write}) {
		t.Error("write to real path not relevant for symlinked target")
	}
	if w.relevant(fsnotify.Event{Name: filepath.Join(dir, "other.txt"), Op: fsnotify.Write}) {
		t.Error("sibling write relevant for symlinked target")
	}
}

func TestRunCommand_WritesOutput(t *testing.T) {
	var buf bytes.Buffer
	dir := t.TempDir()
	w, err := New(Config{
		Target:  dir,
		Command: "echo hello; echo oops >&2",
		Out:     &buf,
		Logger:  discard(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	w.runCommand(context.Background())
	out := buf.String()
	if out != "hello\noops\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(target, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := New(Config{Target: target, Command: "true", Logger: discard()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"target write", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"sibling write", fsnotify.Event{Name: filepath.Join(dir, "g.txt"), Op: fsnotify.Write}, false},
		{"zero op", fsnotify.Event{Name: target}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.event); got != tt.want {
				t.Errorf("relevant(%v) = %v, want %v", tt.event, got, tt.want)
			}
		})
	}
}

func TestOpNames(t *testing.T) {
	got := opNames(fsnotify.Create | fsnotify.Write)
	if got != "create,write" {
		t.Errorf("opNames = %q", got)
	}
}
