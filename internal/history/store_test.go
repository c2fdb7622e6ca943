package history

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestAppend_And_BySession(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	recs := []Record{
		{Timestamp: now, SessionID: "sess-1", Role: "user", Content: "hello"},
		{
			Timestamp:    now.Add(time.Second),
			SessionID:    "sess-1",
			Role:         "assistant",
			Content:      "hi there",
			Model:        "test-model",
			InputTokens:  10,
			OutputTokens: 5,
		},
		{Timestamp: now, SessionID: "sess-2", Role: "user", Content: "other session"},
	}
	for _, rec := range recs {
		if err := s.Append(ctx, rec); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := s.BySession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("BySession: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Content != "hello" || got[1].Content != "hi there" {
		t.Errorf("wrong order: %q, %q", got[0].Content, got[1].Content)
	}
	if got[0].ID == "" {
		t.Error("ID not generated")
	}
	if got[1].Model != "test-model" || got[1].OutputTokens != 5 {
		t.Errorf("assistant record = %+v", got[1])
	}
	if !got[0].Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", got[0].Timestamp, now)
	}
}

func TestBySession_Empty(t *testing.T) {
	s := testStore(t)

	got, err := s.BySession(context.Background(), "nope")
	if err != nil {
		t.Fatalf("BySession: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d records, want 0", len(got))
	}
}

func TestSessions_RecentFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i, sess := range []string{"old", "new"} {
		ts := base.Add(time.Duration(i) * time.Hour)
		for j := 0; j <= i; j++ {
			err := s.Append(ctx, Record{
				Timestamp: ts.Add(time.Duration(j) * time.Minute),
				SessionID: sess,
				Role:      "user",
				Content:   "x",
			})
			if err != nil {
				t.Fatalf("Append: %v", err)
			}
		}
	}

	sessions, err := s.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len = %d, want 2", len(sessions))
	}
	if sessions[0].ID != "new" || sessions[1].ID != "old" {
		t.Errorf("order = %s, %s", sessions[0].ID, sessions[1].ID)
	}
	if sessions[0].Messages != 2 || sessions[1].Messages != 1 {
		t.Errorf("counts = %d, %d", sessions[0].Messages, sessions[1].Messages)
	}
	if !sessions[1].Started.Equal(base) {
		t.Errorf("started = %v, want %v", sessions[1].Started, base)
	}
}

func TestExportHTML(t *testing.T) {
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	records := []Record{
		{ID: "m1", Timestamp: now, SessionID: "s", Role: "user", Content: "1 < 2 right?"},
		{
			ID: "m2", Timestamp: now.Add(time.Second), SessionID: "s",
			Role: "assistant", Content: "**yes**", InputTokens: 7, OutputTokens: 3,
		},
	}

	var buf strings.Builder
	if err := ExportHTML(&buf, "s", records); err != nil {
		t.Fatalf("ExportHTML: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<strong>yes</strong>") {
		t.Error("assistant markdown not rendered")
	}
	if !strings.Contains(out, "1 &lt; 2 right?") {
		t.Error("user content not escaped")
	}
	if strings.Contains(out, "1 < 2 right?") {
		t.Error("raw user content leaked into output")
	}
	if !strings.Contains(out, "tokens: 7 in / 3 out") {
		t.Error("usage line missing")
	}
}
