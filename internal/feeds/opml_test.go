package feeds

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseOPML_GroupOrder(t *testing.T) {
	doc := `<?xml version="1.0"?>
<opml version="2.0">
  <body>
    <outline text="tech">
      <outline text="a" xmlUrl="https://a.example.com/feed.json"/>
      <outline text="b" xmlUrl="https://b.example.com/feed.json"/>
    </outline>
    <outline text="solo">
      <outline text="c" xmlUrl="https://c.example.com/feed.json"/>
    </outline>
  </body>
</opml>`

	urls, err := ParseOPML([]byte(doc), discard())
	if err != nil {
		t.Fatalf("ParseOPML: %v", err)
	}

	want := []string{
		"https://a.example.com/feed.json",
		"https://b.example.com/feed.json",
		"https://c.example.com/feed.json",
	}
	if len(urls) != len(want) {
		t.Fatalf("got %d urls, want %d: %v", len(urls), len(want), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestParseOPML_MissingOutlineRoot(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty body", `<opml version="2.0"><body></body></opml>`},
		{"no body", `<opml version="2.0"></opml>`},
		{"not xml", `{"title": "not opml"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOPML([]byte(tt.doc), discard())
			if !errors.Is(err, ErrFormat) {
				t.Errorf("err = %v, want ErrFormat", err)
			}
		})
	}
}

func TestParseOPML_SkipsMalformedGroups(t *testing.T) {
	// A childless group and a child without xmlUrl are anomalies, not
	// fatal: the remaining feeds still load.
	doc := `<opml version="2.0">
  <body>
    <outline text="leaf-shaped" xmlUrl="https://direct.example.com/feed.json"/>
    <outline text="ok">
      <outline text="nourl"/>
      <outline text="good" xmlUrl="https://good.example.com/feed.json"/>
    </outline>
  </body>
</opml>`

	urls, err := ParseOPML([]byte(doc), discard())
	if err != nil {
		t.Fatalf("ParseOPML: %v", err)
	}
	if len(urls) != 1 || urls[0] != "https://good.example.com/feed.json" {
		t.Errorf("urls = %v, want only the well-formed child", urls)
	}
}

func TestLoadOPML_MissingFile(t *testing.T) {
	_, err := LoadOPML("/nonexistent/feeds.opml", discard())
	if err == nil {
		t.Error("expected error for missing file")
	}
}
