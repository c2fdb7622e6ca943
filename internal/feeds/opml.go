// Package feeds implements the OPML-driven RSS poller: it loads feed
// URLs from an OPML subscription list and fetches them in shuffled
// rounds under a fixed concurrency cap. Results are logged and
// discarded; there is no storage, deduplication, or scheduling here.
package feeds

import (
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// ErrFormat reports an OPML document without the expected
// body/outline structure. This is the only fatal loader error;
// malformed individual groups are logged and skipped.
var ErrFormat = errors.New("opml format error")

type opmlDoc struct {
	XMLName xml.Name `xml:"opml"`
	Body    opmlBody `xml:"body"`
}

type opmlBody struct {
	Outlines []opmlOutline `xml:"outline"`
}

type opmlOutline struct {
	Text     string        `xml:"text,attr"`
	Title    string        `xml:"title,attr"`
	XMLURL   string        `xml:"xmlUrl,attr"`
	Outlines []opmlOutline `xml:"outline"`
}

// label returns the best human-readable name for an outline, for log lines.
func (o opmlOutline) label() string {
	switch {
	case o.Text != "":
		return o.Text
	case o.Title != "":
		return o.Title
	default:
		return o.XMLURL
	}
}

// ParseOPML extracts feed URLs from an OPML document. The document is
// expected to contain top-level outline groups whose children carry
// xmlUrl attributes; a group with a single child is the same shape as
// a group with many. URLs are returned in group-then-child order.
//
// A missing opml/body/outline root returns [ErrFormat]. A group with
// no children, or a child without an xmlUrl, is logged and skipped.
func ParseOPML(data []byte, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var doc opmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if len(doc.Body.Outlines) == 0 {
		return nil, fmt.Errorf("%w: no body/outline elements", ErrFormat)
	}

	var urls []string
	for _, group := range doc.Body.Outlines {
		if len(group.Outlines) == 0 {
			logger.Error("opml outline has no children, skipping", "outline", group.label())
			continue
		}
		for _, item := range group.Outlines {
			if item.XMLURL == "" {
				logger.Warn("opml outline child has no xmlUrl, skipping",
					"group", group.label(),
					"child", item.label(),
				)
				continue
			}
			urls = append(urls, item.XMLURL)
		}
	}

	return urls, nil
}

// LoadOPML reads and parses an OPML subscription list from disk.
func LoadOPML(path string, logger *slog.Logger) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read opml file: %w", err)
	}
	return ParseOPML(data, logger)
}
