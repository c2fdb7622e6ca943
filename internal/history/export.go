package history

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"time"

	"github.com/yuin/goldmark"
)

// ExportHTML renders a session transcript as a standalone HTML page.
// Message content is treated as markdown; non-assistant messages are
// escaped verbatim inside a preformatted block.
func ExportHTML(w io.Writer, sessionID string, records []Record) error {
	var body bytes.Buffer

	fmt.Fprintf(&body, "<h1>Conversation %s</h1>\n", html.EscapeString(sessionID))

	for _, rec := range records {
		fmt.Fprintf(&body, `<div class="message %s">`+"\n", html.EscapeString(rec.Role))
		fmt.Fprintf(&body, "<h2>%s <small>%s</small></h2>\n",
			html.EscapeString(rec.Role),
			rec.Timestamp.Format(time.RFC3339),
		)

		if rec.Role == "assistant" {
			if err := goldmark.Convert([]byte(rec.Content), &body); err != nil {
				return fmt.Errorf("render message %s: %w", rec.ID, err)
			}
		} else {
			fmt.Fprintf(&body, "<pre>%s</pre>\n", html.EscapeString(rec.Content))
		}

		if rec.InputTokens > 0 || rec.OutputTokens > 0 {
			fmt.Fprintf(&body, "<p class=\"usage\">tokens: %d in / %d out</p>\n",
				rec.InputTokens, rec.OutputTokens)
		}
		body.WriteString("</div>\n")
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Conversation %s</title>
<style>
body { font-family: sans-serif; font-size: 14px; line-height: 1.5; max-width: 48em; margin: 2em auto; }
.message { border-top: 1px solid #ddd; padding: 0.5em 0; }
.usage { color: #888; font-size: 12px; }
pre { white-space: pre-wrap; }
</style>
</head><body>
%s
</body></html>`, html.EscapeString(sessionID), body.String())

	_, err := io.WriteString(w, page)
	return err
}
