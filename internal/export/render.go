// Package export renders conversations as plain text and writes them
// to export files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chrisedwards/slack-archive/internal/archive"
	"github.com/chrisedwards/slack-archive/internal/mapping"
)

const timeLayout = "2006-01-02 15:04:05"

// RenderConversation renders conv as plain text, one line per message:
//
//	[2024-01-02 15:04:05] Display Name: text
//
// Thread replies are bracketed beneath their parent, sorted ascending
// by timestamp, and a blank line follows each top-level message.
// Author ids resolve through names, falling back to the raw id.
func RenderConversation(conv *archive.Conversation, names *mapping.NameMapping, loc *time.Location) string {
	var b strings.Builder
	for _, m := range conv.Messages {
		writeLine(&b, "", m, names, loc)
		if len(m.Replies) > 0 {
			replies := append([]*archive.Message(nil), m.Replies...)
			sort.SliceStable(replies, func(i, j int) bool {
				return replies[i].TS < replies[j].TS
			})
			b.WriteString("┌── thread ──\n")
			for _, r := range replies {
				writeLine(&b, "│ ", r, names, loc)
			}
			b.WriteString("└──────────\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeLine(b *strings.Builder, prefix string, m *archive.Message, names *mapping.NameMapping, loc *time.Location) {
	fmt.Fprintf(b, "%s[%s] %s: %s\n",
		prefix, m.Time(loc).Format(timeLayout), names.Name(m.UserID), m.Text)
}

// WriteConversation renders conv and writes it to dir/<fileName>.txt,
// creating dir if needed. It returns the written path.
func WriteConversation(dir, fileName string, conv *archive.Conversation, names *mapping.NameMapping, loc *time.Location) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, fileName+".txt")
	if err := os.WriteFile(path, []byte(RenderConversation(conv, names, loc)), 0644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}
	return path, nil
}
