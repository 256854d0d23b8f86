package export

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chrisedwards/slack-archive/internal/archive"
	"github.com/chrisedwards/slack-archive/internal/mapping"
)

func testNames(t *testing.T, entries map[string]string) *mapping.NameMapping {
	t.Helper()
	m := mapping.New(filepath.Join(t.TempDir(), "users.json"))
	for id, name := range entries {
		if err := m.Update(id, name); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
	}
	return m
}

func TestRenderConversation(t *testing.T) {
	// 2021-01-01 00:00:00 UTC and the two following seconds.
	conv := &archive.Conversation{
		Name: "general",
		Kind: archive.KindChannel,
		Messages: []*archive.Message{
			{TS: 1609459200, UserID: "U1", Text: "hello", Replies: []*archive.Message{
				{TS: 1609459202, UserID: "U2", Text: "late reply", ThreadTS: 1609459200},
				{TS: 1609459201, UserID: "U1", Text: "early reply", ThreadTS: 1609459200},
			}},
			{TS: 1609459260, UserID: "U3", Text: "new topic"},
		},
	}
	names := testNames(t, map[string]string{"U1": "Alice", "U2": "Bob"})

	got := RenderConversation(conv, names, time.UTC)
	want := "[2021-01-01 00:00:00] Alice: hello\n" +
		"┌── thread ──\n" +
		"│ [2021-01-01 00:00:01] Alice: early reply\n" +
		"│ [2021-01-01 00:00:02] Bob: late reply\n" +
		"└──────────\n" +
		"\n" +
		"[2021-01-01 00:01:00] U3: new topic\n" +
		"\n"
	if got != want {
		t.Errorf("RenderConversation() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderConversation_Empty(t *testing.T) {
	conv := &archive.Conversation{Name: "empty", Kind: archive.KindDM}
	names := testNames(t, nil)
	if got := RenderConversation(conv, names, time.UTC); got != "" {
		t.Errorf("RenderConversation() = %q, want empty", got)
	}
}

func TestWriteConversation(t *testing.T) {
	conv := &archive.Conversation{
		Name:     "general",
		Kind:     archive.KindChannel,
		Messages: []*archive.Message{{TS: 1609459200, UserID: "U1", Text: "hi"}},
	}
	names := testNames(t, nil)
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := WriteConversation(dir, "channel_general", conv, names, time.UTC)
	if err != nil {
		t.Fatalf("WriteConversation() error = %v", err)
	}
	if path != filepath.Join(dir, "channel_general.txt") {
		t.Errorf("path = %q, want %q", path, filepath.Join(dir, "channel_general.txt"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != RenderConversation(conv, names, time.UTC) {
		t.Errorf("file contents differ from rendering: %q", data)
	}
}
