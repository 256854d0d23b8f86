package archive

import (
	"reflect"
	"testing"
)

func TestFindThreadMessages_FlatSiblings(t *testing.T) {
	conv := &Conversation{Name: "general", Kind: KindChannel, Messages: []*Message{
		{TS: 1000, UserID: "U1", Text: "root"},
		{TS: 1001, UserID: "U2", Text: "reply", ThreadTS: 1000},
		{TS: 1002, UserID: "U3", Text: "unrelated"},
		{TS: 1003, UserID: "U1", Text: "late reply", ThreadTS: 1000},
	}}

	got := FindThreadMessages(1000, []*Conversation{conv})
	if want := []float64{1000, 1001, 1003}; !reflect.DeepEqual(timestamps(got), want) {
		t.Errorf("thread timestamps = %v, want %v", timestamps(got), want)
	}
}

func TestFindThreadMessages_NestedReplies(t *testing.T) {
	conv := &Conversation{Messages: []*Message{
		{TS: 1000, UserID: "U1", Text: "root", Replies: []*Message{
			{TS: 1002, UserID: "U2", ThreadTS: 1000},
			{TS: 1001, UserID: "U3", ThreadTS: 1000},
		}},
	}}

	got := FindThreadMessages(1000, []*Conversation{conv})
	if want := []float64{1000, 1001, 1002}; !reflect.DeepEqual(timestamps(got), want) {
		t.Errorf("thread timestamps = %v, want %v", timestamps(got), want)
	}
}

func TestFindThreadMessages_DeduplicatesNestedAndFlat(t *testing.T) {
	// The same reply stored both nested under its root and as a flat
	// sibling must appear once.
	conv := &Conversation{Messages: []*Message{
		{TS: 1000, UserID: "U1", Replies: []*Message{
			{TS: 1001, UserID: "U2", ThreadTS: 1000},
		}},
		{TS: 1001, UserID: "U2", ThreadTS: 1000},
	}}

	got := FindThreadMessages(1000, []*Conversation{conv})
	if want := []float64{1000, 1001}; !reflect.DeepEqual(timestamps(got), want) {
		t.Errorf("thread timestamps = %v, want %v", timestamps(got), want)
	}
}

func TestFindThreadMessages_AcrossConversations(t *testing.T) {
	a := &Conversation{Messages: []*Message{{TS: 1000, UserID: "U1"}}}
	b := &Conversation{Messages: []*Message{{TS: 1005, UserID: "U2", ThreadTS: 1000}}}

	got := FindThreadMessages(1000, []*Conversation{a, b})
	if want := []float64{1000, 1005}; !reflect.DeepEqual(timestamps(got), want) {
		t.Errorf("thread timestamps = %v, want %v", timestamps(got), want)
	}
}

func TestFindThreadMessages_NoMatches(t *testing.T) {
	conv := &Conversation{Messages: []*Message{{TS: 1, UserID: "U1"}}}
	if got := FindThreadMessages(999, []*Conversation{conv}); len(got) != 0 {
		t.Errorf("got %d messages, want 0", len(got))
	}
}
