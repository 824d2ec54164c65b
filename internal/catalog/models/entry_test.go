package models

import "testing"

func TestHasAllTags(t *testing.T) {
	e := Entry{Slug: "a", Tags: []string{"ai", "ts"}}

	if !e.HasAllTags(nil) {
		t.Error("empty selection must match every entry")
	}
	if !e.HasAllTags([]string{"ts"}) {
		t.Error("expected [ts] to match")
	}
	if !e.HasAllTags([]string{"ts", "ai"}) {
		t.Error("expected [ts ai] to match regardless of order")
	}
	if e.HasAllTags([]string{"ts", "beginner"}) {
		t.Error("expected [ts beginner] not to match")
	}
}

func TestHasAllTags_NoTags(t *testing.T) {
	e := Entry{Slug: "c"}
	if e.HasAllTags([]string{"ts"}) {
		t.Error("entry without tags must not match a non-empty selection")
	}
}

func TestDisplayDate(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2025-03-09", "Mar 9, 2025"},
		{"2025-03-09T10:00:00Z", "Mar 9, 2025"},
		{"next week", "next week"},
		{"", ""},
	}

	for _, tt := range tests {
		got := Entry{Date: tt.date}.DisplayDate()
		if got != tt.want {
			t.Errorf("DisplayDate(%q): expected %q, got %q", tt.date, tt.want, got)
		}
	}
}
