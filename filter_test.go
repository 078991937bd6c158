package main

import (
	"strings"
	"testing"
)

func TestSkipReason(t *testing.T) {
	processed := ProcessedSet{"seen1": {}}
	rules := skipRules(processed, 50)

	base := Submission{
		ID:       "fresh1",
		Title:    "A Post",
		SelfText: strings.Repeat("x", 50),
		IsSelf:   true,
	}

	tests := []struct {
		name       string
		modify     func(sub *Submission)
		wantSkip   bool
		wantReason string
	}{
		{
			name:     "accepted",
			modify:   func(sub *Submission) {},
			wantSkip: false,
		},
		{
			name:       "already processed",
			modify:     func(sub *Submission) { sub.ID = "seen1" },
			wantSkip:   true,
			wantReason: "already processed",
		},
		{
			name:       "stickied",
			modify:     func(sub *Submission) { sub.Stickied = true },
			wantSkip:   true,
			wantReason: "stickied",
		},
		{
			name:       "link post",
			modify:     func(sub *Submission) { sub.IsSelf = false },
			wantSkip:   true,
			wantReason: "not a self post",
		},
		{
			name:       "empty body",
			modify:     func(sub *Submission) { sub.SelfText = "" },
			wantSkip:   true,
			wantReason: "empty body",
		},
		{
			name:       "body below minimum",
			modify:     func(sub *Submission) { sub.SelfText = strings.Repeat("x", 49) },
			wantSkip:   true,
			wantReason: "body too short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := base
			tt.modify(&sub)

			reason, skip := skipReason(sub, rules)
			if skip != tt.wantSkip {
				t.Fatalf("skipReason() skip = %v, want %v (reason %q)", skip, tt.wantSkip, reason)
			}
			if skip && reason != tt.wantReason {
				t.Errorf("skipReason() reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

// The minimum length counts runes, not bytes: a 50-rune multibyte body must
// pass even though it is longer than 50 bytes and shorter than 50*utf8.Max.
func TestSkipRulesMinLengthCountsRunes(t *testing.T) {
	rules := skipRules(ProcessedSet{}, 50)

	sub := Submission{
		ID:       "uni1",
		IsSelf:   true,
		SelfText: strings.Repeat("é", 50),
	}
	if reason, skip := skipReason(sub, rules); skip {
		t.Errorf("50-rune body skipped: %s", reason)
	}

	sub.SelfText = strings.Repeat("é", 49)
	if _, skip := skipReason(sub, rules); !skip {
		t.Error("49-rune body must be skipped")
	}
}

// A stickied post that was already processed reports "already processed":
// rule order matters for the debug log.
func TestSkipReasonFirstMatchWins(t *testing.T) {
	rules := skipRules(ProcessedSet{"both1": {}}, 50)

	sub := Submission{ID: "both1", Stickied: true}
	reason, skip := skipReason(sub, rules)
	if !skip || reason != "already processed" {
		t.Errorf("skipReason() = %q, %v; want \"already processed\", true", reason, skip)
	}
}
