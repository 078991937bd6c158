package main

import "unicode/utf8"

// skipRule excludes a submission from narration. Rules are checked in order
// and the first match wins; the reason goes to the debug log.
type skipRule struct {
	reason string
	skip   func(sub Submission) bool
}

// skipRules builds the filter chain applied to each fetched submission. A
// skipped submission is left out of everything: the page, the history set
// and the synthesizer.
func skipRules(processed ProcessedSet, minTextLength int) []skipRule {
	return []skipRule{
		{
			reason: "already processed",
			skip:   func(sub Submission) bool { return processed.Contains(sub.ID) },
		},
		{
			reason: "stickied",
			skip:   func(sub Submission) bool { return sub.Stickied },
		},
		{
			reason: "not a self post",
			skip:   func(sub Submission) bool { return !sub.IsSelf },
		},
		{
			reason: "empty body",
			skip:   func(sub Submission) bool { return sub.SelfText == "" },
		},
		{
			reason: "body too short",
			skip: func(sub Submission) bool {
				return utf8.RuneCountInString(sub.SelfText) < minTextLength
			},
		},
	}
}

// skipReason reports whether a submission is excluded and why.
func skipReason(sub Submission, rules []skipRule) (string, bool) {
	for _, rule := range rules {
		if rule.skip(sub) {
			return rule.reason, true
		}
	}
	return "", false
}
