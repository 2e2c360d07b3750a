// Package verdict maps free-text advisory output to a closed set of verdict
// tags. The classification is a substring heuristic, not a parser: ambiguous
// or adversarial text can misclassify, and that is a documented limitation of
// the advisory contract rather than a bug to paper over here. Keeping it as a
// pure function makes the heuristic visible and independently testable.
package verdict

import "strings"

// Verdict is the closed-set classification of an advisory opinion.
type Verdict string

const (
	Approved    Verdict = "approved"
	Rejected    Verdict = "rejected"
	NeedsReview Verdict = "needs_review"
)

var (
	rejectKeywords  = []string{"reject", "veto", "forbid", "forbidden", "deny", "denied"}
	approveKeywords = []string{"approve", "approved", "permit", "permitted", "endorse"}
)

// Classify derives a verdict from free text. Rejection keywords take
// precedence over approval keywords when both appear; text matching neither
// set classifies as NeedsReview.
func Classify(text string) Verdict {
	lower := strings.ToLower(text)

	for _, kw := range rejectKeywords {
		if strings.Contains(lower, kw) {
			return Rejected
		}
	}
	for _, kw := range approveKeywords {
		if strings.Contains(lower, kw) {
			return Approved
		}
	}
	return NeedsReview
}

// Valid reports whether v is one of the defined verdict tags.
func Valid(v Verdict) bool {
	switch v {
	case Approved, Rejected, NeedsReview:
		return true
	}
	return false
}
