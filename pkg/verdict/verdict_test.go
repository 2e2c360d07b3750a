package verdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Verdict
	}{
		{"plain approval", "I approve of this mission.", Approved},
		{"permit wording", "This is permitted under the charter.", Approved},
		{"plain rejection", "We must reject this course of action.", Rejected},
		{"veto", "The council issues a VETO.", Rejected},
		{"forbid", "Such conduct is forbidden.", Rejected},
		{"case insensitive", "APPROVED without reservation", Approved},
		{"no keyword", "The matter requires further deliberation.", NeedsReview},
		{"empty", "", NeedsReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

// Text containing both approval and rejection wording classifies as rejected:
// rejection keywords are checked first, so the conservative outcome wins.
func TestClassify_RejectionPrecedence(t *testing.T) {
	assert.Equal(t, Rejected, Classify("I would approve, but precedent forces us to reject."))
	assert.Equal(t, Rejected, Classify("Approved in spirit, vetoed in practice."))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(Approved))
	assert.True(t, Valid(Rejected))
	assert.True(t, Valid(NeedsReview))
	assert.False(t, Valid(Verdict("maybe")))
}
