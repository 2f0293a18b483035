package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClassification(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  Classification
	}{
		{name: "exact", label: "Urgent", want: Urgent},
		{name: "lowercase", label: "request", want: Request},
		{name: "uppercase", label: "REMINDER", want: Reminder},
		{name: "substring", label: "This is a follow-up", want: FollowUp},
		{name: "follow up with space", label: "follow up", want: FollowUp},
		{name: "urgent beats request", label: "Urgent request", want: Urgent},
		{name: "request beats reminder", label: "reminder / request", want: Request},
		{name: "surrounding whitespace", label: "  Reminder  ", want: Reminder},
		{name: "empty", label: "", want: Informational},
		{name: "whitespace only", label: "   ", want: Informational},
		{name: "unknown", label: "spam", want: Informational},
		{name: "informational", label: "Informational", want: Informational},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeClassification(tt.label))
		})
	}
}

func TestParseStyle(t *testing.T) {
	for in, want := range map[string]Style{"friendly": StyleFriendly, "Polished": StylePolished, " short ": StyleShort} {
		got, err := ParseStyle(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseStyle("sarcastic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sarcastic")
	assert.Contains(t, err.Error(), "friendly, polished, short")
}

func TestResultHasReply(t *testing.T) {
	var nilResult *Result
	assert.False(t, nilResult.HasReply())
	assert.False(t, (&Result{SuggestedReply: "  "}).HasReply())
	assert.True(t, (&Result{SuggestedReply: "Thanks!"}).HasReply())
}
