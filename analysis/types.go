package analysis

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyMessage is returned when there is nothing to analyze.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrNoAnalysis is returned when a rewrite is requested before any analysis exists.
	ErrNoAnalysis = errors.New("no analysis with a reply to rewrite")
)

// Result holds everything the service returned for one analyzed message.
type Result struct {
	Message        string
	Classification Classification
	Summary        string
	Tasks          []string
	SuggestedReply string
}

// HasReply reports whether the result carries a reply that can be rewritten or copied.
func (r *Result) HasReply() bool {
	return r != nil && strings.TrimSpace(r.SuggestedReply) != ""
}

// Style is a tone applied when rewriting a reply.
type Style string

const (
	StyleFriendly Style = "friendly"
	StylePolished Style = "polished"
	StyleShort    Style = "short"
)

// Styles lists the rewrite styles in the order they are offered to the user.
var Styles = []Style{StyleFriendly, StylePolished, StyleShort}

// ParseStyle maps a user supplied style name onto a Style.
func ParseStyle(s string) (Style, error) {
	want := Style(strings.ToLower(strings.TrimSpace(s)))
	names := make([]string, 0, len(Styles))
	for _, style := range Styles {
		if style == want {
			return style, nil
		}
		names = append(names, string(style))
	}
	return "", fmt.Errorf("unknown rewrite style %q (want %s)", s, strings.Join(names, ", "))
}

// RewriteRequest is the input of a reply rewrite.
type RewriteRequest struct {
	OriginalMessage string `json:"original_message"`
	BaseReply       string `json:"base_reply"`
	Style           Style  `json:"style"`
}

// Wire formats for the analysis service.
type analyzeRequest struct {
	Message string `json:"message"`
}

type analyzeResponse struct {
	Classification string   `json:"classification"`
	Summary        string   `json:"summary"`
	Tasks          []string `json:"tasks"`
	SuggestedReply string   `json:"suggested_reply"`
}

type rewriteResponse struct {
	RewrittenReply string `json:"rewritten_reply"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}
