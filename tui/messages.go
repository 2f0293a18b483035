package tui

import "github.com/bassamadnan/inboxagent/analysis"

// analyzeDoneMsg carries the outcome of an analyze call issued under generation gen.
type analyzeDoneMsg struct {
	gen    uint64
	result analysis.Result
	err    error
}

// rewriteDoneMsg carries the outcome of a rewrite of the reply from analysis number analysisID.
type rewriteDoneMsg struct {
	analysisID uint64
	style      analysis.Style
	reply      string
	err        error
}

// Message to revert the "Copied!" affordance. seq guards against an older timer
// clearing a newer copy.
type clearCopiedMsg struct{ seq int }

// Message to clear a temporary status message after a timeout. Only the timer
// of the latest temporary status (seq) clears it.
type clearTempStatusMsg struct{ seq int }
