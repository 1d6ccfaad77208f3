package yin

// ParseState is the overall parse's state machine (spec.md §4.7), tracked
// independently of the per-statement child-table dispatch in childtable.go:
// that machine governs one statement's children, this one governs the
// document as a whole.
type ParseState int8

const (
	// PreRoot is the initial state: the parser expects an opening element.
	PreRoot ParseState = iota
	// InRoot: the root module/submodule element was seen and its header,
	// linkage, meta, revision and body statements are being dispatched.
	InRoot
	// PostRoot: the root element closed; only EOF may follow.
	PostRoot
	// Failed: an error occurred. Per spec.md §4.7, subsequent operations on
	// a failed parser are no-ops returning the first error.
	Failed
)

func (s ParseState) String() string {
	switch s {
	case PreRoot:
		return "PreRoot"
	case InRoot:
		return "InRoot"
	case PostRoot:
		return "PostRoot"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// stateMachine drives the PreRoot/InRoot/PostRoot/Failed transitions around
// a single ParseModule/ParseSubmodule call (nextRootElement through
// finishDocument). It exists as its own type, rather than
// fields inlined into Context, so the transition rules read as one place
// (spec.md §4.7) independent of what Context otherwise accumulates.
type stateMachine struct {
	state ParseState
	err   error
}

// fail transitions to Failed and records err as the first error, per
// spec.md §4.7 ("subsequent operations are no-ops that return the first
// error"). Later calls to fail do not overwrite the recorded error.
func (m *stateMachine) fail(err error) error {
	if m.state != Failed {
		m.state = Failed
		m.err = err
	}
	return m.err
}
