// Package yinpool runs many independent YIN parses concurrently, the way
// andaru-opr8/session manages many independent NETCONF sessions: a manager
// accepts work, assigns it an ID, and tracks it until completion; finished
// jobs and their results stay in the pool so that Pool.Wait can return
// them. Here the "work" is one yin.ParseModule or
// yin.ParseSubmodule call instead of one network session (spec.md §5:
// "multiple parsers over independent inputs may run in parallel on separate
// threads... provided they use independent dictionaries or a dictionary
// that is itself safe for concurrent interning").
package yinpool

import (
	"context"
	"fmt"

	"github.com/andaru/yin/yin"
)

// ID identifies a unique parse job in a Pool. The zero value does not
// describe a valid job, mirroring session.ID.
type ID uint32

// IDGenerator generates a non-repeating sequence of valid (nonzero) job
// IDs, following session.IDGenerator's contract.
type IDGenerator interface {
	NextID() ID
}

// Kind selects whether a Source is parsed as a module or a submodule.
type Kind int

const (
	KindModule Kind = 1 + iota
	KindSubmodule
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindSubmodule:
		return "submodule"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", k)
	}
}

// Source supplies one YIN document to be parsed, replacing the teacher's
// transport.Transport (a bidirectional network connection) with the
// narrower, parsing-scoped contract this domain actually needs: an
// io.Reader factory plus the kind of root element expected.
type Source interface {
	// Open returns a fresh reader over the document. Pool calls this at
	// most once per submitted job.
	Open() (Reader, error)
	// Kind reports whether this source should be parsed as a module or a
	// submodule.
	Kind() Kind
}

// Reader is the subset of io.ReadCloser a Source hands back.
type Reader interface {
	Read(p []byte) (int, error)
	Close() error
}

// Result is the outcome of one parse job: exactly one of Module/Submodule
// is set on success, and Err is set on failure.
type Result struct {
	Module    *yin.Module
	Submodule *yin.Submodule
	Context   *yin.Context
	Err       error
}

// Job is the caller's handle on a submitted, in-flight or completed parse.
type Job interface {
	// ID returns the job identifier.
	ID() ID
	// Wait returns a channel that receives the job's Result exactly once,
	// when the parse completes (successfully or not), then is closed.
	Wait() <-chan Result
	// Cancel requests early termination. It takes effect only before the
	// parse starts (while the job waits for a concurrency slot, or right
	// after its source is opened), and then Wait delivers a Result with a
	// context.Canceled-wrapped Err. A parse already under way is not
	// interrupted: it runs to completion and Wait delivers its outcome.
	Cancel()
}

// Pool is the job manager interface, the yinpool analogue of
// andaru-opr8/session.Manager.
type Pool interface {
	// Submit starts a new parse job for src, using dict to intern the
	// source's strings (callers wanting independent parses to share no
	// state pass distinct dictionaries; callers wanting them to share an
	// identifier space pass the same one, since yin.Dictionary
	// implementations are required to be concurrency-safe). mainContext is
	// consulted only when src.Kind() is KindSubmodule, and may be nil.
	Submit(ctx context.Context, src Source, dict yin.Dictionary, mainContext *yin.Context) (Job, error)
	// Wait blocks until every job currently tracked by the pool has
	// completed, then returns their results in submission order.
	Wait() []Result
}
