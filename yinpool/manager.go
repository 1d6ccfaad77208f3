package yinpool

import (
	"context"
	"sync"

	"github.com/andaru/yin/yin"
	"github.com/pkg/errors"
)

// ManagerOption configures a Pool built by NewPool, mirroring
// andaru-opr8/session's ManagerOption/NewManager functional-options idiom.
type ManagerOption func(*pool)

// WithIDSource overrides the pool's job ID generator.
func WithIDSource(gen IDGenerator) ManagerOption {
	return func(p *pool) { p.idgen = gen }
}

// WithConcurrency bounds how many parses may run at once. The default (0)
// means unbounded: every Submit starts its goroutine immediately.
func WithConcurrency(n int) ManagerOption {
	return func(p *pool) {
		if n > 0 {
			p.sem = make(chan struct{}, n)
		}
	}
}

// genIncrement is the default ID generator: an incrementing counter that
// skips the reserved zero value, identical in shape to session.genIncrement.
type genIncrement struct {
	mu sync.Mutex
	id ID
}

func (g *genIncrement) NextID() ID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id++
	if g.id == 0 {
		g.id++
	}
	return g.id
}

// NewPool returns a Pool ready to accept parse jobs.
func NewPool(options ...ManagerOption) Pool {
	p := &pool{jobs: map[ID]*job{}, idgen: &genIncrement{}}
	for _, o := range options {
		o(p)
	}
	return p
}

type pool struct {
	mu    sync.Mutex
	jobs  map[ID]*job
	order []ID
	idgen IDGenerator
	sem   chan struct{}
}

func (p *pool) Submit(ctx context.Context, src Source, dict yin.Dictionary, mainContext *yin.Context) (Job, error) {
	if src == nil {
		return nil, errors.New("yinpool: nil source")
	}
	jctx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	var id ID
	for i := 0; i < 16; i++ {
		if id = p.idgen.NextID(); id != 0 && p.jobs[id] == nil {
			break
		}
	}
	if id == 0 {
		p.mu.Unlock()
		cancel()
		return nil, errors.New("yinpool: failed to allocate a unique job ID")
	}
	j := &job{id: id, closed: make(chan struct{}), cancel: cancel}
	p.jobs[id] = j
	p.order = append(p.order, id)
	p.mu.Unlock()

	go p.run(jctx, j, src, dict, mainContext)
	return j, nil
}

func (p *pool) run(ctx context.Context, j *job, src Source, dict yin.Dictionary, mainContext *yin.Context) {
	if p.sem != nil {
		select {
		case p.sem <- struct{}{}:
			defer func() { <-p.sem }()
		case <-ctx.Done():
			j.finish(Result{Err: errors.Wrap(ctx.Err(), "yinpool: cancelled before start")})
			return
		}
	}

	r, err := src.Open()
	if err != nil {
		j.finish(Result{Err: errors.Wrap(err, "yinpool: opening source")})
		return
	}
	defer r.Close()

	if err := ctx.Err(); err != nil {
		j.finish(Result{Err: errors.Wrap(err, "yinpool: cancelled before parse")})
		return
	}

	var res Result
	switch src.Kind() {
	case KindModule:
		mod, c, err := yin.ParseModule(r, dict)
		res = Result{Module: mod, Context: c, Err: err}
	case KindSubmodule:
		sub, c, err := yin.ParseSubmodule(r, mainContext, dict)
		res = Result{Submodule: sub, Context: c, Err: err}
	default:
		res = Result{Err: errors.Errorf("yinpool: unknown source kind %v", src.Kind())}
	}
	j.finish(res)
}

// Wait blocks for every job the pool has ever tracked to complete, then
// returns their results in submission order. Jobs submitted concurrently
// with a Wait call are included only if they were tracked before Wait took
// its snapshot of p.order.
func (p *pool) Wait() []Result {
	p.mu.Lock()
	order := append([]ID(nil), p.order...)
	jobs := make([]*job, len(order))
	for i, id := range order {
		jobs[i] = p.jobs[id]
	}
	p.mu.Unlock()

	results := make([]Result, len(jobs))
	for i, j := range jobs {
		<-j.closed
		results[i] = j.result
	}
	return results
}

// job implements Job. result is written exactly once, by finish, strictly
// before closed is closed; every later read of result (by any number of
// Wait/Job.Wait callers) happens-after that close, so no further
// synchronization on result itself is needed.
type job struct {
	id     ID
	closed chan struct{}
	result Result
	cancel context.CancelFunc
}

func (j *job) ID() ID     { return j.id }

func (j *job) Wait() <-chan Result {
	out := make(chan Result, 1)
	go func() {
		<-j.closed
		out <- j.result
		close(out)
	}()
	return out
}

func (j *job) Cancel() { j.cancel() }

func (j *job) finish(r Result) {
	j.result = r
	close(j.closed)
}

var _ Pool = &pool{}
var _ Job = &job{}
