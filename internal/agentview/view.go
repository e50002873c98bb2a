package agentview

import (
	"context"
	"errors"
	"sync"

	"agenthub/internal/types"
)

var (
	ErrBusy         = errors.New("agentview: a query is already in flight")
	ErrNotConnected = errors.New("agentview: account not connected")
)

// Querier is the domain query an agent view drives. *agent.Agent[T]
// satisfies it.
type Querier[T any] interface {
	Domain() types.Domain
	CheckInput(input string) error
	Query(ctx context.Context, input string) ([]T, error)
}

// Gate blocks submissions until it reports connected.
type Gate interface {
	Connected() bool
}

// Controller is the type-erased surface the gateway talks to.
type Controller interface {
	Domain() types.Domain
	Submit(ctx context.Context, input string) (Snapshot, error)
	Start(ctx context.Context, input string) error
	Reset()
	Notify()
	Snapshot() Snapshot
	Subscribe(ctx context.Context) <-chan Snapshot
}

// View is one agent's screen state. At most one query is in flight; results
// of superseded requests are discarded.
type View[T any] struct {
	q    Querier[T]
	p    Presenter[T]
	gate Gate

	mu      sync.Mutex
	state   State
	token   uint64
	changed chan struct{}
}

var _ Controller = (*View[types.DisasterAlert])(nil)

// New returns an idle view. gate may be nil for agents that need no account.
func New[T any](q Querier[T], p Presenter[T], gate Gate) *View[T] {
	return &View[T]{
		q:       q,
		p:       p,
		gate:    gate,
		state:   Idle{},
		changed: make(chan struct{}),
	}
}

func (v *View[T]) Domain() types.Domain { return v.q.Domain() }

func (v *View[T]) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Begin moves the view to Loading and returns the request token the caller
// must hand back to Complete. Invalid input moves the view to Failed
// without a token.
func (v *View[T]) Begin(input string) (uint64, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.gate != nil && !v.gate.Connected() {
		return 0, ErrNotConnected
	}
	if _, ok := v.state.(Loading); ok {
		return 0, ErrBusy
	}
	if err := v.q.CheckInput(input); err != nil {
		v.setLocked(Failed{Input: input, Err: err})
		return 0, err
	}
	v.token++
	v.setLocked(Loading{Token: v.token, Input: input})
	return v.token, nil
}

// Complete applies a query outcome. It reports false when token no longer
// identifies the in-flight request.
func (v *View[T]) Complete(token uint64, results []T, err error) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	cur, ok := v.state.(Loading)
	if !ok || cur.Token != token || v.token != token {
		return false
	}
	if err != nil {
		v.setLocked(Failed{Input: cur.Input, Err: err})
		return true
	}
	if results == nil {
		results = []T{}
	}
	v.setLocked(Loaded[T]{Input: cur.Input, Results: results})
	return true
}

// Submit runs a query to completion on the caller's goroutine.
func (v *View[T]) Submit(ctx context.Context, input string) (Snapshot, error) {
	token, err := v.Begin(input)
	if err != nil {
		return v.Snapshot(), err
	}
	results, err := v.q.Query(ctx, input)
	v.Complete(token, results, err)
	return v.Snapshot(), err
}

// Start begins a query and finishes it in the background. The query
// outlives ctx cancellation so a dropped stream does not abort it.
func (v *View[T]) Start(ctx context.Context, input string) error {
	token, err := v.Begin(input)
	if err != nil {
		return err
	}
	qctx := context.WithoutCancel(ctx)
	go func() {
		results, err := v.q.Query(qctx, input)
		v.Complete(token, results, err)
	}()
	return nil
}

// Reset returns to Idle and invalidates any in-flight request.
func (v *View[T]) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.token++
	v.setLocked(Idle{})
}

// Notify wakes subscribers without changing state. Call it after something
// the snapshot reads from outside the view, such as the gate, has changed.
func (v *View[T]) Notify() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notifyLocked()
}

func (v *View[T]) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Subscribe emits the current snapshot and then one per change until ctx is
// done. Slow readers lose intermediate snapshots, never the latest.
func (v *View[T]) Subscribe(ctx context.Context) <-chan Snapshot {
	out := make(chan Snapshot, 8)
	go func() {
		defer close(out)
		for {
			v.mu.Lock()
			snap := v.snapshotLocked()
			ch := v.changed
			v.mu.Unlock()

			pushSnapshot(out, snap)

			select {
			case <-ctx.Done():
				return
			case <-ch:
			}
		}
	}()
	return out
}

func (v *View[T]) setLocked(s State) {
	v.state = s
	v.notifyLocked()
}

func (v *View[T]) notifyLocked() {
	close(v.changed)
	v.changed = make(chan struct{})
}

func pushSnapshot(ch chan Snapshot, s Snapshot) {
	select {
	case ch <- s:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- s:
	default:
	}
}
