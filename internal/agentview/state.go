// Package agentview holds the per-agent view state machine that sits between
// a query function and whatever renders it (HTTP snapshots, websocket
// streams).
package agentview

type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// State is sealed: Idle, Loading, Loaded[T] and Failed are the only
// implementations.
type State interface {
	Phase() Phase
	state()
}

type Idle struct{}

type Loading struct {
	Token uint64
	Input string
}

type Loaded[T any] struct {
	Input   string
	Results []T
}

// Failed is re-submittable. Err is the user-facing error; its message is
// what gets rendered.
type Failed struct {
	Input string
	Err   error
}

func (Idle) Phase() Phase      { return PhaseIdle }
func (Loading) Phase() Phase   { return PhaseLoading }
func (Loaded[T]) Phase() Phase { return PhaseLoaded }
func (Failed) Phase() Phase    { return PhaseFailed }

func (Idle) state()      {}
func (Loading) state()   {}
func (Loaded[T]) state() {}
func (Failed) state()    {}
