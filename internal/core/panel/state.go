// Package panel holds the per-domain view-state controllers of the console.
// Each controller owns its form draft and its last result; nothing is shared
// between panels.
package panel

import (
	"fmt"

	"github.com/rl1809/ops-console/internal/core/domain"
)

type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Status is the part of a panel view common to all controllers.
type Status struct {
	State     State            `json:"state"`
	Error     string           `json:"error,omitempty"`
	ErrorKind domain.ErrorKind `json:"error_kind,omitempty"`
	Notice    string           `json:"notice,omitempty"`
}

// tracker is the Idle -> Loading -> Success/Failed machine plus the request
// fence. Callers hold the owning controller's mutex.
//
// Every action takes a ticket from begin; a resolution is applied only while
// its ticket is still the latest, so an older slow call cannot overwrite the
// result of a newer one.
type tracker struct {
	state  State
	seq    uint64
	err    error
	notice string
}

func (t *tracker) begin() uint64 {
	t.seq++
	t.state = StateLoading
	t.err = nil
	return t.seq
}

func (t *tracker) current(ticket uint64) bool {
	return ticket == t.seq
}

func (t *tracker) succeed() {
	t.state = StateSuccess
	t.err = nil
}

func (t *tracker) fail(err error) {
	t.state = StateFailed
	t.err = err
}

// reject records an input error without touching the state or issuing a call.
func (t *tracker) reject(err error) {
	t.err = err
	t.notice = ""
}

func (t *tracker) status() Status {
	s := Status{State: t.state, Notice: t.notice}
	if t.err != nil {
		s.Error = domain.Message(t.err)
		s.ErrorKind = domain.KindOf(t.err)
	}
	return s
}
