package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vibary/internal/application"
	"vibary/internal/domain"
)

// Outcome is what a driven run settled on
type Outcome struct {
	State    domain.AppState
	Document *domain.Document
	Err      error
}

// Driver runs a machine to completion outside of an event loop such as the TUI.
// Operations run in goroutines; their completions and timers are funneled
// through one channel so the machine only ever sees one event at a time.
type Driver struct {
	machine *Machine
	exec    *Executor
	log     *zap.Logger

	// OnTransition is called for every accepted transition, from the driver goroutine
	OnTransition func(Transition)
}

// NewDriver creates a driver for machine
func NewDriver(machine *Machine, exec *Executor, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{
		machine: machine,
		exec:    exec,
		log:     log.Named("lifecycle"),
	}
}

// Settled reports whether a driven run can stop in state
func Settled(state domain.AppState) bool {
	return state == domain.StateReady || state == domain.StateIdle || state == domain.StateError
}

// Run applies initial and keeps feeding completions until the machine settles
// or ctx ends. Operations still running at that point are abandoned.
func (d *Driver) Run(ctx context.Context, initial Event) (Outcome, error) {
	log := d.log.With(zap.String("run", uuid.NewString()))

	opCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan Event, 8)
	post := func(ev Event) {
		select {
		case events <- ev:
		case <-opCtx.Done():
		}
	}

	var (
		mu     sync.Mutex
		timers []*time.Timer
	)
	defer func() {
		mu.Lock()
		for _, t := range timers {
			t.Stop()
		}
		mu.Unlock()
	}()

	var notified error
	apply := func(ev Event) Transition {
		t := d.machine.Apply(ev)
		if !t.Accepted {
			log.Debug("Event discarded", zap.String("event", fmt.Sprintf("%T", ev)), zap.Stringer("state", t.From))
			return t
		}
		log.Debug("Transition",
			zap.String("event", fmt.Sprintf("%T", ev)),
			zap.Stringer("from", t.From),
			zap.Stringer("to", t.To),
		)
		if d.OnTransition != nil {
			d.OnTransition(t)
		}

		for _, eff := range t.Effects {
			switch e := eff.(type) {
			case Schedule:
				mu.Lock()
				timers = append(timers, time.AfterFunc(e.After, func() { post(e.Event) }))
				mu.Unlock()
			case Notify:
				notified = e.Err
				switch e.Level {
				case NoticeLogged:
					log.Warn("Operation failed, keeping current document", zap.Error(e.Err))
				default:
					log.Error("Operation failed", zap.Stringer("notice", e.Level), zap.Error(e.Err))
				}
			default:
				if Operation(eff) {
					go func(eff Effect) {
						if done := d.exec.Perform(opCtx, eff); done != nil {
							post(done)
						}
					}(eff)
				}
			}
		}
		return t
	}

	if t := apply(initial); !t.Accepted {
		return Outcome{State: d.machine.State()}, fmt.Errorf("%w: %T not allowed in state %s",
			application.ErrInvalidOperation, initial, t.From)
	}

	for !Settled(d.machine.State()) {
		select {
		case <-ctx.Done():
			return Outcome{State: d.machine.State()}, ctx.Err()
		case ev := <-events:
			apply(ev)
		}
	}

	out := Outcome{
		State:    d.machine.State(),
		Document: d.machine.Document(),
		Err:      notified,
	}
	if f := d.machine.Failure(); f != nil {
		out.Err = f
	}
	return out, nil
}
