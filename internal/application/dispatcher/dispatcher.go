package dispatcher

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/garyjia/approval-chain/internal/domain/chain"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Dispatcher walks a chain of handlers under one policy.
// It snapshots the chain when created and holds no per-dispatch state,
// so one Dispatcher can serve any number of dispatches.
type Dispatcher[T, R any] struct {
	name     string
	handlers []chain.Handler[T, R]
	policy   Policy[R]
	logger   Logger
	recorder Recorder
}

type options struct {
	name     string
	logger   Logger
	recorder Recorder
}

// Option configures the dispatcher
type Option func(*options)

// WithLogger sets a logger for the dispatcher
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRecorder sets a recorder that observes every dispatch
func WithRecorder(recorder Recorder) Option {
	return func(o *options) {
		o.recorder = recorder
	}
}

// WithName labels the chain in logs and observations
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// New binds a chain to a policy. All configuration faults surface here so
// that Dispatch itself never fails.
func New[T, R any](c *chain.Chain[T, R], policy Policy[R], opts ...Option) (*Dispatcher[T, R], error) {
	if c == nil {
		return nil, ErrNilChain
	}
	if c.Len() == 0 {
		return nil, ErrEmptyChain
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	o := options{name: string(policy.Kind)}
	for _, opt := range opts {
		opt(&o)
	}

	handlers := make([]chain.Handler[T, R], 0, c.Len())
	for h := range c.Handlers() {
		handlers = append(handlers, h)
	}

	d := &Dispatcher[T, R]{
		name:     o.name,
		handlers: handlers,
		policy:   policy,
		logger:   o.logger,
		recorder: o.recorder,
	}

	if d.logger != nil {
		for i, h := range handlers {
			d.logger.Info("Handler registered",
				"chain", d.name,
				"policy", policy.Kind,
				"handler_name", h.Identity(),
				"position", i,
			)
		}
	}

	return d, nil
}

// Dispatch binds c to policy and dispatches item once.
// The error is non-nil only for assembly faults.
func Dispatch[T, R any](c *chain.Chain[T, R], item T, policy Policy[R], opts ...Option) (chain.Outcome[R], error) {
	d, err := New(c, policy, opts...)
	if err != nil {
		return chain.Outcome[R]{}, err
	}
	return d.Dispatch(item), nil
}

// Name returns the chain label
func (d *Dispatcher[T, R]) Name() string {
	return d.name
}

// Policy returns the bound policy
func (d *Dispatcher[T, R]) Policy() Policy[R] {
	return d.policy
}

// ListHandlers returns the bound handlers in traversal order
func (d *Dispatcher[T, R]) ListHandlers() []HandlerInfo {
	result := make([]HandlerInfo, len(d.handlers))
	for i, h := range d.handlers {
		result[i] = HandlerInfo{
			Identity: h.Identity(),
			Position: i,
		}
	}
	return result
}

// Dispatch sends item down the chain and always returns a terminal outcome
func (d *Dispatcher[T, R]) Dispatch(item T) chain.Outcome[R] {
	traceID := uuid.NewString()
	start := time.Now()

	if d.logger != nil {
		d.logger.Info("Dispatching work item",
			"chain", d.name,
			"policy", d.policy.Kind,
			"trace_id", traceID,
			"handler_count", len(d.handlers),
		)
	}

	outcome, steps := d.traverse(item, traceID)

	if d.recorder != nil {
		d.recorder.RecordDispatch(Observation{
			Chain:    d.name,
			Policy:   d.policy.Kind,
			Outcome:  outcome.Kind(),
			Handler:  outcome.Handler(),
			Steps:    steps,
			Duration: time.Since(start),
		})
	}

	if d.logger != nil {
		d.logger.Info("Dispatch completed",
			"chain", d.name,
			"trace_id", traceID,
			"outcome", outcome.Kind(),
			"handler_name", outcome.Handler(),
			"reason", outcome.Reason(),
			"steps", steps,
		)
	}

	return outcome
}

// traverse applies the policy's decision table handler by handler.
// It returns the terminal outcome and the number of handlers visited.
func (d *Dispatcher[T, R]) traverse(item T, traceID string) (chain.Outcome[R], int) {
	for i, h := range d.handlers {
		steps := i + 1
		id := h.Identity()

		passed, failure, ok := d.safeTest(h, item, traceID)
		if !ok {
			return failure, steps
		}

		switch d.policy.Kind {
		case FirstMatchWinsKind:
			if !passed {
				continue
			}
			if out := d.safeAct(h, item, traceID); out.IsTerminal() {
				return out.WithHandler(id), steps
			}

		case AllMustPassKind:
			out := d.safeAct(h, item, traceID)
			if !passed {
				// A failing test always stops; act only supplies the reason
				if !out.IsRejected() || out.Reason() == "" {
					out = chain.Rejected[R](fmt.Sprintf("%s failed", id))
				}
				return out.WithHandler(id), steps
			}
			if out.IsRejected() {
				return out.WithHandler(id), steps
			}

		case InterceptOrForwardKind:
			if out := d.safeAct(h, item, traceID); out.IsTerminal() {
				return out.WithHandler(id), steps
			}
		}
	}

	return d.policy.Exhaustion, len(d.handlers)
}

// safeTest runs a handler's test with panic recovery. ok is false when the
// test panicked, in which case failure is the outcome to return.
func (d *Dispatcher[T, R]) safeTest(h chain.Handler[T, R], item T, traceID string) (passed bool, failure chain.Outcome[R], ok bool) {
	defer func() {
		if r := recover(); r != nil {
			failure = d.recovered(h, r, "test", traceID)
			passed, ok = false, false
		}
	}()

	return h.Test(item), chain.Outcome[R]{}, true
}

// safeAct runs a handler's act with panic recovery
func (d *Dispatcher[T, R]) safeAct(h chain.Handler[T, R], item T, traceID string) (out chain.Outcome[R]) {
	defer func() {
		if r := recover(); r != nil {
			out = d.recovered(h, r, "act", traceID)
		}
	}()

	return h.Act(item)
}

func (d *Dispatcher[T, R]) recovered(h chain.Handler[T, R], r interface{}, phase, traceID string) chain.Outcome[R] {
	if d.logger != nil {
		d.logger.Error("Handler panic recovered",
			"chain", d.name,
			"trace_id", traceID,
			"handler_name", h.Identity(),
			"phase", phase,
			"panic", r,
		)
	}
	return chain.Rejected[R](fmt.Sprintf("handler %s panicked: %v", h.Identity(), r)).WithHandler(h.Identity())
}
