package dispatch

import (
	"context"
	"fmt"

	"github.com/sandevgo/huskbot/internal/core"
	"github.com/sandevgo/huskbot/pkg/log"
)

type Status uint8

const (
	// Ignored means no command applies; not an error, nothing sent.
	Ignored Status = iota
	// Handled means exactly one handler ran and returned nil.
	Handled
	// Rejected means a command matched textually but is not allowed
	// in the envelope's conversation kind. Silent, like Ignored:
	// announcing scope violations is a handler-layer policy.
	Rejected
	// Failed means the selected handler returned an error or
	// panicked. The failure stops here.
	Failed
)

// Outcome reports what Dispatch did with one envelope. Prefix is the
// prefix the command matched under; Scope is set on Rejected to the
// envelope's conversation kind that the binding refused.
type Outcome struct {
	Status  Status
	Trigger string
	Prefix  string
	Scope   core.Scope
	Err     *HandlerError
}

// Dispatcher routes envelopes to registered handlers. It is safe for
// concurrent use; each call reads the registry and touches no other
// shared state.
type Dispatcher struct {
	reg *Registry
}

func NewDispatcher(reg *Registry) *Dispatcher {
	return &Dispatcher{reg: reg}
}

// Dispatch matches the envelope and invokes at most one handler.
// Handler failures are contained here and never propagate; one broken
// handler must not take down the event loop.
func (d *Dispatcher) Dispatch(ctx context.Context, env core.Envelope) Outcome {
	logger := log.FromCtx(ctx)

	res := Match(env, d.reg)
	switch res.Kind {
	case NoMatch:
		return Outcome{Status: Ignored}
	case ScopeRejected:
		logger.Debug().
			Str("trigger", res.Trigger).
			Stringer("kind", env.Kind()).
			Msg("command rejected by scope")
		return Outcome{Status: Rejected, Trigger: res.Trigger, Prefix: res.Prefix, Scope: env.Kind()}
	}

	if err := invoke(ctx, res.Binding.handler, env, res.Params); err != nil {
		herr := &HandlerError{Trigger: res.Trigger, Cause: err}
		logger.Error().Err(herr).Str("sender", env.SenderID()).Msg("command handler failed")
		return Outcome{Status: Failed, Trigger: res.Trigger, Prefix: res.Prefix, Err: herr}
	}

	logger.Debug().
		Str("trigger", res.Trigger).
		Int("params", len(res.Params)).
		Msg("command handled")
	return Outcome{Status: Handled, Trigger: res.Trigger, Prefix: res.Prefix}
}

// invoke runs the handler, converting a panic into an error so the
// dispatcher stays the failure boundary.
func invoke(ctx context.Context, h core.Handler, env core.Envelope, params []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h(ctx, env, params)
}
