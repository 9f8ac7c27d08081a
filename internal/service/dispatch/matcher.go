package dispatch

import (
	"strings"

	"github.com/sandevgo/huskbot/internal/core"
)

type ResultKind uint8

const (
	// NoMatch means no registered (prefix, trigger) pair applies.
	NoMatch ResultKind = iota
	// Matched selects exactly one binding with its params.
	Matched
	// ScopeRejected means some binding matched textually but none of
	// the textual matches admit the envelope's conversation kind.
	ScopeRejected
)

// Result is the outcome of matching one envelope against the registry.
type Result struct {
	Kind    ResultKind
	Binding *Binding
	Prefix  string
	Trigger string
	Params  []string
}

// Match finds the best binding for the envelope. Prefixes are tried
// longest first so the empty prefix can never mask a registered
// non-empty one. For each candidate prefix the remainder is split on
// whitespace; the first token names the trigger, the rest become
// params. Bindings sharing a (prefix, trigger) pair are tried in
// registration order; the first whose scopes admit the envelope wins
// and scanning stops. Scope misses are remembered and the scan
// continues, so a same-trigger binding under another prefix can still
// match.
func Match(env core.Envelope, reg *Registry) Result {
	text := strings.TrimSpace(env.Text())
	if text == "" {
		return Result{Kind: NoMatch}
	}

	var rejected *Result
	for _, prefix := range reg.Prefixes() {
		if !strings.HasPrefix(text, prefix) {
			continue
		}
		fields := strings.Fields(text[len(prefix):])
		if len(fields) == 0 {
			continue
		}
		trigger, params := fields[0], fields[1:]
		if len(params) == 0 {
			params = nil
		}

		for _, b := range reg.Lookup(prefix, trigger) {
			if b.allows(env.Kind()) {
				return Result{
					Kind:    Matched,
					Binding: b,
					Prefix:  prefix,
					Trigger: trigger,
					Params:  params,
				}
			}
			if rejected == nil {
				rejected = &Result{
					Kind:    ScopeRejected,
					Binding: b,
					Prefix:  prefix,
					Trigger: trigger,
				}
			}
		}
	}

	if rejected != nil {
		return *rejected
	}
	return Result{Kind: NoMatch}
}
