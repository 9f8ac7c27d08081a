package dispatch

import (
	"fmt"

	"github.com/sandevgo/huskbot/internal/core"
)

// DefaultPrefixes is used when a binding does not override its prefix
// list: a slash-prefixed form and the bare trigger.
var DefaultPrefixes = []string{"/", ""}

// Binding ties a set of trigger names to a handler, together with the
// prefixes it answers to and the conversation scopes it is allowed in.
// A binding is immutable once registered.
type Binding struct {
	triggers    []string
	prefixes    []string
	scopeTokens []string
	scopes      []core.Scope
	handler     core.Handler
	description string
}

// Option customizes a binding before registration.
type Option func(*Binding)

// WithPrefixes replaces the default prefix list. Order matters only
// for documentation; matching always tries longer prefixes first.
func WithPrefixes(prefixes ...string) Option {
	return func(b *Binding) {
		b.prefixes = prefixes
	}
}

// WithScopes restricts the binding to the given scope tokens
// ("c2c", "group", "channel"). No scopes means unrestricted.
// Unknown tokens are rejected at registration time.
func WithScopes(tokens ...string) Option {
	return func(b *Binding) {
		b.scopeTokens = tokens
	}
}

// WithDescription attaches a short human-readable summary, shown by
// the help command.
func WithDescription(desc string) Option {
	return func(b *Binding) {
		b.description = desc
	}
}

// NewBinding builds a binding for the given handler and trigger names.
// Validation happens in Registry.Register, not here.
func NewBinding(handler core.Handler, triggers ...string) *Binding {
	return &Binding{
		triggers: triggers,
		prefixes: DefaultPrefixes,
		handler:  handler,
	}
}

func (b *Binding) Triggers() []string {
	out := make([]string, len(b.triggers))
	copy(out, b.triggers)
	return out
}

func (b *Binding) Prefixes() []string {
	out := make([]string, len(b.prefixes))
	copy(out, b.prefixes)
	return out
}

// Scopes returns the allowed scopes; empty means unrestricted.
// Populated during registration.
func (b *Binding) Scopes() []core.Scope {
	out := make([]core.Scope, len(b.scopes))
	copy(out, b.scopes)
	return out
}

func (b *Binding) Description() string {
	return b.description
}

// allows reports whether the binding may run for the given scope.
func (b *Binding) allows(kind core.Scope) bool {
	if len(b.scopes) == 0 {
		return true
	}
	for _, s := range b.scopes {
		if s == kind {
			return true
		}
	}
	return false
}

// validate checks the binding shape and resolves scope tokens.
func (b *Binding) validate() error {
	if b.handler == nil {
		return fmt.Errorf("%w: nil handler", ErrInvalidConfiguration)
	}
	if len(b.triggers) == 0 {
		return fmt.Errorf("%w: no triggers", ErrInvalidConfiguration)
	}
	for _, trigger := range b.triggers {
		if trigger == "" {
			return fmt.Errorf("%w: empty trigger", ErrInvalidConfiguration)
		}
	}
	if len(b.prefixes) == 0 {
		return fmt.Errorf("%w: no prefixes", ErrInvalidConfiguration)
	}

	// Repeated names would index the binding twice under one key.
	b.triggers = dedupe(b.triggers)
	b.prefixes = dedupe(b.prefixes)

	b.scopes = b.scopes[:0]
	for _, token := range b.scopeTokens {
		scope, err := core.ParseScope(token)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
		}
		b.scopes = append(b.scopes, scope)
	}
	return nil
}

// dedupe drops repeated entries, keeping first-seen order. Always
// copies: the input may alias a caller's slice or DefaultPrefixes.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// scopesOverlap reports whether two bindings could both claim the same
// envelope. An unrestricted binding overlaps everything.
func scopesOverlap(a, b *Binding) bool {
	if len(a.scopes) == 0 || len(b.scopes) == 0 {
		return true
	}
	for _, sa := range a.scopes {
		for _, sb := range b.scopes {
			if sa == sb {
				return true
			}
		}
	}
	return false
}
