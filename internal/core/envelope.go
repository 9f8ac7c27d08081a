package core

import (
	"context"
	"errors"
	"fmt"
)

// Scope is the kind of conversation a message arrived from.
type Scope uint8

const (
	ScopeDirect Scope = iota + 1
	ScopeGroup
	ScopeChannel
)

// Scope tokens accepted by the registration API.
const (
	TokenDirect  = "c2c"
	TokenGroup   = "group"
	TokenChannel = "channel"
)

var ErrUnknownScope = errors.New("unknown scope")

func ParseScope(token string) (Scope, error) {
	switch token {
	case TokenDirect:
		return ScopeDirect, nil
	case TokenGroup:
		return ScopeGroup, nil
	case TokenChannel:
		return ScopeChannel, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScope, token)
}

func (s Scope) String() string {
	switch s {
	case ScopeDirect:
		return TokenDirect
	case ScopeGroup:
		return TokenGroup
	case ScopeChannel:
		return TokenChannel
	}
	return fmt.Sprintf("scope(%d)", uint8(s))
}

// Envelope is a normalized view of one inbound message event. The
// transport builds one envelope per event and discards it after
// handling; implementations must not mutate it afterwards.
type Envelope interface {
	// Text is the raw message text, surrounding whitespace trimmed.
	Text() string
	// Kind reports which kind of conversation the message came from.
	Kind() Scope
	// SenderID is the platform identity of the author.
	SenderID() string
	// ConversationID identifies the group or channel the message was
	// posted in; empty for direct chats.
	ConversationID() string
	// Send delivers a reply to the conversation the message came from.
	Send(ctx context.Context, text string) error
}
