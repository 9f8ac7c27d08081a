package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/sandevgo/huskbot/internal/core"
	tele "gopkg.in/telebot.v3"
)

// envelope adapts one Telegram update to the dispatch core's view.
type envelope struct {
	text           string
	kind           core.Scope
	senderID       string
	conversationID string
	to             tele.Recipient
	sender         *sender
}

// newEnvelope maps the update's chat to a conversation scope. Updates
// from chat kinds the dispatcher has no scope for return nil.
func newEnvelope(c tele.Context, s *sender) *envelope {
	chat := c.Chat()
	if chat == nil {
		return nil
	}

	var kind core.Scope
	var conversationID string
	switch chat.Type {
	case tele.ChatPrivate:
		kind = core.ScopeDirect
	case tele.ChatGroup, tele.ChatSuperGroup:
		kind = core.ScopeGroup
		conversationID = strconv.FormatInt(chat.ID, 10)
	case tele.ChatChannel, tele.ChatChannelPrivate:
		kind = core.ScopeChannel
		conversationID = strconv.FormatInt(chat.ID, 10)
	default:
		return nil
	}

	senderID := conversationID
	if from := c.Sender(); from != nil {
		senderID = strconv.FormatInt(from.ID, 10)
	}

	return &envelope{
		text:           strings.TrimSpace(c.Text()),
		kind:           kind,
		senderID:       senderID,
		conversationID: conversationID,
		to:             chat,
		sender:         s,
	}
}

func (e *envelope) Text() string { return e.text }

func (e *envelope) Kind() core.Scope { return e.kind }

func (e *envelope) SenderID() string { return e.senderID }

func (e *envelope) ConversationID() string { return e.conversationID }

func (e *envelope) Send(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("refusing to send empty message")
	}
	return e.sender.sendMarkdown(ctx, e.to, text)
}
