package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/huskbot/internal/config"
	"github.com/sandevgo/huskbot/internal/service/dispatch"
	"github.com/sandevgo/huskbot/internal/storage/sqlite"
	"github.com/sandevgo/huskbot/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot        *tele.Bot
	dispatcher *dispatch.Dispatcher
	users      *sqlite.UsersRepo
	sender     *sender
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	dispatcher *dispatch.Dispatcher,
	users *sqlite.UsersRepo,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:        b,
		dispatcher: dispatcher,
		users:      users,
		sender:     newSender(b),
	}

	// Carry the process context (with logger) into every handler
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)
	b.Handle(tele.OnChannelPost, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	env := newEnvelope(c, b.sender)
	if env == nil {
		return nil
	}

	// Activity tracking is best effort; a storage hiccup must not
	// stop the command from running.
	if err := b.users.Touch(ctx, env.Kind(), env.SenderID(), env.ConversationID()); err != nil {
		logger.Error().Err(err).Str("sender", env.SenderID()).Msg("failed to record user activity")
	}

	outcome := b.dispatcher.Dispatch(ctx, env)
	if outcome.Status == dispatch.Failed {
		return c.Send(fmt.Sprintf("command %s%s failed, try again later", outcome.Prefix, outcome.Trigger))
	}
	return nil
}
