package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/huskbot/internal/core"
	"github.com/sandevgo/huskbot/internal/storage/sqlite"
)

// MeCommand shows the sender their own record for the current scope.
type MeCommand struct {
	users     *sqlite.UsersRepo
	formatter *ResponseFormatter
}

func NewMeCommand(users *sqlite.UsersRepo) *MeCommand {
	return &MeCommand{
		users:     users,
		formatter: NewResponseFormatter(),
	}
}

func (c *MeCommand) Handle(ctx context.Context, env core.Envelope, params []string) error {
	user, err := c.users.Get(ctx, env.Kind(), env.SenderID())
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return env.Send(ctx, "I have no record of you yet")
	}

	return env.Send(ctx, c.formatter.Combine(
		c.formatter.Info("Your Record"),
		c.formatter.Label("ID", user.OpenID),
		c.formatter.Label("Scope", user.Scope.String()),
		c.formatter.Label("Messages", fmt.Sprintf("%d", user.MessageCount)),
	))
}
