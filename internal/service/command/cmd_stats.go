package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/huskbot/internal/core"
	"github.com/sandevgo/huskbot/internal/storage/sqlite"
)

// StatsCommand reports member activity for the group it runs in.
// Bound group-only; the data makes no sense elsewhere.
type StatsCommand struct {
	users     *sqlite.UsersRepo
	formatter *ResponseFormatter
}

func NewStatsCommand(users *sqlite.UsersRepo) *StatsCommand {
	return &StatsCommand{
		users:     users,
		formatter: NewResponseFormatter(),
	}
}

func (c *StatsCommand) Handle(ctx context.Context, env core.Envelope, params []string) error {
	members, err := c.users.GroupMembers(ctx, env.ConversationID())
	if err != nil {
		return fmt.Errorf("failed to load group members: %w", err)
	}
	if len(members) == 0 {
		return env.Send(ctx, "nobody here has talked to me yet")
	}

	items := make([]string, 0, len(members))
	for _, m := range members {
		items = append(items, fmt.Sprintf("`%s` — %d messages", m.OpenID, m.MessageCount))
	}

	return env.Send(ctx, c.formatter.Combine(
		c.formatter.Info("Group Activity"),
		c.formatter.List(items),
	))
}
