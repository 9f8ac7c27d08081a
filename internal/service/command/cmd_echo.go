package command

import (
	"context"
	"strings"

	"github.com/sandevgo/huskbot/internal/core"
)

// EchoCommand replies with its params joined back together.
type EchoCommand struct{}

func NewEchoCommand() *EchoCommand {
	return &EchoCommand{}
}

func (c *EchoCommand) Handle(ctx context.Context, env core.Envelope, params []string) error {
	if len(params) == 0 {
		return env.Send(ctx, "echo what?")
	}
	return env.Send(ctx, strings.Join(params, " "))
}
