package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/huskbot/internal/core"
	"github.com/sandevgo/huskbot/internal/service/dispatch"
)

// HelpCommand lists every registered command with its triggers.
type HelpCommand struct {
	reg       *dispatch.Registry
	formatter *ResponseFormatter
}

func NewHelpCommand(reg *dispatch.Registry) *HelpCommand {
	return &HelpCommand{
		reg:       reg,
		formatter: NewResponseFormatter(),
	}
}

func (c *HelpCommand) Handle(ctx context.Context, env core.Envelope, params []string) error {
	var items []string
	for _, b := range c.reg.Bindings() {
		line := fmt.Sprintf("`%s`", strings.Join(b.Triggers(), "`, `"))
		if desc := b.Description(); desc != "" {
			line += " — " + desc
		}
		items = append(items, line)
	}

	return env.Send(ctx, c.formatter.Combine(
		c.formatter.Info("Commands"),
		c.formatter.List(items),
	))
}
