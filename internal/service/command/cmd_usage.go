package command

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sandevgo/huskbot/internal/core"
)

// UsageCommand reports process resource figures.
type UsageCommand struct {
	formatter *ResponseFormatter
}

func NewUsageCommand() *UsageCommand {
	return &UsageCommand{formatter: NewResponseFormatter()}
}

func (c *UsageCommand) Handle(ctx context.Context, env core.Envelope, params []string) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return env.Send(ctx, c.formatter.Combine(
		c.formatter.Info("Process Usage"),
		c.formatter.Label("Goroutines", fmt.Sprintf("%d", runtime.NumGoroutine())),
		c.formatter.Label("Heap", fmt.Sprintf("%.1f MiB", float64(mem.HeapAlloc)/(1024*1024))),
		c.formatter.Label("GC cycles", fmt.Sprintf("%d", mem.NumGC)),
	))
}
