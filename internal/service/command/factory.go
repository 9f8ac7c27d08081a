package command

import (
	"fmt"

	"github.com/sandevgo/huskbot/internal/service/dispatch"
	"github.com/sandevgo/huskbot/internal/storage/sqlite"
)

// RegisterAll binds the built-in commands into the registry.
func RegisterAll(reg *dispatch.Registry, users *sqlite.UsersRepo) error {
	steps := []func() error{
		func() error {
			return reg.Bind(NewEchoCommand().Handle, []string{"echo"},
				dispatch.WithDescription("repeat the given text"))
		},
		func() error {
			return reg.Bind(NewHelpCommand(reg).Handle, []string{"help", "commands"},
				dispatch.WithPrefixes("/"),
				dispatch.WithDescription("list available commands"))
		},
		func() error {
			return reg.Bind(NewStatsCommand(users).Handle, []string{"stats"},
				dispatch.WithScopes("group"),
				dispatch.WithDescription("group member activity"))
		},
		func() error {
			return reg.Bind(NewMeCommand(users).Handle, []string{"me"},
				dispatch.WithDescription("your own activity record"))
		},
		func() error {
			return reg.Bind(NewUsageCommand().Handle, []string{"usage"},
				dispatch.WithPrefixes("/"),
				dispatch.WithScopes("c2c"),
				dispatch.WithDescription("process resource usage"))
		},
	}

	for _, register := range steps {
		if err := register(); err != nil {
			return fmt.Errorf("failed to register built-in command: %w", err)
		}
	}
	return nil
}
