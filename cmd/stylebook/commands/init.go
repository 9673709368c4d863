package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/stylebook/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	slog.Info("Initializing configuration", "path", root.Config, "force", i.Force)
	return config.Init(root.Config, i.Force)
}
