package commands

import (
	"fmt"

	"git.home.luguber.info/inful/stylebook/internal/assembly"
	"git.home.luguber.info/inful/stylebook/internal/config"
	apperrors "git.home.luguber.info/inful/stylebook/internal/errors"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Output directory for the assembled site (overrides config)"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if b.Output != "" {
		cfg.Output = b.Output
	}

	if err := assembly.Assemble(cfg); err != nil {
		// The error policy decides the channels; termination only happens
		// when neither the callback nor the log fired.
		if !apperrors.Handle(err, cfg.OnError, cfg.Errors.LogEnabled()) {
			return err
		}
	}
	return nil
}
