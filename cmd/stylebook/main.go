package main

import (
	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/stylebook/cmd/stylebook/commands"
)

var version = "dev"

func main() {
	cli := &commands.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("stylebook"),
		kong.Description("Assemble a pattern-library site from layouts, materials, views, docs and data."),
		kong.Vars{"version": version},
	)
	ctx.FatalIfErrorf(ctx.Run(&commands.Global{}, cli))
}
