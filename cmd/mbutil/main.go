// Command mbutil imports and exports MBTiles files to and from directory trees.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&importCmd{}, "")
	subcommands.Register(&exportCmd{}, "")
	subcommands.Register(&convertCmd{}, "")
	subcommands.Register(&metadataCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
