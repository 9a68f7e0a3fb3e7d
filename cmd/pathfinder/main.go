package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/urfave/cli"
)

// appConfig holds the parsed global flags, readable by every subcommand's
// Action. It's set once in run before app.Run dispatches to a subcommand.
var appConfig *config

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pathfinder: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, rest, err := loadConfig(os.Args[1:])
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			return nil
		}
		return err
	}
	appConfig = cfg

	initLogging(cfg.DebugLevel)

	app := cli.NewApp()
	app.Name = "pathfinder"
	app.Usage = "find and inspect Lightning Network payment paths over a " +
		"static channel graph snapshot"
	app.Commands = []cli.Command{
		findRouteCommand,
		beaconsCommand,
	}

	return app.Run(append([]string{"pathfinder"}, rest...))
}
