package main

import (
	"github.com/jessevdk/go-flags"
)

const (
	defaultGraphFilename = "graph.json"
	defaultLogLevel      = "info"
)

// config holds the flags that configure the tool regardless of which
// subcommand is run: where to load the channel graph snapshot from, and how
// verbosely to log while doing it.
type config struct {
	GraphFile string `long:"graph" description:"path to a JSON channel graph snapshot" default:"graph.json"`
	DebugLevel string `long:"debuglevel" short:"d" description:"logging level for the pathfinder subsystem {trace, debug, info, warn, error, critical, off}" default:"info"`
}

// loadConfig parses the global flags out of args, returning the remaining,
// unconsumed arguments (the subcommand and its own flags) for the urfave/cli
// app to take over.
func loadConfig(args []string) (*config, []string, error) {
	cfg := &config{
		GraphFile:  defaultGraphFilename,
		DebugLevel: defaultLogLevel,
	}

	parser := flags.NewParser(cfg, flags.IgnoreUnknown|flags.PassDoubleDash)
	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}

	return cfg, rest, nil
}
