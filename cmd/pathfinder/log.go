package main

import (
	"os"

	"github.com/btcsuite/btclog/v2"
	"github.com/lightningnetwork/lnd-pathfinder/routing"
)

// initLogging wires a stdout-backed logger into the routing subsystem at the
// requested level. The tool has exactly one subsystem worth naming, so
// unlike a full node it needs no per-subsystem fan-out.
func initLogging(debugLevel string) {
	handler := btclog.NewDefaultHandler(os.Stdout)
	logger := btclog.NewSLogger(handler.SubSystem(routing.Subsystem))

	level, ok := btclog.LevelFromString(debugLevel)
	if ok {
		logger.SetLevel(level)
	}

	routing.UseLogger(logger)
}
