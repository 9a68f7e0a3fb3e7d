package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd-pathfinder/graph"
	"github.com/lightningnetwork/lnd-pathfinder/lnwire"
	"github.com/lightningnetwork/lnd-pathfinder/route"
	"github.com/lightningnetwork/lnd-pathfinder/routing"
	"github.com/urfave/cli"
)

var beaconsCommand = cli.Command{
	Name:      "beacons",
	Usage:     "list routes from a node towards the current beacon set",
	ArgsUsage: "node amt_sat block_hash",
	Action:    actionDecorator(beacons),
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "inbound",
			Usage: "compute routes usable to pay into node, rather than out of it",
		},
	},
}

func beacons(ctx *cli.Context) error {
	if ctx.NArg() != 3 {
		return cli.ShowCommandHelp(ctx, "beacons")
	}

	node, err := route.NewVertexFromStr(ctx.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid node: %w", err)
	}

	amtSat, err := strconv.ParseUint(ctx.Args().Get(1), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	blockHash, err := chainhash.NewHashFromStr(ctx.Args().Get(2))
	if err != nil {
		return fmt.Errorf("invalid block hash: %w", err)
	}

	f, err := openFinder()
	if err != nil {
		return err
	}

	runCtx := context.Background()

	if err := f.UpdateBeacons(runCtx, *blockHash); err != nil {
		return fmt.Errorf("selecting beacons: %w", err)
	}

	dir := routing.Outbound
	if ctx.Bool("inbound") {
		dir = routing.Inbound
	}

	routes := f.GetRoutesToBeacons(
		runCtx, node, amtSat, dir, graph.NoLocalChannels{},
	)
	if len(routes) == 0 {
		fmt.Fprintln(os.Stdout, "no routes found to any beacon")
		return nil
	}

	quantAmtMSat := lnwire.MilliSatoshi(routing.QuantizeAmount(amtSat) * 1000)

	for key, rt := range routes {
		fmt.Fprintf(os.Stdout, "beacon %v via %v:\n", key.Beacon, key.SCID)
		printRoute(rt, quantAmtMSat)
	}

	return nil
}
