package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/lnd-pathfinder/graph"
	"github.com/lightningnetwork/lnd-pathfinder/lnwire"
	"github.com/lightningnetwork/lnd-pathfinder/route"
	"github.com/lightningnetwork/lnd-pathfinder/routing"
	"github.com/urfave/cli"
)

var findRouteCommand = cli.Command{
	Name:      "findroute",
	Usage:     "find a route between two nodes over the loaded graph",
	ArgsUsage: "source destination amt_sat",
	Action:    actionDecorator(findRoute),
	Flags: []cli.Flag{
		cli.StringSliceFlag{
			Name:  "blacklist",
			Usage: "short channel ids (height:tx:pos) to exclude from the search",
		},
		cli.DurationFlag{
			Name:  "timeout",
			Usage: "abort the search after this long",
			Value: 5 * time.Second,
		},
	},
}

func findRoute(ctx *cli.Context) error {
	if ctx.NArg() != 3 {
		return cli.ShowCommandHelp(ctx, "findroute")
	}

	source, err := route.NewVertexFromStr(ctx.Args().Get(0))
	if err != nil {
		return fmt.Errorf("invalid source: %w", err)
	}

	destination, err := route.NewVertexFromStr(ctx.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid destination: %w", err)
	}

	amtSat, err := strconv.ParseUint(ctx.Args().Get(2), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	f, err := openFinder()
	if err != nil {
		return err
	}

	for _, raw := range ctx.StringSlice("blacklist") {
		scid, err := lnwire.ParseShortChannelID(raw)
		if err != nil {
			return fmt.Errorf("invalid blacklist entry %q: %w",
				raw, err)
		}
		f.AddToBlacklist(scid)
	}

	runCtx, cancel := context.WithTimeout(context.Background(), ctx.Duration("timeout"))
	defer cancel()

	amtMSat := lnwire.NewMSatFromSatoshis(btcutil.Amount(amtSat))

	path, err := f.FindPathForPayment(
		runCtx, source, destination, amtMSat, graph.NoLocalChannels{},
	)
	if err != nil {
		return err
	}

	rt, err := f.CreateRouteFromPath(
		path, source, graph.NoLocalChannels{}, amtMSat,
		route.MinFinalCLTVExpiryForInvoice,
	)
	if err != nil {
		return err
	}

	printRoute(rt, amtMSat)

	return nil
}

func printRoute(rt route.Route, amtMSat lnwire.MilliSatoshi) {
	fmt.Fprintf(os.Stdout, "route of %d hops, total fee %v, amount to "+
		"send %v:\n", len(rt), rt.TotalFees(amtMSat),
		rt.ReceiverAmt(amtMSat))

	for i, edge := range rt {
		fmt.Fprintf(os.Stdout, "  %d: %v via %v (fee_base_msat=%d "+
			"fee_rate_ppm=%d cltv_delta=%d)\n", i, edge.EndNode,
			edge.ChannelID, edge.FeeBaseMSat,
			edge.FeeProportionalMillionths, edge.CLTVExpiryDelta)
	}
}

// openFinder loads the configured graph snapshot and wraps it in a fresh
// Finder. It is called once per invocation, mirroring the CLI's stateless,
// one-shot nature; a long-running service would instead keep one Finder
// alive across many queries.
func openFinder() (*routing.Finder, error) {
	f, err := os.Open(appConfig.GraphFile)
	if err != nil {
		return nil, fmt.Errorf("opening graph file: %w", err)
	}
	defer f.Close()

	g, err := graph.LoadGraph(f)
	if err != nil {
		return nil, fmt.Errorf("loading graph: %w", err)
	}

	return routing.NewFinder(g), nil
}

// actionDecorator wraps a cli.ActionFunc so that an action's error is
// turned into a cli exit error with status 1, its message trimmed of
// surrounding whitespace.
func actionDecorator(f cli.ActionFunc) cli.ActionFunc {
	return func(c *cli.Context) error {
		if err := f(c); err != nil {
			return cli.NewExitError(strings.TrimSpace(err.Error()), 1)
		}
		return nil
	}
}
