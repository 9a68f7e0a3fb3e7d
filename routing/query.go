package routing

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd-pathfinder/graph"
	"github.com/lightningnetwork/lnd-pathfinder/lnwire"
	"github.com/lightningnetwork/lnd-pathfinder/route"
)

// Finder is the path-finder's external entry point, bundling a PathSearch
// over a ChannelGraph with a caller-owned Blacklist and an optional
// BeaconCache. It is the type applications embed to get path-finding.
type Finder struct {
	search    *PathSearch
	Blacklist *Blacklist
	Beacons   *BeaconCache
}

// NewFinder returns a Finder reading from g, with a fresh empty blacklist
// and beacon cache.
func NewFinder(g graph.ChannelGraph) *Finder {
	return &Finder{
		search:    NewPathSearch(g),
		Blacklist: NewBlacklist(),
		Beacons:   NewBeaconCache(g),
	}
}

// FindPathForPayment returns a path from source to destination able to
// carry amtMSat, or ErrNoPathFound if none exists under the current graph,
// blacklist, and local-channel view.
func (f *Finder) FindPathForPayment(ctx context.Context, source,
	destination route.Vertex, amtMSat lnwire.MilliSatoshi,
	local graph.LocalChannels) ([]PathHop, error) {

	pred, err := f.search.Find(
		ctx, destination, &source, amtMSat, local, f.Blacklist, Outbound,
	)
	if err != nil {
		return nil, err
	}

	path, ok := WalkPath(pred, source, destination)
	if !ok {
		return nil, newErrf(ErrNoPathFound,
			"no path from %v to %v", source, destination)
	}

	return path, nil
}

// CreateRouteFromPath resolves a path (as returned by FindPathForPayment)
// into a validated route.Route.
func (f *Finder) CreateRouteFromPath(path []PathHop, fromNode route.Vertex,
	local graph.LocalChannels, invoiceAmtMSat lnwire.MilliSatoshi,
	minFinalCLTVExpiry uint16) (route.Route, error) {

	return BuildRoute(
		f.search.Graph, local, path, fromNode, invoiceAmtMSat,
		minFinalCLTVExpiry,
	)
}

// AddToBlacklist excludes scid from future searches run through f.
func (f *Finder) AddToBlacklist(scid lnwire.ShortChannelID) {
	log.Debugf("blacklisting channel %v", scid)
	f.Blacklist.Add(scid)
}

// ClearBlacklist empties f's blacklist.
func (f *Finder) ClearBlacklist() {
	f.Blacklist.Clear()
}

// UpdateBeacons refreshes the beacon set and invalidates cached
// precomputation if blockHash differs from the last call.
func (f *Finder) UpdateBeacons(ctx context.Context,
	blockHash chainhash.Hash) error {

	return f.Beacons.UpdateBeacons(ctx, blockHash)
}

// GetRoutesToBeacons returns a validated Route from node towards each
// beacon, keyed by BeaconKey, for a payment of approximately amountSat. dir
// is Outbound if node is paying (the common case) or Inbound if node is
// receiving; see BeaconCache for the precise semantics.
func (f *Finder) GetRoutesToBeacons(ctx context.Context, node route.Vertex,
	amountSat uint64, dir Direction,
	local graph.LocalChannels) map[BeaconKey]route.Route {

	return f.Beacons.GetRoutesToBeacons(ctx, node, amountSat, dir, local)
}
