package routing

import (
	"bytes"
	"context"
	"crypto/sha256"
	"math"
	"math/bits"
	"sort"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd-pathfinder/graph"
	"github.com/lightningnetwork/lnd-pathfinder/lnwire"
	"github.com/lightningnetwork/lnd-pathfinder/route"
	"golang.org/x/sync/errgroup"
)

// NumBeacons is the number of landmark nodes the cache tracks.
const NumBeacons = 20

// BeaconKey identifies one entry of the map returned by GetRoutesToBeacons:
// a route to a particular beacon, reached via a particular first hop out of
// the querying node. A node can have more than one viable first hop toward
// the same beacon, so the key disambiguates by channel, not just by beacon.
type BeaconKey struct {
	Beacon route.Vertex
	SCID   lnwire.ShortChannelID
}

// QuantizeAmount buckets amountSat up to the next power of ten, so nearby
// amounts share cached precomputation instead of each minting their own
// cache entry: 1 -> 1, 11 -> 100, 100 -> 100, 101 -> 1000.
func QuantizeAmount(amountSat uint64) uint64 {
	if amountSat <= 1 {
		return 1
	}

	exp := math.Ceil(math.Log10(float64(amountSat)))
	return uint64(math.Pow(10, exp))
}

// BeaconCache amortizes path-finding across many queries that share an
// approximate amount, by precomputing predecessor trees rooted at a small,
// deterministically-chosen set of landmark nodes ("beacons"). It is a pure
// accelerator for approximate/advisory routing (e.g. route hints): every
// result it serves could equally be recomputed from scratch with
// PathSearch, and staleness is an acceptable, bounded degradation rather
// than a correctness problem. It is not consulted by the primary,
// exact-destination send path.
//
// Cached trees are keyed on direction and quantized amount. UpdateBeacons
// discards all of them when it selects a new beacon set, and any change to
// the underlying graph's version token is treated as invalidating every
// cached tree as well, per the open question in the design notes about
// eviction beyond block-hash changes.
type BeaconCache struct {
	search *PathSearch

	mu sync.RWMutex

	haveBlockHash bool
	blockHash     chainhash.Hash
	beacons       []route.Vertex
	graphVersion  uint64

	// outbound and inbound memoize, per quantized amount, the
	// per-beacon predecessor tree for that direction. They are both
	// reset whenever the beacon set changes or the graph's version
	// token moves.
	outbound map[uint64]map[route.Vertex]PredecessorMap
	inbound  map[uint64]map[route.Vertex]PredecessorMap
}

// NewBeaconCache returns a cold BeaconCache reading from g. It serves no
// beacons until UpdateBeacons has been called at least once.
func NewBeaconCache(g graph.ChannelGraph) *BeaconCache {
	return &BeaconCache{
		search:   NewPathSearch(g),
		outbound: make(map[uint64]map[route.Vertex]PredecessorMap),
		inbound:  make(map[uint64]map[route.Vertex]PredecessorMap),
	}
}

// UpdateBeacons recomputes the beacon set from blockHash and discards all
// cached predecessor trees. It is a no-op if blockHash matches the one
// already in effect, since the beacon set (and everything keyed on it)
// would come out identical.
func (c *BeaconCache) UpdateBeacons(ctx context.Context,
	blockHash chainhash.Hash) error {

	c.mu.RLock()
	unchanged := c.haveBlockHash && c.blockHash == blockHash
	c.mu.RUnlock()

	if unchanged {
		return nil
	}

	target := sha256.Sum256(blockHash[:])
	nodes := c.search.Graph.Nodes()

	type candidate struct {
		dist int
		node route.Vertex
	}

	candidates := make([]candidate, 0, len(nodes))
	for _, n := range nodes {
		select {
		case <-ctx.Done():
			return newErr(ErrCancelled, ctx.Err())
		default:
		}

		candidates = append(candidates, candidate{
			dist: xorPopcount(n, target),
			node: n,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return bytes.Compare(
			candidates[i].node[:], candidates[j].node[:],
		) < 0
	})

	n := NumBeacons
	if n > len(candidates) {
		n = len(candidates)
	}

	beacons := make([]route.Vertex, n)
	for i := 0; i < n; i++ {
		beacons[i] = candidates[i].node
	}

	log.Debugf("beacon set updated for block hash %v: %d beacons "+
		"selected from %d known nodes", blockHash, n, len(nodes))

	c.mu.Lock()
	c.haveBlockHash = true
	c.blockHash = blockHash
	c.beacons = beacons
	c.outbound = make(map[uint64]map[route.Vertex]PredecessorMap)
	c.inbound = make(map[uint64]map[route.Vertex]PredecessorMap)
	c.graphVersion = c.search.Graph.Version()
	c.mu.Unlock()

	return nil
}

// xorPopcount returns the Hamming weight of nodeID XOR target, treating
// both as big-endian unsigned integers of possibly different byte widths
// (the shorter operand is implicitly zero-extended on the left, matching
// the arbitrary-precision XOR the source implementation relies on).
func xorPopcount(nodeID route.Vertex, target [32]byte) int {
	off := len(nodeID) - len(target)

	count := 0
	for i, b := range nodeID {
		var t byte
		if j := i - off; j >= 0 {
			t = target[j]
		}
		count += bits.OnesCount8(b ^ t)
	}

	return count
}

// invalidateIfStale discards cached trees if the graph has mutated since
// they were computed. Called with c.mu unlocked; acquires its own lock.
func (c *BeaconCache) invalidateIfStale() {
	current := c.search.Graph.Version()

	c.mu.Lock()
	defer c.mu.Unlock()

	if current == c.graphVersion {
		return
	}

	c.graphVersion = current
	c.outbound = make(map[uint64]map[route.Vertex]PredecessorMap)
	c.inbound = make(map[uint64]map[route.Vertex]PredecessorMap)
}

// treeCache returns the direction-appropriate memoization table. Callers
// must hold c.mu.
func (c *BeaconCache) treeCache(
	dir Direction) map[uint64]map[route.Vertex]PredecessorMap {

	if dir == Inbound {
		return c.inbound
	}
	return c.outbound
}

// GetPredecessorsToBeacons returns, for every current beacon, the
// predecessor tree rooted at that beacon for a payment of approximately
// amountSat, lazily computing and memoizing it per (quantized amount,
// direction). A beacon whose tree cannot be computed (e.g. the search was
// cancelled) is simply omitted; callers should treat a missing beacon the
// same as a cold cache, not an error.
func (c *BeaconCache) GetPredecessorsToBeacons(ctx context.Context,
	amountSat uint64, dir Direction) map[route.Vertex]PredecessorMap {

	c.invalidateIfStale()

	quant := QuantizeAmount(amountSat)

	c.mu.RLock()
	if cached, ok := c.treeCache(dir)[quant]; ok {
		c.mu.RUnlock()
		return cached
	}
	beacons := c.beacons
	c.mu.RUnlock()

	amtMSat := lnwire.MilliSatoshi(quant * 1000)

	// Each beacon's tree is an independent, exhaustive Dijkstra run
	// (source=nil); there's no shared mutable state between them beyond
	// the read-only graph, so they fan out across an errgroup rather
	// than running one after another.
	var resultMu sync.Mutex
	result := make(map[route.Vertex]PredecessorMap, len(beacons))

	eg, egCtx := errgroup.WithContext(ctx)
	for _, beacon := range beacons {
		beacon := beacon

		eg.Go(func() error {
			pred, err := c.search.Find(
				egCtx, beacon, nil, amtMSat,
				graph.NoLocalChannels{}, nil, dir,
			)
			if err != nil {
				// A single beacon's tree failing (most likely
				// cancellation) doesn't sink the others; it
				// is simply absent from the result, same as
				// a cold cache.
				return nil
			}

			resultMu.Lock()
			result[beacon] = pred
			resultMu.Unlock()

			return nil
		})
	}
	eg.Wait() //nolint:errcheck // every Go func above always returns nil

	c.mu.Lock()
	c.treeCache(dir)[quant] = result
	c.mu.Unlock()

	return result
}

// GetPathsToBeacons returns, for every beacon and every admissible first
// hop out of sourceID, the path from sourceID to that beacon obtained by
// prepending the first hop to the beacon's cached predecessor tree. Because
// the per-node amount along a precomputed tree isn't retained (only the
// root's quantized amount is), the first hop is admitted at that same
// quantized amount; this is an approximation consistent with the cache
// being an advisory accelerator rather than an authoritative source of
// routes.
func (c *BeaconCache) GetPathsToBeacons(ctx context.Context,
	sourceID route.Vertex, amountSat uint64, dir Direction,
	local graph.LocalChannels) map[BeaconKey][]PathHop {

	if local == nil {
		local = graph.NoLocalChannels{}
	}

	quant := QuantizeAmount(amountSat)
	amtMSat := lnwire.MilliSatoshi(quant * 1000)

	trees := c.GetPredecessorsToBeacons(ctx, amountSat, dir)

	out := make(map[BeaconKey][]PathHop)

	for _, scid := range c.search.Graph.Neighbors(sourceID, local) {
		info, ok := c.search.Graph.ChannelInfo(scid, local)
		if !ok || !info.HasEndpoint(sourceID) {
			continue
		}

		u := info.OtherEnd(sourceID)

		start, end := sourceID, u
		if dir == Inbound {
			start, end = u, sourceID
		}

		cost, _ := edgeCost(
			c.search.Graph, local, nil, &sourceID, scid, start,
			end, amtMSat,
		)
		if cost == inf {
			continue
		}

		for beacon, pred := range trees {
			rest, ok := WalkPath(pred, u, beacon)
			if !ok {
				continue
			}

			// The first hop is prepended outside of Dijkstra's
			// own node-finalization guarantee, so unlike a
			// PathSearch result this walk can fold back through
			// sourceID or u itself (e.g. a degree-1 spoke whose
			// only neighbor is sourceID). Reject any such cycle
			// rather than hand back a route that revisits a node.
			visited := map[route.Vertex]struct{}{
				sourceID: {}, u: {},
			}

			path := make([]PathHop, 0, len(rest)+1)
			path = append(path, PathHop{Node: u, SCID: scid})

			cyclic := false
			for _, h := range rest {
				if _, seen := visited[h.Node]; seen {
					cyclic = true
					break
				}
				visited[h.Node] = struct{}{}
				path = append(path, h)
			}
			if cyclic {
				continue
			}

			out[BeaconKey{Beacon: beacon, SCID: scid}] = path
		}
	}

	return out
}

// GetRoutesToBeacons resolves every path from GetPathsToBeacons into a
// validated route.Route, discarding any that fail the final sanity checks
// a real payment attempt would also apply.
func (c *BeaconCache) GetRoutesToBeacons(ctx context.Context,
	sourceID route.Vertex, amountSat uint64, dir Direction,
	local graph.LocalChannels) map[BeaconKey]route.Route {

	if local == nil {
		local = graph.NoLocalChannels{}
	}

	quant := QuantizeAmount(amountSat)
	amtMSat := lnwire.MilliSatoshi(quant * 1000)

	paths := c.GetPathsToBeacons(ctx, sourceID, amountSat, dir, local)

	out := make(map[BeaconKey]route.Route, len(paths))
	for key, path := range paths {
		r, err := BuildRoute(
			c.search.Graph, local, path, sourceID, amtMSat,
			route.MinFinalCLTVExpiryForInvoice,
		)
		if err != nil {
			log.Debugf("discarding beacon route to %v via %v: "+
				"%v", key.Beacon, key.SCID, err)
			continue
		}

		out[key] = r
	}

	return out
}
