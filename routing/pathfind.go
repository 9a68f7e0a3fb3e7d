package routing

import (
	"container/heap"
	"context"
	"time"

	"github.com/lightningnetwork/lnd-pathfinder/graph"
	"github.com/lightningnetwork/lnd-pathfinder/lnwire"
	"github.com/lightningnetwork/lnd-pathfinder/route"
	"github.com/lightningnetwork/lnd/clock"
)

// slowSearchThreshold is the search latency above which PathSearch logs a
// warning. The search is meant to be a handful of milliseconds even on
// sizeable graphs; consistently exceeding this points at a graph that has
// outgrown plain Dijkstra, not a one-off blip worth ignoring.
const slowSearchThreshold = 50 * time.Millisecond

// Predecessor is one entry of a PredecessorMap: "to reach this node, come
// from Node via SCID."
type Predecessor struct {
	Node route.Vertex
	SCID lnwire.ShortChannelID
}

// PredecessorMap is the output of a PathSearch: for every node reachable
// from the search root within the searched amount, the next node and
// channel to traverse en route to the root. The search's root (its
// destination) never has an entry, since it is the terminus of the walk.
type PredecessorMap map[route.Vertex]Predecessor

// Direction selects which of the two asymmetric senses a rooted search is
// run in. A normal payment search is always Outbound: the root is the
// payment destination, and every edge is scored as if it forwarded in the
// real, outgoing direction of flow. BeaconCache additionally needs the
// mirror image, Inbound, to precompute trees usable by a node that wants a
// beacon to be able to pay into it (e.g. to offer a route hint on an
// invoice), where the real flow direction at each relaxed edge is reversed.
type Direction bool

const (
	// Outbound is the ordinary search direction, used for every payment
	// the local node originates.
	Outbound Direction = false

	// Inbound mirrors the edge scoring so the resulting tree describes
	// payments flowing into the root from elsewhere.
	Inbound Direction = true
)

// PathSearch runs the reverse-direction Dijkstra search described by the
// path-finder's core algorithm: fees compound toward the sender, so the
// search walks from the destination back toward the source, discovering
// each edge's fee-dependent cost at the moment the amount it would forward
// is already known.
type PathSearch struct {
	Graph graph.ChannelGraph

	// Clock supplies the wall-clock reads used to time searches for the
	// slow-search log line. It is exported so that a deterministic
	// clock can be substituted for the default wall clock.
	Clock clock.Clock
}

// NewPathSearch returns a PathSearch reading from g.
func NewPathSearch(g graph.ChannelGraph) *PathSearch {
	return &PathSearch{
		Graph: g,
		Clock: clock.NewDefaultClock(),
	}
}

// Find computes a PredecessorMap rooted at dest. When source is non-nil,
// the search terminates as soon as source is popped from the priority
// queue (the common case: a normal payment, where only the path from a
// known sender matters). When source is nil, the search runs to
// exhaustion, producing a full predecessor tree toward dest from every node
// reachable under amtMSat; this is how BeaconCache precomputes
// single-destination trees.
//
// local and bl may be nil, meaning "no local channels" and "nothing
// blacklisted" respectively. dir is Outbound for every ordinary payment
// search; see Direction for when Inbound applies.
func (p *PathSearch) Find(ctx context.Context, dest route.Vertex,
	source *route.Vertex, amtMSat lnwire.MilliSatoshi,
	local graph.LocalChannels, bl *Blacklist,
	dir Direction) (PredecessorMap, error) {

	if local == nil {
		local = graph.NoLocalChannels{}
	}

	start := p.Clock.Now()
	defer func() {
		if elapsed := p.Clock.Now().Sub(start); elapsed > slowSearchThreshold {
			log.Warnf("path search to %v took %v, longer than "+
				"the %v budget", dest, elapsed,
				slowSearchThreshold)
		}
	}()

	distance := make(map[route.Vertex]float64)
	distance[dest] = 0
	predecessor := make(PredecessorMap)

	pq := &searchHeap{{dist: 0, amount: amtMSat, node: dest}}
	heap.Init(pq)

	distanceOf := func(v route.Vertex) float64 {
		if d, ok := distance[v]; ok {
			return d
		}
		return inf
	}

	for pq.Len() > 0 {
		select {
		case <-ctx.Done():
			return nil, newErr(ErrCancelled, ctx.Err())
		default:
		}

		entry := heap.Pop(pq).(searchEntry)

		if source != nil && entry.node == *source {
			break
		}

		if entry.dist != distanceOf(entry.node) {
			// Stale duplicate: a better entry for this node was
			// already processed.
			continue
		}

		for _, scid := range p.Graph.Neighbors(entry.node, local) {
			info, ok := p.Graph.ChannelInfo(scid, local)
			if !ok {
				continue
			}
			if !info.HasEndpoint(entry.node) {
				continue
			}

			u := info.OtherEnd(entry.node)

			// We score the edge as if it forwarded from u to
			// entry.node, since that is the real flow direction
			// even though the search walks the opposite way.
			// Inbound flips this: the tree it produces describes
			// flow into the root, so the real-flow start/end pair
			// is reversed.
			start, end := u, entry.node
			if dir == Inbound {
				start, end = entry.node, u
			}

			cost, feeMSat := edgeCost(
				p.Graph, local, bl, source, scid, start,
				end, entry.amount,
			)
			if cost == inf {
				continue
			}

			alt := entry.dist + cost
			if alt < distanceOf(u) {
				distance[u] = alt
				predecessor[u] = Predecessor{
					Node: entry.node,
					SCID: scid,
				}

				heap.Push(pq, searchEntry{
					dist:   alt,
					amount: entry.amount + feeMSat,
					node:   u,
				})
			}
		}
	}

	return predecessor, nil
}
