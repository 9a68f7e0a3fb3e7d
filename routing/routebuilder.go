package routing

import (
	"github.com/lightningnetwork/lnd-pathfinder/graph"
	"github.com/lightningnetwork/lnd-pathfinder/lnwire"
	"github.com/lightningnetwork/lnd-pathfinder/route"
)

// PathHop is one step of a path as returned by walking a PredecessorMap
// forward from a source: "to get to Node, travel through SCID."
type PathHop struct {
	Node route.Vertex
	SCID lnwire.ShortChannelID
}

// WalkPath walks pred forward from source until dest is reached, returning
// the ordered sequence of hops to take. It returns (nil, false) if pred
// does not connect source to dest, i.e. pred[source] (or some later node on
// the walk) has no entry.
func WalkPath(pred PredecessorMap, source,
	dest route.Vertex) ([]PathHop, bool) {

	if source == dest {
		return nil, true
	}

	var path []PathHop

	cur := source
	for cur != dest {
		next, ok := pred[cur]
		if !ok {
			return nil, false
		}

		path = append(path, PathHop{Node: next.Node, SCID: next.SCID})
		cur = next.Node
	}

	return path, true
}

// BuildRoute turns a path (as produced by WalkPath) into a validated
// route.Route, resolving each hop's ChannelPolicy and end-node features
// against g, then running the whole-route sanity checks.
//
// It fails with ErrNoChannelPolicy if a hop's policy can no longer be found
// (the graph changed since the path was computed), and with ErrNoPathFound
// if the assembled route fails route.IsRouteSaneToUse.
func BuildRoute(g graph.ChannelGraph, local graph.LocalChannels,
	path []PathHop, fromNode route.Vertex, invoiceAmtMSat lnwire.MilliSatoshi,
	minFinalCLTVExpiry uint16) (route.Route, error) {

	if local == nil {
		local = graph.NoLocalChannels{}
	}

	if len(path) == 0 {
		return nil, newErr(ErrNoPathFound, "empty path")
	}

	edges := make([]route.RouteEdge, 0, len(path))
	prevNode := fromNode

	for _, hop := range path {
		policy, ok := g.Policy(hop.SCID, prevNode, local)
		if !ok {
			return nil, newNoChannelPolicyErr(hop.SCID)
		}

		var features lnwire.NodeFeatures
		if info, ok := g.NodeInfo(hop.Node); ok {
			features = info.Features
		}

		edges = append(edges, route.RouteEdge{
			EndNode:                   hop.Node,
			ChannelID:                 hop.SCID,
			FeeBaseMSat:               policy.FeeBaseMSat,
			FeeProportionalMillionths: policy.FeeProportionalMillionths,
			CLTVExpiryDelta:           policy.CLTVExpiryDelta,
			EndNodeFeatures:           features,
		})

		prevNode = hop.Node
	}

	r, err := route.NewRoute(edges)
	if err != nil {
		return nil, newErrf(ErrNoPathFound, "%v", err)
	}

	if !route.IsRouteSaneToUse(r, invoiceAmtMSat, minFinalCLTVExpiry) {
		return nil, newErr(ErrNoPathFound,
			"assembled route failed sanity checks")
	}

	return r, nil
}
