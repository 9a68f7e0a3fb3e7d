// Package graph defines the read-only view of the channel graph that the
// path-finder consumes, along with the caller's own, possibly un-gossiped,
// channels. Nothing in this package ingests gossip: it only describes the
// shape of the data that a gossip pipeline (out of scope here) is assumed to
// maintain and keep reasonably fresh.
package graph

import (
	"github.com/lightningnetwork/lnd-pathfinder/lnwire"
	"github.com/lightningnetwork/lnd-pathfinder/route"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// ChannelInfo describes the static, direction-independent facts about a
// channel: its two endpoints and (if known) its on-chain capacity.
type ChannelInfo struct {
	// SCID is the short channel id that locates the funding output.
	SCID lnwire.ShortChannelID

	// Node1, Node2 are the channel's two endpoints. By convention Node1
	// sorts lexicographically before Node2; this induces the two
	// directions a policy can be published in.
	Node1, Node2 route.Vertex

	// CapacitySat is the funding output's value, when known. Channels
	// recovered purely from a channel_update (without the matching
	// channel_announcement) may have no known capacity.
	CapacitySat fn.Option[uint64]
}

// OtherEnd returns the endpoint of the channel other than node. It panics if
// node is neither endpoint, which would indicate a graph-integrity bug in
// the caller (see route.Vertex equality: every SCID returned by a
// well-formed ChannelGraph.Neighbors(node, ...) call must have node as one
// of its two endpoints).
func (c ChannelInfo) OtherEnd(node route.Vertex) route.Vertex {
	switch node {
	case c.Node1:
		return c.Node2
	case c.Node2:
		return c.Node1
	default:
		panic("graph: node is not an endpoint of channel " +
			c.SCID.String())
	}
}

// HasEndpoint reports whether node is one of the channel's two endpoints.
func (c ChannelInfo) HasEndpoint(node route.Vertex) bool {
	return node == c.Node1 || node == c.Node2
}

// ChannelPolicy is the forwarding policy one endpoint of a channel has
// published for traffic it forwards outward across that channel. A channel
// may have zero, one, or two published policies; only directions with a
// published policy are usable for routing in that direction.
type ChannelPolicy struct {
	// FeeBaseMSat is the flat component of the forwarding fee.
	FeeBaseMSat uint32

	// FeeProportionalMillionths is the proportional component of the
	// forwarding fee, expressed in millionths of the forwarded amount.
	FeeProportionalMillionths uint32

	// CLTVExpiryDelta is the time-lock, in blocks, this hop adds to an
	// HTLC it forwards.
	CLTVExpiryDelta uint16

	// HTLCMinimumMSat is the smallest amount this direction will
	// forward.
	HTLCMinimumMSat lnwire.MilliSatoshi

	// HTLCMaximumMSat is the largest amount this direction will forward,
	// when published.
	HTLCMaximumMSat fn.Option[lnwire.MilliSatoshi]

	// Disabled marks the direction as temporarily withdrawn from
	// routing, e.g. because the channel is stuck or the peer is
	// offline.
	Disabled bool
}

// NodeInfo is the subset of a node's gossiped announcement the path-finder
// cares about.
type NodeInfo struct {
	Node route.Vertex

	// Features is the feature bitfield the node advertised support for.
	// It is only read at route-construction time and attached to the
	// RouteEdge whose EndNode is this node.
	Features lnwire.NodeFeatures
}

// ChannelGraph is the read-only interface the path-finder consumes. An
// implementation must be safe to read concurrently with whatever process is
// ingesting gossip and mutating the underlying graph; see MemGraph for the
// concurrency contract this implies for callers of PathSearch.
type ChannelGraph interface {
	// Neighbors returns every channel incident to node that the search
	// may consider, including node's local channels even if they have
	// not yet been gossiped to the rest of the network.
	Neighbors(node route.Vertex, local LocalChannels) []lnwire.ShortChannelID

	// ChannelInfo returns the channel's static info, preferring the
	// local view for channels the caller owns.
	ChannelInfo(scid lnwire.ShortChannelID,
		local LocalChannels) (ChannelInfo, bool)

	// Policy returns the policy published by source for scid, i.e. the
	// rules that govern a forward originating at source across this
	// channel.
	Policy(scid lnwire.ShortChannelID, source route.Vertex,
		local LocalChannels) (ChannelPolicy, bool)

	// NodeInfo returns what's known about a node, or false if nothing
	// has been gossiped about it yet.
	NodeInfo(node route.Vertex) (NodeInfo, bool)

	// Nodes returns every node currently known to the graph. It backs
	// beacon-node selection, which needs to rank the entire node set by
	// distance from a pseudo-random target; it is not used by the
	// per-query search path.
	Nodes() []route.Vertex

	// Version returns an opaque token that changes whenever the
	// underlying graph has been mutated. Callers that cache
	// precomputation keyed on graph state (see the beacon cache) must
	// treat any change in this token as invalidating that cache.
	Version() uint64
}
