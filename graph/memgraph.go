package graph

import (
	"sort"
	"sync"

	"github.com/lightningnetwork/lnd-pathfinder/lnwire"
	"github.com/lightningnetwork/lnd-pathfinder/route"
)

// policyKey identifies one direction of one channel: the policy that
// source_node publishes for traffic it forwards across scid.
type policyKey struct {
	scid   lnwire.ShortChannelID
	source route.Vertex
}

// MemGraph is an in-memory ChannelGraph, safe for concurrent use. Mutators
// (AddChannel, AddPolicy, ...) take a write lock and bump the version
// counter; readers (Neighbors, ChannelInfo, Policy, NodeInfo) take a read
// lock and never block each other. This mirrors the "benign inconsistency"
// contract a real gossip-backed implementation must also honor: a reader
// may observe a channel before its policies land, or see a channel vanish
// mid-search, and must treat that as "not usable" rather than an error.
type MemGraph struct {
	mu sync.RWMutex

	channels  map[lnwire.ShortChannelID]ChannelInfo
	policies  map[policyKey]ChannelPolicy
	nodes     map[route.Vertex]NodeInfo
	adjacency map[route.Vertex]map[lnwire.ShortChannelID]struct{}

	version uint64
}

// NewMemGraph returns an empty MemGraph ready for use.
func NewMemGraph() *MemGraph {
	return &MemGraph{
		channels:  make(map[lnwire.ShortChannelID]ChannelInfo),
		policies:  make(map[policyKey]ChannelPolicy),
		nodes:     make(map[route.Vertex]NodeInfo),
		adjacency: make(map[route.Vertex]map[lnwire.ShortChannelID]struct{}),
	}
}

// AddChannel registers (or replaces) a channel's static info, linking it
// into the adjacency lists of both of its endpoints.
func (g *MemGraph) AddChannel(info ChannelInfo) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.channels[info.SCID] = info
	g.linkAdjacency(info.Node1, info.SCID)
	g.linkAdjacency(info.Node2, info.SCID)
	g.version++
}

// linkAdjacency must be called with g.mu held for writing.
func (g *MemGraph) linkAdjacency(node route.Vertex, scid lnwire.ShortChannelID) {
	set, ok := g.adjacency[node]
	if !ok {
		set = make(map[lnwire.ShortChannelID]struct{})
		g.adjacency[node] = set
	}
	set[scid] = struct{}{}
}

// RemoveChannel drops a channel and both of its policies, e.g. on an
// on-chain channel_close.
func (g *MemGraph) RemoveChannel(scid lnwire.ShortChannelID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	info, ok := g.channels[scid]
	if !ok {
		return
	}

	delete(g.channels, scid)
	delete(g.policies, policyKey{scid, info.Node1})
	delete(g.policies, policyKey{scid, info.Node2})

	for _, node := range [2]route.Vertex{info.Node1, info.Node2} {
		if set, ok := g.adjacency[node]; ok {
			delete(set, scid)
			if len(set) == 0 {
				delete(g.adjacency, node)
			}
		}
	}

	g.version++
}

// AddPolicy registers (or replaces) the policy source publishes for
// forwarding across scid. The channel referenced by scid must already have
// been added via AddChannel, and source must be one of its endpoints, or
// the policy is silently dropped: a policy for a channel we don't know the
// endpoints of can never be attached to a route.
func (g *MemGraph) AddPolicy(scid lnwire.ShortChannelID, source route.Vertex,
	policy ChannelPolicy) {

	g.mu.Lock()
	defer g.mu.Unlock()

	info, ok := g.channels[scid]
	if !ok || !info.HasEndpoint(source) {
		return
	}

	g.policies[policyKey{scid, source}] = policy
	g.version++
}

// AddNode registers (or replaces) a node's announced info.
func (g *MemGraph) AddNode(info NodeInfo) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes[info.Node] = info
	g.version++
}

// Version implements ChannelGraph.
func (g *MemGraph) Version() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.version
}

// Neighbors implements ChannelGraph. The result is sorted by SCID so that
// repeated calls against an unmutated graph hand PathSearch candidate edges
// in the same order every time: Go randomizes map-iteration order, and
// pathfind.go's relaxation only overwrites a node's predecessor on strict
// improvement, so an unsorted result would let tied parallel edges win
// non-deterministically from one call to the next.
func (g *MemGraph) Neighbors(node route.Vertex,
	local LocalChannels) []lnwire.ShortChannelID {

	g.mu.RLock()
	gossiped := g.adjacency[node]
	out := make([]lnwire.ShortChannelID, 0, len(gossiped))
	seen := make(map[lnwire.ShortChannelID]struct{}, len(gossiped))
	for scid := range gossiped {
		out = append(out, scid)
		seen[scid] = struct{}{}
	}
	g.mu.RUnlock()

	if local != nil {
		for scid, lc := range local.Channels() {
			if _, ok := seen[scid]; ok {
				continue
			}

			info, ok := local.ChannelInfo(scid)
			if !ok || !info.HasEndpoint(node) {
				continue
			}

			_ = lc
			out = append(out, scid)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ToUint64() < out[j].ToUint64()
	})

	return out
}

// ChannelInfo implements ChannelGraph.
func (g *MemGraph) ChannelInfo(scid lnwire.ShortChannelID,
	local LocalChannels) (ChannelInfo, bool) {

	if local != nil {
		if info, ok := local.ChannelInfo(scid); ok {
			return info, true
		}
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	info, ok := g.channels[scid]
	return info, ok
}

// Policy implements ChannelGraph.
func (g *MemGraph) Policy(scid lnwire.ShortChannelID, source route.Vertex,
	local LocalChannels) (ChannelPolicy, bool) {

	g.mu.RLock()
	defer g.mu.RUnlock()

	policy, ok := g.policies[policyKey{scid, source}]
	return policy, ok
}

// NodeInfo implements ChannelGraph.
func (g *MemGraph) NodeInfo(node route.Vertex) (NodeInfo, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	info, ok := g.nodes[node]
	return info, ok
}

// Nodes implements ChannelGraph.
func (g *MemGraph) Nodes() []route.Vertex {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]route.Vertex, 0, len(g.nodes))
	for v := range g.nodes {
		out = append(out, v)
	}

	return out
}

var _ ChannelGraph = (*MemGraph)(nil)
