package routing

import (
	"context"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/lightningnetwork/lnd-pathfinder/graph"
	"github.com/lightningnetwork/lnd-pathfinder/route"
	"github.com/stretchr/testify/require"
)

func TestQuantizeAmount(t *testing.T) {
	t.Parallel()

	require.EqualValues(t, 1, QuantizeAmount(0))
	require.EqualValues(t, 1, QuantizeAmount(1))
	require.EqualValues(t, 100, QuantizeAmount(11))
	require.EqualValues(t, 100, QuantizeAmount(100))
	require.EqualValues(t, 1000, QuantizeAmount(101))
}

// starGraph builds a hub-and-spoke graph: center is connected to each of n
// spokes by a free, symmetric channel.
func starGraph(n int) (*graph.MemGraph, route.Vertex, []route.Vertex) {
	g := graph.NewMemGraph()

	center := route.Vertex{0xff}
	spokes := make([]route.Vertex, n)

	for i := 0; i < n; i++ {
		var v route.Vertex
		v[0] = byte(i + 1)
		spokes[i] = v

		s := scid(uint32(i + 1))
		p1, p2 := flatPolicy(0, 0, 40), flatPolicy(0, 0, 40)

		g.AddChannel(graph.ChannelInfo{SCID: s, Node1: center, Node2: v})
		g.AddPolicy(s, center, p1)
		g.AddPolicy(s, v, p2)

		g.AddNode(graph.NodeInfo{Node: v})
	}

	g.AddNode(graph.NodeInfo{Node: center})

	return g, center, spokes
}

func TestBeaconCacheUpdateBeacons(t *testing.T) {
	t.Parallel()

	g, _, spokes := starGraph(5)
	cache := NewBeaconCache(g)

	var hash chainhash.Hash
	hash[0] = 1

	require.NoError(t, cache.UpdateBeacons(context.Background(), hash))
	require.Len(t, cache.beacons, len(spokes)+1)

	// Calling again with the same hash leaves the beacon set as it was.
	before := cache.beacons
	require.NoError(t, cache.UpdateBeacons(context.Background(), hash))
	require.Equal(t, before, cache.beacons)

	// A new hash reselects (and may reorder) the beacon set.
	hash[0] = 2
	require.NoError(t, cache.UpdateBeacons(context.Background(), hash))
}

func TestBeaconCacheCapsAtNumBeacons(t *testing.T) {
	t.Parallel()

	g, _, _ := starGraph(30)
	cache := NewBeaconCache(g)

	require.NoError(t, cache.UpdateBeacons(context.Background(), chainhash.Hash{1}))
	require.Len(t, cache.beacons, NumBeacons)
}

func TestBeaconCacheGetRoutesToBeacons(t *testing.T) {
	t.Parallel()

	g, center, spokes := starGraph(3)
	cache := NewBeaconCache(g)

	require.NoError(t, cache.UpdateBeacons(context.Background(), chainhash.Hash{7}))

	routes := cache.GetRoutesToBeacons(
		context.Background(), center, 1000, Outbound,
		graph.NoLocalChannels{},
	)
	require.Len(t, routes, len(spokes))

	for key, r := range routes {
		require.Equal(t, key.Beacon, r.Destination())
	}
}

func TestBeaconCacheMemoizesPerQuantizedAmount(t *testing.T) {
	t.Parallel()

	g, _, _ := starGraph(3)
	cache := NewBeaconCache(g)
	require.NoError(t, cache.UpdateBeacons(context.Background(), chainhash.Hash{3}))

	first := cache.GetPredecessorsToBeacons(
		context.Background(), 500, Outbound,
	)
	second := cache.GetPredecessorsToBeacons(
		context.Background(), 999, Outbound,
	)
	require.Len(t, first, len(cache.beacons))
	require.Equal(t, len(first), len(second))

	// 500 and 999 sat share the 1000 sat bucket, so one tree set serves
	// both lookups.
	require.Len(t, cache.outbound, 1)
}

func TestBeaconCacheInvalidatesOnGraphMutation(t *testing.T) {
	t.Parallel()

	g, _, _ := starGraph(3)
	cache := NewBeaconCache(g)
	require.NoError(t, cache.UpdateBeacons(context.Background(), chainhash.Hash{9}))

	_ = cache.GetPredecessorsToBeacons(context.Background(), 1000, Outbound)

	cache.mu.RLock()
	_, cached := cache.outbound[QuantizeAmount(1000)]
	cache.mu.RUnlock()
	require.True(t, cached)

	// Mutating the graph bumps its version; the next lookup must
	// recompute rather than serve the stale tree.
	g.AddNode(graph.NodeInfo{Node: route.Vertex{0xaa}})

	cache.invalidateIfStale()

	cache.mu.RLock()
	_, stillCached := cache.outbound[QuantizeAmount(1000)]
	cache.mu.RUnlock()
	require.False(t, stillCached)
}
