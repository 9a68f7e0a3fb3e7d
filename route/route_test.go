package route

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lightningnetwork/lnd-pathfinder/lnwire"
	"github.com/stretchr/testify/require"
)

var (
	_, testPubKey = btcec.PrivKeyFromBytes([]byte{
		0xe1, 0x26, 0xf6, 0x8f, 0x7e, 0xaf, 0xcc, 0x8b,
		0x74, 0xf5, 0x4d, 0x26, 0x9f, 0xe2, 0x06, 0xbe,
		0x71, 0x50, 0x00, 0xf9, 0x4d, 0xac, 0x06, 0x7d,
		0x1c, 0x04, 0xa8, 0xca, 0x3b, 0x2d, 0xb7, 0x34,
	})
)

func TestNewVertexFromBytes(t *testing.T) {
	t.Parallel()

	v, err := NewVertexFromBytes(testPubKey.SerializeCompressed())
	require.NoError(t, err)
	require.Equal(t, NewVertex(testPubKey), v)

	_, err = NewVertexFromBytes([]byte{0x01, 0x02})
	require.Error(t, err)
}

func TestFeeForEdge(t *testing.T) {
	t.Parallel()

	require.EqualValues(t, 1000, FeeForEdge(0, 1000, 0))
	require.EqualValues(t, 1100, FeeForEdge(1_000_000, 1000, 100))
	// Truncating division.
	require.EqualValues(t, 0, FeeForEdge(9, 0, 100_000))
}

func TestIsFeeSane(t *testing.T) {
	t.Parallel()

	require.True(t, IsFeeSane(5000, 1000))
	require.True(t, IsFeeSane(100, 1000))
	require.False(t, IsFeeSane(6000, 1000))
	require.True(t, IsFeeSane(6000, 600_000))
}

func TestRouteTotalFees(t *testing.T) {
	t.Parallel()

	var r Route
	require.Zero(t, r.TotalFees(0))

	amt := lnwire.MilliSatoshi(1000)

	// A one-hop route never charges a fee: the sole edge is the
	// sender's own channel.
	r = Route{
		{EndNode: Vertex{1}},
	}
	require.Zero(t, r.TotalFees(amt))
	require.Equal(t, amt, r.ReceiverAmt(amt))

	// A two-hop route charges the second edge's fee.
	r = Route{
		{EndNode: Vertex{1}},
		{EndNode: Vertex{2}, FeeBaseMSat: 1000, FeeProportionalMillionths: 100},
	}
	require.EqualValues(t, 1100, r.TotalFees(amt*1000))
}

func TestIsRouteSaneToUse(t *testing.T) {
	t.Parallel()

	amt := lnwire.MilliSatoshi(1_000_000)

	route := Route{
		{EndNode: Vertex{1}, CLTVExpiryDelta: 40},
		{
			EndNode:                   Vertex{2},
			CLTVExpiryDelta:           40,
			FeeBaseMSat:               1000,
			FeeProportionalMillionths: 100,
		},
	}
	require.True(t, IsRouteSaneToUse(route, amt, 9))

	// Too many hops.
	long := make(Route, MaxEdges+1)
	require.False(t, IsRouteSaneToUse(long, amt, 9))

	// The first edge is never checked per edge, only the edges after it,
	// so craft a two-hop route where the second edge violates the
	// two-week cltv ceiling.
	badCLTV := Route{
		{EndNode: Vertex{1}},
		{EndNode: Vertex{2}, CLTVExpiryDelta: CLTVExpiryCeilingBlocks + 1},
	}
	require.False(t, IsRouteSaneToUse(badCLTV, amt, 9))

	// Fee insanity on the second edge.
	badFee := Route{
		{EndNode: Vertex{1}},
		{EndNode: Vertex{2}, FeeBaseMSat: 6000},
	}
	require.False(t, IsRouteSaneToUse(badFee, 1000, 9))
}

func TestNewRoute(t *testing.T) {
	t.Parallel()

	_, err := NewRoute(nil)
	require.ErrorIs(t, err, ErrNoRouteHopsProvided)

	r, err := NewRoute([]RouteEdge{{EndNode: Vertex{9}}})
	require.NoError(t, err)
	require.Equal(t, Vertex{9}, r.Destination())
}
