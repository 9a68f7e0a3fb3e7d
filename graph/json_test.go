package graph

import (
	"fmt"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/lightningnetwork/lnd-pathfinder/route"
	"github.com/stretchr/testify/require"
)

var (
	_, testNodeA = btcec.PrivKeyFromBytes([]byte{
		0xe1, 0x26, 0xf6, 0x8f, 0x7e, 0xaf, 0xcc, 0x8b,
		0x74, 0xf5, 0x4d, 0x26, 0x9f, 0xe2, 0x06, 0xbe,
		0x71, 0x50, 0x00, 0xf9, 0x4d, 0xac, 0x06, 0x7d,
		0x1c, 0x04, 0xa8, 0xca, 0x3b, 0x2d, 0xb7, 0x34,
	})
	_, testNodeB = btcec.PrivKeyFromBytes([]byte{
		0x81, 0xb6, 0x37, 0xd8, 0xfc, 0xd2, 0xc6, 0xda,
		0x63, 0x59, 0xe6, 0x96, 0x31, 0x13, 0xa1, 0x17,
		0x0d, 0xe7, 0x95, 0xe4, 0xb7, 0x25, 0xb8, 0x4d,
		0x1e, 0x0b, 0x4c, 0xfd, 0x9e, 0xc5, 0x8c, 0xe9,
	})
)

func hexPub(pub *btcec.PublicKey) string {
	return route.NewVertex(pub).String()
}

func TestLoadGraph(t *testing.T) {
	t.Parallel()

	doc := fmt.Sprintf(`{
		"nodes": [
			{"pub_key": %q, "features": [9]},
			{"pub_key": %q}
		],
		"channels": [
			{
				"short_channel_id": "1:0:0",
				"node1_pub": %q,
				"node2_pub": %q,
				"capacity_sat": 1000000,
				"node1_policy": {
					"fee_base_msat": 1000,
					"fee_rate_milli_msat": 1,
					"time_lock_delta": 40,
					"min_htlc_msat": 1,
					"max_htlc_msat": 500000000,
					"disabled": false
				}
			}
		]
	}`, hexPub(testNodeA), hexPub(testNodeB), hexPub(testNodeA), hexPub(testNodeB))

	g, err := LoadGraph(strings.NewReader(doc))
	require.NoError(t, err)

	a := route.NewVertex(testNodeA)
	b := route.NewVertex(testNodeB)

	nodeInfo, ok := g.NodeInfo(a)
	require.True(t, ok)
	require.True(t, nodeInfo.Features.HasRequiredVarOnion())

	c1 := scid(1)
	info, ok := g.ChannelInfo(c1, NoLocalChannels{})
	require.True(t, ok)
	require.Equal(t, a, info.Node1)
	require.Equal(t, b, info.Node2)
	require.True(t, info.CapacitySat.IsSome())
	require.EqualValues(t, 1000000, info.CapacitySat.UnwrapOr(0))

	policy, ok := g.Policy(c1, a, NoLocalChannels{})
	require.True(t, ok)
	require.EqualValues(t, 1000, policy.FeeBaseMSat)
	require.True(t, policy.HTLCMaximumMSat.IsSome())

	_, ok = g.Policy(c1, b, NoLocalChannels{})
	require.False(t, ok)
}

func TestLoadGraphMalformed(t *testing.T) {
	t.Parallel()

	_, err := LoadGraph(strings.NewReader(`{"channels": [{"short_channel_id": "bad"}]}`))
	require.Error(t, err)
}
