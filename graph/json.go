package graph

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lightningnetwork/lnd-pathfinder/lnwire"
	"github.com/lightningnetwork/lnd-pathfinder/route"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// jsonPolicy is the on-disk representation of one direction of a channel's
// forwarding policy.
type jsonPolicy struct {
	FeeBaseMSat      uint32  `json:"fee_base_msat"`
	FeeRateMilliMsat uint32  `json:"fee_rate_milli_msat"`
	TimeLockDelta    uint16  `json:"time_lock_delta"`
	MinHTLCMSat      uint64  `json:"min_htlc_msat"`
	MaxHTLCMSat      *uint64 `json:"max_htlc_msat,omitempty"`
	Disabled         bool    `json:"disabled"`
}

func (p *jsonPolicy) toPolicy() ChannelPolicy {
	policy := ChannelPolicy{
		FeeBaseMSat:               p.FeeBaseMSat,
		FeeProportionalMillionths: p.FeeRateMilliMsat,
		CLTVExpiryDelta:           p.TimeLockDelta,
		HTLCMinimumMSat:           lnwire.MilliSatoshi(p.MinHTLCMSat),
		Disabled:                  p.Disabled,
	}

	if p.MaxHTLCMSat != nil {
		policy.HTLCMaximumMSat = fn.Some(
			lnwire.MilliSatoshi(*p.MaxHTLCMSat),
		)
	}

	return policy
}

// jsonChannel is the on-disk representation of a channel and, optionally,
// either endpoint's published policy.
type jsonChannel struct {
	ShortChannelID string      `json:"short_channel_id"`
	Node1          string      `json:"node1_pub"`
	Node2          string      `json:"node2_pub"`
	CapacitySat    *uint64     `json:"capacity_sat,omitempty"`
	Node1Policy    *jsonPolicy `json:"node1_policy,omitempty"`
	Node2Policy    *jsonPolicy `json:"node2_policy,omitempty"`
}

// jsonNode is the on-disk representation of a node announcement.
type jsonNode struct {
	PubKey   string  `json:"pub_key"`
	Features []uint8 `json:"features,omitempty"`
}

// jsonGraph is the top-level shape of a serialized channel graph snapshot,
// the format a pathfinder CLI loads in lieu of a live gossip feed.
type jsonGraph struct {
	Nodes    []jsonNode    `json:"nodes"`
	Channels []jsonChannel `json:"channels"`
}

// LoadGraph decodes a JSON-encoded channel graph snapshot from r into a
// fresh MemGraph. It is meant for tooling and tests that need a populated
// graph without standing up a gossip pipeline; a long-running node should
// instead keep a ChannelGraph implementation in sync with live gossip.
func LoadGraph(r io.Reader) (*MemGraph, error) {
	var doc jsonGraph
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding channel graph: %w", err)
	}

	g := NewMemGraph()

	for _, n := range doc.Nodes {
		v, err := route.NewVertexFromStr(n.PubKey)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.PubKey, err)
		}

		var features lnwire.NodeFeatures
		for _, bit := range n.Features {
			features = features.SetBit(lnwire.FeatureBit(bit))
		}

		g.AddNode(NodeInfo{Node: v, Features: features})
	}

	for _, c := range doc.Channels {
		scid, err := lnwire.ParseShortChannelID(c.ShortChannelID)
		if err != nil {
			return nil, fmt.Errorf("channel %q: %w",
				c.ShortChannelID, err)
		}

		node1, err := route.NewVertexFromStr(c.Node1)
		if err != nil {
			return nil, fmt.Errorf("channel %v node1: %w", scid, err)
		}

		node2, err := route.NewVertexFromStr(c.Node2)
		if err != nil {
			return nil, fmt.Errorf("channel %v node2: %w", scid, err)
		}

		info := ChannelInfo{SCID: scid, Node1: node1, Node2: node2}
		if c.CapacitySat != nil {
			info.CapacitySat = fn.Some(*c.CapacitySat)
		}

		g.AddChannel(info)

		if c.Node1Policy != nil {
			g.AddPolicy(scid, node1, c.Node1Policy.toPolicy())
		}
		if c.Node2Policy != nil {
			g.AddPolicy(scid, node2, c.Node2Policy.toPolicy())
		}
	}

	return g, nil
}
