package routing

import (
	"math"

	"github.com/lightningnetwork/lnd-pathfinder/graph"
	"github.com/lightningnetwork/lnd-pathfinder/lnwire"
	"github.com/lightningnetwork/lnd-pathfinder/route"
)

// BaseCost is the flat per-edge cost added regardless of fee or time-lock:
// one more hop is one more opportunity for the payment to fail, so it is
// never free even when the edge itself charges nothing.
const BaseCost = 500

// cltvCostDenominator is the divisor in the per-edge CLTV risk term; see
// edgeCost.
const cltvCostDenominator = 1_000_000_000

// inf stands in for the "inadmissible" cost.
const inf = math.MaxFloat64

// edgeCost evaluates the candidate directed edge (scid, start, end) at the
// forwarded amount amtMSat, returning the heuristic cost used to order the
// search (inf if the edge is inadmissible) and the fee, in millisatoshi,
// that traversing it charges.
//
// caller is the node on whose behalf the search runs; it is used only to
// decide which of the two local-liquidity predicates (can_pay / can_receive)
// governs a local channel, and whether the fee/CLTV-risk terms of the cost
// should be dropped (an edge originating at caller never charges caller a
// fee, nor risks caller's own capital on its own time-lock). caller is nil
// for beacon precomputation, where no single node is the subject of the
// search; in that case the local-liquidity and fee-dropping logic is
// skipped entirely.
func edgeCost(g graph.ChannelGraph, local graph.LocalChannels, bl *Blacklist,
	caller *route.Vertex, scid lnwire.ShortChannelID, start, end route.Vertex,
	amtMSat lnwire.MilliSatoshi) (float64, lnwire.MilliSatoshi) {

	// 9. scid is blacklisted.
	if bl.Contains(scid) {
		return inf, 0
	}

	// 1. channel_info(scid) is absent.
	info, ok := g.ChannelInfo(scid, local)
	if !ok {
		return inf, 0
	}

	// 2. policy(scid, start) is absent.
	policy, ok := g.Policy(scid, start, local)
	if !ok {
		return inf, 0
	}

	// 3. policy.disabled.
	if policy.Disabled {
		return inf, 0
	}

	// 4. amount below the floor this direction will forward.
	if amtMSat < policy.HTLCMinimumMSat {
		return inf, 0
	}

	// 5. amount exceeds the channel's on-chain capacity.
	if info.CapacitySat.IsSome() {
		capSat := info.CapacitySat.UnwrapOr(0)
		if uint64(amtMSat)/1000 > capSat {
			return inf, 0
		}
	}

	// 6. amount exceeds the published per-direction ceiling.
	if policy.HTLCMaximumMSat.IsSome() {
		maxMSat := policy.HTLCMaximumMSat.UnwrapOr(0)
		if amtMSat > maxMSat {
			return inf, 0
		}
	}

	// 7. two-week CLTV ceiling.
	if policy.CLTVExpiryDelta > route.CLTVExpiryCeilingBlocks {
		return inf, 0
	}

	feeMSat := route.FeeForEdge(
		amtMSat, policy.FeeBaseMSat, policy.FeeProportionalMillionths,
	)

	// 8. the fee itself must be sane for this amount.
	if !route.IsFeeSane(feeMSat, amtMSat) {
		return inf, 0
	}

	// 10. local liquidity: a channel we own gates on our own spendable or
	// receivable balance, not just the gossiped policy.
	if caller != nil {
		if lc, ok := local.Channels()[scid]; ok {
			switch *caller {
			case start:
				if !lc.CanPay(amtMSat, true) {
					return inf, 0
				}
			case end:
				if !lc.CanReceive(amtMSat, true) {
					return inf, 0
				}
			}
		}
	}

	// For edges originating at the caller's own node, the fee term is
	// dropped: the caller doesn't pay itself a fee, and the amount
	// forwarded onward from that node is the bare payment amount, not
	// amount+fee.
	if caller != nil && start == *caller {
		return BaseCost, 0
	}

	cltvCost := float64(policy.CLTVExpiryDelta) * float64(amtMSat) * 15 /
		cltvCostDenominator

	return BaseCost + float64(feeMSat) + cltvCost, feeMSat
}
