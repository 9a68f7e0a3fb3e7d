package route

import (
	"errors"

	"github.com/lightningnetwork/lnd-pathfinder/lnwire"
)

const (
	// MaxEdges is the maximum number of hops permitted in a single
	// route. The limit stems from the fixed-size Sphinx onion packet,
	// which can only encode a bounded number of per-hop payloads.
	MaxEdges = 20

	// CLTVExpiryCeilingBlocks is the largest individual hop CLTV delta
	// that will ever be accepted. Nodes publishing a larger delta are
	// treated as unreasonable to route through, independent of the rest
	// of the route's accumulated time-lock.
	CLTVExpiryCeilingBlocks = 14 * 144

	// NBlockCLTVExpiryTooFarIntoFuture bounds the total, accumulated
	// CLTV expiry of a route. A route whose first hop would lock funds
	// for longer than this is rejected, since a stuck HTLC on such a
	// route would tie up capital for an unreasonable amount of time.
	NBlockCLTVExpiryTooFarIntoFuture = 28 * 144

	// MinFinalCLTVExpiryForInvoice is the default minimum CLTV delta
	// that the recipient of a payment requires on the last hop, absent
	// a more specific value carried in the invoice.
	MinFinalCLTVExpiryForInvoice = 147

	// feeSanityThresholdMSat is the absolute fee, in millisatoshi, below
	// which a fee is always considered sane regardless of the size of
	// the payment it's attached to.
	feeSanityThresholdMSat = 5_000

	// feeSanityPercent is the multiplier behind the 1% limit: a fee that
	// exceeds feeSanityThresholdMSat is still sane if feeSanityPercent
	// times the fee does not exceed the payment amount.
	feeSanityPercent = 100
)

// ErrNoRouteHopsProvided is returned when attempting to build a Route out of
// an empty list of hops.
var ErrNoRouteHopsProvided = errors.New("route must have at least one hop")

// FeeForEdge computes the fee, in millisatoshi, that a node charges to
// forward the given amount across one of its channels, per BOLT-07:
//
//	fee = fee_base_msat + (amount * fee_proportional_millionths) / 1e6
//
// All arithmetic is integer and the division truncates, matching the
// accounting real Lightning nodes perform.
func FeeForEdge(forwardedAmtMSat lnwire.MilliSatoshi, feeBaseMSat uint32,
	feeProportionalMillionths uint32) lnwire.MilliSatoshi {

	return lnwire.MilliSatoshi(uint64(feeBaseMSat)) +
		(forwardedAmtMSat*lnwire.MilliSatoshi(feeProportionalMillionths))/
			1_000_000
}

// IsFeeSane reports whether a fee is acceptable to pay for a given payment
// amount. A fee is sane if it doesn't exceed a flat 5 sat, or if it does, it
// must still be no more than 1% of the payment amount.
func IsFeeSane(feeMSat, paymentAmtMSat lnwire.MilliSatoshi) bool {
	if feeMSat <= feeSanityThresholdMSat {
		return true
	}

	return feeSanityPercent*uint64(feeMSat) <= uint64(paymentAmtMSat)
}

// RouteEdge describes one hop of a Route: "if you travel through ChannelID,
// you will reach EndNode."
type RouteEdge struct {
	// EndNode is the node reached by traversing this edge.
	EndNode Vertex

	// ChannelID is the short channel id of the channel traversed.
	ChannelID lnwire.ShortChannelID

	// FeeBaseMSat is the base fee, in millisatoshi, charged by EndNode's
	// counterparty for forwarding across this channel in this direction.
	FeeBaseMSat uint32

	// FeeProportionalMillionths is the proportional fee rate, expressed
	// in millionths, charged for forwarding across this channel in this
	// direction.
	FeeProportionalMillionths uint32

	// CLTVExpiryDelta is the time-lock delta this hop requires.
	CLTVExpiryDelta uint16

	// EndNodeFeatures is the feature vector announced by EndNode at the
	// time the route was constructed.
	EndNodeFeatures lnwire.NodeFeatures
}

// FeeForEdge returns the fee charged for forwarding amtMSat across this
// edge.
func (e *RouteEdge) FeeForEdge(amtMSat lnwire.MilliSatoshi) lnwire.MilliSatoshi {
	return FeeForEdge(amtMSat, e.FeeBaseMSat, e.FeeProportionalMillionths)
}

// IsSaneToUse runs the per-edge ad-hoc heuristics that gate whether this
// edge, carrying amtMSat, is reasonable to use at all: its time-lock must
// fall under the two-week ceiling, and its fee must be sane relative to the
// amount it forwards.
func (e *RouteEdge) IsSaneToUse(amtMSat lnwire.MilliSatoshi) bool {
	if e.CLTVExpiryDelta > CLTVExpiryCeilingBlocks {
		return false
	}

	return IsFeeSane(e.FeeForEdge(amtMSat), amtMSat)
}

// Route is an ordered, non-empty sequence of RouteEdge values describing a
// full payment path. The sender pays amount + sum(fees); the final edge's
// EndNode is the payment destination.
type Route []RouteEdge

// NewRoute constructs a Route from an ordered slice of hops. It rejects an
// empty slice, since a route with zero edges cannot deliver a payment
// anywhere.
func NewRoute(edges []RouteEdge) (Route, error) {
	if len(edges) == 0 {
		return nil, ErrNoRouteHopsProvided
	}

	return Route(edges), nil
}

// Destination returns the final node reached by the route.
func (r Route) Destination() Vertex {
	return r[len(r)-1].EndNode
}

// TotalFees returns the sum of the per-hop fees a sender of invoiceAmtMSat
// would pay along this route; equivalently, ReceiverAmt() - invoiceAmtMSat.
func (r Route) TotalFees(invoiceAmtMSat lnwire.MilliSatoshi) lnwire.MilliSatoshi {
	amt, _ := r.walkBackward(invoiceAmtMSat, 0)
	return amt - invoiceAmtMSat
}

// ReceiverAmt returns the amount the sender must hand to the first hop in
// order for invoiceAmtMSat to arrive at the destination.
func (r Route) ReceiverAmt(invoiceAmtMSat lnwire.MilliSatoshi) lnwire.MilliSatoshi {
	amt, _ := r.walkBackward(invoiceAmtMSat, 0)
	return amt
}

// walkBackward accumulates the amount-to-forward and cltv-expiry from the
// destination back to the sender, as IsRouteSaneToUse does, and returns the
// final (sender-side) amount and total cltv. Unlike IsRouteSaneToUse, it
// also adds the first edge's cltv delta to the total.
//
// The first edge's own fee is never charged (it is the sender's own
// channel, and the sender doesn't pay itself), so its contribution is
// skipped; every later edge's fee is added to the amount handed to it.
func (r Route) walkBackward(invoiceAmtMSat lnwire.MilliSatoshi,
	minFinalCLTVExpiry uint16) (lnwire.MilliSatoshi, uint32) {

	amt := invoiceAmtMSat
	cltv := uint32(minFinalCLTVExpiry)

	for i := len(r) - 2; i >= 0; i-- {
		edge := r[i+1]
		amt += edge.FeeForEdge(amt)
		cltv += uint32(edge.CLTVExpiryDelta)
	}

	if len(r) > 0 {
		cltv += uint32(r[0].CLTVExpiryDelta)
	}

	return amt, cltv
}

// IsRouteSaneToUse runs the whole-route sanity checks required before a
// route is used to send a payment:
//
//   - the route may not exceed MaxEdges hops;
//   - walking backward from the last edge to the second, every edge must
//     itself be sane to use at the amount it is asked to forward (the first
//     edge, the sender's own channel, is not checked);
//   - the accumulated time-lock may not exceed
//     NBlockCLTVExpiryTooFarIntoFuture;
//   - the total fee paid must be sane relative to invoiceAmtMSat.
func IsRouteSaneToUse(r Route, invoiceAmtMSat lnwire.MilliSatoshi,
	minFinalCLTVExpiry uint16) bool {

	if len(r) == 0 || len(r) > MaxEdges {
		return false
	}

	amt := invoiceAmtMSat
	cltv := uint32(minFinalCLTVExpiry)

	for i := len(r) - 1; i >= 1; i-- {
		edge := r[i]
		if !edge.IsSaneToUse(amt) {
			return false
		}

		amt += edge.FeeForEdge(amt)
		cltv += uint32(edge.CLTVExpiryDelta)
	}

	// Note: unlike walkBackward, the first edge's own cltv delta is not
	// folded in here. That edge is the sender's own outgoing channel,
	// and never contributes a fee either, for the same reason: the
	// sender doesn't pay (or lock up time against) itself.
	if cltv > NBlockCLTVExpiryTooFarIntoFuture {
		return false
	}

	totalFee := amt - invoiceAmtMSat
	return IsFeeSane(totalFee, invoiceAmtMSat)
}
