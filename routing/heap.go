package routing

import (
	"bytes"

	"github.com/lightningnetwork/lnd-pathfinder/lnwire"
	"github.com/lightningnetwork/lnd-pathfinder/route"
)

// searchEntry is one tuple on the path-search priority queue:
// (distance-so-far, amount-forwarded-at-this-node, node). Entries are
// ordered by dist; amount and then node break ties, so that pops with
// equal dist come out in a deterministic order.
type searchEntry struct {
	dist   float64
	amount lnwire.MilliSatoshi
	node   route.Vertex
}

// searchHeap is a min-heap over searchEntry ordered by (dist, amount,
// node). It is, on
// purpose, a plain container/heap.Interface with no index tracking back
// from node to heap slot: relaxing a node's distance pushes a fresh entry
// rather than adjusting one in place, so the heap accumulates stale
// duplicate entries for nodes relaxed more than once. A popped entry whose
// dist no longer matches the best known distance for that node is simply
// discarded. This trades a larger heap for never needing a decrease-key
// operation or a pubkey->index map to support one.
type searchHeap []searchEntry

func (h searchHeap) Len() int { return len(h) }

func (h searchHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	if h[i].amount != h[j].amount {
		return h[i].amount < h[j].amount
	}
	return bytes.Compare(h[i].node[:], h[j].node[:]) < 0
}

func (h searchHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *searchHeap) Push(x interface{}) {
	*h = append(*h, x.(searchEntry))
}

func (h *searchHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
