package routing

import (
	"sync"

	"github.com/lightningnetwork/lnd-pathfinder/lnwire"
)

// Blacklist is an owned, mutable set of channels to skip during path
// search. It carries no persistence and coordinates nothing across
// queries: callers typically keep one per payment attempt, adding to it as
// individual hops report failures, then discard it once the attempt
// concludes.
type Blacklist struct {
	mu   sync.RWMutex
	scid map[lnwire.ShortChannelID]struct{}
}

// NewBlacklist returns an empty Blacklist.
func NewBlacklist() *Blacklist {
	return &Blacklist{
		scid: make(map[lnwire.ShortChannelID]struct{}),
	}
}

// Add marks scid as forbidden for future searches against this Blacklist.
func (b *Blacklist) Add(scid lnwire.ShortChannelID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.scid[scid] = struct{}{}
}

// Clear empties the blacklist.
func (b *Blacklist) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.scid = make(map[lnwire.ShortChannelID]struct{})
}

// Contains reports whether scid is currently blacklisted. A nil *Blacklist
// is treated as empty, so callers may pass one in optionally.
func (b *Blacklist) Contains(scid lnwire.ShortChannelID) bool {
	if b == nil {
		return false
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	_, ok := b.scid[scid]
	return ok
}
