package graph

import "github.com/lightningnetwork/lnd-pathfinder/lnwire"

// LocalChannel is the caller's own view of one of its channels: not what was
// gossiped, but what the channel can actually carry right now, including
// state (pending HTLCs, local reserve, peer liveness) no gossip message ever
// reveals.
type LocalChannel interface {
	// CanPay reports whether amtMSat can currently be sent out over this
	// channel. checkFrozen additionally rejects channels that have been
	// temporarily frozen from outgoing use, e.g. pending a channel lease
	// expiry or a manual hold.
	CanPay(amtMSat lnwire.MilliSatoshi, checkFrozen bool) bool

	// CanReceive reports whether amtMSat can currently be received over
	// this channel, under the same checkFrozen semantics as CanPay.
	CanReceive(amtMSat lnwire.MilliSatoshi, checkFrozen bool) bool
}

// LocalChannels is the caller's set of own channels, folded into path
// searches so that the search can both originate payments from them and
// route through un-gossiped channels the caller happens to own.
type LocalChannels interface {
	// Channels returns every locally known channel, keyed by short
	// channel id.
	Channels() map[lnwire.ShortChannelID]LocalChannel

	// ChannelInfo returns the caller's own view of a channel's static
	// info. It takes precedence over the graph's view wherever both
	// exist, since the owner of a channel always knows its true
	// endpoints and capacity, gossiped or not.
	ChannelInfo(scid lnwire.ShortChannelID) (ChannelInfo, bool)
}

// NoLocalChannels is a LocalChannels implementation with no channels at all,
// useful for path searches run on behalf of a node with no current
// channels, or in tests that don't exercise local-channel behavior.
type NoLocalChannels struct{}

func (NoLocalChannels) Channels() map[lnwire.ShortChannelID]LocalChannel {
	return nil
}

func (NoLocalChannels) ChannelInfo(
	lnwire.ShortChannelID) (ChannelInfo, bool) {

	return ChannelInfo{}, false
}

// MapLocalChannels is a LocalChannels backed by plain maps, convenient for
// tests and for small, infrequently-changing sets of local channels.
type MapLocalChannels struct {
	Chans map[lnwire.ShortChannelID]LocalChannel
	Infos map[lnwire.ShortChannelID]ChannelInfo
}

func NewMapLocalChannels() *MapLocalChannels {
	return &MapLocalChannels{
		Chans: make(map[lnwire.ShortChannelID]LocalChannel),
		Infos: make(map[lnwire.ShortChannelID]ChannelInfo),
	}
}

func (m *MapLocalChannels) Channels() map[lnwire.ShortChannelID]LocalChannel {
	return m.Chans
}

func (m *MapLocalChannels) ChannelInfo(
	scid lnwire.ShortChannelID) (ChannelInfo, bool) {

	info, ok := m.Infos[scid]
	return info, ok
}

// AddChannel registers a local channel and its static info in one step.
func (m *MapLocalChannels) AddChannel(info ChannelInfo, lc LocalChannel) {
	m.Infos[info.SCID] = info
	m.Chans[info.SCID] = lc
}

// AlwaysUsableChannel is a LocalChannel stub whose CanPay/CanReceive always
// return true; useful in tests that want a local channel in the graph
// without modeling balance constraints.
type AlwaysUsableChannel struct{}

func (AlwaysUsableChannel) CanPay(lnwire.MilliSatoshi, bool) bool     { return true }
func (AlwaysUsableChannel) CanReceive(lnwire.MilliSatoshi, bool) bool { return true }

// BalanceChannel is a LocalChannel backed by a simple outgoing/incoming
// liquidity split, with an optional frozen flag.
type BalanceChannel struct {
	LocalBalanceMSat  lnwire.MilliSatoshi
	RemoteBalanceMSat lnwire.MilliSatoshi
	Frozen            bool
}

func (c BalanceChannel) CanPay(amtMSat lnwire.MilliSatoshi, checkFrozen bool) bool {
	if checkFrozen && c.Frozen {
		return false
	}
	return amtMSat <= c.LocalBalanceMSat
}

func (c BalanceChannel) CanReceive(amtMSat lnwire.MilliSatoshi, checkFrozen bool) bool {
	if checkFrozen && c.Frozen {
		return false
	}
	return amtMSat <= c.RemoteBalanceMSat
}
