package lnwire

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

// MilliSatoshi are the native unit of the Lightning Network. A milli-satoshi
// is simply 1/1000th of a satoshi. There are 1000 milli-satoshis in a single
// satoshi. Within the network, all HTLC values are denominated in
// milli-satoshis. As milli-satoshis aren't deliverable on the base Bitcoin
// network, before settling to broadcasting, the values are rounded down to
// the nearest satoshi.
type MilliSatoshi uint64

// NewMSatFromSatoshis creates a new MilliSatoshi instance from a target
// amount of satoshis.
func NewMSatFromSatoshis(sat btcutil.Amount) MilliSatoshi {
	return MilliSatoshi(sat * 1000)
}

// ToSatoshis converts a target MilliSatoshi amount to its corresponding
// value when expressed in satoshis. Note that this function rounds down as
// a MilliSatoshi is unable to carry a fractional satoshi value.
func (m MilliSatoshi) ToSatoshis() btcutil.Amount {
	return btcutil.Amount(m / 1000)
}

// String returns the string representation of the MilliSatoshi amount.
func (m MilliSatoshi) String() string {
	return fmt.Sprintf("%d mSAT", uint64(m))
}
