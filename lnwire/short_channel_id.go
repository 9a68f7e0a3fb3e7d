package lnwire

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// ShortChannelID represents the set of data which is needed to retrieve all
// necessary data to validate the channel existence.
type ShortChannelID struct {
	// BlockHeight is the height of the block where the funding
	// transaction is located.
	//
	// NOTE: This field is limited to 3 bytes.
	BlockHeight uint32

	// TxIndex is the position of the funding transaction within the
	// block.
	//
	// NOTE: This field is limited to 3 bytes.
	TxIndex uint32

	// TxPosition indicates which output of the funding transaction pays
	// to the channel.
	TxPosition uint16
}

// NewShortChanIDFromInt returns a new ShortChannelID which is the decoded
// version of the compact channel ID encoded within the uint64. The format of
// the compact channel ID is as follows: 3 bytes for the block height, 3
// bytes for the transaction index, and 2 bytes for the output index.
func NewShortChanIDFromInt(chanID uint64) ShortChannelID {
	return ShortChannelID{
		BlockHeight: uint32(chanID >> 40),
		TxIndex:     uint32(chanID>>16) & 0xFFFFFF,
		TxPosition:  uint16(chanID),
	}
}

// NewShortChanIDFromBytes decodes the big-endian 8-byte on-the-wire
// encoding of a channel's locator (block_height || tx_index || tx_position)
// into a ShortChannelID. It returns an error if b is not exactly 8 bytes.
func NewShortChanIDFromBytes(b []byte) (ShortChannelID, error) {
	if len(b) != 8 {
		return ShortChannelID{}, fmt.Errorf("short channel id must "+
			"be 8 bytes, got %d", len(b))
	}

	return NewShortChanIDFromInt(binary.BigEndian.Uint64(b)), nil
}

// ToUint64 converts the ShortChannelID into a compact format encoded within
// a uint64 (8 bytes).
func (c ShortChannelID) ToUint64() uint64 {
	return (uint64(c.BlockHeight) << 40) | (uint64(c.TxIndex) << 16) |
		(uint64(c.TxPosition))
}

// ToBytes returns the big-endian 8-byte on-the-wire encoding of the
// channel's locator.
func (c ShortChannelID) ToBytes() [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], c.ToUint64())
	return b
}

// String generates a human-readable representation of the channel ID.
func (c ShortChannelID) String() string {
	return fmt.Sprintf("%d:%d:%d", c.BlockHeight, c.TxIndex, c.TxPosition)
}

// AltString generates a human-readable representation of the channel ID
// with 'x' as a separator.
func (c ShortChannelID) AltString() string {
	return fmt.Sprintf("%dx%dx%d", c.BlockHeight, c.TxIndex, c.TxPosition)
}

// IsDefault returns true if the ShortChannelID represents the zero value for
// its type.
func (c ShortChannelID) IsDefault() bool {
	return c == ShortChannelID{}
}

// ParseShortChannelID parses the "blockheight:txindex:txposition" format
// produced by String back into a ShortChannelID. It is the inverse of
// String, used to read channel ids out of human-edited graph fixtures.
func ParseShortChannelID(s string) (ShortChannelID, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return ShortChannelID{}, fmt.Errorf("short channel id %q "+
			"must have the form height:tx:position", s)
	}

	height, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return ShortChannelID{}, fmt.Errorf("invalid block height "+
			"in %q: %w", s, err)
	}

	txIndex, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return ShortChannelID{}, fmt.Errorf("invalid tx index in "+
			"%q: %w", s, err)
	}

	txPosition, err := strconv.ParseUint(parts[2], 10, 16)
	if err != nil {
		return ShortChannelID{}, fmt.Errorf("invalid tx position "+
			"in %q: %w", s, err)
	}

	return ShortChannelID{
		BlockHeight: uint32(height),
		TxIndex:     uint32(txIndex),
		TxPosition:  uint16(txPosition),
	}, nil
}
