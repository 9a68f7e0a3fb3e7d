package lnwire

// FeatureBit represents a single feature bit, as defined in the Lightning
// BOLT-09 feature bit registry. A feature is "required" if its bit position
// is even, and "optional" if it is odd.
type FeatureBit uint8

const (
	// DataLossProtectOptional is the bit indicating optional support of
	// the data-loss-protect channel-reestablish extension.
	DataLossProtectOptional FeatureBit = 1

	// DataLossProtectRequired is the required counterpart of
	// DataLossProtectOptional.
	DataLossProtectRequired FeatureBit = 0

	// VarOnionOptinOptional is the bit signaling optional support of the
	// variable-length onion construction.
	VarOnionOptinOptional FeatureBit = 9

	// VarOnionOptinRequired is the required counterpart of
	// VarOnionOptinOptional.
	VarOnionOptinRequired FeatureBit = 8

	// PaymentAddrOptional is the bit signaling optional support for
	// payment addresses (used to tie-break multi-part payments).
	PaymentAddrOptional FeatureBit = 15

	// PaymentAddrRequired is the required counterpart of
	// PaymentAddrOptional.
	PaymentAddrRequired FeatureBit = 14

	// MPPOptional is the bit signaling optional support for
	// basic multi-part payments.
	MPPOptional FeatureBit = 17

	// MPPRequired is the required counterpart of MPPOptional.
	MPPRequired FeatureBit = 16
)

// NodeFeatures is a compact bitfield of the feature bits a node has
// announced support for. Unlike the gossip layer's variable-length feature
// vector, the path-finder only ever needs to test membership of a handful of
// well-known bits, so a single uint64 is sufficient and avoids an allocation
// per node touched during a search.
type NodeFeatures uint64

// HasFeature returns true if the bit is set, interpreting both the required
// and optional position of a feature pair as satisfying the query; BOLT-09
// defines "it understands feature X" to be true if either bit is set.
func (f NodeFeatures) HasFeature(bit FeatureBit) bool {
	pos := bit &^ 1
	return f&(1<<pos) != 0 || f&(1<<(pos+1)) != 0
}

// SetBit returns a copy of f with the given bit set.
func (f NodeFeatures) SetBit(bit FeatureBit) NodeFeatures {
	return f | (1 << bit)
}

// HasRequiredVarOnion returns true if the node has signaled support for
// the variable-length onion payload format, required for any route whose
// intermediate hops attach TLV data (e.g. an encoded payment address or a
// multi-part payment total).
func (f NodeFeatures) HasRequiredVarOnion() bool {
	return f.HasFeature(VarOnionOptinRequired)
}
