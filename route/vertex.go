// Package route contains the node/channel primitives used to describe a
// completed payment path, along with the integer-arithmetic fee and sanity
// checks that govern whether such a path is safe to use.
package route

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

// VertexSize is the size of the compressed, serialized public key that
// identifies a node on the channel graph.
const VertexSize = 33

// Vertex is a simple alias for the serialization of a compressed secp256k1
// public key. It is used to identify nodes within the channel graph and is
// directly comparable, making it suitable for use as a map key.
type Vertex [VertexSize]byte

// NewVertex returns a new Vertex given the pubkey of a node.
func NewVertex(pub *btcec.PublicKey) Vertex {
	var v Vertex
	copy(v[:], pub.SerializeCompressed())
	return v
}

// NewVertexFromBytes returns a new Vertex based on a serialized compressed
// public key. An error is returned if the bytes aren't of the right length,
// or do not decode to a valid point on the secp256k1 curve.
func NewVertexFromBytes(b []byte) (Vertex, error) {
	if len(b) != VertexSize {
		return Vertex{}, fmt.Errorf("invalid vertex length, want "+
			"%v, got %v", VertexSize, len(b))
	}

	if _, err := btcec.ParsePubKey(b); err != nil {
		return Vertex{}, fmt.Errorf("invalid vertex pubkey: %w", err)
	}

	var v Vertex
	copy(v[:], b)
	return v, nil
}

// NewVertexFromStr returns a new Vertex given its hex-encoded string
// representation.
func NewVertexFromStr(s string) (Vertex, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Vertex{}, err
	}

	return NewVertexFromBytes(b)
}

// String returns a human readable version of the Vertex which is the
// hex-encoding of the serialized compressed public key.
func (v Vertex) String() string {
	return hex.EncodeToString(v[:])
}
