package lnwire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeFeaturesHasFeature(t *testing.T) {
	t.Parallel()

	var f NodeFeatures
	require.False(t, f.HasFeature(VarOnionOptinRequired))

	f = f.SetBit(VarOnionOptinOptional)
	require.True(t, f.HasFeature(VarOnionOptinRequired))
	require.True(t, f.HasRequiredVarOnion())

	f = f.SetBit(MPPRequired)
	require.True(t, f.HasFeature(MPPOptional))
}
