package lnwire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShortChannelIDEncoding(t *testing.T) {
	t.Parallel()

	var testCases = []ShortChannelID{
		{
			BlockHeight: (1 << 24) - 1,
			TxIndex:     (1 << 24) - 1,
			TxPosition:  (1 << 16) - 1,
		},
		{
			BlockHeight: 2304934,
			TxIndex:     2345,
			TxPosition:  5,
		},
		{
			BlockHeight: 9304934,
			TxIndex:     2345,
			TxPosition:  5233,
		},
	}

	for _, testCase := range testCases {
		chanInt := testCase.ToUint64()

		newChanID := NewShortChanIDFromInt(chanInt)
		require.Equal(t, testCase, newChanID)

		b := testCase.ToBytes()
		fromBytes, err := NewShortChanIDFromBytes(b[:])
		require.NoError(t, err)
		require.Equal(t, testCase, fromBytes)
	}
}

func TestShortChannelIDFromBytesBadLength(t *testing.T) {
	t.Parallel()

	_, err := NewShortChanIDFromBytes([]byte{0x01, 0x02, 0x03})
	require.Error(t, err)
}

func TestShortChannelIDIsDefault(t *testing.T) {
	t.Parallel()

	require.True(t, ShortChannelID{}.IsDefault())
	require.False(t, ShortChannelID{BlockHeight: 1}.IsDefault())
}

func TestParseShortChannelID(t *testing.T) {
	t.Parallel()

	want := ShortChannelID{
		BlockHeight: 2304934,
		TxIndex:     2345,
		TxPosition:  5,
	}

	got, err := ParseShortChannelID(want.String())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestParseShortChannelIDMalformed(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "1:2", "1:2:3:4", "a:2:3", "1:b:3", "1:2:c"} {
		_, err := ParseShortChannelID(s)
		require.Error(t, err, s)
	}
}
