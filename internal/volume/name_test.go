package volume

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeName(t *testing.T) {
	cases := []struct {
		name   string
		raw    [11]byte
		first  byte
		expect string
	}{
		{"basic", nameBytes("?ELLO   TXT"), 'H', "HELLO.TXT"},
		{"no extension", nameBytes("README     "), 'R', "README"},
		{"embedded spaces dropped", nameBytes("ZA B    C  "), 'X', "XAB.C"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.expect, DecodeName(c.raw, c.first))
		})
	}
}

func TestDisplayName(t *testing.T) {
	raw := nameBytes("HELLO   TXT")
	require.Equal(t, "HELLO.TXT", DisplayName(raw))
}

// P1 (name round-trip). For every 11-byte short-name record containing only
// printable bytes and spaces, decode(r, r[0]) == display(r) when r[0] >= 0x20.
func TestNameRoundTripProperty(t *testing.T) {
	samples := []string{
		"HELLO   TXT",
		"A          ",
		"README     ",
		"X Y Z   ABC",
		"12345678TXT",
	}
	for _, s := range samples {
		raw := nameBytes(s)
		if raw[0] < 0x20 {
			continue
		}
		require.Equal(t, DecodeName(raw, raw[0]), DisplayName(raw), "mismatch for %q", s)
	}
}

// DecodeName must not apply the printable-byte filter: a tombstone's raw
// bytes are matched as-is, not cosmetically cleaned up the way a listing
// display would be.
func TestDecodeNameKeepsNonPrintableByte(t *testing.T) {
	raw := nameBytes("?E\x01LO   TXT")
	require.Equal(t, "HE\x01LO.TXT", DecodeName(raw, 'H'))
}

// DisplayName, unlike DecodeName, drops non-printable bytes (< 0x20)
// anywhere in the name.
func TestDisplayNameDropsNonPrintableByte(t *testing.T) {
	raw := nameBytes("HE\x01LO   TXT")
	require.Equal(t, "HELO.TXT", DisplayName(raw))
}

func TestNameMatches(t *testing.T) {
	raw := nameBytes("?ELLO   TXT")
	raw[0] = nameTombstone
	require.True(t, NameMatches(raw, "HELLO.TXT"))
	require.False(t, NameMatches(raw, "WORLD.TXT"))
	require.False(t, NameMatches(raw, ""))
}
