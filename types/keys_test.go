package types_test

import (
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windvane/windvane/types"
)

func TestPublicKeyRoundTrip(t *testing.T) {
	priv, err := btcec.NewPrivateKey(btcec.S256())
	require.NoError(t, err)

	pk := types.NewPublicKey(priv.PubKey())
	require.Len(t, string(pk), 66)
	require.Len(t, pk.XOnly(), 64)
	assert.Equal(t, string(pk)[2:], pk.XOnly())

	parsed, err := types.ParsePublicKey(strings.ToUpper(string(pk)))
	require.NoError(t, err)
	assert.Equal(t, pk, parsed)
}

func TestParsePublicKeyInvalid(t *testing.T) {
	for _, s := range []string{
		"",
		"zz",
		"00", // too short
		strings.Repeat("00", 33), // not on curve
	} {
		_, err := types.ParsePublicKey(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestNpubRoundTrip(t *testing.T) {
	priv, err := btcec.NewPrivateKey(btcec.S256())
	require.NoError(t, err)

	xonly := types.NewPublicKey(priv.PubKey()).XOnly()

	npub, err := types.EncodeNpub(xonly)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(npub, "npub1"), npub)

	back, err := types.DecodeNpub(npub)
	require.NoError(t, err)
	assert.Equal(t, xonly, back)
}

func TestParseAttestationIdentity(t *testing.T) {
	priv, err := btcec.NewPrivateKey(btcec.S256())
	require.NoError(t, err)
	xonly := types.NewPublicKey(priv.PubKey()).XOnly()
	npub, err := types.EncodeNpub(xonly)
	require.NoError(t, err)

	// Hex form.
	got, err := types.ParseAttestationIdentity(strings.ToUpper(xonly))
	require.NoError(t, err)
	assert.Equal(t, xonly, got)

	// Bech32 form.
	got, err = types.ParseAttestationIdentity(npub)
	require.NoError(t, err)
	assert.Equal(t, xonly, got)

	// Garbage.
	for _, s := range []string{"", "npub1qqqq", "nsec1aaaa", xonly[:10]} {
		_, err := types.ParseAttestationIdentity(s)
		assert.Error(t, err, "input %q", s)
	}
}
