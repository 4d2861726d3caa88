package keychain_test

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windvane/windvane/keychain"
	"github.com/windvane/windvane/types"
)

func testSeed(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, 32)
}

func TestNewSeedBounds(t *testing.T) {
	_, err := keychain.New(make([]byte, keychain.MinSeedSize-1))
	assert.Error(t, err)

	_, err = keychain.New(make([]byte, keychain.MaxSeedSize+1))
	assert.Error(t, err)

	_, err = keychain.New(make([]byte, keychain.MinSeedSize))
	assert.NoError(t, err)
}

func TestDerivationIsDeterministic(t *testing.T) {
	a, err := keychain.New(testSeed(1))
	require.NoError(t, err)
	b, err := keychain.New(testSeed(1))
	require.NoError(t, err)

	assert.Equal(t, a.PayoutControlKeyPair().PublicKey(), b.PayoutControlKeyPair().PublicKey())
	for _, id := range []types.OrderID{0, 1, 7, 1 << 40} {
		assert.Equal(t, a.OrderOwner(id), b.OrderOwner(id), "order %d", id)
	}
}

func TestDerivedKeysAreDistinct(t *testing.T) {
	kc, err := keychain.New(testSeed(2))
	require.NoError(t, err)

	seen := map[types.PublicKey]string{
		kc.PayoutControlKeyPair().PublicKey(): "payout control",
	}
	for _, id := range []types.OrderID{0, 1, 2, 100} {
		owner := kc.OrderOwner(id)
		prev, dup := seen[owner]
		require.False(t, dup, "order %d collides with %s", id, prev)
		seen[owner] = "order " + id.String()
	}

	other, err := keychain.New(testSeed(3))
	require.NoError(t, err)
	assert.NotEqual(t, kc.OrderOwner(0), other.OrderOwner(0), "seeds must not share keys")
}

func TestKeyPairSigns(t *testing.T) {
	kc, err := keychain.New(testSeed(4))
	require.NoError(t, err)

	kp := kc.OrderKeyPair(42)
	digest := sha256.Sum256([]byte("cancel order 42"))

	sig, err := kp.PrivateKey().Sign(digest[:])
	require.NoError(t, err)
	assert.True(t, sig.Verify(digest[:], kp.PrivateKey().PubKey()))

	// The hex identity matches the signing key.
	assert.Equal(t, types.NewPublicKey(kp.PrivateKey().PubKey()), kp.PublicKey())
	assert.Len(t, kp.PublicKey().XOnly(), 64)
}
