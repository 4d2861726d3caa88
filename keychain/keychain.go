package keychain

import (
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"golang.org/x/crypto/hkdf"

	"github.com/windvane/windvane/types"
)

// Seed size bounds, in bytes.
const (
	MinSeedSize = 16
	MaxSeedSize = 64
)

// Child indexes reserved by the keychain. Index 0 derives the payout-control
// keypair; index 1 derives the parent of all order keypairs, which are its
// children keyed by order id.
const (
	payoutControlChild = 0
	orderParentChild   = 1
)

// Keychain deterministically derives the client's secp256k1 keypairs from a
// root seed. Derivation is pure: the same seed always yields the same keys.
// That is what makes recovering orders by scanning ids possible, and it is
// why order ids must never be reused.
type Keychain struct {
	root        []byte
	orderParent []byte
}

// New builds a keychain from a root seed of MinSeedSize to MaxSeedSize
// bytes. The seed is copied; the caller may zero its slice.
func New(seed []byte) (*Keychain, error) {
	if len(seed) < MinSeedSize || len(seed) > MaxSeedSize {
		return nil, fmt.Errorf("seed must be %d to %d bytes, got %d", MinSeedSize, MaxSeedSize, len(seed))
	}
	root := make([]byte, len(seed))
	copy(root, seed)
	return &Keychain{
		root:        root,
		orderParent: childSecret(root, orderParentChild),
	}, nil
}

// KeyPair is a derived secp256k1 keypair.
type KeyPair struct {
	priv *btcec.PrivateKey
	pub  types.PublicKey
}

// PrivateKey returns the signing key. It never leaves the process.
func (kp *KeyPair) PrivateKey() *btcec.PrivateKey {
	return kp.priv
}

// PublicKey returns the compressed-hex identity of the keypair.
func (kp *KeyPair) PublicKey() types.PublicKey {
	return kp.pub
}

// PayoutControlKeyPair returns the keypair identifying this client's payout
// control.
func (kc *Keychain) PayoutControlKeyPair() *KeyPair {
	return keyPairFromSecret(childSecret(kc.root, payoutControlChild))
}

// OrderKeyPair returns the keypair owning the order with the given id.
func (kc *Keychain) OrderKeyPair(id types.OrderID) *KeyPair {
	return keyPairFromSecret(childSecret(kc.orderParent, uint64(id)))
}

// OrderOwner is a shorthand for the public identity of an order id.
func (kc *Keychain) OrderOwner(id types.OrderID) types.PublicKey {
	return kc.OrderKeyPair(id).PublicKey()
}

// childSecret expands parent into the 64-byte child secret at index.
func childSecret(parent []byte, index uint64) []byte {
	var info [8]byte
	binary.BigEndian.PutUint64(info[:], index)

	out := make([]byte, 64)
	if _, err := io.ReadFull(hkdf.New(sha512.New, parent, nil, info[:]), out); err != nil {
		panic(err) // the stream cannot run out at 64 bytes
	}
	return out
}

// keyPairFromSecret draws 32-byte candidates from the secret's hkdf stream
// until one is a valid field element, then uses it as the private scalar.
// The retry keeps derivation total without biasing the scalar.
func keyPairFromSecret(secret []byte) *KeyPair {
	r := hkdf.New(sha512.New, secret, nil, []byte("secp256k1-keypair"))

	var candidate [32]byte
	d := new(big.Int)
	for {
		if _, err := io.ReadFull(r, candidate[:]); err != nil {
			panic(err) // vanishingly unlikely: every candidate rejected
		}
		d.SetBytes(candidate[:])
		if 0 < d.Sign() && d.Cmp(btcec.S256().N) < 0 {
			break
		}
	}

	priv, pub := btcec.PrivKeyFromBytes(btcec.S256(), candidate[:])
	return &KeyPair{priv: priv, pub: types.NewPublicKey(pub)}
}
