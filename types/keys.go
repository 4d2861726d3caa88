package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcutil/bech32"
)

// PublicKey is a compressed secp256k1 public key in lowercase hex. It is the
// federation-side identity of orders and of the client's payout control.
type PublicKey string

// NewPublicKey encodes pub in compressed form.
func NewPublicKey(pub *btcec.PublicKey) PublicKey {
	return PublicKey(hex.EncodeToString(pub.SerializeCompressed()))
}

// ParsePublicKey checks that s encodes a compressed secp256k1 point.
func ParsePublicKey(s string) (PublicKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	b, err := hex.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("invalid public key %q: %w", s, err)
	}
	if _, err := btcec.ParsePubKey(b, btcec.S256()); err != nil {
		return "", fmt.Errorf("invalid public key %q: %w", s, err)
	}
	return PublicKey(s), nil
}

// XOnly strips the parity byte, producing the 64-character x-only identity
// used on the attestation network.
func (pk PublicKey) XOnly() string {
	if len(pk) != 66 {
		return string(pk)
	}
	return string(pk[2:])
}

// npubHRP is the bech32 human-readable part of x-only public keys on the
// attestation network.
const npubHRP = "npub"

// EncodeNpub renders an x-only hex identity in bech32 npub form.
func EncodeNpub(xonly string) (string, error) {
	b, err := hex.DecodeString(xonly)
	if err != nil {
		return "", fmt.Errorf("invalid x-only key %q: %w", xonly, err)
	}
	if len(b) != 32 {
		return "", fmt.Errorf("invalid x-only key %q: expected 32 bytes, got %d", xonly, len(b))
	}
	conv, err := bech32.ConvertBits(b, 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("convert key bits: %w", err)
	}
	return bech32.Encode(npubHRP, conv)
}

// DecodeNpub is the inverse of EncodeNpub.
func DecodeNpub(npub string) (string, error) {
	hrp, data, err := bech32.Decode(npub)
	if err != nil {
		return "", fmt.Errorf("invalid npub %q: %w", npub, err)
	}
	if hrp != npubHRP {
		return "", fmt.Errorf("invalid npub %q: unexpected prefix %q", npub, hrp)
	}
	b, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return "", fmt.Errorf("convert key bits: %w", err)
	}
	if len(b) != 32 {
		return "", fmt.Errorf("invalid npub %q: %d-byte payload", npub, len(b))
	}
	return hex.EncodeToString(b), nil
}

// ParseAttestationIdentity accepts an attestation-network identity in either
// x-only hex or bech32 npub form and returns the hex form.
func ParseAttestationIdentity(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, npubHRP+"1") {
		return DecodeNpub(s)
	}
	s = strings.ToLower(s)
	if b, err := hex.DecodeString(s); err != nil || len(b) != 32 {
		return "", fmt.Errorf("invalid attestation identity %q", s)
	}
	return s, nil
}
