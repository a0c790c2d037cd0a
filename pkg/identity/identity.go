package identity

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ed25519"
)

const (
	// PublicKeySize is the length in bytes of a marketplace identity.
	PublicKeySize = 32

	// SignatureSize is the length in bytes of an authorization signature.
	SignatureSize = ed25519.SignatureSize
)

var (
	// ErrInvalidKeyLength occurs when key data is not the proper length.
	ErrInvalidKeyLength = errors.New("Invalid key length")

	// ErrInvalidProof occurs when an authorization proof does not verify.
	ErrInvalidProof = errors.New("Invalid authorization proof")
)

// PublicKey is a 32 byte identity used for vendors, buyers and the
// marketplace authority.
type PublicKey [PublicKeySize]byte

// PublicKeyFromBytes returns a PublicKey from raw bytes.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	var result PublicKey
	if len(b) != PublicKeySize {
		return result, ErrInvalidKeyLength
	}
	copy(result[:], b)
	return result, nil
}

// PublicKeyFromString returns a PublicKey from its hex representation.
func PublicKeyFromString(s string) (PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return PublicKey{}, errors.Wrap(err, "decode hex")
	}
	return PublicKeyFromBytes(b)
}

func (k PublicKey) Bytes() []byte {
	return k[:]
}

func (k PublicKey) String() string {
	return hex.EncodeToString(k[:])
}

func (k PublicKey) Equal(other PublicKey) bool {
	return bytes.Equal(k[:], other[:])
}

// MarshalText implements encoding.TextMarshaler so keys serialize as hex.
func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *PublicKey) UnmarshalText(text []byte) error {
	result, err := PublicKeyFromString(string(text))
	if err != nil {
		return err
	}
	*k = result
	return nil
}

// IsZero returns true when the key has not been set.
func (k PublicKey) IsZero() bool {
	var zero PublicKey
	return bytes.Equal(k[:], zero[:])
}

// Key is an ed25519 signing key controlling a marketplace identity.
type Key struct {
	priv ed25519.PrivateKey
	pub  PublicKey
}

// GenerateKey creates a new random signing key.
func GenerateKey() (*Key, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "generate ed25519 key")
	}

	result := Key{priv: priv}
	copy(result.pub[:], pub)
	return &result, nil
}

// KeyFromBytes returns a signing key from a 32 byte seed.
func KeyFromBytes(seed []byte) (*Key, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, ErrInvalidKeyLength
	}

	priv := ed25519.NewKeyFromSeed(seed)

	result := Key{priv: priv}
	copy(result.pub[:], priv.Public().(ed25519.PublicKey))
	return &result, nil
}

// Bytes returns the 32 byte seed for the key.
func (k *Key) Bytes() []byte {
	return k.priv.Seed()
}

func (k *Key) PublicKey() PublicKey {
	return k.pub
}

// Sign creates an authorization proof over a digest.
func (k *Key) Sign(digest []byte) Proof {
	return Proof{
		Signer:    k.pub,
		Signature: ed25519.Sign(k.priv, digest),
	}
}

// Proof is evidence that the signer authorized the operation described by a
// digest. Every fund or asset movement requires one from the paying party.
type Proof struct {
	Signer    PublicKey `json:"signer"`
	Signature []byte    `json:"signature"`
}

// Verify checks the proof against a digest.
func (p Proof) Verify(digest []byte) error {
	if len(p.Signature) != SignatureSize {
		return ErrInvalidProof
	}
	if !ed25519.Verify(ed25519.PublicKey(p.Signer[:]), digest, p.Signature) {
		return ErrInvalidProof
	}
	return nil
}
