package identity

import (
	"bytes"
	"testing"
)

func TestKeyRoundTrip(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate key : %v", err)
	}

	restored, err := KeyFromBytes(key.Bytes())
	if err != nil {
		t.Fatalf("Failed to restore key : %v", err)
	}

	if !restored.PublicKey().Equal(key.PublicKey()) {
		t.Fatalf("Restored key has different public key : %s != %s",
			restored.PublicKey().String(), key.PublicKey().String())
	}
}

func TestPublicKeyEncoding(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate key : %v", err)
	}
	pub := key.PublicKey()

	parsed, err := PublicKeyFromString(pub.String())
	if err != nil {
		t.Fatalf("Failed to parse public key : %v", err)
	}
	if !parsed.Equal(pub) {
		t.Fatalf("Parsed key does not match : %s != %s", parsed.String(), pub.String())
	}

	if _, err := PublicKeyFromBytes(pub.Bytes()[:16]); err != ErrInvalidKeyLength {
		t.Fatalf("Expected ErrInvalidKeyLength, got %v", err)
	}
}

func TestProofVerify(t *testing.T) {
	key, err := GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate key : %v", err)
	}

	digest := bytes.Repeat([]byte{0xab}, 32)
	proof := key.Sign(digest)

	if err := proof.Verify(digest); err != nil {
		t.Fatalf("Valid proof failed to verify : %v", err)
	}

	other := bytes.Repeat([]byte{0xcd}, 32)
	if err := proof.Verify(other); err != ErrInvalidProof {
		t.Fatalf("Expected ErrInvalidProof for wrong digest, got %v", err)
	}

	proof.Signature = proof.Signature[:10]
	if err := proof.Verify(digest); err != ErrInvalidProof {
		t.Fatalf("Expected ErrInvalidProof for truncated signature, got %v", err)
	}
}
