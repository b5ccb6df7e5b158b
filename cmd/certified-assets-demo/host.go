package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
)

// fakeHost stands in for the platform's real host binding: it signs the
// certified-data root with an ed25519 key the way cmd/evg-sink/main.go
// signs receipts, and — unlike a real replica — has a certificate ready as
// soon as SetCertifiedData has been called, since there is no consensus
// round to wait out in a demo process. Before the first root is set it has
// no certificate.
// It is documented here as a stand-in, not a real replica certificate.
type fakeHost struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
	root [32]byte
	has  bool
}

func newFakeHost() (*fakeHost, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &fakeHost{priv: priv, pub: pub}, nil
}

type signedCertificate struct {
	Root      [32]byte `json:"root"`
	Signature []byte   `json:"signature"`
}

// SetCertifiedData implements certifiedassets.Host.
func (h *fakeHost) SetCertifiedData(root [32]byte) {
	h.root = root
	h.has = true
}

// GetCertificate implements certifiedassets.Host. It signs the current root
// with ed25519 and returns the JSON-encoded (root, signature) pair as the
// opaque certificate blob.
func (h *fakeHost) GetCertificate() ([]byte, bool) {
	if !h.has {
		return nil, false
	}
	sig := ed25519.Sign(h.priv, h.root[:])
	cert, err := json.Marshal(signedCertificate{Root: h.root, Signature: sig})
	if err != nil {
		return nil, false
	}
	return cert, true
}
