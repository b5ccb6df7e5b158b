package hashing

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyHashMatchesSha256OfEmptyString(t *testing.T) {
	want := sha256.Sum256(nil)
	require.Equal(t, want[:], EmptyHash())
}

func TestRIHIsOrderIndependent(t *testing.T) {
	a := map[string]Value{
		"content-type": Text("text/plain"),
		":ic-cert-status": Nat(200),
	}
	b := map[string]Value{
		":ic-cert-status": Nat(200),
		"content-type": Text("text/plain"),
	}
	assert.Equal(t, RIH(a), RIH(b))
}

func TestRIHHashesValuesByEncodedBytes(t *testing.T) {
	textHash := RIH(map[string]Value{"k": Text("1")})
	blobHash := RIH(map[string]Value{"k": Blob([]byte("1"))})
	assert.Equal(t, textHash, blobHash, "text and blob of identical bytes hash the same")

	natHash := RIH(map[string]Value{"k": Nat(1)})
	assert.NotEqual(t, textHash, natHash, "nat LEB128 encoding of 1 differs from the text byte '1'")
}

func TestRIHSingleEntryIsDeterministic(t *testing.T) {
	entries := map[string]Value{":ic-cert-method": Text("GET")}
	h1 := RIH(entries)
	h2 := RIH(entries)
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 32)
}
