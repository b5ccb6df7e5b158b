package merkletree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmptyTreeRootHash(t *testing.T) {
	tr := New()
	require.Equal(t, hashEmpty(), tr.RootHash())
}

func TestPutChangesRoot(t *testing.T) {
	tr := New()
	before := tr.RootHash()
	tr.Put(Path{[]byte("http_assets"), []byte("/hello")}, []byte("body-hash"))
	after := tr.RootHash()
	assert.NotEqual(t, before, after)
}

func TestDeletePrunesBackToEmpty(t *testing.T) {
	tr := New()
	tr.Put(Path{[]byte("http_assets"), []byte("/hello")}, []byte("body-hash"))
	tr.Delete(Path{[]byte("http_assets"), []byte("/hello")})
	require.Equal(t, hashEmpty(), tr.RootHash())
}

func TestOverwriteIsIdempotentForRootHash(t *testing.T) {
	tr1 := New()
	tr1.Put(Path{[]byte("a")}, []byte("1"))

	tr2 := New()
	tr2.Put(Path{[]byte("a")}, []byte("1"))
	tr2.Put(Path{[]byte("a")}, []byte("1"))

	require.Equal(t, tr1.RootHash(), tr2.RootHash())
}

func TestRevealRoundTripsToRootHash(t *testing.T) {
	tr := New()
	tr.Put(Path{[]byte("http_assets"), []byte("/a")}, []byte("va"))
	tr.Put(Path{[]byte("http_assets"), []byte("/b")}, []byte("vb"))
	tr.Put(Path{[]byte("http_expr"), []byte(""), []byte("<$>")}, []byte{})

	w := tr.Reveal(Path{[]byte("http_assets"), []byte("/a")})
	root := recomputeWitnessRoot(t, w)
	require.Equal(t, tr.RootHash(), root)
}

func TestRevealMultiplePathsShareStructure(t *testing.T) {
	tr := New()
	tr.Put(Path{[]byte("http_assets"), []byte("/a")}, []byte("va"))
	tr.Put(Path{[]byte("http_assets"), []byte("/b")}, []byte("vb"))
	tr.Put(Path{[]byte("http_assets"), []byte("/c")}, []byte("vc"))

	w := tr.Reveal(
		Path{[]byte("http_assets"), []byte("/a")},
		Path{[]byte("http_assets"), []byte("/c")},
	)
	require.Equal(t, tr.RootHash(), recomputeWitnessRoot(t, w))
}

func TestEncodeWitnessProducesDecodableCBOR(t *testing.T) {
	tr := New()
	tr.Put(Path{[]byte("http_assets"), []byte("/a")}, []byte("va"))
	w := tr.Reveal(Path{[]byte("http_assets"), []byte("/a")})

	enc, err := EncodeWitness(w)
	require.NoError(t, err)
	require.NotEmpty(t, enc)
}

// recomputeWitnessRoot walks a witness and recomputes the root hash the same
// way a client would: Leaf/Pruned nodes carry or yield a hash directly,
// Labeled/Fork combine child hashes with the same domain-separated
// functions used to build the tree.
func recomputeWitnessRoot(t *testing.T, w *Witness) []byte {
	t.Helper()
	return witnessHash(w)
}

func witnessHash(w *Witness) []byte {
	switch w.kind {
	case witnessEmpty:
		return hashEmpty()
	case witnessFork:
		return hashFork(witnessHash(w.left), witnessHash(w.right))
	case witnessLabeled:
		return hashLabeled(w.label, witnessHash(w.sub))
	case witnessLeaf:
		return hashLeaf(w.value)
	case witnessPruned:
		return w.hash
	}
	return nil
}
