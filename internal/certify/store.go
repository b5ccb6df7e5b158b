// Package certify is the certification engine: it orchestrates the
// endpoint builder, expression compiler, hashing, Merkle tree, and
// metadata index for certify/remove/remove_all/clear, the way
// src/signet/evg/server.go's LogState orchestrates leaf append, root
// recompute, and certified-data publication behind one method per verb.
package certify

import (
	"github.com/signetlabs/certified-assets/internal/merkletree"
	"github.com/signetlabs/certified-assets/internal/metadata"
)

// Host is the subset of the platform's host interface the engine needs: the
// ability to install a new 32-byte certified-data root. Defined here
// (rather than imported from the façade package) to avoid an import cycle;
// any type satisfying this structurally — including the façade's own Host
// interface — works.
type Host interface {
	SetCertifiedData(root [32]byte)
}

// Store is the stable store: the Merkle tree and metadata index that must
// live in the host's upgrade-persistent memory. It is the Go analogue of the
// spec's StableStore.
type Store struct {
	Tree  *merkletree.Tree
	Index *metadata.Index
}

// NewStore returns an empty stable store.
func NewStore() *Store {
	return &Store{Tree: merkletree.New(), Index: metadata.NewIndex()}
}

func pushRoot(store *Store, host Host) {
	var root [32]byte
	copy(root[:], store.Tree.RootHash())
	host.SetCertifiedData(root)
}
