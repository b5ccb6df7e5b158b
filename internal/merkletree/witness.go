package merkletree

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// witnessKind tags the five node shapes of the platform's hash-tree witness
// grammar.
type witnessKind int

const (
	witnessEmpty witnessKind = iota
	witnessFork
	witnessLabeled
	witnessLeaf
	witnessPruned
)

// Witness is a pruned view of the tree: enough structure to recompute
// RootHash, plus the full value at every revealed leaf.
type Witness struct {
	kind  witnessKind
	left  *Witness
	right *Witness
	label []byte
	sub   *Witness
	value []byte
	hash  []byte
}

// Reveal produces a witness that contains the leaf value at every given
// path (when present) and whose root hash equals the tree's current
// RootHash. Paths sharing a common prefix share structure in the witness.
func (t *Tree) Reveal(paths ...Path) *Witness {
	needed := map[*node]bool{t.root: true}
	for _, p := range paths {
		markPath(t.root, p, needed)
	}
	return revealNode(t.root, needed)
}

func markPath(root *node, path Path, needed map[*node]bool) {
	n := root
	for _, label := range path {
		child, ok := n.children[string(label)]
		if !ok {
			return
		}
		needed[child] = true
		n = child
	}
}

func revealNode(n *node, needed map[*node]bool) *Witness {
	if n.hasLeaf {
		if needed[n] {
			return &Witness{kind: witnessLeaf, value: n.value}
		}
		return &Witness{kind: witnessPruned, hash: hashLeaf(n.value)}
	}
	return revealRange(sortedLabels(n.children), n.children, needed)
}

func revealRange(labels []string, children map[string]*node, needed map[*node]bool) *Witness {
	switch len(labels) {
	case 0:
		return &Witness{kind: witnessEmpty}
	case 1:
		label := labels[0]
		child := children[label]
		if !needed[child] {
			return &Witness{kind: witnessPruned, hash: hashLabeled([]byte(label), hashSubtree(child))}
		}
		return &Witness{kind: witnessLabeled, label: []byte(label), sub: revealNode(child, needed)}
	default:
		mid := len(labels) / 2
		leftLabels, rightLabels := labels[:mid], labels[mid:]
		return &Witness{
			kind:  witnessFork,
			left:  revealOrPrune(leftLabels, children, needed),
			right: revealOrPrune(rightLabels, children, needed),
		}
	}
}

func revealOrPrune(labels []string, children map[string]*node, needed map[*node]bool) *Witness {
	if anyNeeded(labels, children, needed) {
		return revealRange(labels, children, needed)
	}
	return &Witness{kind: witnessPruned, hash: hashChildrenRange(labels, children)}
}

func anyNeeded(labels []string, children map[string]*node, needed map[*node]bool) bool {
	for _, l := range labels {
		if needed[children[l]] {
			return true
		}
	}
	return false
}

// EncodeWitness CBOR-encodes a witness per the platform's hash-tree grammar:
// Empty=[0], Fork=[1,l,r], Labeled=[2,label,sub], Leaf=[3,value],
// Pruned=[4,hash].
func EncodeWitness(w *Witness) ([]byte, error) {
	v, err := witnessToCBORValue(w)
	if err != nil {
		return nil, err
	}
	b, err := cbor.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("merkletree: encode witness: %w", err)
	}
	return b, nil
}

func witnessToCBORValue(w *Witness) ([]any, error) {
	switch w.kind {
	case witnessEmpty:
		return []any{0}, nil
	case witnessFork:
		l, err := witnessToCBORValue(w.left)
		if err != nil {
			return nil, err
		}
		r, err := witnessToCBORValue(w.right)
		if err != nil {
			return nil, err
		}
		return []any{1, l, r}, nil
	case witnessLabeled:
		s, err := witnessToCBORValue(w.sub)
		if err != nil {
			return nil, err
		}
		return []any{2, w.label, s}, nil
	case witnessLeaf:
		return []any{3, w.value}, nil
	case witnessPruned:
		return []any{4, w.hash}, nil
	default:
		return nil, fmt.Errorf("merkletree: unknown witness kind %d", w.kind)
	}
}
