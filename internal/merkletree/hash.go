package merkletree

import "github.com/signetlabs/certified-assets/internal/hashing"

// Domain-separated hash functions for the four structural node kinds of a
// labeled hash tree, per the platform's Response Verification v2 spec:
// hash(Empty) = H("ic-hashtree-empty")
// hash(Fork(l,r)) = H("ic-hashtree-fork" ∥ hash(l) ∥ hash(r))
// hash(Labeled(label,sub)) = H("ic-hashtree-labeled" ∥ label ∥ hash(sub))
// hash(Leaf(v)) = H("ic-hashtree-leaf" ∥ v)
// A Pruned node carries its subtree's hash directly, with no further
// domain separation.

func hashEmpty() []byte {
	return hashing.Sum256([]byte("ic-hashtree-empty"))
}

func hashFork(left, right []byte) []byte {
	buf := make([]byte, 0, len("ic-hashtree-fork")+len(left)+len(right))
	buf = append(buf, "ic-hashtree-fork"...)
	buf = append(buf, left...)
	buf = append(buf, right...)
	return hashing.Sum256(buf)
}

func hashLabeled(label, sub []byte) []byte {
	buf := make([]byte, 0, len("ic-hashtree-labeled")+len(label)+len(sub))
	buf = append(buf, "ic-hashtree-labeled"...)
	buf = append(buf, label...)
	buf = append(buf, sub...)
	return hashing.Sum256(buf)
}

func hashLeaf(value []byte) []byte {
	buf := make([]byte, 0, len("ic-hashtree-leaf")+len(value))
	buf = append(buf, "ic-hashtree-leaf"...)
	buf = append(buf, value...)
	return hashing.Sum256(buf)
}
