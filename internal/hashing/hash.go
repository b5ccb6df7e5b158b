// Package hashing wraps SHA-256 and the platform's representation-independent
// map hash (RIH). Every other package in this module reaches byte-level
// hashing through here rather than calling crypto/sha256 directly, so the
// "canonicalize, then hash" shape stays in one place.
package hashing

import (
	"crypto/sha256"
	"sort"
)

// Kind tags the dynamic type carried by a Value.
type Kind uint8

const (
	KindText Kind = iota
	KindBlob
	KindNat
)

// Value is one entry's payload in a representation-independent hash input
// map: a UTF-8 string, an opaque byte string, or a natural number.
type Value struct {
	kind Kind
	text string
	blob []byte
	nat  uint64
}

func Text(s string) Value { return Value{kind: KindText, text: s} }
func Blob(b []byte) Value { return Value{kind: KindBlob, blob: b} }
func Nat(n uint64) Value  { return Value{kind: KindNat, nat: n} }

// Sum256 is a thin rename of sha256.Sum256 returning a slice (rather than the
// stdlib's [32]byte array) so callers can pass it straight into further
// concatenation without a manual slice conversion at every call site.
func Sum256(b []byte) []byte {
	h := sha256.Sum256(b)
	clone := make([]byte, 32)
	copy(clone, h[:])
	return clone
}

// EmptyHash is SHA-256 of the empty byte string: the default body hash and
// the request_body_hash of §4.3. (The flag-disabled request and response
// hashes of §4.3 are the empty blob, not this value.)
func EmptyHash() []byte {
	return Sum256(nil)
}

// encodeValue produces the bytes hashed for a Value per the platform's RIH
// encoding: Text and Blob hash their raw bytes; Nat hashes its canonical
// unsigned LEB128 encoding (the representation the platform spec mandates
// for certified naturals).
func encodeValue(v Value) []byte {
	switch v.kind {
	case KindText:
		return []byte(v.text)
	case KindBlob:
		return v.blob
	case KindNat:
		return leb128(v.nat)
	default:
		return nil
	}
}

func leb128(n uint64) []byte {
	if n == 0 {
		return []byte{0}
	}
	var out []byte
	for n > 0 {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			b |= 0x80
		}
		out = append(out, b)
	}
	return out
}

type entryHash struct {
	keyHash []byte
	combined []byte
}

// RIH computes the representation-independent hash of a map of named values:
// each entry is hashed as SHA-256(key) ∥ SHA-256(value-encoded), entries are
// sorted by key-hash, then the sorted, concatenated hashes are SHA-256'd.
// Entries with a given textual key must appear at most once; RIH does not
// deduplicate.
func RIH(entries map[string]Value) []byte {
	hashes := make([]entryHash, 0, len(entries))
	for k, v := range entries {
		kh := Sum256([]byte(k))
		vh := Sum256(encodeValue(v))
		hashes = append(hashes, entryHash{keyHash: kh, combined: append(append([]byte{}, kh...), vh...)})
	}
	sort.Slice(hashes, func(i, j int) bool {
		return lessBytes(hashes[i].keyHash, hashes[j].keyHash)
	})
	var buf []byte
	for _, h := range hashes {
		buf = append(buf, h.combined...)
	}
	return Sum256(buf)
}

func lessBytes(a, b []byte) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
