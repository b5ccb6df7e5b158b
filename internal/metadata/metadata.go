// Package metadata implements the two-level MetadataIndex
// (url -> unique_http_hash -> ordered list<Metadata>) and the unique HTTP
// hash that distinguishes the three certification modes under one URL. It
// generalizes src/signet/ppa/cache.go's single-level, mutex-guarded
// string-keyed cache into the spec's two-level map; per the library's
// single-writer concurrency model (§5 of SPEC_FULL.md) the mutex is
// deliberately not reproduced here — see DESIGN.md.
package metadata

import (
	"github.com/signetlabs/certified-assets/internal/endpoint"
	"github.com/signetlabs/certified-assets/internal/hashing"
)

// Metadata is what is stored per certified exchange.
type Metadata struct {
	Endpoint        endpoint.Record
	ExpressionText  string
	EncodedExprPath []byte
	FullExprPath    [][]byte
}

// UniqueHTTPHash computes the MetadataIndex's inner key (§4.3): a
// representation-independent hash of the body hash, and — depending on
// certification strength — the method and status.
func UniqueHTTPHash(rec endpoint.Record) []byte {
	entries := map[string]hashing.Value{
		":ic-cert-body": hashing.Blob(rec.BodyHash),
	}
	if !rec.NoCertification && !rec.NoRequestCertification {
		entries[":ic-cert-method"] = hashing.Text(rec.Method)
	}
	if !rec.NoCertification {
		entries[":ic-cert-status"] = hashing.Nat(uint64(rec.Status))
	}
	return hashing.RIH(entries)
}

// HTTPHashTiers returns the three inner keys in increasing
// certification-strength order, matching the lookup order of §4.7: body
// only, body+status, body+status+method.
func HTTPHashTiers(bodyHash []byte, method string, status uint16) [3][]byte {
	bodyOnly := hashing.RIH(map[string]hashing.Value{
		":ic-cert-body": hashing.Blob(bodyHash),
	})
	bodyStatus := hashing.RIH(map[string]hashing.Value{
		":ic-cert-body":   hashing.Blob(bodyHash),
		":ic-cert-status": hashing.Nat(uint64(status)),
	})
	bodyStatusMethod := hashing.RIH(map[string]hashing.Value{
		":ic-cert-body":   hashing.Blob(bodyHash),
		":ic-cert-status": hashing.Nat(uint64(status)),
		":ic-cert-method": hashing.Text(method),
	})
	return [3][]byte{bodyOnly, bodyStatus, bodyStatusMethod}
}
