package certify

import (
	"strings"

	"github.com/signetlabs/certified-assets/internal/endpoint"
	"github.com/signetlabs/certified-assets/internal/hashing"
)

// requestHash derives §4.3's request_hash. It is the empty blob whenever
// either certification flag is set.
func requestHash(rec endpoint.Record) []byte {
	if rec.NoCertification || rec.NoRequestCertification {
		return []byte{}
	}
	entries := map[string]hashing.Value{}
	for _, h := range rec.RequestHeaders {
		if h.Value == "" {
			continue
		}
		entries[strings.ToLower(h.Name)] = hashing.Text(h.Value)
	}
	entries[":ic-cert-method"] = hashing.Text(rec.Method)
	queryHash := hashing.Sum256([]byte(encodeQuery(rec.QueryParams)))
	entries[":ic-cert-query"] = hashing.Blob(queryHash)

	requestHeaderHash := hashing.RIH(entries)
	requestBodyHash := hashing.EmptyHash()
	return hashing.Sum256(append(append([]byte{}, requestHeaderHash...), requestBodyHash...))
}

// responseHash derives §4.3's response_hash. It is the empty blob whenever
// no_certification is set.
func responseHash(rec endpoint.Record, expressionText string) []byte {
	if rec.NoCertification {
		return []byte{}
	}
	entries := map[string]hashing.Value{}
	for _, h := range rec.ResponseHeaders {
		if h.Value == "" {
			continue
		}
		lname := strings.ToLower(h.Name)
		if lname == "ic-certificate" {
			continue
		}
		entries[lname] = hashing.Text(h.Value)
	}
	entries["ic-certificateexpression"] = hashing.Text(expressionText)
	entries[":ic-cert-status"] = hashing.Nat(uint64(rec.Status))

	responseHeaderHash := hashing.RIH(entries)
	return hashing.Sum256(append(append([]byte{}, responseHeaderHash...), rec.BodyHash...))
}

// encodeQuery renders query params as "name1=value1&name2=value2&…" in
// caller-supplied order, the exact bytes hashed into ":ic-cert-query".
func encodeQuery(params []endpoint.NameValue) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name + "=" + p.Value
	}
	return strings.Join(parts, "&")
}
