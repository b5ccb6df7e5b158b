// Package binder implements the response binder (§4.6/§4.7): matching an
// incoming request/response pair against the metadata index and producing
// the ic-certificate / ic-certificateexpression header values.
package binder

import (
	"github.com/signetlabs/certified-assets/internal/endpoint"
	"github.com/signetlabs/certified-assets/internal/hashing"
	"github.com/signetlabs/certified-assets/internal/metadata"
)

// Request is the subset of an incoming HTTP request the binder needs: the
// raw URL exactly as received (path plus an optional query string, not
// percent-decoded), the method, headers, and the client-declared certificate
// protocol version. The binder itself parses RawURL per §4.6/§4.7 — it does
// not accept a caller-pre-split path or query map — so that the v1 tree key
// (the undecoded url.path.original) and the v2 lookup key (the decoded path
// certify stores) are derived the same way certify derives them, and the
// asymmetry between the two stays an enforced property of this code rather
// than a convention callers must honor on their own.
type Request struct {
	RawURL             string
	Method             string
	Headers            []endpoint.NameValue
	CertificateVersion int
}

// Response is the subset of an outgoing HTTP response the binder needs.
type Response struct {
	Status  uint16
	Headers []endpoint.NameValue
	Body    []byte
}

// Lookup reconstructs a tentative EndpointRecord from (req, resp,
// responseHashOverride) and finds the best-matching Metadata per §4.7,
// trying the three unique_http_hash tiers in increasing certification
// strength and short-circuiting at the first non-empty candidate level.
func Lookup(index *metadata.Index, req Request, resp Response, responseHashOverride []byte) (*metadata.Metadata, bool) {
	path, err := endpoint.PathFromURL(req.RawURL)
	if err != nil {
		return nil, false
	}
	queryParams := endpoint.ParseQuery(req.RawURL)

	bodyHash := responseHashOverride
	if bodyHash == nil {
		bodyHash = hashing.Sum256(resp.Body)
	}

	tentative := endpoint.Record{
		URL:             path,
		BodyHash:        bodyHash,
		Method:          req.Method,
		QueryParams:     queryParams,
		RequestHeaders:  req.Headers,
		Status:          resp.Status,
		ResponseHeaders: resp.Headers,
	}

	lists := index.Lists(path)
	if lists == nil {
		return nil, false
	}

	tiers := metadata.HTTPHashTiers(bodyHash, req.Method, resp.Status)
	for _, tier := range tiers {
		candidates := lists[string(tier)]
		if len(candidates) == 0 {
			continue
		}
		for _, m := range candidates {
			if matches(m, tentative) {
				return m, true
			}
		}
		return nil, false
	}
	return nil, false
}

// matches reports whether stored's request headers, response headers, and
// query params are each a subset (by (name,value) equality) of incoming's
// corresponding fields.
func matches(stored *metadata.Metadata, incoming endpoint.Record) bool {
	return isSubset(stored.Endpoint.RequestHeaders, incoming.RequestHeaders) &&
		isSubset(stored.Endpoint.ResponseHeaders, incoming.ResponseHeaders) &&
		isSubset(stored.Endpoint.QueryParams, incoming.QueryParams)
}

func isSubset(want, have []endpoint.NameValue) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if w.Name == h.Name && w.Value == h.Value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
