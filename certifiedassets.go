// Package certifiedassets is a Go library implementing the Internet
// Computer's Response Verification v2 protocol (and a legacy v1 fallback)
// on the server side: it maintains a labeled Merkle tree whose leaves
// encode (path, request, response) bindings, exposes that tree's root hash
// as the host's single certified value, and on each incoming request
// produces the witness, expression, and header values the client needs to
// independently verify the response.
//
// The type in this package is the Go analogue of src/signet/evg/server.go's
// LogState: it owns the stable store and orchestrates the internal
// packages behind one method per verb. It is not goroutine-safe (§5); the
// caller serializes access, the way the demo command's chi server does
// behind a sync.Mutex.
package certifiedassets

import (
	"github.com/signetlabs/certified-assets/internal/binder"
	"github.com/signetlabs/certified-assets/internal/certify"
	"github.com/signetlabs/certified-assets/internal/endpoint"
	"github.com/signetlabs/certified-assets/internal/metadata"
)

// Host is the platform surface this library calls out to: publishing a new
// certified-data root after every mutation, and — query context only —
// retrieving the host-signed certificate over the last published root.
type Host interface {
	SetCertifiedData(root [32]byte)
	GetCertificate() ([]byte, bool)
}

// NameValue is an ordered (name, value) pair: an HTTP header or query
// parameter.
type NameValue = endpoint.NameValue

// Request is the subset of an incoming HTTP request the binder needs:
// url, method, headers, query params, and the client-declared certificate
// protocol version (2 selects the v2 response-verification path).
type Request = binder.Request

// Response is the subset of an outgoing HTTP response the binder needs.
type Response = binder.Response

// Header is one HTTP header name/value pair, as returned by GetCertificate.
type Header = binder.Header

// Tree is the result of GetCertifiedTree: a host certificate and a
// CBOR-encoded witness.
type Tree = binder.Tree

// StableStore is the subset of CertifiedAssets state that must live in the
// host's upgrade-persistent memory: the Merkle tree and the metadata index.
type StableStore = certify.Store

// InitStableStore returns a fresh, empty StableStore for a new canister or
// process to seed its upgrade-stable memory with.
func InitStableStore() *StableStore {
	return certify.NewStore()
}

// CertifiedAssets is the library's façade: every public operation in §4.5
// and §4.6 hangs off this type.
type CertifiedAssets struct {
	store *StableStore
	host  Host
}

// New wraps an existing (possibly restored-from-upgrade) StableStore and a
// Host binding into a CertifiedAssets instance.
func New(store *StableStore, host Host) *CertifiedAssets {
	return &CertifiedAssets{store: store, host: host}
}

// NewEndpoint starts building an EndpointRecord for Certify/Remove, the way
// §4.1's Endpoint(url, body) builder does.
func NewEndpoint(rawURL string, body []byte) *endpoint.Endpoint {
	return endpoint.New(rawURL, body)
}

// Certify inserts rec's v1 asset leaf and v2 expression leaf, publishes the
// new root to the host, and records its Metadata for later lookup.
func (c *CertifiedAssets) Certify(rec endpoint.Record) (*metadata.Metadata, error) {
	return certify.Certify(c.store, c.host, rec)
}

// Remove deletes rec's v1 asset leaf, and — if present — the matching v2
// expression leaf and Metadata entry.
func (c *CertifiedAssets) Remove(rec endpoint.Record) {
	certify.Remove(c.store, c.host, rec)
}

// RemoveAll deletes every certified leaf and Metadata entry under url.
func (c *CertifiedAssets) RemoveAll(url string) {
	certify.RemoveAll(c.store, c.host, url)
}

// Clear deletes every certified leaf and Metadata entry.
func (c *CertifiedAssets) Clear() {
	certify.Clear(c.store, c.host)
}

// Endpoints enumerates every currently certified EndpointRecord.
func (c *CertifiedAssets) Endpoints() []endpoint.Record {
	return certify.Endpoints(c.store)
}

// GetCertificate implements §4.6's get_certificate: the v1 path when
// req.CertificateVersion != 2, the v2 path otherwise.
func (c *CertifiedAssets) GetCertificate(req Request, resp Response, responseHashOverride []byte) ([]Header, error) {
	return binder.GetCertificate(c.store, c.host, req, resp, responseHashOverride)
}

// GetCertifiedResponse appends the headers GetCertificate produces to
// resp.Headers.
func (c *CertifiedAssets) GetCertifiedResponse(req Request, resp Response, responseHashOverride []byte) (Response, error) {
	return binder.GetCertifiedResponse(c.store, c.host, req, resp, responseHashOverride)
}

// GetCertifiedTree implements §4.6's get_certified_tree: reveals the
// requested URLs' leaves (or every certified URL when urls is nil).
func (c *CertifiedAssets) GetCertifiedTree(urls []string) (Tree, error) {
	return binder.GetCertifiedTree(c.store, c.host, urls)
}

// RootHash returns the stable store's current tree root, mostly useful for
// tests and diagnostics; production callers observe the root only through
// the host's signed certificate.
func (c *CertifiedAssets) RootHash() []byte {
	return c.store.Tree.RootHash()
}
