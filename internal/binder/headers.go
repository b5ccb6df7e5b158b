package binder

import (
	"encoding/base64"
	"fmt"

	"github.com/signetlabs/certified-assets/certerr"
	"github.com/signetlabs/certified-assets/internal/certify"
	"github.com/signetlabs/certified-assets/internal/endpoint"
	"github.com/signetlabs/certified-assets/internal/merkletree"
)

const labelHTTPAssets = "http_assets"

// Header is one HTTP response header name/value pair.
type Header = endpoint.NameValue

// GetCertificate implements §4.6's get_certificate: the v1 path for
// CertificateVersion != 2, the v2 path otherwise.
func GetCertificate(store *certify.Store, host certify.Host, req Request, resp Response, responseHashOverride []byte) ([]Header, error) {
	if req.CertificateVersion != 2 {
		return getCertificateV1(store, host, req)
	}
	return getCertificateV2(store, host, req, resp, responseHashOverride)
}

func getCertificateV1(store *certify.Store, host certify.Host, req Request) ([]Header, error) {
	cert, ok := fetchCertificate(host)
	if !ok {
		return nil, certerr.ErrNoRootCertificate
	}
	originalPath := endpoint.OriginalPath(req.RawURL)
	witness := store.Tree.Reveal(merkletree.Path{[]byte(labelHTTPAssets), []byte(originalPath)})
	encoded, err := merkletree.EncodeWitness(witness)
	if err != nil {
		return nil, fmt.Errorf("binder: encode v1 witness: %w", err)
	}
	return []Header{{
		Name:  "ic-certificate",
		Value: fmt.Sprintf("certificate=:%s:, tree=:%s:", b64(cert), b64(encoded)),
	}}, nil
}

func getCertificateV2(store *certify.Store, host certify.Host, req Request, resp Response, responseHashOverride []byte) ([]Header, error) {
	m, ok := Lookup(store.Index, req, resp, responseHashOverride)
	if !ok {
		return nil, certerr.ErrNoMetadata
	}
	cert, ok := fetchCertificate(host)
	if !ok {
		return nil, certerr.ErrNoRootCertificate
	}
	witness := store.Tree.Reveal(merkletree.Path(m.FullExprPath))
	encoded, err := merkletree.EncodeWitness(witness)
	if err != nil {
		return nil, fmt.Errorf("binder: encode v2 witness: %w", err)
	}
	return []Header{
		{
			Name: "ic-certificate",
			Value: fmt.Sprintf("certificate=:%s:, tree=:%s:, version=2, expr_path=:%s:",
				b64(cert), b64(encoded), b64(m.EncodedExprPath)),
		},
		{Name: "ic-certificateexpression", Value: m.ExpressionText},
	}, nil
}

// GetCertifiedResponse appends the headers GetCertificate produces to
// resp.Headers and returns the augmented Response.
func GetCertifiedResponse(store *certify.Store, host certify.Host, req Request, resp Response, responseHashOverride []byte) (Response, error) {
	headers, err := GetCertificate(store, host, req, resp, responseHashOverride)
	if err != nil {
		return Response{}, err
	}
	out := resp
	out.Headers = append(append([]Header{}, resp.Headers...), headers...)
	return out, nil
}

// Tree is the result of get_certified_tree: the host certificate and a
// CBOR-encoded witness over the requested (or all) URLs' leaves.
type Tree struct {
	Certificate   []byte
	EncodedWitness []byte
}

// GetCertifiedTree implements §4.6's get_certified_tree: reveals the v1 leaf
// and every full_expr_path for the given URLs (or every certified URL when
// urls is nil).
func GetCertifiedTree(store *certify.Store, host certify.Host, urls []string) (Tree, error) {
	cert, ok := fetchCertificate(host)
	if !ok {
		return Tree{}, certerr.ErrNoRootCertificate
	}

	if urls == nil {
		urls = allCertifiedURLs(store)
	}

	paths := make([]merkletree.Path, 0, len(urls)*2)
	for _, url := range urls {
		paths = append(paths, merkletree.Path{[]byte(labelHTTPAssets), []byte(url)})
		for _, list := range store.Index.Lists(url) {
			for _, entry := range list {
				paths = append(paths, merkletree.Path(entry.FullExprPath))
			}
		}
	}

	witness := store.Tree.Reveal(paths...)
	encoded, err := merkletree.EncodeWitness(witness)
	if err != nil {
		return Tree{}, fmt.Errorf("binder: encode tree witness: %w", err)
	}
	return Tree{Certificate: cert, EncodedWitness: encoded}, nil
}

func allCertifiedURLs(store *certify.Store) []string {
	seen := map[string]bool{}
	var urls []string
	for _, m := range store.Index.Endpoints() {
		if !seen[m.Endpoint.URL] {
			seen[m.Endpoint.URL] = true
			urls = append(urls, m.Endpoint.URL)
		}
	}
	return urls
}

func fetchCertificate(host certify.Host) ([]byte, bool) {
	type certGetter interface {
		GetCertificate() ([]byte, bool)
	}
	g, ok := host.(certGetter)
	if !ok {
		return nil, false
	}
	return g.GetCertificate()
}

func b64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
