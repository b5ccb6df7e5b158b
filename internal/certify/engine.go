package certify

import (
	"reflect"

	"github.com/signetlabs/certified-assets/certerr"
	"github.com/signetlabs/certified-assets/internal/certexpr"
	"github.com/signetlabs/certified-assets/internal/endpoint"
	"github.com/signetlabs/certified-assets/internal/merkletree"
	"github.com/signetlabs/certified-assets/internal/metadata"
)

const (
	labelHTTPAssets = "http_assets"
	labelHTTPExpr   = "http_expr"
)

// Certify runs the full certification pipeline for one endpoint: it writes
// the legacy v1 asset leaf and the v2 expression leaf, publishes the new
// root to the host, and records Metadata for later lookup.
func Certify(store *Store, host Host, rec endpoint.Record) (*metadata.Metadata, error) {
	urlBytes := []byte(rec.URL)
	store.Tree.Put(merkletree.Path{[]byte(labelHTTPAssets), urlBytes}, rec.BodyHash)

	compiled, err := certexpr.Compile(rec)
	if err != nil {
		return nil, err
	}

	reqHash := requestHash(rec)
	respHash := responseHash(rec, compiled.ExpressionText)

	if rec.NoCertification {
		certerr.Invariant(len(reqHash) == 0 && len(respHash) == 0,
			"no_certification implies empty request and response hashes")
	}

	fullPath := buildFullExprPath(compiled, reqHash, respHash)
	store.Tree.Put(fullPath, []byte{})

	pushRoot(store, host)

	uniqueHash := metadata.UniqueHTTPHash(rec)
	m := &metadata.Metadata{
		Endpoint:        rec,
		ExpressionText:  compiled.ExpressionText,
		EncodedExprPath: compiled.EncodedExprPath,
		FullExprPath:    fullPath,
	}
	store.Index.Insert(rec.URL, uniqueHash, m)
	return m, nil
}

// Remove deletes the v1 asset leaf unconditionally, then — if a Metadata
// entry matching this exact endpoint exists — also deletes its v2
// expression leaf and the Metadata entry itself. This resolves the spec's
// open question (§9) in favor of also scrubbing the index rather than
// leaving it dangling; see DESIGN.md.
func Remove(store *Store, host Host, rec endpoint.Record) {
	urlBytes := []byte(rec.URL)
	store.Tree.Delete(merkletree.Path{[]byte(labelHTTPAssets), urlBytes})

	uniqueHash := metadata.UniqueHTTPHash(rec)
	removed, ok := store.Index.RemoveMatching(rec.URL, uniqueHash, func(m *metadata.Metadata) bool {
		return recordsEqual(m.Endpoint, rec)
	})
	if ok {
		store.Tree.Delete(removed.FullExprPath)
	}
	pushRoot(store, host)
}

// RemoveAll deletes the v1 asset leaf and every v2 expression leaf and
// Metadata entry certified under url.
func RemoveAll(store *Store, host Host, url string) {
	store.Tree.Delete(merkletree.Path{[]byte(labelHTTPAssets), []byte(url)})
	for _, m := range store.Index.RemoveAllForURL(url) {
		store.Tree.Delete(m.FullExprPath)
	}
	pushRoot(store, host)
}

// Clear drops both top-level subtrees and empties the metadata index.
func Clear(store *Store, host Host) {
	store.Tree.DeleteSubtree(merkletree.Path{[]byte(labelHTTPAssets)})
	store.Tree.DeleteSubtree(merkletree.Path{[]byte(labelHTTPExpr)})
	store.Index.Clear()
	pushRoot(store, host)
}

// Endpoints enumerates every certified EndpointRecord (§4.5's endpoints()).
func Endpoints(store *Store) []endpoint.Record {
	ms := store.Index.Endpoints()
	out := make([]endpoint.Record, len(ms))
	for i, m := range ms {
		out[i] = m.Endpoint
	}
	return out
}

func buildFullExprPath(compiled certexpr.Compiled, reqHash, respHash []byte) [][]byte {
	path := make([][]byte, 0, len(compiled.Segments)+4)
	path = append(path, []byte(labelHTTPExpr))
	for _, seg := range compiled.Segments {
		path = append(path, []byte(seg))
	}
	path = append(path, []byte(compiled.Wildcard))
	path = append(path, compiled.ExpressionHash)
	path = append(path, reqHash)
	path = append(path, respHash)
	return path
}

func recordsEqual(a, b endpoint.Record) bool {
	return reflect.DeepEqual(a, b)
}
