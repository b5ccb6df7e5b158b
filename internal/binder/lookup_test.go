package binder

import (
	"crypto/sha256"
	"testing"

	"github.com/signetlabs/certified-assets/internal/endpoint"
	"github.com/signetlabs/certified-assets/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupFindsFullCertificationMatch(t *testing.T) {
	rec, err := endpoint.New("/hello", []byte("world")).
		RequestHeader("accept", "text/plain").
		Build()
	require.NoError(t, err)

	idx := metadata.NewIndex()
	m := &metadata.Metadata{Endpoint: rec}
	idx.Insert(rec.URL, metadata.UniqueHTTPHash(rec), m)

	req := Request{
		RawURL:  "/hello",
		Method:  rec.Method,
		Headers: []endpoint.NameValue{{Name: "accept", Value: "text/plain"}, {Name: "x-extra", Value: "1"}},
	}
	resp := Response{Status: rec.Status, Body: []byte("world")}

	got, ok := Lookup(idx, req, resp, nil)
	require.True(t, ok)
	assert.Same(t, m, got)
}

func TestLookupFailsWhenURLAbsent(t *testing.T) {
	idx := metadata.NewIndex()
	_, ok := Lookup(idx, Request{RawURL: "/nope"}, Response{}, nil)
	assert.False(t, ok)
}

func TestLookupRejectsWhenStoredHeaderMissingFromIncoming(t *testing.T) {
	rec, err := endpoint.New("/hello", []byte("world")).
		RequestHeader("accept", "text/plain").
		Build()
	require.NoError(t, err)

	idx := metadata.NewIndex()
	m := &metadata.Metadata{Endpoint: rec}
	idx.Insert(rec.URL, metadata.UniqueHTTPHash(rec), m)

	req := Request{RawURL: "/hello", Method: rec.Method}
	resp := Response{Status: rec.Status, Body: []byte("world")}

	_, ok := Lookup(idx, req, resp, nil)
	assert.False(t, ok)
}

func TestLookupUsesResponseHashOverride(t *testing.T) {
	override := sha256.Sum256([]byte("world"))
	rec, err := endpoint.New("/hello", nil).Hash(override[:]).Build()
	require.NoError(t, err)

	idx := metadata.NewIndex()
	m := &metadata.Metadata{Endpoint: rec}
	idx.Insert(rec.URL, metadata.UniqueHTTPHash(rec), m)

	req := Request{RawURL: "/hello", Method: rec.Method}
	resp := Response{Status: rec.Status, Body: []byte("ignored, override wins")}

	got, ok := Lookup(idx, req, resp, override[:])
	require.True(t, ok)
	assert.Same(t, m, got)
}
