package metadata

import (
	"testing"

	"github.com/signetlabs/certified-assets/internal/endpoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertAppendsInOrder(t *testing.T) {
	idx := NewIndex()
	h := []byte("hash")
	idx.Insert("/a", h, &Metadata{Endpoint: endpoint.Record{Status: 1}})
	idx.Insert("/a", h, &Metadata{Endpoint: endpoint.Record{Status: 2}})
	list := idx.List("/a", h)
	require.Len(t, list, 2)
	assert.Equal(t, uint16(1), list[0].Endpoint.Status)
	assert.Equal(t, uint16(2), list[1].Endpoint.Status)
}

func TestRemoveMatchingPrunesEmptyLevels(t *testing.T) {
	idx := NewIndex()
	h := []byte("hash")
	target := &Metadata{Endpoint: endpoint.Record{Status: 1}}
	idx.Insert("/a", h, target)

	removed, ok := idx.RemoveMatching("/a", h, func(m *Metadata) bool { return m.Endpoint.Status == 1 })
	require.True(t, ok)
	assert.Same(t, target, removed)
	assert.Nil(t, idx.List("/a", h))
	assert.Nil(t, idx.Lists("/a"))
}

func TestRemoveAllForURLReturnsEverything(t *testing.T) {
	idx := NewIndex()
	idx.Insert("/a", []byte("h1"), &Metadata{})
	idx.Insert("/a", []byte("h2"), &Metadata{})
	idx.Insert("/b", []byte("h1"), &Metadata{})

	removed := idx.RemoveAllForURL("/a")
	assert.Len(t, removed, 2)
	assert.Nil(t, idx.Lists("/a"))
	assert.NotNil(t, idx.Lists("/b"))
}

func TestClearEmptiesEverything(t *testing.T) {
	idx := NewIndex()
	idx.Insert("/a", []byte("h1"), &Metadata{})
	idx.Clear()
	assert.Empty(t, idx.Endpoints())
}

func TestUniqueHTTPHashDistinguishesCertificationModes(t *testing.T) {
	full := endpoint.Record{BodyHash: []byte("b"), Method: "GET", Status: 200}
	noReq := endpoint.Record{BodyHash: []byte("b"), Method: "GET", Status: 200, NoRequestCertification: true}
	none := endpoint.Record{BodyHash: []byte("b"), Method: "GET", Status: 200, NoCertification: true, NoRequestCertification: true}

	hFull := UniqueHTTPHash(full)
	hNoReq := UniqueHTTPHash(noReq)
	hNone := UniqueHTTPHash(none)

	assert.NotEqual(t, hFull, hNoReq)
	assert.NotEqual(t, hNoReq, hNone)
	assert.NotEqual(t, hFull, hNone)
}
