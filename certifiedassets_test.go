package certifiedassets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHost struct {
	root [32]byte
	cert []byte
	has  bool
}

func (h *stubHost) SetCertifiedData(root [32]byte) {
	h.root = root
	h.cert = append([]byte("signed:"), root[:]...)
	h.has = true
}

func (h *stubHost) GetCertificate() ([]byte, bool) {
	return h.cert, h.has
}

func TestEndToEndCertifyAndGetCertifiedResponse(t *testing.T) {
	host := &stubHost{}
	ca := New(InitStableStore(), host)

	rec, err := NewEndpoint("/hello", []byte("world")).Build()
	require.NoError(t, err)

	_, err = ca.Certify(rec)
	require.NoError(t, err)

	req := Request{RawURL: "/hello", Method: "GET", CertificateVersion: 2}
	resp := Response{Status: 200, Body: []byte("world")}

	got, err := ca.GetCertifiedResponse(req, resp, nil)
	require.NoError(t, err)
	require.Len(t, got.Headers, 2)
	assert.Equal(t, "ic-certificate", got.Headers[0].Name)
	assert.Equal(t, "ic-certificateexpression", got.Headers[1].Name)
}

func TestGetCertificateV1FallsBackWhenNoVersion(t *testing.T) {
	host := &stubHost{}
	ca := New(InitStableStore(), host)

	rec, err := NewEndpoint("/hello", []byte("world")).Build()
	require.NoError(t, err)
	_, err = ca.Certify(rec)
	require.NoError(t, err)

	req := Request{RawURL: "/hello"}
	resp := Response{Status: 200, Body: []byte("world")}

	headers, err := ca.GetCertificate(req, resp, nil)
	require.NoError(t, err)
	require.Len(t, headers, 1)
	assert.Equal(t, "ic-certificate", headers[0].Name)
}

func TestGetCertificateFailsWithoutHostCertificate(t *testing.T) {
	host := &stubHost{}
	ca := New(InitStableStore(), host)

	_, err := ca.GetCertificate(Request{RawURL: "/missing"}, Response{}, nil)
	assert.Error(t, err)
}

func TestClearEmptiesEndpointsAndResetsRoot(t *testing.T) {
	host := &stubHost{}
	ca := New(InitStableStore(), host)

	rec, err := NewEndpoint("/hello", []byte("world")).Build()
	require.NoError(t, err)
	_, err = ca.Certify(rec)
	require.NoError(t, err)
	require.NotEmpty(t, ca.Endpoints())

	ca.Clear()
	assert.Empty(t, ca.Endpoints())

	fresh := New(InitStableStore(), &stubHost{})
	assert.Equal(t, fresh.RootHash(), ca.RootHash())
}
