package certexpr

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/signetlabs/certified-assets/internal/endpoint"
	"github.com/stretchr/testify/require"
)

func TestExactPathWildcard(t *testing.T) {
	rec := endpoint.Record{URL: "/hello", Method: "GET", Status: 200}
	c, err := Compile(rec)
	require.NoError(t, err)
	require.Equal(t, "<$>", c.Wildcard)
	require.Equal(t, []string{"hello"}, c.Segments)

	var decoded []string
	require.NoError(t, cbor.Unmarshal(c.EncodedExprPath, &decoded))
	require.Equal(t, []string{"http_expr", "hello", "<$>"}, decoded)
}

func TestFallbackRootWildcard(t *testing.T) {
	rec := endpoint.Record{URL: "", IsFallbackPath: true, NoCertification: true}
	c, err := Compile(rec)
	require.NoError(t, err)
	require.Equal(t, "<*>", c.Wildcard)
	require.Equal(t, []string{""}, c.Segments)

	var decoded []string
	require.NoError(t, cbor.Unmarshal(c.EncodedExprPath, &decoded))
	require.Equal(t, []string{"http_expr", "", "<*>"}, decoded)
}

func TestNoCertificationTemplate(t *testing.T) {
	rec := endpoint.Record{URL: "/x", NoCertification: true, NoRequestCertification: true}
	c, err := Compile(rec)
	require.NoError(t, err)
	require.Contains(t, c.ExpressionText, "no_certification: Empty {}")
	require.NotContains(t, c.ExpressionText, "\n")
}

func TestNoRequestCertificationTemplate(t *testing.T) {
	rec := endpoint.Record{
		URL:             "/x",
		NoRequestCertification: true,
		ResponseHeaders: []endpoint.NameValue{{Name: "content-type", Value: "text/plain"}},
	}
	c, err := Compile(rec)
	require.NoError(t, err)
	require.Contains(t, c.ExpressionText, "no_request_certification: Empty {}")
	require.Contains(t, c.ExpressionText, `"content-type"`)
	require.NotContains(t, c.ExpressionText, "request_certification: RequestCertification")
}

func TestFullCertificationTemplate(t *testing.T) {
	rec := endpoint.Record{
		URL:            "/x",
		RequestHeaders: []endpoint.NameValue{{Name: "accept", Value: "*/*"}},
		QueryParams:    []endpoint.NameValue{{Name: "q", Value: "ic"}},
		ResponseHeaders: []endpoint.NameValue{{Name: "content-type", Value: "text/plain"}},
	}
	c, err := Compile(rec)
	require.NoError(t, err)
	require.Contains(t, c.ExpressionText, `certified_request_headers: ["accept"]`)
	require.Contains(t, c.ExpressionText, `certified_query_parameters: ["q"]`)
	require.Contains(t, c.ExpressionText, `certified_response_headers: ResponseHeaderList { headers: ["content-type"] }`)
}

func TestExpressionHashMatchesNormalizedText(t *testing.T) {
	rec := endpoint.Record{URL: "/x", NoCertification: true, NoRequestCertification: true}
	c, err := Compile(rec)
	require.NoError(t, err)

	again, err := Compile(rec)
	require.NoError(t, err)
	require.Equal(t, c.ExpressionHash, again.ExpressionHash, "deterministic for identical records")
}
