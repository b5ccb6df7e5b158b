// Package certexpr compiles an EndpointRecord into the textual
// IC-CertificateExpression, its CBOR-encoded expression path, and the
// expression hash fed into the Merkle tree's full_expr_path.
package certexpr

import (
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/signetlabs/certified-assets/internal/endpoint"
	"github.com/signetlabs/certified-assets/internal/hashing"
)

const (
	wildcardExact    = "<$>"
	wildcardFallback = "<*>"
	exprPathRoot     = "http_expr"
)

// Compiled holds everything the certification engine needs out of the
// expression compiler: the text form shipped in the ic-certificateexpression
// header, the CBOR-encoded expression path shipped base64'd in
// ic-certificate, the plain-text path segments (reused by the certification
// engine to build full_expr_path), the wildcard segment, and the SHA-256 of
// the (already whitespace-normalized) expression text.
type Compiled struct {
	ExpressionText  string
	EncodedExprPath []byte
	Segments        []string
	Wildcard        string
	ExpressionHash  []byte
}

// Segments splits a certified URL path into the labels used in the
// expression path. An empty URL (the root, after trailing-slash collapse)
// yields a single empty segment, matching §4.2 step 1.
func Segments(url string) []string {
	if url == "" {
		return []string{""}
	}
	return strings.Split(url, "/")
}

// Wildcard selects the terminal expression-path segment: "<*>" for a
// fallback path, "<$>" for an exact match.
func Wildcard(isFallbackPath bool) string {
	if isFallbackPath {
		return wildcardFallback
	}
	return wildcardExact
}

// Compile derives the full expression compiler output for a record.
func Compile(rec endpoint.Record) (Compiled, error) {
	segments := Segments(rec.URL)
	wildcard := Wildcard(rec.IsFallbackPath)

	textPath := make([]string, 0, len(segments)+2)
	textPath = append(textPath, exprPathRoot)
	textPath = append(textPath, segments...)
	textPath = append(textPath, wildcard)

	encoded, err := cbor.Marshal(textPath)
	if err != nil {
		return Compiled{}, fmt.Errorf("certexpr: encode expression path: %w", err)
	}

	text := expressionString(rec)
	text = normalizeWhitespace(text)
	hash := hashing.Sum256([]byte(text))

	return Compiled{
		ExpressionText:  text,
		EncodedExprPath: encoded,
		Segments:        segments,
		Wildcard:        wildcard,
		ExpressionHash:  hash,
	}, nil
}

func expressionString(rec endpoint.Record) string {
	switch {
	case rec.NoCertification:
		return `default_certification(ValidationArgs {
    no_certification: Empty {}
})`
	case rec.NoRequestCertification:
		return fmt.Sprintf(`default_certification(ValidationArgs {
    certification: Certification {
        no_request_certification: Empty {},
        response_certification: ResponseCertification {
            certified_response_headers: ResponseHeaderList {
                headers: %s
            }
        }
    }
})`, nameList(rec.ResponseHeaders))
	default:
		return fmt.Sprintf(`default_certification(ValidationArgs {
    certification: Certification {
        request_certification: RequestCertification {
            certified_request_headers: %s,
            certified_query_parameters: %s
        },
        response_certification: ResponseCertification {
            certified_response_headers: ResponseHeaderList {
                headers: %s
            }
        }
    }
})`, nameList(rec.RequestHeaders), nameList(rec.QueryParams), nameList(rec.ResponseHeaders))
	}
}

// nameList renders an ordered name list in the debug-string form the spec
// calls for: bracketed, comma-separated, each entry double-quoted.
func nameList(headers []endpoint.NameValue) string {
	names := make([]string, len(headers))
	for i, h := range headers {
		names[i] = h.Name
	}
	return quoteList(names)
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// normalizeWhitespace collapses every run of spaces and newlines into a
// single space and trims the result, matching the exact bytes both hashed
// into the expression hash and emitted in the ic-certificateexpression
// header. Only ' ' and '\n' are collapsed, per §4.2 step 5; expressionString
// is indented with spaces precisely so no other whitespace rune ever reaches
// this function.
func normalizeWhitespace(s string) string {
	var b strings.Builder
	inRun := false
	for _, r := range s {
		if r == ' ' || r == '\n' {
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
