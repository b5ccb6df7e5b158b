package endpoint

import "github.com/signetlabs/certified-assets/internal/hashing"

// Endpoint is the fluent, pointer-receiver builder that accumulates the
// declarative description of one certified HTTP exchange. Every chainable
// setter returns the same *Endpoint so calls can be strung together; Build
// freezes the accumulated state into a Record.
type Endpoint struct {
	url                    string
	bodyHash               []byte
	method                 string
	queryParams            []NameValue
	requestHeaders         []NameValue
	status                 uint16
	responseHeaders        []NameValue
	noCertification        bool
	noRequestCertification bool
	isFallbackPath         bool
	urlErr                 error
}

// New starts building an Endpoint for the given URL, with an optional body
// whose SHA-256 becomes the initial body hash. Unspecified fields default to
// method GET, status 200, empty headers/queries, and the hash of the empty
// string for an absent body.
func New(rawURL string, body []byte) *Endpoint {
	path, err := PathFromURL(rawURL)
	e := &Endpoint{
		url:      path,
		method:   "GET",
		status:   200,
		bodyHash: hashing.Sum256(body),
		urlErr:   err,
	}
	return e
}

// Body recomputes the body hash from raw bytes.
func (e *Endpoint) Body(body []byte) *Endpoint {
	e.bodyHash = hashing.Sum256(body)
	return e
}

// Hash overrides the body hash directly, for callers that store only the
// hash of a response body (e.g. streamed or chunked responses).
func (e *Endpoint) Hash(bodyHash []byte) *Endpoint {
	e.bodyHash = bodyHash
	return e
}

// Chunks recomputes the body hash from a list of body chunks, concatenated
// in order before hashing — equivalent to Body(bytes.Join(chunks, nil)).
func (e *Endpoint) Chunks(chunks [][]byte) *Endpoint {
	var total int
	for _, c := range chunks {
		total += len(c)
	}
	body := make([]byte, 0, total)
	for _, c := range chunks {
		body = append(body, c...)
	}
	return e.Body(body)
}

// Method sets the HTTP verb. The builder treats it opaquely; it is not
// validated or canonicalized beyond what the caller passes.
func (e *Endpoint) Method(method string) *Endpoint {
	e.method = method
	return e
}

// Status sets the certified response status code.
func (e *Endpoint) Status(status uint16) *Endpoint {
	e.status = status
	return e
}

// RequestHeader appends one certified request header.
func (e *Endpoint) RequestHeader(name, value string) *Endpoint {
	e.requestHeaders = append(e.requestHeaders, NameValue{Name: name, Value: value})
	return e
}

// RequestHeaders appends a batch of certified request headers, preserving
// order.
func (e *Endpoint) RequestHeaders(headers []NameValue) *Endpoint {
	e.requestHeaders = append(e.requestHeaders, headers...)
	return e
}

// QueryParam appends one certified query parameter.
func (e *Endpoint) QueryParam(name, value string) *Endpoint {
	e.queryParams = append(e.queryParams, NameValue{Name: name, Value: value})
	return e
}

// QueryParams appends a batch of certified query parameters, preserving
// order.
func (e *Endpoint) QueryParams(params []NameValue) *Endpoint {
	e.queryParams = append(e.queryParams, params...)
	return e
}

// ResponseHeader appends one certified response header.
func (e *Endpoint) ResponseHeader(name, value string) *Endpoint {
	e.responseHeaders = append(e.responseHeaders, NameValue{Name: name, Value: value})
	return e
}

// ResponseHeaders appends a batch of certified response headers, preserving
// order.
func (e *Endpoint) ResponseHeaders(headers []NameValue) *Endpoint {
	e.responseHeaders = append(e.responseHeaders, headers...)
	return e
}

// IsFallbackPath marks this endpoint as matching any descendant path with no
// more specific certified entry (expression path wildcard "<*>" rather than
// "<$>").
func (e *Endpoint) IsFallbackPath() *Endpoint {
	e.isFallbackPath = true
	return e
}

// NoRequestCertification marks the request side (headers, query params) as
// uncertified: the client's request is not bound into the certified hash,
// only the response.
func (e *Endpoint) NoRequestCertification() *Endpoint {
	e.noRequestCertification = true
	return e
}

// NoCertification marks the whole exchange as uncertified at the response
// level too, which strictly dominates NoRequestCertification.
func (e *Endpoint) NoCertification() *Endpoint {
	e.noCertification = true
	return e
}

// Build freezes the accumulated state into a Record, zeroing request-side
// fields when NoRequestCertification is set and response headers when
// NoCertification is set (NoCertification implies NoRequestCertification).
func (e *Endpoint) Build() (Record, error) {
	if e.urlErr != nil {
		return Record{}, e.urlErr
	}
	noReqCert := e.noRequestCertification || e.noCertification
	r := Record{
		URL:                    e.url,
		BodyHash:               e.bodyHash,
		Method:                 e.method,
		Status:                 e.status,
		NoCertification:        e.noCertification,
		NoRequestCertification: noReqCert,
		IsFallbackPath:         e.isFallbackPath,
	}
	if !noReqCert {
		r.QueryParams = e.queryParams
		r.RequestHeaders = e.requestHeaders
	}
	if !e.noCertification {
		r.ResponseHeaders = e.responseHeaders
	}
	return r, nil
}
