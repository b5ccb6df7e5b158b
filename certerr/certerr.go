// Package certerr defines the library's error taxonomy: the two recoverable,
// user-facing errors a caller distinguishes by operational context
// (ErrNoRootCertificate, ErrNoMetadata), plus an internal invariant check
// that panics — mirroring the teacher's terse log.Fatal-on-setup-failure
// posture (receipt_sink/main.go, cmd/evg-sink/main.go), but scoped to bugs
// inside this library rather than process startup.
package certerr

import "errors"

// ErrNoRootCertificate is returned when the host has no root certificate
// available, typically because the caller invoked a certificate-producing
// operation from an update call rather than a query.
var ErrNoRootCertificate = errors.New("certified-assets: no root certificate available from host (are you calling this from an update, not a query?)")

// ErrNoMetadata is returned when the v2 response binder cannot find a
// previously certified endpoint compatible with the incoming request and
// response.
var ErrNoMetadata = errors.New("certified-assets: no metadata found for this url")

// Invariant panics with a bug-report-flavored message if cond is false. It
// guards conditions that should be impossible given correct internal logic
// (e.g. "no_certification implies empty request/response hashes") — a
// failure here is a library bug, not a caller mistake.
func Invariant(cond bool, msg string) {
	if !cond {
		panic("certified-assets: internal invariant violated: " + msg)
	}
}
