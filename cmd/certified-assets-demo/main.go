// Command certified-assets-demo is a chi HTTP server exercising the
// certifiedassets library end to end: POST /certify builds and certifies an
// endpoint, DELETE /certify removes everything certified under a URL
// (remove_all), GET /_tree returns a
// certified snapshot of the whole tree, and any other route serves a canned
// response with ic-certificate/ic-certificateexpression headers attached.
//
// The library itself carries no mutex (§5's single-writer model); this
// server is multi-threaded, so every call into it is serialized behind mu.
package main

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/lmittmann/tint"

	certifiedassets "github.com/signetlabs/certified-assets"
)

type server struct {
	mu    sync.Mutex
	ca    *certifiedassets.CertifiedAssets
	audit *auditLog
	log   *slog.Logger
}

type certifyRequest struct {
	URL                    string                       `json:"url"`
	Body                   string                       `json:"body"`
	Method                 string                       `json:"method,omitempty"`
	Status                 uint16                       `json:"status,omitempty"`
	RequestHeaders         []certifiedassets.NameValue  `json:"request_headers,omitempty"`
	ResponseHeaders        []certifiedassets.NameValue  `json:"response_headers,omitempty"`
	QueryParams            []certifiedassets.NameValue  `json:"query_params,omitempty"`
	IsFallbackPath         bool                         `json:"is_fallback_path,omitempty"`
	NoRequestCertification bool                         `json:"no_request_certification,omitempty"`
	NoCertification        bool                         `json:"no_certification,omitempty"`
}

func (s *server) handleCertify(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	var req certifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	eb := certifiedassets.NewEndpoint(req.URL, []byte(req.Body))
	if req.Method != "" {
		eb.Method(req.Method)
	}
	if req.Status != 0 {
		eb.Status(req.Status)
	}
	if len(req.RequestHeaders) > 0 {
		eb.RequestHeaders(req.RequestHeaders)
	}
	if len(req.ResponseHeaders) > 0 {
		eb.ResponseHeaders(req.ResponseHeaders)
	}
	if len(req.QueryParams) > 0 {
		eb.QueryParams(req.QueryParams)
	}
	if req.IsFallbackPath {
		eb.IsFallbackPath()
	}
	if req.NoRequestCertification {
		eb.NoRequestCertification()
	}
	if req.NoCertification {
		eb.NoCertification()
	}

	rec, err := eb.Build()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	_, err = s.ca.Certify(rec)
	root := s.ca.RootHash()
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rootHex := base64.StdEncoding.EncodeToString(root)
	if err := s.audit.record(requestID, "certify", rec.URL, rootHex); err != nil {
		s.log.Warn("audit log write failed", "request_id", requestID, "err", err)
	}
	s.log.Info("certified", "request_id", requestID, "url", rec.URL, "root", rootHex)

	writeJSON(w, http.StatusOK, map[string]any{"root_hash": rootHex, "request_id": requestID})
}

func (s *server) handleRemoveAll(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	url := r.URL.Query().Get("url")
	if url == "" {
		http.Error(w, "missing url query param", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.ca.RemoveAll(url)
	root := s.ca.RootHash()
	s.mu.Unlock()

	rootHex := base64.StdEncoding.EncodeToString(root)
	if err := s.audit.record(requestID, "remove_all", url, rootHex); err != nil {
		s.log.Warn("audit log write failed", "request_id", requestID, "err", err)
	}
	s.log.Info("removed all", "request_id", requestID, "url", url, "root", rootHex)

	writeJSON(w, http.StatusOK, map[string]any{"root_hash": rootHex, "request_id": requestID})
}

func (s *server) handleTree(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	s.mu.Lock()
	tree, err := s.ca.GetCertifiedTree(nil)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"request_id":  requestID,
		"certificate": base64.StdEncoding.EncodeToString(tree.Certificate),
		"tree":        base64.StdEncoding.EncodeToString(tree.EncodedWitness),
	})
}

// handleCanned serves a fixed body for any route not otherwise handled,
// then attaches certification headers the way a real asset canister would
// for a previously certified static response.
func (s *server) handleCanned(w http.ResponseWriter, r *http.Request) {
	body := []byte("hello from certified-assets-demo")

	req := certifiedassets.Request{RawURL: r.URL.RequestURI(), Method: r.Method, CertificateVersion: 2}
	resp := certifiedassets.Response{Status: http.StatusOK, Body: body}

	s.mu.Lock()
	certified, err := s.ca.GetCertifiedResponse(req, resp, nil)
	s.mu.Unlock()
	if err != nil {
		w.WriteHeader(http.StatusOK)
		w.Write(body)
		return
	}

	for _, h := range certified.Headers {
		w.Header().Set(h.Name, h.Value)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	host, err := newFakeHost()
	if err != nil {
		logger.Error("generate host key", "err", err)
		os.Exit(1)
	}

	audit, err := openAuditLog(cfg.AuditDB)
	if err != nil {
		logger.Error("open audit log", "err", err)
		os.Exit(1)
	}
	defer audit.close()

	s := &server{
		ca:    certifiedassets.New(certifiedassets.InitStableStore(), host),
		audit: audit,
		log:   logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE"},
	}))

	r.Post("/certify", s.handleCertify)
	r.Delete("/certify", s.handleRemoveAll)
	r.Get("/_tree", s.handleTree)
	r.NotFound(s.handleCanned)

	logger.Info("certified-assets-demo listening", "bind", cfg.Bind)
	if err := http.ListenAndServe(cfg.Bind, r); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}
