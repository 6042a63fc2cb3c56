package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/trieviz/pkg/buildinfo"
	errs "github.com/matzehuels/trieviz/pkg/errors"
	"github.com/matzehuels/trieviz/pkg/keywords"
	"github.com/matzehuels/trieviz/pkg/pipeline"
	"github.com/matzehuels/trieviz/pkg/render"
)

// maxBodyBytes bounds POST /graph bodies.
const maxBodyBytes = 2 << 20

// GraphRequest is the POST /graph body.
type GraphRequest struct {
	Keywords     []string `json:"keywords"`
	Order        string   `json:"order,omitempty"`
	MarkKeywords bool     `json:"mark_keywords,omitempty"`
	Normalize    string   `json:"normalize,omitempty"`
	Classes      bool     `json:"classes,omitempty"`
	Cursor       string   `json:"cursor,omitempty"`
	Format       string   `json:"format,omitempty"`
	Refresh      bool     `json:"refresh,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// handleGetGraph reads keywords from repeated "keyword" parameters and
// comma-separated "keywords" parameters, in that order.
func (s *Server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := GraphRequest{
		Keywords:  q["keyword"],
		Order:     q.Get("order"),
		Normalize: q.Get("normalize"),
		Cursor:    q.Get("cursor"),
		Format:    q.Get("format"),
	}
	for _, list := range q["keywords"] {
		req.Keywords = append(req.Keywords, keywords.ParseList(list)...)
	}
	var err error
	if req.MarkKeywords, err = parseBool(q.Get("mark")); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid mark parameter"))
		return
	}
	if req.Classes, err = parseBool(q.Get("classes")); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid classes parameter"))
		return
	}
	if req.Refresh, err = parseBool(q.Get("refresh")); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid refresh parameter"))
		return
	}
	s.serveGraph(w, r, req)
}

func (s *Server) handlePostGraph(w http.ResponseWriter, r *http.Request) {
	var req GraphRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	s.serveGraph(w, r, req)
}

func (s *Server) serveGraph(w http.ResponseWriter, r *http.Request, req GraphRequest) {
	if err := errs.ValidateKeywords(req.Keywords, s.limits); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Format == "" {
		req.Format = pipeline.DefaultFormat
	}
	format, err := render.ParseFormat(req.Format)
	if err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInvalidFormat, err, "invalid format %q", req.Format))
		return
	}

	opts := pipeline.Options{
		Keywords:     req.Keywords,
		Order:        req.Order,
		MarkKeywords: req.MarkKeywords,
		Normalize:    req.Normalize,
		Classes:      req.Classes,
		Cursor:       req.Cursor,
		Formats:      []string{string(format)},
		Refresh:      req.Refresh,
		Logger:       s.logger,
	}
	data, hit, err := s.runner.Artifact(r.Context(), opts, string(format))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errs.IsInvalid(err):
		status = http.StatusBadRequest
	case errs.Is(err, errs.ErrCodeConversion):
		status = http.StatusBadGateway
	case r.Context().Err() != nil:
		status = http.StatusServiceUnavailable
	}

	resp := errorResponse{
		Error:     errs.UserMessage(err),
		Code:      string(errs.GetCode(err)),
		RequestID: RequestIDFromContext(r.Context()),
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", resp.RequestID)
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
