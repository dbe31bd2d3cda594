package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/provgraph/provgraph/pkg/errors"
	"github.com/provgraph/provgraph/pkg/pipeline"
	"github.com/provgraph/provgraph/pkg/store"
)

// defaultRecordLimit bounds /v1/records listings unless the client asks
// for more.
const defaultRecordLimit = 50

// contentTypes maps visualization formats to response MIME types.
var contentTypes = map[string]string{
	pipeline.FormatDOT: "text/vnd.graphviz",
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
}

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// Conversion
// =============================================================================

// handleConvert translates a PROV-JSON body into PROV-JSONLD.
//
//	POST /v1/convert?pretty=1
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{Pretty: queryFlag(r, "pretty"), CacheTTL: s.cacheTTL}
	result, err := s.runner.Convert(r.Context(), body, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.saveRecord(r, store.KindConvert, body, result, nil)
	s.writeData(w, http.StatusOK, "application/json", result.Data)
}

// handleVisualize translates a PROV-JSONLD body into DOT text or a
// rendered image.
//
//	POST /v1/visualize?format=svg&direction=TB&attributes=1&strict=1
func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatDOT
	}
	contentType, ok := contentTypes[format]
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat,
			"unsupported format %q, expected dot, svg, or png", format))
		return
	}

	opts := pipeline.Options{
		Direction:          r.URL.Query().Get("direction"),
		ShowAttributes:     queryFlag(r, "attributes"),
		ShowRelationLabels: true,
		Strict:             queryFlag(r, "strict"),
		Formats:            []string{format},
		CacheTTL:           s.cacheTTL,
	}
	result, err := s.runner.Visualize(r.Context(), body, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.saveRecord(r, store.KindVisualize, body, result, []string{format})
	s.writeData(w, http.StatusOK, contentType, result.Artifacts[format])
}

// =============================================================================
// Records
// =============================================================================

// recordsResponse is the /v1/records listing envelope.
type recordsResponse struct {
	Records []*store.Record `json:"records"`
	Count   int             `json:"count"`
}

// handleRecords lists persisted runs, newest first.
//
//	GET /v1/records?limit=20
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "conversion history is not configured"))
		return
	}

	limit := queryInt(r, "limit", defaultRecordLimit)
	records, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []*store.Record{}
	}
	s.writeJSON(w, r, http.StatusOK, recordsResponse{Records: records, Count: len(records)})
}

// handleRecord returns one persisted run by id.
//
//	GET /v1/records/{id}
func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "conversion history is not configured"))
		return
	}

	id := chi.URLParam(r, "id")
	if err := errors.ValidateIdentifier(id); err != nil {
		s.writeError(w, r, err)
		return
	}

	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, rec)
}

// =============================================================================
// Helpers
// =============================================================================

// readBody reads the request body up to the size cap. An empty body is
// an INVALID_INPUT error, not an empty conversion.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(body) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}
	return body, nil
}

// saveRecord persists one handled run when a store is configured. Save
// failures are logged and never affect the response.
func (s *Server) saveRecord(r *http.Request, kind string, input []byte, result *pipeline.Result, formats []string) {
	if s.store == nil {
		return
	}

	rec := store.NewRecord(kind)
	rec.Input = input
	rec.Output = result.Data
	rec.Formats = formats
	rec.Stats = store.Stats{
		Elements:  result.Stats.Elements,
		Relations: result.Stats.Relations,
		Bundles:   result.Stats.Bundles,
		Nodes:     result.Stats.Nodes,
		Edges:     result.Stats.Edges,
		Skipped:   result.Stats.Skipped,
		DurationMS: (result.Stats.ConvertTime +
			result.Stats.VisualizeTime +
			result.Stats.RenderTime).Milliseconds(),
	}

	if err := s.store.Save(r.Context(), rec); err != nil {
		s.logger.Warn("record save failed", "kind", kind, "error", err)
	}
}

// queryFlag reports whether a query parameter is set to a truthy value.
func queryFlag(r *http.Request, name string) bool {
	switch r.URL.Query().Get(name) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// queryInt parses an integer query parameter, falling back to def on
// absent or unparseable values.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
