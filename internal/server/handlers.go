package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/cubesolver"
	"github.com/SeamusWaldron/cubesolver/internal/input"
	"github.com/SeamusWaldron/cubesolver/internal/notation"
	"github.com/SeamusWaldron/cubesolver/internal/storage"
)

// SolveRequest is the body of POST /solve_cube.
type SolveRequest = input.Document

// SolveResponse is the reply to a successful solve.
type SolveResponse struct {
	Moves     []string      `json:"moves"`
	MoveCount int           `json:"move_count"`
	Compact   string        `json:"compact"`
	Keys      []string      `json:"keys,omitempty"`
	Segments  []SegmentJSON `json:"segments"`
	Cached    bool          `json:"cached"`
}

// SegmentJSON is one phase of a solution.
type SegmentJSON struct {
	Phase string `json:"phase"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// ErrorBody is the error envelope of every failed request.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newSolveResponse(sol *cubesolver.Solution, cached bool) SolveResponse {
	resp := SolveResponse{
		Moves:     sol.Notation(),
		MoveCount: len(sol.Moves),
		Compact:   notation.CompactString(sol.Moves),
		Segments:  make([]SegmentJSON, len(sol.Segments)),
		Cached:    cached,
	}
	for i, seg := range sol.Segments {
		resp.Segments[i] = SegmentJSON{Phase: seg.Phase.String(), Start: seg.Start, End: seg.End}
	}
	return resp
}

// errorStatus maps an error to its HTTP status and code.
func errorStatus(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "request_too_large"
	case errors.Is(err, input.ErrMalformed):
		return http.StatusBadRequest, "malformed_request"
	case errors.Is(err, cubesolver.ErrInvalidNotation):
		return http.StatusBadRequest, "invalid_notation"
	case errors.Is(err, cubesolver.ErrInvalidCubeState):
		return http.StatusUnprocessableEntity, "invalid_cube_state"
	case errors.Is(err, cubesolver.ErrConvergence):
		return http.StatusInternalServerError, "convergence"
	case errors.Is(err, cubesolver.ErrLocatorExhausted):
		return http.StatusInternalServerError, "locator_exhausted"
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "not_found"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("code", code), zap.Error(err))
	}
	msg := err.Error()
	if code == "internal" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: msg}})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"service": "cubesolver"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.cache != nil {
		if err := s.cache.Ping(r.Context()); err != nil {
			s.log.Warn("cache ping failed", zap.Error(err))
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	g, err := input.Read(r.Body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sol, cached, err := s.solve(r.Context(), g)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := newSolveResponse(sol, cached)
	if r.URL.Query().Get("keymap") == "default" {
		keys, err := notation.Remap(sol.Moves, notation.DefaultKeymap())
		if err != nil {
			s.writeError(w, err)
			return
		}
		resp.Keys = keys
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSolve(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, http.StatusNotFound, ErrorBody{Error: ErrorDetail{Code: "not_found", Message: "solve history is disabled"}})
		return
	}

	rec, err := s.store.GetSolve(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	sol, err := rec.Solution()
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		ID            string    `json:"id"`
		CreatedAt     string    `json:"created_at"`
		ScrambledCube [][][]int `json:"scrambled_cube"`
		SolveResponse
	}{
		ID:            rec.SolveID,
		CreatedAt:     rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		ScrambledCube: input.FromGrid(rec.Grid),
		SolveResponse: newSolveResponse(sol, false),
	})
}
