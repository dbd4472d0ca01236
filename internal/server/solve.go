package server

import (
	"encoding/json"
	"net/http"

	"github.com/clearmatch/clearmatch/pkg/errors"
	"github.com/clearmatch/clearmatch/pkg/marketio"
	"github.com/clearmatch/clearmatch/pkg/pipeline"
)

// solveResponse is the body returned by POST /v1/solve. Graphical
// artifacts are not inlined; clients that want an SVG request it as the
// only format and read the raw bytes.
type solveResponse struct {
	RunID      string                     `json:"run_id"`
	MarketHash string                     `json:"market_hash"`
	Result     *marketio.ResultDocument   `json:"result"`
	Artifacts  map[string]json.RawMessage `json:"artifacts,omitempty"`
	Cached     bool                       `json:"cached"`
}

// errorResponse is the structured error body.
type errorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

// handleSolve decodes pipeline options from the request body, runs the
// pipeline, and returns the solved matching.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if opts.Market == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "market definition is required"))
		return
	}
	// Only the JSON artifact can be embedded in a JSON response body.
	for _, f := range opts.Formats {
		if f != pipeline.FormatJSON && f != pipeline.FormatDOT {
			s.writeError(w, r, errors.New(errors.ErrCodeUnsupported,
				"format %q is not available over the API (use json or dot)", f))
			return
		}
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := solveResponse{
		RunID:      res.RunID,
		MarketHash: res.MarketHash,
		Result:     res.Document,
		Cached:     res.CacheInfo.SolveHit,
	}
	if len(res.Artifacts) > 0 {
		resp.Artifacts = make(map[string]json.RawMessage, len(res.Artifacts))
		for format, data := range res.Artifacts {
			if format == pipeline.FormatJSON {
				resp.Artifacts[format] = json.RawMessage(data)
			} else {
				quoted, _ := json.Marshal(string(data))
				resp.Artifacts[format] = json.RawMessage(quoted)
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// statusFor maps structured error codes onto HTTP statuses.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMarket, errors.ErrCodeInvalidMechanism,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath, errors.ErrCodeInvalidCapacity,
		errors.ErrCodeInvalidPriority, errors.ErrCodeDimensionMismatch, errors.ErrCodeOwnershipConflict:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= 500 {
		s.logger.Error("request failed", "request_id", RequestID(r.Context()), "error", err)
	}
	writeJSON(w, status, errorResponse{
		Code:      code,
		Message:   err.Error(),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
