package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/skill-trend-detector/internal/logger"
	"github.com/jonathan/skill-trend-detector/internal/trend"
	"github.com/jonathan/skill-trend-detector/internal/types"
)

// validatable is implemented by request payloads in the types package.
type validatable interface {
	Validate() error
}

// handleSkillTrend analyzes a single job description.
func (s *Server) handleSkillTrend(w http.ResponseWriter, r *http.Request) {
	var req types.SkillTrendRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, r, HTTPStatus(err), err.Error())
		return
	}

	detected := trend.Analyze(s.model, *req.JobDescription)
	logger.G(r.Context()).WithField("detected", len(detected)).Debug("job description analyzed")

	s.jsonResponse(w, r, http.StatusOK, types.SkillTrendResponse{DetectedSkills: detected})
}

// handleSkillTrendBatch analyzes several job descriptions concurrently.
func (s *Server) handleSkillTrendBatch(w http.ResponseWriter, r *http.Request) {
	var req types.BatchSkillTrendRequest
	if err := s.decodeRequest(w, r, &req); err != nil {
		s.errorResponse(w, r, HTTPStatus(err), err.Error())
		return
	}

	results, err := trend.AnalyzeBatch(r.Context(), s.model, req.JobDescriptions, s.batchLimit)
	if err != nil {
		// Only cancellation fails a batch; the client is usually gone.
		logger.G(r.Context()).WithError(err).Warn("batch analysis cancelled")
		s.errorResponse(w, r, http.StatusServiceUnavailable, "request cancelled")
		return
	}

	resp := types.BatchSkillTrendResponse{Results: make([]types.SkillTrendResponse, len(results))}
	for i, detected := range results {
		resp.Results[i] = types.SkillTrendResponse{DetectedSkills: detected}
	}
	s.jsonResponse(w, r, http.StatusOK, resp)
}

// handleListSkills returns the whole vocabulary with classifications.
func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, r, http.StatusOK, types.SkillCatalogResponse{
		Skills:       trend.Catalog(s.model),
		MaxFrequency: s.model.MaxFrequency(),
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"skills": s.model.Len(),
	})
}

// decodeRequest reads a size-limited JSON body into dst and validates it.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst validatable) error {
	body := r.Body
	if s.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	}

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return &ErrPayloadTooLarge{Limit: tooLarge.Limit}
		case errors.Is(err, io.EOF):
			return &ErrMalformedBody{Cause: errors.New("body is empty")}
		default:
			return &ErrMalformedBody{Cause: err}
		}
	}

	if err := dst.Validate(); err != nil {
		return toValidationError(err)
	}
	return nil
}

// toValidationError reports the first failed field of a validator error.
func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ErrValidation{Field: "(body)", Message: err.Error()}
	}

	fe := fieldErrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "min":
		msg = fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "max":
		msg = fmt.Sprintf("must contain at most %s item(s)", fe.Param())
	default:
		msg = fmt.Sprintf("failed %q check", fe.Tag())
	}
	return &ErrValidation{Field: fe.Field(), Message: msg}
}
