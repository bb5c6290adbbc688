package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"goresid/app"
	"goresid/domain/core"
	"goresid/domain/diagnostics"
	apperrors "goresid/internal/errors"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	models, scoring := s.service.Models(), s.service.Scoring()
	out := make([]ModelInfo, 0, len(models))
	for _, id := range models.IDs() {
		entry := models[id]
		out = append(out, ModelInfo{ID: id, Variables: entry.Variables, Features: scoring[entry.Variables]})
	}
	w.Header().Set("ETag", `"`+core.ComputeRegistryHash(scoring).String()+`"`)
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	var req DiagnosticsRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, apperrors.InvalidInput("malformed request body: "+err.Error()))
		return
	}
	if req.ModelID == "" {
		writeError(w, apperrors.InvalidInput("model_id is required"))
		return
	}
	// Empty order and alpha fall through to the service defaults.
	var (
		order diagnostics.SequenceOrder
		err   error
	)
	if req.SequenceOrder != "" {
		if order, err = diagnostics.ParseSequenceOrder(req.SequenceOrder); err != nil {
			writeError(w, err)
			return
		}
	}
	var runID core.RunID
	if req.RunID != "" {
		if runID, err = core.ParseRunID(req.RunID); err != nil {
			writeError(w, apperrors.InvalidInput(err.Error()))
			return
		}
	}
	frame, target, err := req.frame()
	if err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	if err := s.runs.Acquire(ctx, 1); err != nil {
		writeError(w, apperrors.Canceled(err))
		return
	}
	s.metrics.inFlight.Inc()
	defer func() {
		s.metrics.inFlight.Dec()
		s.runs.Release(1)
	}()

	report, err := s.service.Run(ctx, app.RunRequest{
		RunID:   runID,
		ModelID: req.ModelID,
		Frame:   frame,
		Target:  target,
		Alpha:   req.Alpha,
		Order:   order,
	})
	if err != nil {
		s.logger.Warn("Diagnostics run for %s failed: %v", req.ModelID, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	msg := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Cause == nil {
		msg = appErr.Message
	}
	writeJSON(w, apperrors.HTTPStatus(code), ErrorResponse{Code: code, Message: msg})
}
