package api

import (
	"io"
	"net/http"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/common/metrics"
	"insurance-api/internal/common/validation"
	"insurance-api/internal/models"
	"insurance-api/internal/pricing"
)

// maxUploadBytes caps rate-table uploads. Real rate sheets are a few KB.
const maxUploadBytes = 5 << 20

type quoteResponse struct {
	Premium   int                    `json:"premium"`
	Breakdown []models.BreakdownLine `json:"breakdown"`
	Notes     string                 `json:"notes,omitempty"`
	Source    string                 `json:"source"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var req models.QuoteRequest
	if err := s.decodeValidated(r, validation.QuoteRequestSchema, &req); err != nil {
		metrics.QuotesFailed.WithLabelValues(string(apperrors.CodeOf(err))).Inc()
		s.errs.Respond(w, r, err)
		return
	}

	outcome, err := s.quotes.Execute(r.Context(), req)
	if err != nil {
		metrics.QuotesFailed.WithLabelValues(string(apperrors.CodeOf(err))).Inc()
		s.errs.Respond(w, r, apperrors.NewQuoteComputationFailedError(err.Error()))
		return
	}

	s.respondJSON(w, http.StatusOK, quoteResponse{
		Premium:   outcome.Result.Premium,
		Breakdown: outcome.Result.Breakdown,
		Notes:     outcome.Result.Notes,
		Source:    outcome.Source,
	})
}

func (s *Server) handleUploadRateTable(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errs.Respond(w, r, apperrors.NewValidationFailedError("expected a multipart upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.errs.Respond(w, r, apperrors.NewValidationFailedError("missing file field"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.errs.Respond(w, r, apperrors.NewValidationFailedError("unreadable upload"))
		return
	}

	table, err := pricing.ParseUpload(header.Filename, data)
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}

	if err := s.store.SaveRateTable(r.Context(), table); err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	metrics.RateTableRows.Set(float64(len(table.Rows)))

	s.logger.Info("rate table uploaded", map[string]interface{}{
		"filename": header.Filename,
		"rows":     len(table.Rows),
	})
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"rows": len(table.Rows)})
}

func (s *Server) handleClearRateTable(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ClearRateTable(r.Context()); err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	metrics.RateTableRows.Set(0)
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
