package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/models"
	"insurance-api/internal/policy"
)

func (s *Server) handleIssuePolicy(w http.ResponseWriter, r *http.Request) {
	var p models.Policy
	if err := decodeJSON(r, &p); err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	if p.PolicyID == "" {
		s.errs.Respond(w, r, apperrors.NewValidationFailedError("missing policyId"))
		return
	}
	if p.IssuedAt.IsZero() {
		p.IssuedAt = time.Now().UTC()
	}

	if err := s.policies.Issue(r.Context(), p); err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, p)
}

func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	policyID := chi.URLParam(r, "policyID")

	issued, err := s.policies.Get(r.Context(), policyID)
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}

	pdf, err := policy.RenderReceipt(*issued)
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="receipt-%s.pdf"`, policyID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		s.logger.Warn("receipt write failed", map[string]interface{}{"error": err.Error()})
	}
}
