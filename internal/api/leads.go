package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"insurance-api/internal/common/validation"
	"insurance-api/internal/models"
)

func (s *Server) handleCaptureLead(w http.ResponseWriter, r *http.Request) {
	var lead models.Lead
	if err := s.decodeValidated(r, validation.LeadSchema, &lead); err != nil {
		s.errs.Respond(w, r, err)
		return
	}

	captured, err := s.leads.Capture(r.Context(), lead)
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, captured)
}

func (s *Server) handleListLeads(w http.ResponseWriter, r *http.Request) {
	all, err := s.leads.List(r.Context())
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	if all == nil {
		all = []models.Lead{}
	}
	s.respondJSON(w, http.StatusOK, all)
}

func (s *Server) handleUpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.errs.Respond(w, r, err)
		return
	}

	lead, err := s.leads.UpdateStatus(r.Context(), chi.URLParam(r, "id"), body.Status)
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, lead)
}
