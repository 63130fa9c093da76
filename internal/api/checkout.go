package api

import (
	"encoding/json"
	"net/http"
	"time"

	"insurance-api/internal/checkout"
	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/common/validation"
	"insurance-api/internal/models"
)

func (s *Server) handleCheckoutSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.checkouts.CreateSession(r.Context())
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkout.Request
	if err := s.decodeValidated(r, validation.CheckoutRequestSchema, &req); err != nil {
		s.errs.Respond(w, r, err)
		return
	}

	result, err := s.checkouts.Process(r.Context(), req)
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

type webhookRequest struct {
	Provider  string          `json:"provider"`
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId"`
	Payload   json.RawMessage `json:"payload"`
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	if err := decodeJSON(r, &req); err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	if req.Type == "" {
		s.errs.Respond(w, r, apperrors.NewValidationFailedError("missing event type"))
		return
	}

	event := models.PaymentEvent{
		Provider:   req.Provider,
		Type:       req.Type,
		SessionID:  req.SessionID,
		Payload:    req.Payload,
		ReceivedAt: time.Now().UTC(),
	}
	if event.Provider == "" {
		event.Provider = "simulated"
	}

	if err := s.policies.RecordPaymentEvent(r.Context(), event); err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
}
