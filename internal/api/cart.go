package api

import (
	"net/http"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/models"
)

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.store.LoadCart(r.Context())
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, cart)
}

func (s *Server) handlePutCart(w http.ResponseWriter, r *http.Request) {
	var cart models.Cart
	if err := decodeJSON(r, &cart); err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	if cart.Premium <= 0 {
		s.errs.Respond(w, r, apperrors.NewValidationFailedError("premium must be positive"))
		return
	}

	if err := s.store.SaveCart(r.Context(), cart); err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, cart)
}

func (s *Server) handleListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := s.store.ListPaymentMethods(r.Context())
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	if methods == nil {
		methods = []models.PaymentMethodSummary{}
	}
	s.respondJSON(w, http.StatusOK, methods)
}
