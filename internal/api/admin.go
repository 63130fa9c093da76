package api

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/models"
)

// Demo-grade credential check against the configured admin account. The
// session token in Redis with a TTL is the only hardening.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.errs.Respond(w, r, err)
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(body.Username), []byte(s.admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(body.Password), []byte(s.admin.Password)) == 1
	if !userOK || !passOK {
		s.errs.Respond(w, r, apperrors.NewUnauthorizedError("invalid credentials"))
		return
	}

	token := uuid.New().String()
	ttl := time.Duration(s.admin.SessionTTL) * time.Minute
	if err := s.store.CreateSession(r.Context(), token, body.Username, ttl); err != nil {
		s.errs.Respond(w, r, err)
		return
	}

	s.logger.Info("admin logged in", map[string]interface{}{"username": body.Username})
	s.respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteSession(r.Context(), bearerToken(r)); err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleGetViewPref(w http.ResponseWriter, r *http.Request) {
	pref, err := s.store.LoadViewPref(r.Context(), "table")
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"view": pref})
}

func (s *Server) handlePutViewPref(w http.ResponseWriter, r *http.Request) {
	var body struct {
		View string `json:"view"`
	}
	if err := decodeJSON(r, &body); err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	if body.View == "" {
		s.errs.Respond(w, r, apperrors.NewValidationFailedError("missing view"))
		return
	}

	if err := s.store.SaveViewPref(r.Context(), body.View); err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"view": body.View})
}

func (s *Server) handleListIntents(w http.ResponseWriter, r *http.Request) {
	all, err := s.intents.List(r.Context())
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, all)
}

func (s *Server) handleCreateIntent(w http.ResponseWriter, r *http.Request) {
	var intent models.Intent
	if err := decodeJSON(r, &intent); err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	if intent.Name == "" {
		s.errs.Respond(w, r, apperrors.NewValidationFailedError("missing intent name"))
		return
	}

	created, err := s.intents.Create(r.Context(), intent)
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateIntent(w http.ResponseWriter, r *http.Request) {
	var patch models.Intent
	if err := decodeJSON(r, &patch); err != nil {
		s.errs.Respond(w, r, err)
		return
	}

	updated, err := s.intents.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteIntent(w http.ResponseWriter, r *http.Request) {
	if err := s.intents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleDuplicateIntent(w http.ResponseWriter, r *http.Request) {
	copied, err := s.intents.Duplicate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, copied)
}

func (s *Server) handleToggleIntent(w http.ResponseWriter, r *http.Request) {
	toggled, err := s.intents.Toggle(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, toggled)
}

func (s *Server) handleImportIntents(w http.ResponseWriter, r *http.Request) {
	var incoming []models.Intent
	if err := decodeJSON(r, &incoming); err != nil {
		s.errs.Respond(w, r, err)
		return
	}

	merged, err := s.intents.Import(r.Context(), incoming)
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, merged)
}

func (s *Server) handleExportIntents(w http.ResponseWriter, r *http.Request) {
	exported, err := s.intents.Export(r.Context(), r.URL.Query().Get("id"))
	if err != nil {
		s.errs.Respond(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="intents.json"`)
	s.respondJSON(w, http.StatusOK, exported)
}
