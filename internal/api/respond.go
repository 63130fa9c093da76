package api

import (
	"encoding/json"
	"io"
	"net/http"

	apperrors "insurance-api/internal/common/errors"
	"insurance-api/internal/common/validation"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Error("failed to encode response", map[string]interface{}{"error": err.Error()})
		}
	}
}

// decodeValidated reads the body, validates it against the schema, and then
// unmarshals it into dst. Validation runs on the raw document so schema
// violations are reported before any Go-side defaulting.
func (s *Server) decodeValidated(r *http.Request, schema map[string]interface{}, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return apperrors.NewValidationFailedError("unreadable request body")
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return apperrors.NewValidationFailedError("request body must be a JSON object")
	}
	if err := validation.Validate(raw, schema); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.NewValidationFailedError("request body does not match the expected shape")
	}
	return nil
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationFailedError("invalid JSON body")
	}
	return nil
}
