package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/logger"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body into req and validates it.
// req should already carry any defaults for omitted fields.
//
// If this function returns an error, the HTTP response has already been written and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, action string) error {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, LogFieldAction, action, LogFieldError, err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	log.Debug(LogMsgRequestDecoded, LogFieldAction, action)

	if err := GetValidator().ValidateStruct(req); err != nil {
		log.Warn(LogMsgValidationFailed, LogFieldAction, action, LogFieldError, err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// playerParam returns the {player} path parameter. If it is missing the
// response has already been written.
func playerParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	ref := chi.URLParam(r, "player")
	if ref == "" || len(ref) > MaxPlayerRefLen {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidInputError)
		return "", false
	}
	return ref, true
}

// normalizeTags trims tags and drops empty ones.
func normalizeTags(tags []domain.Tag) []domain.Tag {
	out := make([]domain.Tag, 0, len(tags))
	for _, tag := range tags {
		if t := domain.NormalizeTag(string(tag)); !t.IsEmpty() {
			out = append(out, t)
		}
	}
	return out
}
