package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"wallboard/app/apperrors"
	"wallboard/app/models"
	"wallboard/app/services"
)

// Helper methods shared by all controllers.

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sendError maps an error to its status and returns the stable kind plus a
// human-readable message. Internal detail is logged, never exposed.
func sendError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperrors.KindOf(err)
	status := apperrors.HTTPStatus(kind)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	sendJSON(w, status, map[string]string{
		"kind":  string(kind),
		"error": apperrors.MessageOf(err),
	})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		sendError(w, r, apperrors.Validation("invalid JSON: %v", err))
		return false
	}
	return true
}

// bearerUser resolves the optional Authorization header to a user; nil means
// the caller is anonymous.
func bearerUser(r *http.Request, auth *services.AuthService) *models.User {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil
	}
	return auth.UserFromToken(r.Context(), token)
}
