package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/parla-app/parla-backend/internal/services"
	"github.com/parla-app/parla-backend/pkg/utils"
)

// Handler bundles the services the HTTP layer delegates to.
type Handler struct {
	Profile *services.ProfileService
	Store   services.UserStore
}

func New(profile *services.ProfileService, store services.UserStore) *Handler {
	return &Handler{Profile: profile, Store: store}
}

// Response is the JSON envelope shared by all endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Days    int         `json:"days_remaining,omitempty"`
	User    interface{} `json:"user,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// writeError maps a service error to an HTTP response. Validation
// rejections carry their code and message; anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	var verr *utils.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, validationStatus(verr.Code), Response{
			Success: false,
			Message: verr.Message,
			Code:    verr.Code,
			Days:    verr.Days,
		})
		return
	}
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func validationStatus(code string) int {
	switch code {
	case utils.CodeUsernameTaken:
		return http.StatusConflict
	case utils.CodeCredentialInvalid:
		return http.StatusUnauthorized
	case utils.CodeRecordNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
