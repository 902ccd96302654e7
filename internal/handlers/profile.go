package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/parla-app/parla-backend/internal/middleware"
	"github.com/parla-app/parla-backend/internal/models"
	"github.com/parla-app/parla-backend/internal/services"
)

// GetProfile returns the authenticated user's full profile record.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Profile.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, User: user})
}

// SaveEdit applies the full edit set from the account editor.
func (h *Handler) SaveEdit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req services.EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Profile.SaveEdit(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Profile saved successfully",
		User:    user,
	})
}

type checkUsernameRequest struct {
	Username string `json:"username"`
}

// CheckUsername answers the editor's live availability probe. Advisory
// only; the save re-validates.
func (h *Handler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req checkUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	status, err := h.Profile.CheckUsername(r.Context(), userID, req.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"username":  req.Username,
			"status":    status,
			"available": status == services.UsernameOK,
		},
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ChangePassword replaces the stored password hash after verifying the
// current password.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Profile.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Password changed successfully"})
}

// Onboarding completes the mandatory one-time profile form.
func (h *Handler) Onboarding(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req services.OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Profile.CompleteOnboarding(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Profile completed successfully",
		User:    user,
	})
}

// UpdateSettings applies preference changes.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req services.SettingsUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Profile.UpdateSettings(r.Context(), userID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Settings updated", User: user})
}

// StatsResponse is the progress block plus derived figures.
type StatsResponse struct {
	Progress models.Progress `json:"progress"`
	Accuracy int             `json:"accuracy"`
	Hidden   bool            `json:"hidden"`
}

// GetStats returns the learner's progress statistics. When the owner
// has hidden their stats, other users get only the hidden flag.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	targetID := r.URL.Query().Get("user_id")
	if targetID == "" {
		targetID = userID
	}

	user, err := h.Profile.Profile(r.Context(), targetID)
	if err != nil {
		writeError(w, err)
		return
	}

	if targetID != userID && user.PrivacyHideStats {
		writeJSON(w, http.StatusOK, Response{Success: true, Data: StatsResponse{Hidden: true}})
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data: StatsResponse{
			Progress: user.Progress,
			Accuracy: user.Progress.Accuracy(),
		},
	})
}

// GetMistakes returns the review list of wrongly answered questions.
func (h *Handler) GetMistakes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	mistakes, err := services.LoadMistakes(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to load mistakes", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: mistakes})
}

// GetDialCodes returns the phone dial codes offered by the phone input.
func (h *Handler) GetDialCodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: models.DialCodes})
}

// GetProvinces returns the provinces offered by the province dropdown.
func (h *Handler) GetProvinces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: models.ItalianProvinces})
}
