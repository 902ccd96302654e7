package handlers

import (
	"io"
	"net/http"

	"github.com/parla-app/parla-backend/internal/middleware"
	"github.com/parla-app/parla-backend/internal/services"
	"github.com/parla-app/parla-backend/pkg/utils"
)

// UploadAvatar handles avatar image uploads (multipart field "file").
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Parse multipart form; allow a little headroom over the image cap
	if err := r.ParseMultipartForm(services.MaxAvatarBytes + 1<<20); err != nil {
		http.Error(w, "Failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "No file provided: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	// Cheap early rejection before reading the whole file
	if fileHeader.Size > services.MaxAvatarBytes {
		writeError(w, &utils.ValidationError{
			Field:   "avatar",
			Code:    utils.CodeSizeExceeded,
			Message: "Image must be smaller than 5 MB",
		})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	avatar, err := h.Profile.UpdateAvatar(r.Context(), userID, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Avatar updated successfully",
		Data:    map[string]string{"avatar": avatar},
	})
}

// DeleteAvatar clears the user's avatar.
func (h *Handler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.Profile.DeleteAvatar(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Avatar removed"})
}
