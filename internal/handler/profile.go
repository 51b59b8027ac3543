package handler

import (
	"log/slog"
	"net/http"

	"github.com/arborhq/arbor/internal/ctxkeys"
	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/service"
	"github.com/arborhq/arbor/internal/validation"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	fileService    *service.FileService
}

func NewProfileHandler(profileService *service.ProfileService, fileService *service.FileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, fileService: fileService}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	profile, err := h.profileService.ByUserID(user.ID)
	if err != nil {
		slog.Error("failed to load profile", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Name     string `json:"name"`
		Surname  string `json:"surname"`
		Birthday string `json:"birthday"`
		Career   string `json:"career"`
		Bio      string `json:"bio"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.profileService.Update(user.ID, service.ProfileUpdate{
		Name:     req.Name,
		Surname:  req.Surname,
		Birthday: req.Birthday,
		Career:   req.Career,
		Bio:      req.Bio,
	})
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) BecomeMentor(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	profile, err := h.profileService.BecomeMentor(user.ID)
	if err != nil {
		slog.Error("failed to grant mentor role", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to update role")
		return
	}

	slog.Info("user became mentor", "user_id", user.ID)
	respondJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := r.ParseMultipartForm(validation.ImageConstraints.MaxSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid upload")
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		respondError(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Error("failed to close uploaded file", "error", closeErr)
		}
	}()

	if err := validation.ValidateFile(header, validation.ImageConstraints); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Replace any existing avatar before storing the new one
	if err := h.fileService.DeleteUserAvatar(user.ID); err != nil {
		slog.Warn("failed to remove previous avatar", "error", err, "user_id", user.ID)
	}

	uploaded, err := h.fileService.Upload(user.ID, "user", user.ID, model.FileTypeAvatar, file, header)
	if err != nil {
		slog.Error("avatar upload failed", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to upload avatar")
		return
	}

	slog.Info("avatar uploaded", "user_id", user.ID, "file_id", uploaded.ID)
	respondJSON(w, http.StatusCreated, map[string]string{
		"id":  uploaded.ID,
		"url": h.fileService.URL(uploaded),
	})
}

func (h *ProfileHandler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.fileService.DeleteUserAvatar(user.ID); err != nil {
		slog.Error("avatar deletion failed", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to delete avatar")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
