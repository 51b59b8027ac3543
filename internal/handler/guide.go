package handler

import (
	"log/slog"
	"net/http"

	"github.com/arborhq/arbor/internal/service"
)

type GuideHandler struct {
	guideService *service.GuideService
}

func NewGuideHandler(guideService *service.GuideService) *GuideHandler {
	return &GuideHandler{guideService: guideService}
}

func (h *GuideHandler) List(w http.ResponseWriter, r *http.Request) {
	if tag := r.URL.Query().Get("tag"); tag != "" {
		guides, err := h.guideService.GuidesByTag(tag)
		if err != nil {
			slog.Error("failed to list guides by tag", "error", err, "tag", tag)
			respondError(w, http.StatusInternalServerError, "failed to load guides")
			return
		}
		respondJSON(w, http.StatusOK, guides)
		return
	}

	guides, err := h.guideService.Guides()
	if err != nil {
		slog.Error("failed to list guides", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load guides")
		return
	}

	respondJSON(w, http.StatusOK, guides)
}

func (h *GuideHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	guide, err := h.guideService.Guide(slug)
	if err != nil {
		respondError(w, http.StatusNotFound, "guide not found")
		return
	}

	respondJSON(w, http.StatusOK, guide)
}

func (h *GuideHandler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.guideService.Tags()
	if err != nil {
		slog.Error("failed to list guide tags", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load tags")
		return
	}

	respondJSON(w, http.StatusOK, tags)
}
