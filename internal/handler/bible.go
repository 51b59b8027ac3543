package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/arborhq/arbor/internal/ctxkeys"
	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
	"github.com/arborhq/arbor/internal/service"
)

type BibleHandler struct {
	bibleService *service.BibleService
}

func NewBibleHandler(bibleService *service.BibleService) *BibleHandler {
	return &BibleHandler{bibleService: bibleService}
}

// DailyVerse returns today's verse. Lookup failures fall back to a static
// message inside the service, so this never errors.
func (h *BibleHandler) DailyVerse(w http.ResponseWriter, r *http.Request) {
	text := h.bibleService.DailyVerse(r.Context())
	respondJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (h *BibleHandler) LookupVerse(w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("reference")
	if reference == "" {
		respondError(w, http.StatusBadRequest, "reference query parameter is required")
		return
	}

	text := h.bibleService.LookupVerse(r.Context(), reference)
	respondJSON(w, http.StatusOK, map[string]string{
		"reference": reference,
		"text":      text,
	})
}

func (h *BibleHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Reference string `json:"reference"`
		Text      string `json:"text"`
		Note      string `json:"note"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.bibleService.CreateNote(r.Context(), user.ID, req.Reference, req.Text, req.Note)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("bible note created", "user_id", user.ID, "note_id", note.ID)
	respondJSON(w, http.StatusCreated, note)
}

func (h *BibleHandler) Notes(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var (
		notes []*model.BibleNote
		err   error
	)
	if r.URL.Query().Get("favorites") == "true" {
		notes, err = h.bibleService.Favorites(user.ID)
	} else {
		notes, err = h.bibleService.Notes(user.ID)
	}
	if err != nil {
		slog.Error("failed to list bible notes", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load notes")
		return
	}

	respondJSON(w, http.StatusOK, notes)
}

func (h *BibleHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	noteID := r.PathValue("id")

	var req struct {
		Reference string `json:"reference"`
		Text      string `json:"text"`
		Note      string `json:"note"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.bibleService.UpdateNote(user.ID, noteID, req.Reference, req.Text, req.Note)
	if err != nil {
		if errors.Is(err, repository.ErrBibleNoteNotFound) {
			respondError(w, http.StatusNotFound, "note not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, note)
}

func (h *BibleHandler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	noteID := r.PathValue("id")

	var req struct {
		Favorite bool `json:"favorite"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.bibleService.SetFavorite(user.ID, noteID, req.Favorite); err != nil {
		if errors.Is(err, repository.ErrBibleNoteNotFound) {
			respondError(w, http.StatusNotFound, "note not found")
			return
		}
		slog.Error("failed to update favorite", "error", err, "note_id", noteID)
		respondError(w, http.StatusInternalServerError, "failed to update note")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"favorite": req.Favorite})
}

func (h *BibleHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	noteID := r.PathValue("id")

	if err := h.bibleService.DeleteNote(user.ID, noteID); err != nil {
		if errors.Is(err, repository.ErrBibleNoteNotFound) {
			respondError(w, http.StatusNotFound, "note not found")
			return
		}
		slog.Error("failed to delete bible note", "error", err, "note_id", noteID)
		respondError(w, http.StatusInternalServerError, "failed to delete note")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
