package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/arborhq/arbor/internal/ctxkeys"
	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/repository"
	"github.com/arborhq/arbor/internal/service"
)

type QuoteHandler struct {
	quoteService *service.QuoteService
}

func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// Daily returns today's quote. The service caches it per calendar day and
// falls back to a static quote when generation fails, so this never errors.
func (h *QuoteHandler) Daily(w http.ResponseWriter, r *http.Request) {
	quote := h.quoteService.DailyQuote(r.Context())
	respondJSON(w, http.StatusOK, quote)
}

func (h *QuoteHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Text   string `json:"text"`
		Author string `json:"author"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "quote text is required")
		return
	}

	saved, err := h.quoteService.Save(user.ID, model.Quote{Text: req.Text, Author: req.Author})
	if err != nil {
		slog.Error("failed to save quote", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to save quote")
		return
	}

	respondJSON(w, http.StatusCreated, saved)
}

func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	quotes, err := h.quoteService.SavedQuotes(user.ID)
	if err != nil {
		slog.Error("failed to list saved quotes", "error", err, "user_id", user.ID)
		respondError(w, http.StatusInternalServerError, "failed to load quotes")
		return
	}

	respondJSON(w, http.StatusOK, quotes)
}

func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	quoteID := r.PathValue("id")

	if err := h.quoteService.Delete(user.ID, quoteID); err != nil {
		if errors.Is(err, repository.ErrQuoteNotFound) {
			respondError(w, http.StatusNotFound, "quote not found")
			return
		}
		slog.Error("failed to delete quote", "error", err, "quote_id", quoteID)
		respondError(w, http.StatusInternalServerError, "failed to delete quote")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
