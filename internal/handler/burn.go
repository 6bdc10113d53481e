package handler

import (
	"net/http"

	"github.com/fancards/fancards-go/internal/burn"
	"github.com/fancards/fancards-go/internal/logger"
)

// BurnHandler serves the two-step burn endpoints
type BurnHandler struct {
	service burn.Service
}

// NewBurnHandler creates a new burn handler
func NewBurnHandler(service burn.Service) *BurnHandler {
	return &BurnHandler{service: service}
}

// BurnRequest selects the cards to burn. An empty card_ids list targets the
// player's whole collection.
type BurnRequest struct {
	DiscordID string   `json:"discord_id" validate:"required"`
	CardIDs   []string `json:"card_ids"`
}

// HandlePreview computes burn rewards without destroying anything
func (h *BurnHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	var req BurnRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Preview burn"); err != nil {
		return
	}

	preview, err := h.service.Preview(r.Context(), req.DiscordID, req.CardIDs)
	if err != nil {
		respondServiceError(w, r, "preview burn", err)
		return
	}

	respondJSON(w, http.StatusOK, preview)
}

// HandleConfirm destroys the selected cards and credits the rewards
func (h *BurnHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	var req BurnRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Confirm burn"); err != nil {
		return
	}

	result, err := h.service.Confirm(r.Context(), req.DiscordID, req.CardIDs)
	if err != nil {
		respondServiceError(w, r, "confirm burn", err)
		return
	}

	logger.FromContext(r.Context()).Info("Burn confirmed via API",
		"discordID", req.DiscordID, "burned", result.Burned, "partial", result.Partial)
	respondJSON(w, http.StatusOK, result)
}
