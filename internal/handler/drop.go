package handler

import (
	"net/http"

	"github.com/fancards/fancards-go/internal/drop"
	"github.com/fancards/fancards-go/internal/logger"
)

// DropHandler serves the drop session endpoints
type DropHandler struct {
	service drop.Service
}

// NewDropHandler creates a new drop handler
func NewDropHandler(service drop.Service) *DropHandler {
	return &DropHandler{service: service}
}

// StartDropRequest identifies the player opening a drop
type StartDropRequest struct {
	DiscordID string `json:"discord_id" validate:"required"`
}

// HandleStartDrop opens a new drop session for the player
func (h *DropHandler) HandleStartDrop(w http.ResponseWriter, r *http.Request) {
	var req StartDropRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start drop"); err != nil {
		return
	}

	view, err := h.service.StartDrop(r.Context(), req.DiscordID)
	if err != nil {
		respondServiceError(w, r, "start drop", err)
		return
	}

	respondJSON(w, http.StatusCreated, view)
}

// HandleGetDrop returns the current state of a drop session
func (h *DropHandler) HandleGetDrop(w http.ResponseWriter, r *http.Request) {
	dropID, ok := GetQueryParam(r, w, "id")
	if !ok {
		return
	}

	view, err := h.service.GetDrop(r.Context(), dropID)
	if err != nil {
		respondServiceError(w, r, "get drop", err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// ClaimRequest is the payload for claiming one slot of a drop
type ClaimRequest struct {
	DiscordID string `json:"discord_id" validate:"required"`
	SlotIndex *int   `json:"slot_index" validate:"required,gte=0"`
}

// HandleClaim attempts to claim one slot of a drop for the player
func (h *DropHandler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	dropID, ok := GetQueryParam(r, w, "id")
	if !ok {
		return
	}

	var req ClaimRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Claim card"); err != nil {
		return
	}

	result, err := h.service.Claim(r.Context(), dropID, *req.SlotIndex, req.DiscordID)
	if err != nil {
		respondServiceError(w, r, "claim card", err)
		return
	}

	logger.FromContext(r.Context()).Info("Claim resolved via API",
		"dropID", dropID, "slotIndex", *req.SlotIndex, "trolled", result.Trolled)
	respondJSON(w, http.StatusOK, result)
}
