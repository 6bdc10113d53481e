package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fancards/fancards-go/internal/card"
	"github.com/fancards/fancards-go/internal/domain"
)

// CardHandler serves the collection endpoints
type CardHandler struct {
	collection card.CollectionService
}

// NewCardHandler creates a new card handler
func NewCardHandler(collection card.CollectionService) *CardHandler {
	return &CardHandler{collection: collection}
}

// CollectionResponse wraps a filtered collection listing
type CollectionResponse struct {
	Cards []domain.Card `json:"cards"`
	Count int           `json:"count"`
}

// HandleGetCollection lists a player's cards, most valuable first
func (h *CardHandler) HandleGetCollection(w http.ResponseWriter, r *http.Request) {
	discordID, ok := GetQueryParam(r, w, "discord_id")
	if !ok {
		return
	}

	filters, err := parseCollectionFilters(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	cards, err := h.collection.List(r.Context(), discordID, filters)
	if err != nil {
		respondServiceError(w, r, "get collection", err)
		return
	}

	respondJSON(w, http.StatusOK, CollectionResponse{Cards: cards, Count: len(cards)})
}

// HandleViewCard shows one card in detail. Without a card_id parameter the
// most recently acquired card is shown.
func (h *CardHandler) HandleViewCard(w http.ResponseWriter, r *http.Request) {
	discordID, ok := GetQueryParam(r, w, "discord_id")
	if !ok {
		return
	}
	cardID := GetOptionalQueryParam(r, "card_id", "")

	view, err := h.collection.ViewCard(r.Context(), discordID, cardID)
	if err != nil {
		respondServiceError(w, r, "view card", err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// CardLockRequest toggles burn protection on one card
type CardLockRequest struct {
	DiscordID string `json:"discord_id" validate:"required"`
	CardID    string `json:"card_id" validate:"required"`
	Locked    *bool  `json:"locked" validate:"required"`
}

// HandleSetCardLock locks or unlocks a card against burning
func (h *CardHandler) HandleSetCardLock(w http.ResponseWriter, r *http.Request) {
	var req CardLockRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Set card lock"); err != nil {
		return
	}

	if err := h.collection.SetLocked(r.Context(), req.DiscordID, req.CardID, *req.Locked); err != nil {
		respondServiceError(w, r, "set card lock", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCardLockUpdated})
}

// parseCollectionFilters builds collection filters from query parameters.
// Every filter is optional; an unparseable value is a client error.
func parseCollectionFilters(r *http.Request) (card.Filters, error) {
	var filters card.Filters

	if v := r.URL.Query().Get("rarity"); v != "" {
		rarity := domain.Rarity(strings.ToLower(v))
		if !rarity.Valid() {
			return filters, fmt.Errorf(ErrMsgInvalidFilter, "rarity", v)
		}
		filters.Rarity = &rarity
	}
	if v := r.URL.Query().Get("condition"); v != "" {
		condition := domain.Condition(strings.ToLower(v))
		if !condition.Valid() {
			return filters, fmt.Errorf(ErrMsgInvalidFilter, "condition", v)
		}
		filters.Condition = &condition
	}
	for name, target := range map[string]**bool{
		"shiny":   &filters.Shiny,
		"locked":  &filters.Locked,
		"sleeved": &filters.InSleeve,
	} {
		if v := r.URL.Query().Get(name); v != "" {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return filters, fmt.Errorf(ErrMsgInvalidFilter, name, v)
			}
			*target = &parsed
		}
	}

	return filters, nil
}
