package handler

import (
	"net/http"
	"strings"

	"github.com/fancards/fancards-go/internal/domain"
	"github.com/fancards/fancards-go/internal/economy"
	"github.com/fancards/fancards-go/internal/logger"
	"github.com/fancards/fancards-go/internal/user"
)

// EconomyHandler serves balance and inventory reads plus admin grants
type EconomyHandler struct {
	service economy.Service
	users   user.Service
}

// NewEconomyHandler creates a new economy handler
func NewEconomyHandler(service economy.Service, users user.Service) *EconomyHandler {
	return &EconomyHandler{service: service, users: users}
}

// HandleGetBalance returns a player's currency balances
func (h *EconomyHandler) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	discordID, ok := GetQueryParam(r, w, "discord_id")
	if !ok {
		return
	}

	player, err := h.users.GetByDiscordID(r.Context(), discordID)
	if err != nil {
		respondServiceError(w, r, "get balance", err)
		return
	}

	balance, err := h.service.GetBalance(r.Context(), player.InternalID)
	if err != nil {
		respondServiceError(w, r, "get balance", err)
		return
	}

	respondJSON(w, http.StatusOK, balance)
}

// HandleGetInventory returns a player's item inventory
func (h *EconomyHandler) HandleGetInventory(w http.ResponseWriter, r *http.Request) {
	discordID, ok := GetQueryParam(r, w, "discord_id")
	if !ok {
		return
	}

	player, err := h.users.GetByDiscordID(r.Context(), discordID)
	if err != nil {
		respondServiceError(w, r, "get inventory", err)
		return
	}

	items, err := h.service.GetItems(r.Context(), player.InternalID)
	if err != nil {
		respondServiceError(w, r, "get inventory", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// GrantCurrencyRequest credits currency to a player
type GrantCurrencyRequest struct {
	DiscordID string `json:"discord_id" validate:"required"`
	Currency  string `json:"currency" validate:"required"`
	Amount    int    `json:"amount" validate:"required,min=1"`
}

// HandleGrantCurrency credits currency to a player's balance
func (h *EconomyHandler) HandleGrantCurrency(w http.ResponseWriter, r *http.Request) {
	var req GrantCurrencyRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Grant currency"); err != nil {
		return
	}

	player, err := h.users.GetByDiscordID(r.Context(), req.DiscordID)
	if err != nil {
		respondServiceError(w, r, "grant currency", err)
		return
	}

	currency := domain.Currency(strings.ToLower(req.Currency))
	if err := h.service.Grant(r.Context(), player.InternalID, currency, req.Amount); err != nil {
		respondServiceError(w, r, "grant currency", err)
		return
	}

	logger.FromContext(r.Context()).Info("Currency granted via admin API",
		"playerID", player.InternalID, "currency", currency, "amount", req.Amount)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCurrencyGranted})
}

// GrantItemRequest credits items to a player
type GrantItemRequest struct {
	DiscordID string `json:"discord_id" validate:"required"`
	ItemName  string `json:"item_name" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// HandleGrantItem adds items to a player's inventory
func (h *EconomyHandler) HandleGrantItem(w http.ResponseWriter, r *http.Request) {
	var req GrantItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Grant item"); err != nil {
		return
	}

	player, err := h.users.GetByDiscordID(r.Context(), req.DiscordID)
	if err != nil {
		respondServiceError(w, r, "grant item", err)
		return
	}

	if err := h.service.GrantItem(r.Context(), player.InternalID, req.ItemName, req.Quantity); err != nil {
		respondServiceError(w, r, "grant item", err)
		return
	}

	logger.FromContext(r.Context()).Info("Item granted via admin API",
		"playerID", player.InternalID, "item", req.ItemName, "quantity", req.Quantity)
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgItemGranted})
}
