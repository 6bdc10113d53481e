package handler

import (
	"net/http"

	"github.com/fancards/fancards-go/internal/logger"
	"github.com/fancards/fancards-go/internal/progression"
	"github.com/fancards/fancards-go/internal/user"
)

// RegisterRequest is the payload for creating a player account
type RegisterRequest struct {
	DiscordID string `json:"discord_id" validate:"required"`
	Username  string `json:"username" validate:"required,max=64"`
}

// HandleRegisterUser creates a new player account
func HandleRegisterUser(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register player"); err != nil {
			return
		}

		player, err := userService.Register(r.Context(), req.DiscordID, req.Username)
		if err != nil {
			respondServiceError(w, r, "register player", err)
			return
		}

		logger.FromContext(r.Context()).Info("Player registered via API",
			"discordID", req.DiscordID, "playerID", player.InternalID)
		respondJSON(w, http.StatusCreated, player)
	}
}

// HandleGetUser returns a player's account by Discord ID
func HandleGetUser(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discordID, ok := GetQueryParam(r, w, "discord_id")
		if !ok {
			return
		}

		player, err := userService.GetByDiscordID(r.Context(), discordID)
		if err != nil {
			respondServiceError(w, r, "get player", err)
			return
		}

		respondJSON(w, http.StatusOK, player)
	}
}

// HandleGetCapacity reports backpack usage for a player
func HandleGetCapacity(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discordID, ok := GetQueryParam(r, w, "discord_id")
		if !ok {
			return
		}

		player, err := userService.GetByDiscordID(r.Context(), discordID)
		if err != nil {
			respondServiceError(w, r, "get capacity", err)
			return
		}

		status, err := userService.GetCapacity(r.Context(), player.InternalID)
		if err != nil {
			respondServiceError(w, r, "get capacity", err)
			return
		}

		respondJSON(w, http.StatusOK, status)
	}
}

// BackpackLevelRequest identifies the player whose backpack to upgrade
type BackpackLevelRequest struct {
	DiscordID string `json:"discord_id" validate:"required"`
}

// HandleAddBackpackLevel raises a player's backpack level by one
func HandleAddBackpackLevel(userService user.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BackpackLevelRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add backpack level"); err != nil {
			return
		}

		player, err := userService.GetByDiscordID(r.Context(), req.DiscordID)
		if err != nil {
			respondServiceError(w, r, "add backpack level", err)
			return
		}

		newLevel, err := userService.AddBackpackLevel(r.Context(), player.InternalID)
		if err != nil {
			respondServiceError(w, r, "add backpack level", err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message":        MsgBackpackLeveledUp,
			"backpack_level": newLevel,
		})
	}
}

// HandleGetLevel returns a player's level state
func HandleGetLevel(userService user.Service, progressionService progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		discordID, ok := GetQueryParam(r, w, "discord_id")
		if !ok {
			return
		}

		player, err := userService.GetByDiscordID(r.Context(), discordID)
		if err != nil {
			respondServiceError(w, r, "get level", err)
			return
		}

		state, err := progressionService.GetLevelState(r.Context(), player.InternalID)
		if err != nil {
			respondServiceError(w, r, "get level", err)
			return
		}

		respondJSON(w, http.StatusOK, state)
	}
}
