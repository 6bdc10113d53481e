package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/fancards/fancards-go/internal/cooldown"
	"github.com/fancards/fancards-go/internal/domain"
	"github.com/fancards/fancards-go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// bufferPool reduces allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode to the buffer first; headers are already sent so an encode
	// failure can only be logged.
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// HTTP response.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error("Service call failed", "operation", opName, "error", err)
	status, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, status, userMsg)
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	// Player messages
	ErrMsgPlayerNotFoundError  = "Player not found. Register first."
	ErrMsgPlayerExistsError    = "You are already registered"
	ErrMsgBackpackFullError    = "Your backpack is full. Level it up or burn some cards."

	// Drop and claim messages
	ErrMsgDropNotFoundError = "That drop does not exist"
	ErrMsgDropExpiredError  = "That drop has expired"
	ErrMsgSlotClaimedError  = "Someone beat you to that card"

	// ErrMsgOnCooldownFmt takes the whole seconds until the action is
	// available again.
	ErrMsgOnCooldownFmt = "On cooldown. Try again in %ds"

	// Card messages
	ErrMsgCardNotFoundError = "Card not found"
	ErrMsgCardLockedError   = "That card is locked"
	ErrMsgCardSleevedError  = "That card is in a sleeve"
	ErrMsgTooValuableError  = "That card is too valuable to burn"
	ErrMsgDuplicateCardErr  = "Duplicate card in request"
	ErrMsgNothingToBurnErr  = "Nothing to burn"

	// Economy messages
	ErrMsgNotEnoughFundsError = "Not enough funds"
	ErrMsgNotEnoughItemsError = "Not enough items"
	ErrMsgInvalidCurrencyErr  = "Invalid currency"

	// Catalog messages
	ErrMsgCharacterNotFoundErr = "Character not found"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	// Cooldown rejections carry the remaining wait, so they are matched
	// structurally rather than by sentinel.
	var cdErr cooldown.ErrOnCooldown
	if errors.As(err, &cdErr) {
		seconds := int((cdErr.Remaining + time.Second - 1) / time.Second)
		return http.StatusTooManyRequests, fmt.Sprintf(ErrMsgOnCooldownFmt, seconds)
	}

	switch {
	case errors.Is(err, domain.ErrPlayerNotFound):
		return http.StatusNotFound, ErrMsgPlayerNotFoundError
	case errors.Is(err, domain.ErrPlayerExists):
		return http.StatusConflict, ErrMsgPlayerExistsError
	case errors.Is(err, domain.ErrBackpackFull):
		return http.StatusConflict, ErrMsgBackpackFullError
	case errors.Is(err, domain.ErrDropNotFound):
		return http.StatusNotFound, ErrMsgDropNotFoundError
	case errors.Is(err, domain.ErrDropExpired):
		return http.StatusConflict, ErrMsgDropExpiredError
	case errors.Is(err, domain.ErrAlreadyClaimed):
		return http.StatusConflict, ErrMsgSlotClaimedError
	case errors.Is(err, domain.ErrCardNotFound):
		return http.StatusNotFound, ErrMsgCardNotFoundError
	case errors.Is(err, domain.ErrCardLocked):
		return http.StatusForbidden, ErrMsgCardLockedError
	case errors.Is(err, domain.ErrCardInSleeve):
		return http.StatusForbidden, ErrMsgCardSleevedError
	case errors.Is(err, domain.ErrTooValuable):
		return http.StatusForbidden, ErrMsgTooValuableError
	case errors.Is(err, domain.ErrDuplicateCard):
		return http.StatusBadRequest, ErrMsgDuplicateCardErr
	case errors.Is(err, domain.ErrNothingToBurn):
		return http.StatusBadRequest, ErrMsgNothingToBurnErr
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughFundsError
	case errors.Is(err, domain.ErrInsufficientQuantity):
		return http.StatusBadRequest, ErrMsgNotEnoughItemsError
	case errors.Is(err, domain.ErrInvalidCurrency):
		return http.StatusBadRequest, ErrMsgInvalidCurrencyErr
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, ErrMsgCharacterNotFoundErr
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidRarity),
		errors.Is(err, domain.ErrInvalidItem):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
