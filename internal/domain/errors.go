package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Player errors
	ErrMsgPlayerNotFound = "player not found"
	ErrMsgPlayerExists   = "player already registered"

	// Card errors
	ErrMsgCardNotFound  = "card not found"
	ErrMsgCardLocked    = "card is locked"
	ErrMsgCardInSleeve  = "card is sleeved"
	ErrMsgTooValuable   = "card is too valuable to burn"
	ErrMsgDuplicateCard = "duplicate card id in request"

	// Drop errors
	ErrMsgDropNotFound   = "drop not found"
	ErrMsgDropExpired    = "drop has expired"
	ErrMsgAlreadyClaimed = "slot already claimed"
	ErrMsgBackpackFull   = "backpack is full"
	ErrMsgNothingToBurn  = "nothing to burn"

	// Economy errors
	ErrMsgInsufficientFunds    = "insufficient funds"
	ErrMsgInsufficientQuantity = "insufficient quantity"
	ErrMsgInvalidCurrency      = "invalid currency"
	ErrMsgInvalidItem          = "invalid item"

	// Catalog errors
	ErrMsgCharacterNotFound = "character not found"

	// Validation errors (used for partial matches)
	ErrMsgInvalidInput  = "invalid input"
	ErrMsgInvalidRarity = "invalid rarity"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Player errors
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)
	ErrPlayerExists   = errors.New(ErrMsgPlayerExists)

	// Card errors
	ErrCardNotFound  = errors.New(ErrMsgCardNotFound)
	ErrCardLocked    = errors.New(ErrMsgCardLocked)
	ErrCardInSleeve  = errors.New(ErrMsgCardInSleeve)
	ErrTooValuable   = errors.New(ErrMsgTooValuable)
	ErrDuplicateCard = errors.New(ErrMsgDuplicateCard)

	// Drop errors
	ErrDropNotFound   = errors.New(ErrMsgDropNotFound)
	ErrDropExpired    = errors.New(ErrMsgDropExpired)
	ErrAlreadyClaimed = errors.New(ErrMsgAlreadyClaimed)
	ErrBackpackFull   = errors.New(ErrMsgBackpackFull)
	ErrNothingToBurn  = errors.New(ErrMsgNothingToBurn)

	// Economy errors
	ErrInsufficientFunds    = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientQuantity = errors.New(ErrMsgInsufficientQuantity)
	ErrInvalidCurrency      = errors.New(ErrMsgInvalidCurrency)
	ErrInvalidItem          = errors.New(ErrMsgInvalidItem)

	// Catalog errors
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)

	// Validation errors
	ErrInvalidInput  = errors.New(ErrMsgInvalidInput)
	ErrInvalidRarity = errors.New(ErrMsgInvalidRarity)
)
