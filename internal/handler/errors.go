package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidSlotIndex  = "Invalid slot index"
	ErrMsgInvalidFilter     = "Invalid %s filter value '%s'"

	// User management error messages
	ErrMsgRegisterFailed    = "Failed to register player"
	ErrMsgGetCapacityFailed = "Failed to get backpack capacity"
	ErrMsgGetLevelFailed    = "Failed to get level"

	// Admin error messages
	ErrMsgAmountMustBePositive = "amount must be positive"
)

// Success messages for API responses
const (
	MsgCardLockUpdated   = "Card lock updated"
	MsgCurrencyGranted   = "Currency granted"
	MsgItemGranted       = "Item granted"
	MsgBackpackLeveledUp = "Backpack leveled up"
)
