package economy

// ==================== Error Messages ====================

// Formatted error messages for validation
const (
	ErrMsgInvalidQuantityFmt    = "invalid quantity: %d: %w"
	ErrMsgQuantityExceedsMaxFmt = "quantity %d exceeds maximum allowed (%d): %w"
)

// Database operation error messages
const (
	ErrMsgGetBalanceFailed  = "failed to get balance: %w"
	ErrMsgAddCurrencyFailed = "failed to update currency: %w"
	ErrMsgAddItemFailed     = "failed to add item: %w"
	ErrMsgConsumeItemFailed = "failed to consume item: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgCurrencyGranted = "Currency granted"
	LogMsgCurrencySpent   = "Currency spent"
	LogMsgItemGranted     = "Item granted"
	LogMsgItemConsumed    = "Item consumed"
)
