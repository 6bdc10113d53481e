package progression

// ElevatedXPMultiplier doubles XP awards for elevated players
const ElevatedXPMultiplier = 2

// Error messages
const (
	ErrMsgInvalidXPAmountFmt     = "invalid xp amount: %d: %w"
	ErrMsgGetLevelStateFailed    = "failed to get level state: %w"
	ErrMsgUpdateLevelStateFailed = "failed to update level state: %w"
)

// Log messages
const (
	LogMsgPlayerLeveledUp = "Player leveled up"
)
