package domain

// LevelChangeEvent describes the outcome of applying XP to a player.
type LevelChangeEvent struct {
	PlayerID      string `json:"player_id"`
	PreviousLevel int    `json:"previous_level"`
	NewLevel      int    `json:"new_level"`
	XPGained      int    `json:"xp_gained"`
	LeveledUp     bool   `json:"leveled_up"`
	ReachedCap    bool   `json:"reached_cap"`
}

// RequiredXP returns the XP needed to advance from the given level to
// the next. The curve is piecewise quadratic, steepening at levels 16
// and 31.
func RequiredXP(level int) int {
	switch {
	case level < 16:
		return level*level + 42
	case level < 31:
		return int(2.5*float64(level*level) - 40.5*float64(level) + 360)
	default:
		return int(4.5*float64(level*level) - 162.5*float64(level) + 2220)
	}
}
