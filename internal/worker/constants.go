package worker

import "time"

// DefaultSweepInterval is how often the janitor reclaims expired sessions
const DefaultSweepInterval = 30 * time.Second

// Log messages
const (
	LogMsgJanitorStarted  = "Drop janitor started"
	LogMsgJanitorStopping = "Drop janitor stopping"
	LogMsgJanitorStopped  = "Drop janitor stopped"
	LogMsgJanitorTimeout  = "Drop janitor shutdown timeout"
	LogMsgSessionsSwept   = "Expired drop sessions swept"
)
