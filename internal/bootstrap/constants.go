package bootstrap

import "time"

// Database pool sizing
const (
	DBMaxConnections   = 10
	DBMaxConnIdleTime  = 5 * time.Minute
	DBMaxConnLifetime  = time.Hour
	MigrationTimeout   = time.Minute
	RecoveryRunTimeout = 30 * time.Second
)

// Shutdown messages
const (
	LogMsgShuttingDownServer   = "Shutting down server"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgShutdownComplete     = "Shutdown complete"
)
