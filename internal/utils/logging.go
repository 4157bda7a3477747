package utils

import "log"

// InitLogging initializes logging
func InitLogging(level string) {
	// Set log flags, level-based filtering
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	// Expand with structured logging (e.g., zap) for production
}
