// Package logger provides structured logging for the gallery service using
// zerolog.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "console"
//
// # Usage
//
//	log := logger.NewDefault("gallery").WithComponent("resolver")
//	log.Warn("object missing", logger.Fields(logger.FieldPath, path))
package logger
