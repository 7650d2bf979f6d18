// Package logger provides structured logging for gofetch using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. Request logs carry the
// request id together with the OpenTelemetry trace and span ids when a
// span is active.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("fetch")
//	log.Debug("dispatching request", logger.Fields(logger.FieldURL, url))
package logger
