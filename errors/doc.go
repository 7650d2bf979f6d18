// Package errors provides the application error type shared by gofetch
// packages. AppError carries a machine-readable code, the HTTP status a
// service would answer with, and retryable detection, so request failures
// can be surfaced through an API without re-classification.
package errors
