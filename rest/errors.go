package rest

import "github.com/kbukum/gofetch/fetch"

// REST error helpers delegate to fetch's error classification so callers
// don't need to import fetch for error checking.

// IsNotFound checks if the error is a 404 Not Found.
func IsNotFound(err error) bool { return fetch.IsNotFound(err) }

// IsAuth checks if the error is a 401/403 authentication error.
func IsAuth(err error) bool { return fetch.IsAuth(err) }

// IsServerError checks if the error is a 5xx server error.
func IsServerError(err error) bool { return fetch.IsServerError(err) }

// IsTimeout checks if the error is a timeout.
func IsTimeout(err error) bool { return fetch.IsTimeout(err) }

// IsAborted checks if the request was cancelled.
func IsAborted(err error) bool { return fetch.IsAborted(err) }
