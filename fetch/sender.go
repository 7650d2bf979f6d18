package fetch

import "context"

// Credentials is the credential-inclusion mode passed to a Sender.
type Credentials string

const (
	// CredentialsDefault leaves credential handling to the Sender.
	CredentialsDefault Credentials = ""
	// CredentialsInclude asks the Sender to attach stored credentials.
	CredentialsInclude Credentials = "include"
)

// RequestSpec describes one network call. The abort signal is the ctx
// passed to Sender.Send.
type RequestSpec struct {
	Method      Method
	Headers     map[string]string
	Body        any
	Credentials Credentials
	// Extra holds transport-specific passthrough fields.
	Extra map[string]any
}

// Sender is the fetch-compatible network primitive. Send must return when
// ctx is cancelled; errors it returns are reported as network errors.
type Sender interface {
	Send(ctx context.Context, url string, spec *RequestSpec) (Response, error)
}

// SenderFunc adapts an ordinary function to the Sender interface.
type SenderFunc func(ctx context.Context, url string, spec *RequestSpec) (Response, error)

// Send calls f(ctx, url, spec).
func (f SenderFunc) Send(ctx context.Context, url string, spec *RequestSpec) (Response, error) {
	return f(ctx, url, spec)
}

// Environment describes runtime capabilities detected once at startup.
type Environment struct {
	// Browser is true for browser-like runtimes where credential inclusion
	// is meaningful.
	Browser bool
}
