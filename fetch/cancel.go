package fetch

import "context"

// CancelToken aborts the requests it is attached to. A token may be shared
// by several requests; cancelling it aborts all of them, and requests
// started after cancellation fail immediately.
type CancelToken struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
}

// NewCancelToken creates a token that has not been cancelled.
func NewCancelToken() *CancelToken {
	ctx, cancel := context.WithCancelCause(context.Background())
	return &CancelToken{ctx: ctx, cancel: cancel}
}

// Cancel aborts every request using the token. Calling it again has no effect.
func (t *CancelToken) Cancel() {
	t.cancel(ErrAborted)
}

// CancelWithReason aborts with a reason; the request error wraps both
// ErrAborted and reason.
func (t *CancelToken) CancelWithReason(reason error) {
	if reason == nil {
		t.Cancel()
		return
	}
	t.cancel(&abortError{reason: reason})
}

// Done returns the abort signal, closed once the token is cancelled.
func (t *CancelToken) Done() <-chan struct{} {
	return t.ctx.Done()
}

// Cancelled reports whether the token has been cancelled.
func (t *CancelToken) Cancelled() bool {
	return t.ctx.Err() != nil
}

// Err returns nil before cancellation and the abort cause afterwards.
func (t *CancelToken) Err() error {
	if t.ctx.Err() == nil {
		return nil
	}
	return context.Cause(t.ctx)
}

// bind returns a child of ctx that is cancelled when the token is.
func (t *CancelToken) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	child, cancel := context.WithCancelCause(ctx)
	stop := context.AfterFunc(t.ctx, func() {
		cancel(context.Cause(t.ctx))
	})
	return child, func() {
		stop()
		cancel(context.Canceled)
	}
}

type abortError struct {
	reason error
}

func (e *abortError) Error() string {
	return ErrAborted.Error() + ": " + e.reason.Error()
}

func (e *abortError) Unwrap() []error {
	return []error{ErrAborted, e.reason}
}
