package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/gofetch/logger"
	"github.com/kbukum/gofetch/observability"
)

const spanRequest = "fetch.request"

// call carries per-request bookkeeping for logging, tracing and metrics.
type call struct {
	id     string
	start  time.Time
	method Method
	url    string
	status int
	resp   Response
	log    *logger.Logger
}

// Reply is the outcome of Do: the final value and the raw response it was
// decoded from. Response is nil when no response was received.
type Reply struct {
	Value    any
	Response Response
}

type sendResult struct {
	resp Response
	err  error
}

// Request performs one request. The effective configuration is the client
// defaults merged with opts. On success it returns the decoded body (or the
// response interceptor's output); on failure it returns an *Error unless an
// error interceptor resolved or replaced it.
func (c *Client) Request(ctx context.Context, opts Config) (any, error) {
	reply, err := c.Do(ctx, opts)
	return reply.Value, err
}

// Do performs a request like Request and also returns the raw response.
func (c *Client) Do(ctx context.Context, opts Config) (Reply, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cl := &call{id: uuid.NewString(), start: time.Now()}
	cl.log = c.log.WithFields(logger.Fields(logger.FieldRequestID, cl.id))

	ctx, span := c.tracer.Start(ctx, spanRequest, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrRequestID, cl.id)

	if c.metrics != nil {
		c.metrics.RecordRequestStart(ctx)
	}

	result, err := c.execute(ctx, MergeConfig(c.defaults, opts), cl)

	elapsed := time.Since(cl.start)
	status := "error"
	if cl.status > 0 {
		status = strconv.Itoa(cl.status)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	if c.metrics != nil {
		c.metrics.RecordRequestEnd(ctx, string(cl.method), status, elapsed)
	}
	cl.log.Debug("request finished", logger.Fields(
		logger.FieldStatus, status,
		logger.FieldDuration, elapsed.Milliseconds(),
		logger.FieldMethod, cl.method,
		logger.FieldURL, cl.url,
	))
	return Reply{Value: result, Response: cl.resp}, err
}

func (c *Client) execute(ctx context.Context, cfg Config, cl *call) (any, error) {
	onError := cfg.ErrorInterceptor

	if cfg.RequestInterceptor != nil {
		next, err := cfg.RequestInterceptor(ctx, cfg)
		if err != nil {
			return c.reject(ctx, cl, onError, err)
		}
		cfg = next
		onError = cfg.ErrorInterceptor
	}

	if cfg.URL == "" {
		err := NewInvalidRequestError("url is required")
		c.fail(ctx, cl, err)
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return c.reject(ctx, cl, onError, NewInvalidRequestError(err.Error()))
	}

	cl.method = cfg.Method
	if cl.method == "" {
		cl.method = MethodGet
	}
	cl.url = BuildURL(cfg.URL, cfg.BaseURL, cfg.Params, cfg.ParamsSerializer)
	observability.SetSpanAttribute(ctx, attrMethod, string(cl.method))
	observability.SetSpanAttribute(ctx, attrURL, cl.url)

	spec, err := c.buildSpec(&cfg, cl.method)
	if err != nil {
		return c.reject(ctx, cl, onError, err)
	}

	resp, err := c.dispatch(ctx, &cfg, cl, spec)
	if err != nil {
		return c.reject(ctx, cl, onError, err)
	}
	cl.resp = resp
	cl.status = resp.StatusCode()
	observability.SetSpanAttribute(ctx, attrStatus, cl.status)

	if !resp.OK() {
		return c.reject(ctx, cl, onError, NewHTTPStatusError(resp))
	}

	var result any
	if hasContent(resp, cl.method) {
		mode := cfg.ResponseType
		if mode == "" {
			mode = ResponseJSON
		}
		result, err = decode(resp, mode, cfg.Result)
		if err != nil {
			return c.reject(ctx, cl, onError, NewDecodeError(mode, err))
		}
	}

	if cfg.ResponseInterceptor != nil {
		result, err = cfg.ResponseInterceptor(ctx, result)
		if err != nil {
			return c.reject(ctx, cl, onError, err)
		}
	}
	return result, nil
}

// buildSpec resolves headers, body and credentials for the network call.
func (c *Client) buildSpec(cfg *Config, method Method) (*RequestSpec, error) {
	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}

	body := cfg.Data
	switch data := cfg.Data.(type) {
	case *FormData:
		// The sender sets the multipart boundary.
		deleteHeader(headers, headerContentType)
	case nil, []byte, io.Reader:
	default:
		if method.hasBody() && isJSONContent(headers) {
			b, err := json.Marshal(data)
			if err != nil {
				return nil, &Error{
					Code:    ErrCodeInvalidRequest,
					Message: "encode json body: " + err.Error(),
					Err:     err,
				}
			}
			body = b
		}
	}

	spec := &RequestSpec{
		Method:  method,
		Headers: headers,
		Body:    body,
	}
	if cfg.credentials() && c.env.Browser {
		spec.Credentials = CredentialsInclude
	}
	if cfg.Extra != nil {
		spec.Extra = DeepMerge(nil, cfg.Extra)
	}
	return spec, nil
}

// dispatch races the sender against cancellation and the timeout. Both
// signals share one context, so the losing transfer is aborted as well.
func (c *Client) dispatch(ctx context.Context, cfg *Config, cl *call, spec *RequestSpec) (Response, error) {
	if tok := cfg.CancelToken; tok != nil {
		if err := tok.Err(); err != nil {
			return nil, NewNetworkError(err)
		}
		var stop context.CancelFunc
		ctx, stop = tok.bind(ctx)
		defer stop()
	}

	timeout := cfg.effectiveTimeout()
	if timeout > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeoutCause(ctx, timeout, errTimeout)
		defer stop()
	}

	if ctx.Err() != nil {
		return nil, classify(ctx, timeout, ctx.Err())
	}

	cl.log.Debug("dispatching request", logger.Fields(
		logger.FieldMethod, cl.method,
		logger.FieldURL, cl.url,
	))

	done := make(chan sendResult, 1)
	go func() {
		resp, err := c.sender.Send(ctx, cl.url, spec)
		done <- sendResult{resp: resp, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, classify(ctx, timeout, r.err)
		}
		if r.resp == nil {
			return nil, NewNetworkError(errors.New("sender returned no response"))
		}
		return r.resp, nil
	case <-ctx.Done():
		return nil, classify(ctx, timeout, ctx.Err())
	}
}

// classify turns a send failure into a timeout or network error based on
// the cause recorded on ctx. A sender error that is already an *Error is
// kept as is.
func classify(ctx context.Context, timeout time.Duration, err error) error {
	cause := context.Cause(ctx)
	var fe *Error
	switch {
	case errors.Is(cause, errTimeout):
		return NewTimeoutError(timeout)
	case cause != nil:
		return NewNetworkError(cause)
	case errors.As(err, &fe):
		return fe
	default:
		return NewNetworkError(err)
	}
}

// reject routes err through the error interceptor, if any.
func (c *Client) reject(ctx context.Context, cl *call, onError ErrorInterceptor, err error) (any, error) {
	c.fail(ctx, cl, err)
	if onError == nil {
		return nil, err
	}
	return onError(ctx, err)
}

func (c *Client) fail(ctx context.Context, cl *call, err error) {
	observability.SetSpanError(ctx, err)
	code := "interceptor"
	var fe *Error
	if errors.As(err, &fe) {
		code = fe.Code.String()
	}
	if c.metrics != nil {
		c.metrics.RecordError(ctx, code, string(cl.method))
	}
	cl.log.Warn("request failed", logger.Fields(
		logger.FieldError, err.Error(),
		logger.FieldOperation, code,
		logger.FieldMethod, cl.method,
		logger.FieldURL, cl.url,
	))
}

// hasContent reports whether a successful response carries a body worth
// decoding.
func hasContent(resp Response, method Method) bool {
	return method != MethodHead && resp.StatusCode() != http.StatusNoContent
}

func isJSONContent(headers map[string]string) bool {
	v, ok := headerValue(headers, headerContentType)
	if !ok {
		return false
	}
	mt, _, err := mime.ParseMediaType(v)
	return err == nil && mt == mimeJSON
}

// headerValue looks up a header ignoring case.
func headerValue(headers map[string]string, name string) (string, bool) {
	if v, ok := headers[name]; ok {
		return v, true
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// deleteHeader removes every case variant of name.
func deleteHeader(headers map[string]string, name string) {
	for k := range headers {
		if strings.EqualFold(k, name) {
			delete(headers, k)
		}
	}
}

const (
	attrMethod = "http.request.method"
	attrURL    = "url.full"
	attrStatus = "http.response.status_code"
)
