package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/kbukum/gofetch/fetch"
	"github.com/kbukum/gofetch/logger"
)

// Passthrough keys read from fetch.RequestSpec.Extra.
const (
	ExtraRedirect = "redirect"
	ExtraReferrer = "referrer"
)

// Redirect modes for ExtraRedirect.
const (
	RedirectFollow = "follow"
	RedirectManual = "manual"
	RedirectError  = "error"
)

const maxRedirects = 10

// ErrRedirect is returned for a redirect response when the request uses
// RedirectError.
var ErrRedirect = errors.New("transport: redirect not allowed")

type redirectKey struct{}

// Sender sends fetch requests over net/http.
type Sender struct {
	plain   *http.Client
	withJar *http.Client
	timeout time.Duration
	log     *logger.Logger
}

var _ fetch.Sender = (*Sender)(nil)

// New creates a Sender from cfg.
func New(cfg Config) (*Sender, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rt := http.DefaultTransport.(*http.Transport).Clone()
	rt.MaxIdleConns = cfg.MaxIdleConns
	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			rt.TLSClientConfig = tlsCfg
		}
	}

	s := &Sender{
		plain: &http.Client{
			Transport:     rt,
			Timeout:       cfg.Timeout,
			CheckRedirect: checkRedirect,
		},
		timeout: cfg.Timeout,
		log:     logger.Get("transport"),
	}
	s.withJar = s.plain
	if !cfg.DisableCookies {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("transport: cookie jar: %w", err)
		}
		s.withJar = &http.Client{
			Transport:     rt,
			Timeout:       cfg.Timeout,
			CheckRedirect: checkRedirect,
			Jar:           jar,
		}
	}
	return s, nil
}

// Send performs one round trip and buffers the response body.
func (s *Sender) Send(ctx context.Context, url string, spec *fetch.RequestSpec) (fetch.Response, error) {
	body, contentType, err := encodeBody(spec.Body)
	if err != nil {
		return nil, err
	}

	mode := RedirectFollow
	if v, ok := spec.Extra[ExtraRedirect].(string); ok && v != "" {
		mode = v
	}
	ctx = context.WithValue(ctx, redirectKey{}, mode)

	req, err := http.NewRequestWithContext(ctx, string(spec.Method), url, body)
	if err != nil {
		return nil, fmt.Errorf("transport: build request: %w", err)
	}
	for k, v := range spec.Headers {
		req.Header.Set(k, v)
	}
	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}
	if _, ok := spec.Body.(*fetch.FormData); ok {
		req.Header.Set("Content-Type", contentType)
	}
	if ref, ok := spec.Extra[ExtraReferrer].(string); ok && ref != "" {
		req.Header.Set("Referer", ref)
	}

	client := s.plain
	if spec.Credentials == fetch.CredentialsInclude {
		client = s.withJar
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, s.roundTripError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, s.roundTripError(ctx, fmt.Errorf("transport: read response body: %w", err))
	}

	s.log.Debug("round trip", logger.Fields(
		logger.FieldMethod, spec.Method,
		logger.FieldURL, url,
		logger.FieldStatus, resp.StatusCode,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return fetch.NewResponse(resp.StatusCode, resp.Header, data), nil
}

// roundTripError reports an expired Config.Timeout as a fetch timeout. A
// done ctx means fetch already owns the outcome.
func (s *Sender) roundTripError(ctx context.Context, err error) error {
	var ne net.Error
	if s.timeout > 0 && ctx.Err() == nil && errors.As(err, &ne) && ne.Timeout() {
		return fetch.NewTimeoutError(s.timeout)
	}
	return err
}

// CloseIdleConnections closes idle keep-alive connections.
func (s *Sender) CloseIdleConnections() {
	s.plain.CloseIdleConnections()
}

func checkRedirect(req *http.Request, via []*http.Request) error {
	mode, _ := req.Context().Value(redirectKey{}).(string)
	switch mode {
	case RedirectManual:
		return http.ErrUseLastResponse
	case RedirectError:
		return ErrRedirect
	}
	if len(via) >= maxRedirects {
		return fmt.Errorf("transport: stopped after %d redirects", maxRedirects)
	}
	return nil
}
