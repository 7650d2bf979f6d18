package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/kbukum/gofetch/config"
	"github.com/kbukum/gofetch/fetch"
	"github.com/kbukum/gofetch/logger"
	"github.com/kbukum/gofetch/transport"
)

const shutdownTimeout = 5 * time.Second

func run(cmd *cobra.Command, opts *options, method fetch.Method, target string) error {
	client, shutdown, err := newClient(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer shutdown()

	req, err := buildRequest(opts, method, target)
	if err != nil {
		return err
	}

	reply, reqErr := client.Do(cmd.Context(), req)
	resp := reply.Response
	var fe *fetch.Error
	if resp == nil && errors.As(reqErr, &fe) {
		resp = fe.Response
	}
	if resp != nil {
		p := newPrinter(cmd.OutOrStdout(), opts.noColor, opts.verbose)
		if err := p.Response(resp, opts.query); err != nil {
			return err
		}
	}
	return reqErr
}

// newClient loads a named client config when --config is set and falls
// back to a quiet client with transport defaults. The returned func flushes
// any exporters the config enabled.
func newClient(ctx context.Context, opts *options) (*fetch.Client, func(), error) {
	noop := func() {}
	if opts.configName == "" {
		client, _, err := transport.NewClient(transport.Config{}, fetch.Config{}, fetch.WithLogger(logger.Nop()))
		return client, noop, err
	}

	var cc config.ClientConfig
	if err := config.LoadConfig(opts.configName, &cc); err != nil {
		return nil, nil, err
	}
	if cc.Name == "" {
		cc.Name = opts.configName
	}
	cc.ApplyDefaults()
	if err := cc.Validate(); err != nil {
		return nil, nil, err
	}

	if !cc.Observability.Enabled() {
		client, err := cc.NewClient()
		return client, noop, err
	}
	providers, obsOpts, err := cc.StartObservability(ctx)
	if err != nil {
		return nil, nil, err
	}
	shutdown := func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = providers.Shutdown(sctx)
	}
	client, err := cc.NewClient(obsOpts...)
	if err != nil {
		shutdown()
		return nil, nil, err
	}
	return client, shutdown, nil
}

func buildRequest(opts *options, method fetch.Method, target string) (fetch.Config, error) {
	req := fetch.Config{
		Method:       method,
		URL:          normalizeURL(target),
		ResponseType: fetch.ResponseArrayBuffer,
		Timeout:      opts.timeout,
	}

	headers, err := parseHeaders(opts.headers)
	if err != nil {
		return req, err
	}
	req.Headers = headers

	for _, raw := range opts.params {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return req, fmt.Errorf("invalid param %q: expected key=value", raw)
		}
		req.Params = req.Params.Set(key, value)
	}

	if opts.redirect != "" {
		req.Extra = map[string]any{transport.ExtraRedirect: opts.redirect}
	}

	body, err := buildBody(opts, req.Headers)
	if err != nil {
		return req, err
	}
	req.Data = body
	return req, nil
}

// normalizeURL adds http:// to bare hosts. Paths starting with "/" are left
// alone so they resolve against a configured base URL.
func normalizeURL(target string) string {
	if strings.HasPrefix(target, "/") || strings.Contains(target, "://") {
		return target
	}
	return "http://" + target
}

func parseHeaders(raw []string) (map[string]string, error) {
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		name, value, ok := strings.Cut(h, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid header %q: expected \"Name: value\"", h)
		}
		headers[name] = strings.TrimSpace(value)
	}
	return headers, nil
}

// buildBody turns --form or --data into a request payload. JSON data is
// sent as is; anything else is labelled text/plain unless the caller set a
// Content-Type.
func buildBody(opts *options, headers map[string]string) (any, error) {
	if len(opts.form) > 0 {
		if opts.data != "" {
			return nil, errors.New("--data and --form cannot be combined")
		}
		return buildForm(opts.form)
	}
	if opts.data == "" {
		return nil, nil
	}

	data, err := readValue(opts.data)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) && !hasHeader(headers, "Content-Type") {
		headers["Content-Type"] = "text/plain; charset=utf-8"
	}
	return data, nil
}

func buildForm(fields []string) (*fetch.FormData, error) {
	fd := fetch.NewFormData()
	for _, raw := range fields {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid form field %q: expected key=value", raw)
		}
		if path, isFile := strings.CutPrefix(value, "@"); isFile {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read form file: %w", err)
			}
			fd.AppendFile(fetch.FileField{FieldName: key, FileName: filepath.Base(path), Data: data})
			continue
		}
		fd.Append(key, value)
	}
	return fd, nil
}

func readValue(v string) ([]byte, error) {
	path, isFile := strings.CutPrefix(v, "@")
	if !isFile {
		return []byte(v), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	return data, nil
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}
