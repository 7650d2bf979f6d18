package config

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/gofetch/fetch"
	"github.com/kbukum/gofetch/security"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

const clientYAML = `
name: billing
base_url: https://billing.test/api
timeout: 5s
headers:
  accept: application/json
  x-tenant: acme
transport:
  max_idle_conns: 7
  disable_cookies: true
logging:
  level: debug
  format: json
`

func TestLoadConfigWithYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "billing.yml", clientYAML)

	var cfg ClientConfig
	if err := LoadConfig("billing", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "billing" {
		t.Errorf("expected name 'billing', got %q", cfg.Name)
	}
	if cfg.BaseURL != "https://billing.test/api" {
		t.Errorf("unexpected base_url %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.Timeout)
	}
	if cfg.Transport.MaxIdleConns != 7 || !cfg.Transport.DisableCookies {
		t.Errorf("unexpected transport section %+v", cfg.Transport)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level debug, got %q", cfg.Logging.Level)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "billing.yml", clientYAML)
	envPath := writeFile(t, dir, ".env.billing", "BILLING_TRANSPORT_MAX_IDLE_CONNS=9\n")

	t.Setenv("BILLING_BASE_URL", "https://override.test")
	t.Setenv("BILLING_TIMEOUT", "250ms")
	t.Setenv("BILLING_HEADERS_X_TOKEN", "secret")
	t.Setenv("OTHER_BASE_URL", "https://ignored.test")
	t.Cleanup(func() { os.Unsetenv("BILLING_TRANSPORT_MAX_IDLE_CONNS") })

	var cfg ClientConfig
	err := LoadConfig("billing", &cfg, WithConfigFile(path), WithEnvFile(envPath))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.BaseURL != "https://override.test" {
		t.Errorf("expected env override for base_url, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 250*time.Millisecond {
		t.Errorf("expected 250ms timeout, got %v", cfg.Timeout)
	}
	if cfg.Transport.MaxIdleConns != 9 {
		t.Errorf("expected .env override for max_idle_conns, got %d", cfg.Transport.MaxIdleConns)
	}
	if cfg.Headers["x_token"] != "secret" {
		t.Errorf("expected header from env, got %v", cfg.Headers)
	}
	if cfg.Headers["x-tenant"] != "acme" {
		t.Errorf("expected file header to survive, got %v", cfg.Headers)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg ClientConfig
	err := LoadConfig("nonexistent", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfigBrokenFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "broken.yml", "name: [unclosed\n")
	var cfg ClientConfig
	if err := LoadConfig("broken", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./config/api.yaml": true,
		"../.env":           true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("api", LoaderConfig{})
	if files.ConfigFile != "./config/api.yaml" {
		t.Errorf("expected ./config/api.yaml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "../.env" {
		t.Errorf("expected ../.env, got %q", files.EnvFile)
	}

	explicit := resolver.ResolveFiles("api", LoaderConfig{ConfigFile: "/etc/api.yml"})
	if explicit.ConfigFile != "/etc/api.yml" {
		t.Errorf("expected explicit path to win, got %q", explicit.ConfigFile)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("APP")(&lc)
	if lc.FileSystem == nil || lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" || lc.EnvPrefix != "APP" {
		t.Errorf("unexpected loader config %+v", lc)
	}
}

func TestEnvPrefix(t *testing.T) {
	if got := envPrefix("my-api"); got != "MY_API" {
		t.Errorf("expected MY_API, got %q", got)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	got := envKeyVariants("TRANSPORT_MAX_IDLE_CONNS")
	want := map[string]bool{
		"transport_max_idle_conns": true,
		"transport.max.idle.conns": true,
		"transport.max_idle_conns": true,
	}
	found := 0
	for _, v := range got {
		if want[v] {
			found++
		}
	}
	if found != len(want) {
		t.Errorf("expected variants %v in %v", want, got)
	}
}

func TestCollectKeys(t *testing.T) {
	keys := collectKeys(reflect.TypeOf(&ClientConfig{}), "")
	for _, k := range []string{"base_url", "timeout", "transport.max_idle_conns", "transport.tls.ca_file", "logging.level"} {
		if kind, ok := keys[k]; !ok || kind != leafKey {
			t.Errorf("expected leaf key %q", k)
		}
	}
	if keys["headers"] != mapKey {
		t.Error("expected headers to be a map key")
	}
}

func TestClientConfigDefaultsAndValidate(t *testing.T) {
	cfg := ClientConfig{BaseURL: "https://api.test"}
	cfg.ApplyDefaults()
	if cfg.Name != "fetch" || cfg.Method != "GET" || cfg.Timeout != fetch.DefaultTimeout {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestClientConfigValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ClientConfig)
		errMsg string
	}{
		{"bad method", func(c *ClientConfig) { c.Method = "BREW" }, "method"},
		{"bad response type", func(c *ClientConfig) { c.ResponseType = "xml" }, "response_type"},
		{"relative base url", func(c *ClientConfig) { c.BaseURL = "/api" }, "base_url"},
		{"negative timeout", func(c *ClientConfig) { c.Timeout = -time.Second }, "timeout"},
		{"bad header", func(c *ClientConfig) { c.Headers = map[string]string{"bad header": "x"} }, "header"},
		{"bad log level", func(c *ClientConfig) { c.Logging.Level = "loud" }, "logging.level"},
		{"sample rate", func(c *ClientConfig) { c.Observability.SampleRate = 2 }, "sample_rate"},
		{"tls pair", func(c *ClientConfig) {
			c.Transport.TLS = &security.TLSConfig{CertFile: "cert.pem"}
		}, "cert_file"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := ClientConfig{}
			cfg.ApplyDefaults()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

func TestFetchConfig(t *testing.T) {
	cfg := ClientConfig{
		BaseURL:         "https://api.test",
		Headers:         map[string]string{"x-tenant": "acme"},
		WithCredentials: true,
	}
	cfg.ApplyDefaults()

	fc := cfg.FetchConfig()
	if fc.BaseURL != "https://api.test" || fc.Method != fetch.MethodGet || fc.ResponseType != fetch.ResponseJSON {
		t.Errorf("unexpected fetch config %+v", fc)
	}
	if fc.Timeout != fetch.DefaultTimeout {
		t.Errorf("expected default timeout, got %v", fc.Timeout)
	}
	if fc.Headers["X-Tenant"] != "acme" {
		t.Errorf("expected canonical header key, got %v", fc.Headers)
	}
	if fc.WithCredentials == nil || !*fc.WithCredentials {
		t.Error("expected credentials to be enabled")
	}

	cfg.DisableTimeout = true
	if got := cfg.FetchConfig().Timeout; got != fetch.NoTimeout {
		t.Errorf("expected NoTimeout, got %v", got)
	}
}

func TestNewClient(t *testing.T) {
	cfg := ClientConfig{BaseURL: "https://api.test"}
	cfg.ApplyDefaults()
	cfg.Logging.Level = "disabled"

	client, err := cfg.NewClient()
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if got := client.Defaults().BaseURL; got != "https://api.test" {
		t.Errorf("expected base url on client defaults, got %q", got)
	}
}

func TestComponent(t *testing.T) {
	cfg := ClientConfig{Name: "ledger", BaseURL: "https://ledger.test"}
	cfg.ApplyDefaults()
	cfg.Logging.Level = "disabled"

	c := cfg.Component()
	if c.Name() != "ledger" {
		t.Errorf("expected component name ledger, got %q", c.Name())
	}
	if err := c.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer func() { _ = c.Stop(context.Background()) }()
	if got := c.Client().Defaults().BaseURL; got != "https://ledger.test" {
		t.Errorf("expected base url on client defaults, got %q", got)
	}
}

func TestStartObservability(t *testing.T) {
	cfg := ClientConfig{Name: "ledger", BaseURL: "https://ledger.test"}
	cfg.Observability.Tracing = true
	cfg.Observability.Metrics = true
	cfg.Observability.Endpoint = "127.0.0.1:1"
	cfg.ApplyDefaults()
	cfg.Logging.Level = "disabled"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	providers, opts, err := cfg.StartObservability(context.Background())
	if err != nil {
		t.Fatalf("StartObservability failed: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = providers.Shutdown(ctx)
	}()
	if len(opts) != 2 {
		t.Fatalf("expected tracer and metrics options, got %d", len(opts))
	}
	if _, err := cfg.NewClient(opts...); err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
}

func TestStartObservabilityDisabled(t *testing.T) {
	cfg := ClientConfig{}
	cfg.ApplyDefaults()

	providers, opts, err := cfg.StartObservability(context.Background())
	if err != nil {
		t.Fatalf("StartObservability failed: %v", err)
	}
	if len(opts) != 0 {
		t.Errorf("expected no options, got %d", len(opts))
	}
	if err := providers.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}
