package transport

import (
	"fmt"
	"time"

	"github.com/kbukum/gofetch/security"
)

const defaultMaxIdleConns = 100

// Config configures the HTTP sender.
type Config struct {
	// Timeout is an optional ceiling on a whole round trip, including
	// reading the body. Zero leaves timing to the per-request fetch timeout.
	// Hitting the ceiling fails the request with a fetch timeout error.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`

	// MaxIdleConns caps idle keep-alive connections. Defaults to 100.
	MaxIdleConns int `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`

	// DisableCookies drops the cookie jar; credentialed requests then
	// behave like plain ones.
	DisableCookies bool `yaml:"disable_cookies" mapstructure:"disable_cookies"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = defaultMaxIdleConns
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("transport: timeout must not be negative")
	}
	if c.MaxIdleConns < 0 {
		return fmt.Errorf("transport: max_idle_conns must not be negative")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}
