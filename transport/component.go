package transport

import (
	"context"

	"github.com/kbukum/gofetch/component"
	"github.com/kbukum/gofetch/fetch"
)

// Component wraps a fetch client and its sender with lifecycle management.
// The client is built lazily in Start.
type Component struct {
	name     string
	config   Config
	defaults fetch.Config
	opts     []fetch.Option
	install  bool

	client *fetch.Client
	sender *Sender
}

var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a fetch client component.
func NewComponent(name string, cfg Config, defaults fetch.Config, opts ...fetch.Option) *Component {
	return &Component{name: name, config: cfg, defaults: defaults, opts: opts}
}

// AsDefault makes Start install the client as the fetch package default.
func (c *Component) AsDefault() *Component {
	c.install = true
	return c
}

// Name returns the component name.
func (c *Component) Name() string {
	if c.name == "" {
		return "fetch"
	}
	return c.name
}

// Start builds the sender and client.
func (c *Component) Start(_ context.Context) error {
	client, sender, err := NewClient(c.config, c.defaults, c.opts...)
	if err != nil {
		return err
	}
	c.client, c.sender = client, sender
	if c.install {
		fetch.SetDefault(client)
	}
	return nil
}

// Stop releases idle connections and uninstalls the default client if
// this component installed it.
func (c *Component) Stop(_ context.Context) error {
	if c.sender != nil {
		c.sender.CloseIdleConnections()
	}
	if c.install && fetch.Default() == c.client {
		fetch.SetDefault(nil)
	}
	c.client, c.sender = nil, nil
	return nil
}

// Health reports healthy once the client is built.
func (c *Component) Health(_ context.Context) component.Health {
	status := component.StatusHealthy
	msg := ""
	if c.client == nil {
		status = component.StatusUnhealthy
		msg = "not started"
	}
	return component.Health{Name: c.Name(), Status: status, Message: msg}
}

// Describe returns the component description for startup summaries.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    c.Name(),
		Type:    "http-client",
		Details: c.defaults.BaseURL,
	}
}

// Client returns the fetch client. Must be called after Start.
func (c *Component) Client() *fetch.Client {
	return c.client
}
