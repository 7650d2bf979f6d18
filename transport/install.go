package transport

import (
	"github.com/kbukum/gofetch/fetch"
)

// NewClient builds a Sender from cfg and a fetch client over it using the
// detected environment.
func NewClient(cfg Config, defaults fetch.Config, opts ...fetch.Option) (*fetch.Client, *Sender, error) {
	s, err := New(cfg)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]fetch.Option{fetch.WithEnvironment(Detect())}, opts...)
	return fetch.New(s, defaults, opts...), s, nil
}

// Install builds a client like NewClient and installs it as the fetch
// package default.
func Install(cfg Config, defaults fetch.Config, opts ...fetch.Option) (*fetch.Client, error) {
	c, _, err := NewClient(cfg, defaults, opts...)
	if err != nil {
		return nil, err
	}
	fetch.SetDefault(c)
	return c, nil
}
