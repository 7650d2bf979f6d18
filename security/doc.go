// Package security builds TLS client settings for the gofetch transport.
//
//	cfg := security.TLSConfig{
//	    CAFile:     "/etc/billing/ca.pem",
//	    CertFile:   "/etc/billing/client.pem",
//	    KeyFile:    "/etc/billing/client-key.pem",
//	    MinVersion: "1.3",
//	}
//
//	tlsConfig, err := cfg.Build()
//
// A nil or empty TLSConfig builds to nil so callers keep Go's defaults.
package security
