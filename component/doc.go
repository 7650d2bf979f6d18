// Package component defines lifecycle interfaces for long-lived clients.
//
// A service that talks to several upstreams registers one component per
// upstream and lets a Registry start them in order, stop them in reverse
// and report their health:
//
//	reg := component.NewRegistry()
//	_ = reg.Register(transport.NewComponent("billing", tcfg, fetch.Config{BaseURL: billingURL}))
//	_ = reg.Register(transport.NewComponent("ledger", tcfg, fetch.Config{BaseURL: ledgerURL}))
//	if err := reg.StartAll(ctx); err != nil { ... }
//	defer reg.StopAll(ctx)
package component
