// Package validation provides input validation for gofetch settings.
//
// It supports both struct tag validation (using the validator library,
// extended with the http_method and response_type tags) and programmatic
// validation with error collection.
//
// # Struct Tag Validation
//
//	type Settings struct {
//	    BaseURL string `validate:"omitempty,url"`
//	    Method  string `validate:"omitempty,http_method"`
//	}
//	err := validation.Validate(settings)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.AbsoluteURL("base_url", cfg.BaseURL)
//	v.NonNegative("timeout", cfg.Timeout)
//	err := v.Validate()
package validation
