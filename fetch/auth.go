package fetch

import (
	"context"
	"encoding/base64"
)

const (
	headerAuthorization = "Authorization"
	defaultAPIKeyHeader = "X-API-Key"
)

// BearerAuth returns a request interceptor that sets a Bearer token.
func BearerAuth(token string) RequestInterceptor {
	return withHeader(headerAuthorization, "Bearer "+token)
}

// BasicAuth returns a request interceptor that sets HTTP Basic credentials.
func BasicAuth(username, password string) RequestInterceptor {
	creds := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return withHeader(headerAuthorization, "Basic "+creds)
}

// APIKeyAuth returns a request interceptor that sends key in the X-API-Key header.
func APIKeyAuth(key string) RequestInterceptor {
	return withHeader(defaultAPIKeyHeader, key)
}

// APIKeyAuthHeader sends key in a custom header.
func APIKeyAuthHeader(key, headerName string) RequestInterceptor {
	return withHeader(headerName, key)
}

// APIKeyAuthQuery sends key as a query parameter.
func APIKeyAuthQuery(key, paramName string) RequestInterceptor {
	return func(_ context.Context, cfg Config) (Config, error) {
		cfg.Params = cfg.Params.Clone().Set(paramName, key)
		return cfg, nil
	}
}

// ChainRequestInterceptors composes interceptors so each receives the
// output of the previous one. Nil entries are skipped; the first error
// stops the chain.
func ChainRequestInterceptors(interceptors ...RequestInterceptor) RequestInterceptor {
	return func(ctx context.Context, cfg Config) (Config, error) {
		for _, next := range interceptors {
			if next == nil {
				continue
			}
			var err error
			if cfg, err = next(ctx, cfg); err != nil {
				return cfg, err
			}
		}
		return cfg, nil
	}
}

func withHeader(name, value string) RequestInterceptor {
	return func(_ context.Context, cfg Config) (Config, error) {
		headers := make(map[string]string, len(cfg.Headers)+1)
		for k, v := range cfg.Headers {
			headers[k] = v
		}
		deleteHeader(headers, name)
		headers[name] = value
		cfg.Headers = headers
		return cfg, nil
	}
}
