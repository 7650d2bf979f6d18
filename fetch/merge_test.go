package fetch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepMerge(t *testing.T) {
	target := map[string]any{
		"a": 1,
		"nested": map[string]any{"x": 1, "y": 2},
		"list":   []int{1, 2},
	}
	src := map[string]any{
		"nested": map[string]any{"y": 3, "z": 4},
		"list":   []int{9},
		"b":      nil,
	}

	got := DeepMerge(target, nil, src)

	assert.Equal(t, map[string]any{
		"a":      1,
		"nested": map[string]any{"x": 1, "y": 3, "z": 4},
		"list":   []int{9},
		"b":      nil,
	}, got)
	assert.Equal(t, map[string]any{"y": 3, "z": 4}, src["nested"], "source must not be modified")
}

func TestDeepMergeNilTarget(t *testing.T) {
	src := map[string]any{"m": map[string]any{"k": "v"}}
	got := DeepMerge(nil, src)
	require.NotNil(t, got)

	got["m"].(map[string]any)["k"] = "changed"
	assert.Equal(t, "v", src["m"].(map[string]any)["k"])
}

func TestDeepMergeReplacesNonMappings(t *testing.T) {
	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	got := DeepMerge(
		map[string]any{"when": map[string]any{"old": true}, "fn": "x"},
		map[string]any{"when": when, "fn": func() {}},
	)
	assert.Equal(t, when, got["when"])
	assert.NotNil(t, got["fn"])
}

func TestMergeConfigPrecedence(t *testing.T) {
	instance := Config{
		BaseURL: "https://api.test",
		Headers: map[string]string{"X-Team": "billing", "Accept": "text/plain"},
		Timeout: 5 * time.Second,
	}
	call := Config{
		Method:  MethodPost,
		Headers: map[string]string{"Accept": "application/json"},
		Timeout: 2 * time.Second,
	}

	got := MergeConfig(DefaultConfig(), instance, call)

	assert.Equal(t, MethodPost, got.Method)
	assert.Equal(t, "https://api.test", got.BaseURL)
	assert.Equal(t, 2*time.Second, got.Timeout)
	assert.Equal(t, ResponseJSON, got.ResponseType)
	assert.Equal(t, map[string]string{
		"Content-Type": "application/json",
		"X-Team":       "billing",
		"Accept":       "application/json",
	}, got.Headers)
	assert.Equal(t, map[string]string{"X-Team": "billing", "Accept": "text/plain"}, instance.Headers)
}

func TestMergeConfigHeaderCaseVariants(t *testing.T) {
	got := MergeConfig(DefaultConfig(), Config{Headers: map[string]string{"content-type": "text/plain"}})
	assert.Equal(t, map[string]string{"content-type": "text/plain"}, got.Headers)
}

func TestMergeConfigParams(t *testing.T) {
	base := Config{Params: P("page", 1, "filter", map[string]any{"a": 1})}
	call := Config{Params: P("q", "go", "page", 2, "filter", map[string]any{"b": 2})}

	got := MergeConfig(base, call)

	assert.Equal(t, []string{"page", "filter", "q"}, got.Params.Keys())
	page, _ := got.Params.Get("page")
	assert.Equal(t, 2, page)
	filter, _ := got.Params.Get("filter")
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, filter)

	orig, _ := base.Params.Get("filter")
	assert.Equal(t, map[string]any{"a": 1}, orig)
}

func TestMergeConfigData(t *testing.T) {
	got := MergeConfig(
		Config{Data: map[string]any{"user": map[string]any{"id": 1}}},
		Config{Data: map[string]any{"user": map[string]any{"name": "ada"}}},
	)
	assert.Equal(t, map[string]any{"user": map[string]any{"id": 1, "name": "ada"}}, got.Data)

	got = MergeConfig(Config{Data: map[string]any{"a": 1}}, Config{Data: []byte("raw")})
	assert.Equal(t, []byte("raw"), got.Data)
}

func TestMergeConfigScalarsAndHooks(t *testing.T) {
	tok := NewCancelToken()
	called := false
	off, on := false, true

	got := MergeConfig(
		Config{WithCredentials: &on, Extra: map[string]any{"redirect": "manual"}},
		Config{
			WithCredentials: &off,
			CancelToken:     tok,
			Timeout:         NoTimeout,
			Extra:           map[string]any{"referrer": "https://a.test"},
			RequestInterceptor: func(_ context.Context, c Config) (Config, error) {
				called = true
				return c, nil
			},
		},
	)

	require.NotNil(t, got.WithCredentials)
	assert.False(t, *got.WithCredentials)
	assert.Same(t, tok, got.CancelToken)
	assert.Equal(t, NoTimeout, got.Timeout)
	assert.Zero(t, got.effectiveTimeout())
	assert.Equal(t, map[string]any{"redirect": "manual", "referrer": "https://a.test"}, got.Extra)

	_, _ = got.RequestInterceptor(context.Background(), got)
	assert.True(t, called)

	off = true
	assert.False(t, *got.WithCredentials, "merged pointer must not alias the source")
}
