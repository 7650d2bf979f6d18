package transport

import (
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbukum/gofetch/fetch"
)

func TestEncodeBody(t *testing.T) {
	stream := strings.NewReader("stream")
	tests := []struct {
		name        string
		body        any
		wantBody    string
		contentType string
	}{
		{"string", "hello", "hello", mimeText},
		{"bytes", []byte(`{"a":1}`), `{"a":1}`, ""},
		{"reader", stream, "stream", ""},
		{"url values", url.Values{"a": {"1"}, "b": {"x y"}}, "a=1&b=x+y", mimeForm},
		{"struct", struct {
			N int `json:"n"`
		}{3}, `{"n":3}`, mimeJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ct, err := encodeBody(tt.body)
			require.NoError(t, err)
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(data))
			assert.Equal(t, tt.contentType, ct)
		})
	}
}

func TestEncodeBodyNilAndErrors(t *testing.T) {
	r, ct, err := encodeBody(nil)
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.Empty(t, ct)

	_, _, err = encodeBody(func() {})
	assert.Error(t, err)
}

func TestEncodeBodyFormData(t *testing.T) {
	_, ct, err := encodeBody(fetch.NewFormData().Append("a", "1"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="))
}
