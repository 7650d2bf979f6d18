package fetch

import (
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormDataRoundTrip(t *testing.T) {
	form := NewFormData().
		Append("name", "ada").
		Append("tag", "a").
		Append("tag", "b").
		AppendFile(FileField{FieldName: "avatar", FileName: `me "1".png`, ContentType: "image/png", Data: []byte{1, 2, 3}}).
		AppendFile(FileField{FieldName: "notes", FileName: "notes.txt", Reader: strings.NewReader("hello")})

	body, contentType, err := form.Encode()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="))

	raw, err := io.ReadAll(body)
	require.NoError(t, err)

	parsed, err := ParseFormData(contentType, raw)
	require.NoError(t, err)
	assert.Equal(t, "ada", parsed.Get("name"))
	assert.Equal(t, []string{"a", "b"}, parsed.Fields["tag"])

	avatar, ok := parsed.File("avatar")
	require.True(t, ok)
	assert.Equal(t, `me "1".png`, avatar.FileName)
	assert.Equal(t, "image/png", avatar.ContentType)
	assert.Equal(t, []byte{1, 2, 3}, avatar.Data)

	notes, ok := parsed.File("notes")
	require.True(t, ok)
	assert.Equal(t, "application/octet-stream", notes.ContentType)
	assert.Equal(t, []byte("hello"), notes.Data)

	_, ok = parsed.File("missing")
	assert.False(t, ok)
}

func TestParseFormDataURLEncoded(t *testing.T) {
	fd, err := ParseFormData("application/x-www-form-urlencoded; charset=utf-8", []byte("a=1&a=2&b=x+y"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, fd.Fields["a"])
	assert.Equal(t, "x y", fd.Get("b"))
	assert.Empty(t, fd.Get("missing"))
}

func TestParseFormDataErrors(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
	}{
		{"json", "application/json"},
		{"no boundary", "multipart/form-data"},
		{"malformed", ";;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFormData(tt.contentType, []byte("x"))
			assert.Error(t, err)
		})
	}
}

func TestFormDataEncodeKeepsFieldOrder(t *testing.T) {
	form := NewFormData().
		Append("zeta", "1").
		Append("alpha", "2").
		Append("mid", "3").
		Append("alpha", "4")
	form.Fields["direct"] = []string{"5"}
	form.Fields["beta"] = []string{"6"}

	want := []string{"zeta=1", "alpha=2", "alpha=4", "mid=3", "beta=6", "direct=5"}
	assert.Equal(t, []string{"zeta", "alpha", "mid", "beta", "direct"}, form.Names())

	for i := 0; i < 20; i++ {
		body, contentType, err := form.Encode()
		require.NoError(t, err)
		_, params, err := mime.ParseMediaType(contentType)
		require.NoError(t, err)

		var got []string
		r := multipart.NewReader(body, params["boundary"])
		for {
			part, err := r.NextPart()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			data, err := io.ReadAll(part)
			require.NoError(t, err)
			got = append(got, part.FormName()+"="+string(data))
		}
		require.Equal(t, want, got)
	}
}

func TestFormDataZeroValueAppend(t *testing.T) {
	var fd FormData
	fd.Append("k", "v")
	assert.Equal(t, "v", fd.Get("k"))
}
