package fetch

import (
	"encoding/json"
	"net/http"
)

// Response is the response descriptor returned by a Sender. Body decoding
// methods may be called more than once.
type Response interface {
	// StatusCode returns the HTTP status code.
	StatusCode() int
	// OK reports whether the status is in the 2xx range.
	OK() bool
	// Header returns the response headers.
	Header() http.Header
	// JSON decodes the body as JSON into v.
	JSON(v any) error
	// Text returns the body as a string.
	Text() (string, error)
	// Blob returns the body with its media type.
	Blob() (*Blob, error)
	// ArrayBuffer returns the raw body bytes.
	ArrayBuffer() ([]byte, error)
	// FormData parses a multipart or urlencoded body.
	FormData() (*FormData, error)
}

// Blob is a binary body together with its media type.
type Blob struct {
	Type string
	Data []byte
}

// Size returns the number of bytes in the blob.
func (b *Blob) Size() int {
	return len(b.Data)
}

// NewResponse returns a fully buffered Response.
func NewResponse(status int, header http.Header, body []byte) Response {
	if header == nil {
		header = make(http.Header)
	}
	return &bufferedResponse{status: status, header: header, body: body}
}

type bufferedResponse struct {
	status int
	header http.Header
	body   []byte
}

func (r *bufferedResponse) StatusCode() int     { return r.status }
func (r *bufferedResponse) OK() bool            { return r.status >= 200 && r.status < 300 }
func (r *bufferedResponse) Header() http.Header { return r.header }

func (r *bufferedResponse) JSON(v any) error {
	return json.Unmarshal(r.body, v)
}

func (r *bufferedResponse) Text() (string, error) {
	return string(r.body), nil
}

func (r *bufferedResponse) Blob() (*Blob, error) {
	return &Blob{Type: r.header.Get(headerContentType), Data: r.bodyCopy()}, nil
}

func (r *bufferedResponse) ArrayBuffer() ([]byte, error) {
	return r.bodyCopy(), nil
}

// bodyCopy returns a copy of the body so callers cannot alias the buffer.
func (r *bufferedResponse) bodyCopy() []byte {
	out := make([]byte, len(r.body))
	copy(out, r.body)
	return out
}

func (r *bufferedResponse) FormData() (*FormData, error) {
	return ParseFormData(r.header.Get(headerContentType), r.body)
}

// decode reads the body of resp according to mode. Unknown or empty modes
// decode JSON. For JSON, target receives the body when non-nil.
func decode(resp Response, mode ResponseType, target any) (any, error) {
	switch mode {
	case ResponseText:
		return resp.Text()
	case ResponseBlob:
		return resp.Blob()
	case ResponseArrayBuffer:
		return resp.ArrayBuffer()
	case ResponseFormData:
		return resp.FormData()
	default:
		if target != nil {
			if err := resp.JSON(target); err != nil {
				return nil, err
			}
			return target, nil
		}
		var v any
		if err := resp.JSON(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}
