package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/kbukum/gofetch/fetch"
)

const (
	mimeJSON = "application/json"
	mimeForm = "application/x-www-form-urlencoded"
	mimeText = "text/plain; charset=utf-8"
)

// encodeBody converts a fetch payload into a request body and the
// Content-Type it implies. An empty content type leaves the header alone.
func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case string:
		return strings.NewReader(b), mimeText, nil
	case []byte:
		return bytes.NewReader(b), "", nil
	case io.Reader:
		return b, "", nil
	case url.Values:
		return strings.NewReader(b.Encode()), mimeForm, nil
	case *fetch.FormData:
		return b.Encode()
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("transport: encode body: %w", err)
		}
		return bytes.NewReader(data), mimeJSON, nil
	}
}
