package fetch

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
)

// FormData is a multipart/form-data payload. Passing a *FormData as
// Config.Data sends it as multipart; the boundary-bearing Content-Type is
// set by the transport. It is also the result type of ResponseFormData.
type FormData struct {
	// Fields are simple key-value form fields.
	Fields map[string][]string
	// Files are file parts.
	Files []FileField

	// order holds field names in first-append order.
	order []string
}

// FileField represents a file part in a multipart body.
type FileField struct {
	// FieldName is the form field name (e.g., "file", "avatar").
	FieldName string
	// FileName is the file name sent to the server.
	FileName string
	// ContentType is the MIME type. If empty, application/octet-stream is used.
	ContentType string
	// Data is the file content. Used if Reader is nil.
	Data []byte
	// Reader is an alternative to Data for large files.
	Reader io.Reader
}

// NewFormData returns an empty FormData.
func NewFormData() *FormData {
	return &FormData{Fields: make(map[string][]string)}
}

// Append adds a value to a field.
func (f *FormData) Append(name, value string) *FormData {
	if f.Fields == nil {
		f.Fields = make(map[string][]string)
	}
	if _, seen := f.Fields[name]; !seen {
		f.order = append(f.order, name)
	}
	f.Fields[name] = append(f.Fields[name], value)
	return f
}

// AppendFile adds a file part.
func (f *FormData) AppendFile(field FileField) *FormData {
	f.Files = append(f.Files, field)
	return f
}

// Get returns the first value of a field.
func (f *FormData) Get(name string) string {
	if vs := f.Fields[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Names returns the field names in the order they were first appended.
// Names set directly on Fields follow in sorted order.
func (f *FormData) Names() []string {
	names := make([]string, 0, len(f.Fields))
	listed := make(map[string]bool, len(f.order))
	for _, name := range f.order {
		if _, ok := f.Fields[name]; ok && !listed[name] {
			names = append(names, name)
			listed[name] = true
		}
	}
	var rest []string
	for name := range f.Fields {
		if !listed[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// File returns the first file part with the given field name.
func (f *FormData) File(name string) (FileField, bool) {
	for _, ff := range f.Files {
		if ff.FieldName == name {
			return ff, true
		}
	}
	return FileField{}, false
}

// Encode writes the multipart body and returns it with its Content-Type.
func (f *FormData) Encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, k := range f.Names() {
		for _, v := range f.Fields[k] {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", err
			}
		}
	}

	for _, ff := range f.Files {
		var part io.Writer
		var err error

		if ff.ContentType != "" {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition",
				`form-data; name="`+escapeQuotes(ff.FieldName)+`"; filename="`+escapeQuotes(ff.FileName)+`"`)
			header.Set(headerContentType, ff.ContentType)
			part, err = w.CreatePart(header)
		} else {
			part, err = w.CreateFormFile(ff.FieldName, ff.FileName)
		}
		if err != nil {
			return nil, "", err
		}

		if ff.Data != nil {
			if _, err := part.Write(ff.Data); err != nil {
				return nil, "", err
			}
		} else if ff.Reader != nil {
			if _, err := io.Copy(part, ff.Reader); err != nil {
				return nil, "", err
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return &buf, w.FormDataContentType(), nil
}

// ParseFormData decodes a multipart/form-data or
// application/x-www-form-urlencoded body.
func ParseFormData(contentType string, body []byte) (*FormData, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("parse content type %q: %w", contentType, err)
	}

	switch {
	case mediaType == "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return nil, err
		}
		return &FormData{Fields: values}, nil
	case strings.HasPrefix(mediaType, "multipart/"):
		return parseMultipart(body, params["boundary"])
	default:
		return nil, fmt.Errorf("content type %q is not form data", mediaType)
	}
}

func parseMultipart(body []byte, boundary string) (*FormData, error) {
	if boundary == "" {
		return nil, fmt.Errorf("multipart body without boundary")
	}
	fd := NewFormData()
	r := multipart.NewReader(bytes.NewReader(body), boundary)
	for {
		part, err := r.NextPart()
		if err == io.EOF {
			return fd, nil
		}
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(part)
		_ = part.Close()
		if err != nil {
			return nil, err
		}
		if part.FileName() != "" {
			fd.AppendFile(FileField{
				FieldName:   part.FormName(),
				FileName:    part.FileName(),
				ContentType: part.Header.Get(headerContentType),
				Data:        data,
			})
			continue
		}
		fd.Append(part.FormName(), string(data))
	}
}

// escapeQuotes replaces special characters in header values.
func escapeQuotes(s string) string {
	var buf bytes.Buffer
	for _, b := range []byte(s) {
		if b == '"' || b == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(b)
	}
	return buf.String()
}
