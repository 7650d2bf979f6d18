package fetch

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
)

// absoluteURL matches URLs that start with a scheme or are protocol-relative.
// Any RFC 3986 scheme counts, so "localhost:8080/x" and "projects:list" are
// absolute; prefix such paths with "./" or "/" to join them with a base URL.
var absoluteURL = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.\-]*:|//)`)

// isoMillis is the ISO-8601 layout used for time.Time query values.
const isoMillis = "2006-01-02T15:04:05.000Z"

// BuildURL combines url, baseURL and params into the request URL.
//
// An empty url yields "". An absolute url ignores baseURL; otherwise the
// two are joined with exactly one slash. Params are serialized with
// serializer, or SerializeParams when serializer is nil, and appended
// after "?" (or "&" when url already carries a query).
func BuildURL(url, baseURL string, params Params, serializer func(Params) string) string {
	if url == "" {
		return ""
	}

	full := url
	if baseURL != "" && !absoluteURL.MatchString(url) {
		full = strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(url, "/")
	}

	if len(params) == 0 {
		return full
	}

	if serializer == nil {
		serializer = SerializeParams
	}
	query := serializer(params)
	if query == "" {
		return full
	}

	sep := "?"
	if strings.Contains(full, "?") {
		sep = "&"
	}
	return full + sep + query
}

// SerializeParams is the default query serializer. Nil values are
// skipped, slices repeat the key with a "[]" suffix, time.Time values are
// written in ISO-8601 UTC form and maps or structs as JSON text.
func SerializeParams(params Params) string {
	parts := make([]string, 0, len(params))
	for _, kv := range params {
		if isNil(kv.Value) {
			continue
		}

		key := kv.Key
		values := []any{kv.Value}
		if rv := reflect.ValueOf(kv.Value); isList(rv) {
			key += "[]"
			values = make([]any, rv.Len())
			for i := range values {
				values[i] = rv.Index(i).Interface()
			}
		}

		for _, v := range values {
			parts = append(parts, EncodeQueryComponent(key)+"="+EncodeQueryComponent(paramString(v)))
		}
	}
	return strings.Join(parts, "&")
}

// paramString converts a single query value to its text form.
func paramString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.UTC().Format(isoMillis)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.UTC().Format(isoMillis)
	case fmt.Stringer:
		return t.String()
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(rv.Interface())
}

// queryUnescapes restores characters that read better unescaped in a query.
var queryUnescapes = strings.NewReplacer(
	"%40", "@",
	"%3A", ":",
	"%24", "$",
	"%2C", ",",
	"%20", "+",
	"%5B", "[",
	"%5D", "]",
)

// EncodeQueryComponent percent-encodes s the way encodeURIComponent does
// and then leaves @ : $ , [ ] readable and writes spaces as "+".
func EncodeQueryComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return queryUnescapes.Replace(b.String())
}

// isUnreservedComponent reports the characters encodeURIComponent leaves
// untouched.
func isUnreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

func isList(rv reflect.Value) bool {
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Slice:
		// []byte is a scalar payload, not a list of numbers.
		return rv.Type().Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	}
	return false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
