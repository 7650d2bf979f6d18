package cli

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/gofetch/fetch"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, "--no-color"))
	err := root.Execute()
	return out.String(), err
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/path", "https://example.com/path"},
		{"example.com/path", "http://example.com/path"},
		{"localhost:8080", "http://localhost:8080"},
		{"/users/1", "/users/1"},
	}
	for _, tt := range tests {
		if got := normalizeURL(tt.in); got != tt.want {
			t.Errorf("normalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseHeaders(t *testing.T) {
	h, err := parseHeaders([]string{"X-Test: one", "Accept:text/plain"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h["X-Test"] != "one" || h["Accept"] != "text/plain" {
		t.Errorf("unexpected headers: %v", h)
	}

	if _, err := parseHeaders([]string{"no-colon"}); err == nil {
		t.Error("expected error for header without colon")
	}
	if _, err := parseHeaders([]string{": value"}); err == nil {
		t.Error("expected error for header without name")
	}
}

func TestBuildRequest(t *testing.T) {
	opts := &options{
		headers: []string{"X-Trace: abc"},
		params:  []string{"page=2", "q=go"},
		data:    "plain words",
	}
	req, err := buildRequest(opts, fetch.MethodPost, "example.com/items")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.URL != "http://example.com/items" {
		t.Errorf("URL = %q", req.URL)
	}
	if req.ResponseType != fetch.ResponseArrayBuffer {
		t.Errorf("ResponseType = %q", req.ResponseType)
	}
	if v, _ := req.Params.Get("page"); v != "2" {
		t.Errorf("page param = %v", v)
	}
	if req.Headers["Content-Type"] != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q", req.Headers["Content-Type"])
	}
	if string(req.Data.([]byte)) != "plain words" {
		t.Errorf("Data = %v", req.Data)
	}

	if _, err := buildRequest(&options{params: []string{"broken"}}, fetch.MethodGet, "/x"); err == nil {
		t.Error("expected error for param without '='")
	}
}

func TestBuildRequestJSONDataKeepsContentType(t *testing.T) {
	req, err := buildRequest(&options{data: `{"a":1}`}, fetch.MethodPost, "/items")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := req.Headers["Content-Type"]; ok {
		t.Errorf("JSON data should not set Content-Type, got %q", req.Headers["Content-Type"])
	}
}

func TestBuildRequestForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	if err := os.WriteFile(path, []byte("a,b\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	req, err := buildRequest(&options{form: []string{"title=Q3", "file=@" + path}}, fetch.MethodPost, "/upload")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fd, ok := req.Data.(*fetch.FormData)
	if !ok {
		t.Fatalf("Data is %T, want *fetch.FormData", req.Data)
	}
	if fd.Get("title") != "Q3" {
		t.Errorf("title = %q", fd.Get("title"))
	}
	file, ok := fd.File("file")
	if !ok || file.FileName != "report.csv" || string(file.Data) != "a,b\n" {
		t.Errorf("unexpected file field: %+v", file)
	}

	if _, err := buildRequest(&options{form: []string{"a=b"}, data: "x"}, fetch.MethodPost, "/upload"); err == nil {
		t.Error("expected error when combining --data and --form")
	}
}

func TestGetCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.Header.Get("X-Test-Header") != "test-value" {
			t.Errorf("X-Test-Header = %q", r.Header.Get("X-Test-Header"))
		}
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("page = %q", r.URL.Query().Get("page"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"users":[{"name":"ada"},{"name":"grace"}]}`))
	}))
	defer server.Close()

	out, err := execute(t, "get", server.URL+"/users", "-H", "X-Test-Header: test-value", "-p", "page=2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "200 OK\n") {
		t.Errorf("missing status line in %q", out)
	}
	if !strings.Contains(out, `"name": "ada"`) {
		t.Errorf("expected pretty JSON body, got %q", out)
	}
}

func TestGetCommandQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"users":[{"name":"ada"},{"name":"grace"}]}`))
	}))
	defer server.Close()

	out, err := execute(t, "get", server.URL, "-q", "users.1.name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "200 OK\ngrace\n" {
		t.Errorf("output = %q", out)
	}

	if _, err := execute(t, "get", server.URL, "-q", "users.9.name"); err == nil {
		t.Error("expected error for query with no match")
	}
}

func TestPostCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		w.Write(body)
	}))
	defer server.Close()

	out, err := execute(t, "post", server.URL, "-d", `{"id":7}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "201 Created\n") || !strings.Contains(out, `"id": 7`) {
		t.Errorf("output = %q", out)
	}
}

func TestVerbosePrintsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", "r-1")
		w.Write([]byte("pong"))
	}))
	defer server.Close()

	out, err := execute(t, "get", server.URL, "-v")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "X-Request-Id: r-1\n") {
		t.Errorf("missing header in %q", out)
	}
	if !strings.HasSuffix(out, "pong\n") {
		t.Errorf("missing body in %q", out)
	}
}

func TestHTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"missing"}`))
	}))
	defer server.Close()

	out, err := execute(t, "delete", server.URL+"/items/1")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !fetch.IsHTTPStatus(err) {
		t.Errorf("expected HTTP status error, got %v", err)
	}
	if !strings.HasPrefix(out, "404 Not Found\n") || !strings.Contains(out, `"error": "missing"`) {
		t.Errorf("output = %q", out)
	}
}

func TestHeadCommandPrintsStatusOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("expected HEAD, got %s", r.Method)
		}
	}))
	defer server.Close()

	out, err := execute(t, "head", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "200 OK\n" {
		t.Errorf("output = %q", out)
	}
}

func TestMissingURLArgument(t *testing.T) {
	if _, err := execute(t, "get"); err == nil {
		t.Error("expected error without URL argument")
	}
}
