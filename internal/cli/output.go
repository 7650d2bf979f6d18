package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/kbukum/gofetch/fetch"
)

// printer writes a response to the terminal.
type printer struct {
	out     io.Writer
	verbose bool
	colored bool

	success *color.Color
	warning *color.Color
	failure *color.Color
	key     *color.Color
}

// newPrinter disables color when asked to or when out is not a terminal.
func newPrinter(out io.Writer, noColor, verbose bool) *printer {
	p := &printer{
		out:     out,
		verbose: verbose,
		colored: !noColor && isTerminal(out),
		success: color.New(color.FgGreen, color.Bold),
		warning: color.New(color.FgYellow, color.Bold),
		failure: color.New(color.FgRed, color.Bold),
		key:     color.New(color.FgCyan),
	}
	if !p.colored {
		for _, c := range []*color.Color{p.success, p.warning, p.failure, p.key} {
			c.DisableColor()
		}
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Response prints the status line, headers in verbose mode, and the body.
// A non-empty query selects part of a JSON body.
func (p *printer) Response(resp fetch.Response, query string) error {
	code := resp.StatusCode()
	if _, err := fmt.Fprintln(p.out, p.statusColor(code).Sprintf("%d %s", code, http.StatusText(code))); err != nil {
		return err
	}

	if p.verbose {
		h := resp.Header()
		names := make([]string, 0, len(h))
		for name := range h {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(p.out, "%s: %s\n", p.key.Sprint(name), strings.Join(h[name], ", "))
		}
		fmt.Fprintln(p.out)
	}

	body, err := resp.ArrayBuffer()
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	return p.body(body, query)
}

func (p *printer) body(body []byte, query string) error {
	isJSON := gjson.ValidBytes(body)
	if query != "" {
		if !isJSON {
			return fmt.Errorf("query %q: response body is not JSON", query)
		}
		res := gjson.GetBytes(body, query)
		if !res.Exists() {
			return fmt.Errorf("query %q matched nothing", query)
		}
		if res.IsObject() || res.IsArray() {
			return p.json([]byte(res.Raw))
		}
		_, err := fmt.Fprintln(p.out, res.String())
		return err
	}

	if isJSON {
		return p.json(body)
	}
	if _, err := p.out.Write(body); err != nil {
		return err
	}
	if body[len(body)-1] != '\n' {
		_, err := fmt.Fprintln(p.out)
		return err
	}
	return nil
}

func (p *printer) json(raw []byte) error {
	out := pretty.Pretty(raw)
	if p.colored {
		out = pretty.Color(out, nil)
	}
	_, err := p.out.Write(out)
	return err
}

func (p *printer) statusColor(code int) *color.Color {
	switch {
	case code >= 500:
		return p.failure
	case code >= 300:
		return p.warning
	default:
		return p.success
	}
}
