// Package cli implements the gofetch command line: one subcommand per HTTP
// verb, backed by a fetch.Client.
package cli

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbukum/gofetch/fetch"
)

var version = "0.1.0"

// options holds the flags shared by every request command.
type options struct {
	configName string
	headers    []string
	params     []string
	timeout    time.Duration
	query      string
	redirect   string
	verbose    bool
	noColor    bool

	data string
	form []string
}

// NewRootCmd builds the gofetch command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "gofetch",
		Short:        "Send HTTP requests from the terminal",
		Version:      version,
		SilenceUsage: true,
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.configName, "config", "c", "", "client config name (reads <name>.yml and .env)")
	f.StringArrayVarP(&opts.headers, "header", "H", nil, `request header "Name: value" (repeatable)`)
	f.StringArrayVarP(&opts.params, "param", "p", nil, "query parameter key=value (repeatable)")
	f.DurationVarP(&opts.timeout, "timeout", "t", 0, "request timeout (0 keeps the client default)")
	f.StringVarP(&opts.query, "query", "q", "", "JSON path applied to the response body")
	f.StringVar(&opts.redirect, "redirect", "", "redirect mode: follow, manual or error")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "print response headers")
	f.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	for _, m := range []fetch.Method{fetch.MethodGet, fetch.MethodDelete, fetch.MethodHead, fetch.MethodOptions} {
		root.AddCommand(newRequestCmd(opts, m, false))
	}
	for _, m := range []fetch.Method{fetch.MethodPost, fetch.MethodPut, fetch.MethodPatch} {
		root.AddCommand(newRequestCmd(opts, m, true))
	}
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func newRequestCmd(opts *options, method fetch.Method, withBody bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   strings.ToLower(string(method)) + " URL",
		Short: "Send a " + string(method) + " request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, method, args[0])
		},
	}
	if withBody {
		cmd.Flags().StringVarP(&opts.data, "data", "d", "", "request body, or @file to read it from a file")
		cmd.Flags().StringArrayVarP(&opts.form, "form", "F", nil, "multipart field key=value or key=@file (repeatable)")
	}
	return cmd
}
