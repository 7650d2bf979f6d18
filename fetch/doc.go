// Package fetch provides a lightweight HTTP request client built around a
// pluggable network primitive (a Sender).
//
// A Client merges three layers of configuration (built-in defaults, the
// instance defaults and per-call options), builds the request URL and
// query string, encodes the body, runs optional request/response/error
// interceptors, races the network call against a timeout and a
// cancellation token, and decodes the response according to the
// configured ResponseType.
//
// The Client never constructs a network primitive itself. Package
// transport provides the net/http based Sender and an Install helper
// that wires the process-wide default client at startup.
//
// # Basic Usage
//
//	c := fetch.New(sender, fetch.Config{
//	    BaseURL: "https://api.example.com",
//	    Timeout: 5 * time.Second,
//	})
//
//	users, err := c.Get(ctx, "/users", fetch.Config{
//	    Params: fetch.P("page", 2, "tag", []string{"a", "b"}),
//	})
//
// # Interceptors
//
//	c := fetch.New(sender, fetch.Config{
//	    RequestInterceptor: fetch.BearerAuth("my-token"),
//	    ErrorInterceptor: func(ctx context.Context, err error) (any, error) {
//	        if fetch.IsNotFound(err) {
//	            return nil, nil
//	        }
//	        return nil, err
//	    },
//	})
//
// # Raw responses
//
// Do returns the decoded value together with the response it came from:
//
//	reply, err := c.Do(ctx, fetch.Config{URL: "/users/1"})
//	etag := reply.Response.Header().Get("ETag")
//
// # Cancellation
//
//	token := c.CreateCancelToken()
//	go func() { time.Sleep(time.Second); token.Cancel() }()
//	_, err := c.Get(ctx, "/slow", fetch.Config{CancelToken: token})
//	// fetch.IsAborted(err) == true
package fetch
