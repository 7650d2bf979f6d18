// Package transport provides the net/http implementation of fetch.Sender.
//
// The sender keeps two http.Clients over one connection pool: one with a
// cookie jar, used when a request asks for credentials, and one without.
// Bodies are converted from the fetch payload types (strings, bytes,
// readers, url.Values, *fetch.FormData, or JSON for anything else) and
// responses are fully buffered before they are handed back.
//
//	client, err := transport.Install(transport.Config{}, fetch.Config{
//		BaseURL: "https://api.example.com",
//	})
//	if err != nil {
//		return err
//	}
//	users, err := fetch.Get(ctx, "/users")
package transport
