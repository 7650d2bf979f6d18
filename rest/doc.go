// Package rest provides typed JSON helpers on top of fetch.Client.
//
//	client := fetch.New(sender, fetch.Config{BaseURL: "https://api.example.com"})
//
//	// Typed GET
//	user, err := rest.Get[User](ctx, client, "/users/123")
//
//	// Typed POST
//	created, err := rest.Post[User](ctx, client, "/users", CreateUserRequest{Name: "Alice"})
package rest
