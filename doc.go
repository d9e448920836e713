// Package addigy provides a Go client for the Addigy device management API.
//
// Addigy exposes two surfaces. The documented public API authenticates with a
// client ID and secret. The internal API behind the web console authenticates
// with a session cookie obtained by signing in with a user account; it is
// undocumented and may change without notice.
//
// # Quick Start
//
//	client, err := addigy.NewClient(
//	    addigy.WithCredentials(clientID, clientSecret),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	devices, err := client.Devices.List(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Responses are returned as json.RawMessage, exactly as Addigy sent them.
// Decode them into whatever shape you need.
//
// # Internal API
//
// Configure an owner or power user account and sign in. The returned
// SessionAuth is passed explicitly to every internal call; the client does
// not cache or refresh it.
//
//	client, err := addigy.NewClient(
//	    addigy.WithCredentials(clientID, clientSecret),
//	    addigy.WithAdminCredentials(username, password),
//	)
//
//	session, err := client.Login(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	users, err := client.Users.List(ctx, session)
//
// Impersonate switches a session to another organization:
//
//	child, err := client.Impersonate(ctx, session, childOrgID)
//
// # Error Handling
//
// Configuration problems are reported before any request is sent:
//
//	_, err := client.Login(ctx)
//	if errors.Is(err, addigy.ErrNoAdminCredentials) {
//	    // configure WithAdminCredentials
//	}
//
// Any non-2xx response is returned as *APIError carrying the status code, body
// and headers. Network errors are returned as produced by the HTTP client.
// Nothing is retried.
package addigy
