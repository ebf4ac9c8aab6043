// Package auth provides the caller identity middleware for the web application.
//
// Requests identify their caller with two headers:
//   - X-Inkpost-User holds the numeric user id
//   - X-Inkpost-Key holds the API key of that user
//
// A request without both headers is public and handlers receive a nil
// *settings.Context. Invalid credentials are rejected with 401.
//
// Usage:
//
//	app.Use(authmiddleware.New(authService))
package auth
