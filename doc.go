// Package main provides the entry point of Inkpost, a blogging platform.
// It serves a JSON API to browse, read and edit typed blog settings behind
// role based permissions, switch the active theme and renders the public
// blog index from the published theme variables.
package main
