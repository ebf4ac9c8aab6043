// Package uniuri generates cryptographically secure random strings, used for
// API keys.
package uniuri
