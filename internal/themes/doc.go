// Package themes lists installed themes and apps from the content directory
// and implements the themes API on top of the settings store.
package themes
