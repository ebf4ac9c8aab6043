// Package settings implements the blog settings store.
//
// The Store keeps every configuration row of the blog in an in-memory cache
// that is loaded once by New and patched on every successful Edit. Each
// setting carries a category Type which drives visibility:
//
//   - blog settings are public and readable without any caller context
//   - core settings are only visible to internal callers
//   - theme, app and plugin settings require a permission check
//
// Persistence, permission checks, theme/app directory listings and the theme
// configuration consumed by the renderer are collaborators passed in through
// Deps. The derived settings availableThemes and availableApps are computed
// from the directory listings on every refresh and are never persisted.
package settings
