// Package auth implements role based access control for the admin API.
//
// Users authenticate with their id and an API key (Argon2id hashed). Each
// user has one role, roles hold permissions named resource.action, e.g.
// "setting.edit". Service implements settings.Permissions, so the settings
// store asks it before every browse, read and edit.
//
// Seed creates the permission definitions and the system roles:
//   - Administrator: every permission
//   - Editor: browse and read settings, browse themes
//   - Author: browse and read settings
package auth
