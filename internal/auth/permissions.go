package auth

import (
	"github.com/inkpost/inkpost/internal/settings"
)

// Permission names, resource.action.
const (
	// PermSettingBrowse allows listing settings.
	PermSettingBrowse = string(settings.ActionBrowseSetting)
	// PermSettingRead allows reading non blog settings.
	PermSettingRead = string(settings.ActionReadSetting)
	// PermSettingEdit allows editing settings.
	PermSettingEdit = string(settings.ActionEditSetting)
	// PermThemeBrowse allows listing installed themes.
	PermThemeBrowse = string(settings.ActionBrowseTheme)
	// PermThemeEdit allows activating a theme.
	PermThemeEdit = string(settings.ActionEditTheme)
)

// System role names.
const (
	RoleAdministrator = "Administrator"
	RoleEditor        = "Editor"
	RoleAuthor        = "Author"
)

// Definition describes a permission row.
type Definition struct {
	Name        string
	Resource    string
	Action      string
	Description string
}

// Definitions lists every permission known to the application.
var Definitions = []Definition{
	{PermSettingBrowse, "setting", "browse", "List blog, theme and app settings"},
	{PermSettingRead, "setting", "read", "Read a single non blog setting"},
	{PermSettingEdit, "setting", "edit", "Change settings"},
	{PermThemeBrowse, "theme", "browse", "List installed themes"},
	{PermThemeEdit, "theme", "edit", "Activate an installed theme"},
}

// RoleDefinition describes a system role and its permissions.
type RoleDefinition struct {
	Name        string
	Description string
	Permissions []string
}

// Roles lists the system roles created by Seed.
var Roles = []RoleDefinition{
	{
		Name:        RoleAdministrator,
		Description: "Full access to settings and themes",
		Permissions: []string{PermSettingBrowse, PermSettingRead, PermSettingEdit, PermThemeBrowse, PermThemeEdit},
	},
	{
		Name:        RoleEditor,
		Description: "Can see settings and themes",
		Permissions: []string{PermSettingBrowse, PermSettingRead, PermThemeBrowse},
	},
	{
		Name:        RoleAuthor,
		Description: "Can see settings",
		Permissions: []string{PermSettingBrowse, PermSettingRead},
	},
}
