package settings

import (
	"slices"
	"strings"
)

// hiddenEntries are never reported as themes or apps.
var hiddenEntries = []string{"_messages", "README.md"}

// FilterPaths turns a directory listing into availability records.
// Hidden entries (leading dot, _messages, README.md) are skipped. active may
// be a string, a []string or a []any of strings and marks the active entries.
func FilterPaths(listing Listing, active any) []PathEntry {
	activeNames := normalizeActive(active)
	res := make([]PathEntry, 0, len(listing))

	for _, entry := range listing {
		if strings.HasPrefix(entry.Name, ".") || slices.Contains(hiddenEntries, entry.Name) {
			continue
		}

		item := PathEntry{
			Name:    entry.Name,
			Package: false,
			Active:  slices.Contains(activeNames, entry.Name),
		}

		if entry.Package != nil {
			item.Package = entry.Package
		}

		res = append(res, item)
	}

	return res
}

func normalizeActive(active any) []string {
	switch v := active.(type) {
	case nil:
		return nil
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		names := make([]string, 0, len(v))
		for _, a := range v {
			if s, ok := a.(string); ok {
				names = append(names, s)
			}
		}

		return names
	default:
		return nil
	}
}
