package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RouterRootPath is the root path of a route group.
	RouterRootPath = "/"

	// APIPrefix is the route group of the JSON API.
	APIPrefix = "/api"

	// CacheControlPrivate is sent on every API response.
	CacheControlPrivate = "no-cache, private"
)
