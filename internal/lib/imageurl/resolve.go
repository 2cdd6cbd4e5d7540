// Package imageurl turns storage paths returned by the backend into URLs a
// browser can fetch. The backend answers with paths relative to its media
// origin, e.g. "/media/banners/x.png"; absolute URLs pass through untouched.
package imageurl

import (
	"net/url"
	"strings"
)

type Resolver struct {
	origin string
}

func New(origin string) *Resolver {
	return &Resolver{origin: strings.TrimRight(origin, "/")}
}

// Resolve never fails. An empty path yields the bare origin, which callers
// must treat as "no image".
func (r *Resolver) Resolve(path string) string {
	if isAbsolute(path) {
		return path
	}
	if path == "" {
		return r.origin
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return r.origin + path
}

// ResolveOptional maps a missing path to "".
func (r *Resolver) ResolveOptional(path *string) string {
	if path == nil || *path == "" {
		return ""
	}
	return r.Resolve(*path)
}

func isAbsolute(path string) bool {
	if strings.HasPrefix(path, "//") {
		return true
	}
	u, err := url.Parse(path)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != ""
}
