package plume

import "strings"

// RouteGroup collects related routes so they can be mounted together under a
// common prefix with RegisterGroup. Groups are registration sugar only; the
// routes land in the same ordered per-method buckets as direct Register
// calls, in the order they appear in the group.
type RouteGroup[SharedData any] struct {
	Routes []GroupedRoute[SharedData]
}

// GroupedRoute is one route inside a group, with its pattern relative to the
// mount prefix.
type GroupedRoute[SharedData any] struct {
	Pattern string
	Method  Method
	Handler Handler[SharedData]
}

// NewRouteGroup creates a route group from the given routes.
func NewRouteGroup[SharedData any](routes ...GroupedRoute[SharedData]) *RouteGroup[SharedData] {
	return &RouteGroup[SharedData]{
		Routes: routes,
	}
}

// GetRoute creates a GET route for use in a route group.
func GetRoute[SharedData any](pattern string, handler Handler[SharedData]) GroupedRoute[SharedData] {
	return GroupedRoute[SharedData]{Pattern: pattern, Method: Get, Handler: handler}
}

// PostRoute creates a POST route for use in a route group.
func PostRoute[SharedData any](pattern string, handler Handler[SharedData]) GroupedRoute[SharedData] {
	return GroupedRoute[SharedData]{Pattern: pattern, Method: Post, Handler: handler}
}

// PutRoute creates a PUT route for use in a route group.
func PutRoute[SharedData any](pattern string, handler Handler[SharedData]) GroupedRoute[SharedData] {
	return GroupedRoute[SharedData]{Pattern: pattern, Method: Put, Handler: handler}
}

// PatchRoute creates a PATCH route for use in a route group.
func PatchRoute[SharedData any](pattern string, handler Handler[SharedData]) GroupedRoute[SharedData] {
	return GroupedRoute[SharedData]{Pattern: pattern, Method: Patch, Handler: handler}
}

// DeleteRoute creates a DELETE route for use in a route group.
func DeleteRoute[SharedData any](pattern string, handler Handler[SharedData]) GroupedRoute[SharedData] {
	return GroupedRoute[SharedData]{Pattern: pattern, Method: Delete, Handler: handler}
}

// RegisterGroup mounts every route in the group under prefix and returns the
// service for chaining. The prefix is normalized to start and end with "/",
// and a leading "/" on each grouped pattern is dropped so the joined pattern
// has no double slash.
func (ws *WebService[SharedData]) RegisterGroup(prefix string, rg *RouteGroup[SharedData]) *WebService[SharedData] {
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	for i := range rg.Routes {
		pattern := strings.TrimPrefix(rg.Routes[i].Pattern, "/")
		ws.routes.register(rg.Routes[i].Method, prefix+pattern, rg.Routes[i].Handler)
	}
	return ws
}
