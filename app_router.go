package plume

import "strings"

// router is the route table: one ordered bucket of routes per HTTP method.
// Buckets are keyed by Method so no verb is ever unreachable, and within a
// bucket registration order is preserved exactly. Lookup scans the bucket in
// order and the first structurally compatible pattern wins, so more specific
// patterns must be registered before overlapping wildcard patterns.
type router[SharedData any] struct {
	buckets map[Method][]route[SharedData]
}

// route is one registered (pattern, handler) pair. A pattern is a
// slash-delimited sequence of literal segments and wildcard segments written
// "{name}". No syntax validation happens at registration; a malformed
// pattern simply never matches.
type route[SharedData any] struct {
	pattern string
	handler Handler[SharedData]
}

func newRouter[SharedData any]() *router[SharedData] {
	return &router[SharedData]{
		buckets: map[Method][]route[SharedData]{},
	}
}

// register appends the pair to the method's bucket. Routes are never
// reordered or deduplicated.
func (self *router[SharedData]) register(method Method, pattern string, handler Handler[SharedData]) {
	self.buckets[method] = append(self.buckets[method], route[SharedData]{
		pattern: pattern,
		handler: handler,
	})
}

// find strips any query suffix from path, then returns the first registered
// handler for method whose pattern is structurally compatible with the path,
// along with the extracted wildcard bindings. Returns a nil handler when the
// bucket is exhausted without a match.
func (self *router[SharedData]) find(method Method, path string) (Handler[SharedData], map[string]string) {
	if i := strings.IndexByte(path, '?'); i > -1 {
		path = path[:i]
	}
	for i := range self.buckets[method] {
		if patternMatches(path, self.buckets[method][i].pattern) {
			return self.buckets[method][i].handler, extractParams(path, self.buckets[method][i].pattern)
		}
	}
	return nil, nil
}

// patternMatches reports whether pattern is structurally compatible with
// path: identical segment count, and every pattern segment either a wildcard
// or byte-for-byte equal to the path segment. Segments are never URL-decoded,
// and empty segments from consecutive slashes compare as ordinary literals.
func patternMatches(path string, pattern string) bool {
	pathSegs := strings.Split(path, "/")
	patternSegs := strings.Split(pattern, "/")
	if len(pathSegs) != len(patternSegs) {
		return false
	}
	for i := range pathSegs {
		if pathSegs[i] != patternSegs[i] && !isWildcard(patternSegs[i]) {
			return false
		}
	}
	return true
}

// extractParams zips the path's segments against the winning pattern's
// wildcard segments, binding each wildcard name to the literal value at that
// position.
func extractParams(path string, pattern string) map[string]string {
	pathSegs := strings.Split(path, "/")
	patternSegs := strings.Split(pattern, "/")
	params := make(map[string]string)
	for i := range patternSegs {
		if i >= len(pathSegs) {
			break
		}
		if isWildcard(patternSegs[i]) {
			params[patternSegs[i][1:len(patternSegs[i])-1]] = pathSegs[i]
		}
	}
	return params
}

func isWildcard(segment string) bool {
	return strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}")
}
