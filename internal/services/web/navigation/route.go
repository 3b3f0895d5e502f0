package navigation

import (
	"fmt"
	"net/url"
	"strings"
)

// Meta carries per-route flags consumed by the guard.
type Meta struct {
	RequiresAuth bool
}

// Route binds a path pattern to a view. Pattern segments starting with ':'
// capture one non-empty path segment.
type Route struct {
	Path string
	View string
	Name string
	Meta Meta
}

// Params holds captured pattern segments by name.
type Params map[string]string

// Get returns the captured value for name.
func (p Params) Get(name string) string {
	if p == nil {
		return ""
	}
	return p[name]
}

// Location is a route resolved against a concrete path.
type Location struct {
	Route  Route
	Path   string
	Params Params
}

// IsZero reports whether the location resolved nothing.
func (l Location) IsZero() bool {
	return l.Route.Path == "" && l.Path == ""
}

type compiledRoute struct {
	route    Route
	segments []string
}

// Table is an immutable, ordered set of routes. The first matching route wins.
type Table struct {
	routes []compiledRoute
	byName map[string]int
}

// NewTable validates routes and freezes them into a Table.
func NewTable(routes []Route) (*Table, error) {
	table := &Table{
		routes: make([]compiledRoute, 0, len(routes)),
		byName: map[string]int{},
	}
	seen := map[string]string{}
	for idx, route := range routes {
		segments, err := compilePattern(route.Path)
		if err != nil {
			return nil, fmt.Errorf("route %d: %w", idx, err)
		}
		if strings.TrimSpace(route.View) == "" {
			return nil, fmt.Errorf("route %q: view is required", route.Path)
		}
		shape := patternShape(segments)
		if previous, ok := seen[shape]; ok {
			return nil, fmt.Errorf("route %q duplicates pattern %q", route.Path, previous)
		}
		seen[shape] = route.Path
		if route.Name != "" {
			if _, ok := table.byName[route.Name]; ok {
				return nil, fmt.Errorf("route %q duplicates name %q", route.Path, route.Name)
			}
			table.byName[route.Name] = len(table.routes)
		}
		table.routes = append(table.routes, compiledRoute{route: route, segments: segments})
	}
	return table, nil
}

// Routes returns a copy of the table in declaration order.
func (t *Table) Routes() []Route {
	if t == nil {
		return nil
	}
	out := make([]Route, 0, len(t.routes))
	for _, compiled := range t.routes {
		out = append(out, compiled.route)
	}
	return out
}

// Named returns the route registered under name.
func (t *Table) Named(name string) (Route, bool) {
	if t == nil {
		return Route{}, false
	}
	idx, ok := t.byName[name]
	if !ok {
		return Route{}, false
	}
	return t.routes[idx].route, true
}

// Resolve matches an URL path against the table.
func (t *Table) Resolve(path string) (Location, bool) {
	if t == nil {
		return Location{}, false
	}
	segments, ok := splitPath(path)
	if !ok {
		return Location{}, false
	}
	for _, compiled := range t.routes {
		params, ok := matchSegments(compiled.segments, segments)
		if !ok {
			continue
		}
		return Location{Route: compiled.route, Path: path, Params: params}, true
	}
	return Location{}, false
}

func compilePattern(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, fmt.Errorf("path is required")
	}
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("path %q must begin with /", pattern)
	}
	if pattern == "/" {
		return []string{}, nil
	}
	segments := strings.Split(strings.TrimPrefix(pattern, "/"), "/")
	names := map[string]bool{}
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("path %q has an empty segment", pattern)
		}
		if !strings.HasPrefix(segment, ":") {
			continue
		}
		name := strings.TrimPrefix(segment, ":")
		if name == "" {
			return nil, fmt.Errorf("path %q has an unnamed parameter", pattern)
		}
		if names[name] {
			return nil, fmt.Errorf("path %q repeats parameter %q", pattern, name)
		}
		names[name] = true
	}
	return segments, nil
}

// patternShape erases parameter names so "/a/:x" and "/a/:y" collide.
func patternShape(segments []string) string {
	parts := make([]string, len(segments))
	for idx, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			parts[idx] = ":"
			continue
		}
		parts[idx] = segment
	}
	return "/" + strings.Join(parts, "/")
}

// splitPath tolerates one trailing slash and rejects empty inner segments.
func splitPath(path string) ([]string, bool) {
	if !strings.HasPrefix(path, "/") {
		return nil, false
	}
	if path == "/" {
		return []string{}, true
	}
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/")
	if trimmed == "" {
		return nil, false
	}
	segments := strings.Split(trimmed, "/")
	for _, segment := range segments {
		if segment == "" {
			return nil, false
		}
	}
	return segments, true
}

func matchSegments(pattern []string, segments []string) (Params, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}
	var params Params
	for idx, want := range pattern {
		got := segments[idx]
		if !strings.HasPrefix(want, ":") {
			if want != got {
				return nil, false
			}
			continue
		}
		value, err := url.PathUnescape(got)
		if err != nil || value == "" {
			return nil, false
		}
		if params == nil {
			params = Params{}
		}
		params[strings.TrimPrefix(want, ":")] = value
	}
	return params, true
}
