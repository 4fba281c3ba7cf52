package node

import "strings"

// Separator joins the segments of a dotted path.
const Separator = "."

// Path is a dotted hierarchical name together with its depth.
//
// The zero Path is empty with depth 0. Each [Path.Append] adds
// Separator+segment and increments the depth, so the root of application
// "app" is ".app" at depth 1.
type Path struct {
	value string
	depth int
}

// NewPath returns a path with an explicit value and depth.
func NewPath(value string, depth int) Path {
	return Path{value: value, depth: depth}
}

// Append returns a copy of p extended by one segment.
func (p Path) Append(segment string) Path {
	return Path{value: p.value + Separator + segment, depth: p.depth + 1}
}

// String returns the dotted path.
func (p Path) String() string { return p.value }

// Depth returns the number of segments in the path.
func (p Path) Depth() int { return p.depth }

// IsZero reports whether p is the empty path.
func (p Path) IsZero() bool { return p.value == "" && p.depth == 0 }

// Child returns the path of a child named name below parent.
func Child(parent, name string) string {
	return parent + Separator + name
}

// AppName extracts the application name (first segment) from a dotted path.
// It returns false when the path does not start with the separator or the
// first segment is empty.
func AppName(path string) (string, bool) {
	if !strings.HasPrefix(path, Separator) {
		return "", false
	}
	rest := path[len(Separator):]
	name, _, _ := strings.Cut(rest, Separator)
	if name == "" {
		return "", false
	}
	return name, true
}
