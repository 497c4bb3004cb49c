// Package strings holds small string helpers the standard package lacks
package strings

import std "strings"

// IfEmpty returns def when in is empty
func IfEmpty[T any](in, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustPrefix normalises a mount path to one leading slash and no trailing one
// it panics on the root path
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), "/ ")
	if s == "/" {
		panic("mount prefix is required")
	}
	return s
}

// Deref returns the pointed string or ""
func Deref(ps *string) string {
	if ps == nil {
		return ""
	}
	return *ps
}
