// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "strings"

// IndexOf returns the index of the given item in the given slice,
// or -1 if it is not present.
func IndexOf(items []Item, item Item) int {
	for i, it := range items {
		if it == item {
			return i
		}
	}
	return -1
}

// IndexByName returns the index of the first item with the given name
// in the given slice, or -1 if there is none.
func IndexByName(items []Item, name string) int {
	for i, it := range items {
		if it.AsItem().Name == name {
			return i
		}
	}
	return -1
}

// EscapePathName returns the given name with slashes and dots escaped
// so that it can be used unambiguously in an item path.
func EscapePathName(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, `\`, `\\`), "/", `\/`)
}

// UnescapePathName undoes [EscapePathName].
func UnescapePathName(name string) string {
	return strings.ReplaceAll(strings.ReplaceAll(name, `\/`, "/"), `\\`, `\`)
}

// splitPath splits the given path on unescaped slashes.
func splitPath(path string) []string {
	var parts []string
	var cur strings.Builder
	escaped := false
	for _, r := range path {
		switch {
		case escaped:
			cur.WriteByte('\\')
			cur.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '/':
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if escaped {
		cur.WriteByte('\\')
	}
	parts = append(parts, cur.String())
	return parts
}
