// Package ident provides identifier helpers shared by the graph builder and
// the code generator: case conversion, reserved-word escaping, and collision
// avoidance for generated names.
package ident

import (
	"strings"
	"unicode"
)

// reserved lists the Go keywords. Predeclared identifiers (string, len, ...)
// are shadowable and therefore legal as method names, so they are not listed.
var reserved = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true,
	"for": true, "func": true, "go": true, "goto": true, "if": true,
	"import": true, "interface": true, "map": true, "package": true,
	"range": true, "return": true, "select": true, "struct": true,
	"switch": true, "type": true, "var": true,
}

// IsReserved reports whether name is a Go keyword.
func IsReserved(name string) bool {
	return reserved[name]
}

// Escape makes name usable as a generated identifier by appending an
// underscore while it is a keyword. Go has no raw-identifier syntax, so this
// is the only escape available.
func Escape(name string) string {
	for IsReserved(name) {
		name += "_"
	}
	return name
}

// SnakeCase converts CamelCase to snake_case: an underscore is inserted
// before every interior uppercase rune. BeautifulBridge -> beautiful_bridge.
func SnakeCase(name string) string {
	var b strings.Builder
	for i, ch := range name {
		if i > 0 && unicode.IsUpper(ch) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(ch))
	}
	return b.String()
}

// LowerCamel lowercases the first rune of name.
func LowerCamel(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// UpperFirst uppercases the first rune of name.
func UpperFirst(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Exported reports whether name starts with an uppercase rune.
func Exported(name string) bool {
	for _, ch := range name {
		return unicode.IsUpper(ch)
	}
	return false
}

// Valid reports whether name is a well-formed Go identifier.
func Valid(name string) bool {
	if name == "" {
		return false
	}
	for i, ch := range name {
		if ch == '_' || unicode.IsLetter(ch) {
			continue
		}
		if i > 0 && unicode.IsDigit(ch) {
			continue
		}
		return false
	}
	return !IsReserved(name)
}

// Unique returns name, suffixed with underscores until it is absent from
// taken, and records the result in taken.
func Unique(name string, taken map[string]bool) string {
	for taken[name] {
		name += "_"
	}
	taken[name] = true
	return name
}
