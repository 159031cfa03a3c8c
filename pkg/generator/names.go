package generator

import (
	"strings"
	"unicode"
)

// reservedWords is the set of Go keywords and predeclared identifiers a
// generated local variable name must dodge. Exported struct field
// names never collide with these — Go keywords are always lowercase,
// and toPascalCase always capitalizes the first letter — so this table
// is consulted only by toCamelCase, which produces the unexported local
// variable names generated Read functions assign into.
var reservedWords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
	"error": true, "string": true, "bool": true, "byte": true, "int": true, "len": true,
}

// toPascalCase generalizes tobsdb-tobsdb/tools/generate/utils.go's
// toPascalCase from splitting only on "_" to splitting on any
// non-letter/digit separator, and guards against a leading digit
// (an invalid identifier start) by prefixing an underscore.
func toPascalCase(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upperNext = true
			continue
		}
		if upperNext {
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		} else {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return "Field"
	}
	if unicode.IsDigit(rune(out[0])) {
		out = "_" + out
	}
	return out
}

// toCamelCase lower-cases the first letter of toPascalCase's result and
// appends an underscore if the result collides with a Go keyword or
// predeclared identifier, for use as a local variable name inside a
// generated Read function body.
func toCamelCase(name string) string {
	pascal := toPascalCase(name)
	r := []rune(pascal)
	r[0] = unicode.ToLower(r[0])
	camel := string(r)
	if reservedWords[camel] {
		camel += "_"
	}
	return camel
}
