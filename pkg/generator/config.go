// Package generator walks a parsed database's schema tables and emits
// Go source: one value type and Read function per struct, one named
// type per enum, and a central dispatch table. Uses plain
// fmt.Sprintf-based string building over a destructured schema, no
// template engine or AST-construction library.
package generator

// Config controls what Generate emits. Command-line parsing of these
// values is out of scope; a caller such as a build-time
// tool or a test builds one by hand.
type Config struct {
	// PackageName is the package clause written at the top of every
	// emitted file.
	PackageName string
	// DispatcherName is the exported function name of the generated
	// dispatch table, e.g. "Dispatch".
	DispatcherName string
	// EmitManifest additionally produces a MANIFEST.txt listing every
	// generated file alongside the schema counts and fingerprints it
	// was generated from, useful for diffing regenerated output.
	EmitManifest bool
}

func (c Config) dispatcherName() string {
	if c.DispatcherName == "" {
		return "Dispatch"
	}
	return c.DispatcherName
}
