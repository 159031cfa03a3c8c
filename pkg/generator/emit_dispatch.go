package generator

import (
	"fmt"
	"strings"
)

// emitDispatch produces dispatch.go: the central struct-index switch,
// a pure function from struct index to
// runtime.getOrReadInstance<ConcreteType>(index, instance), plus the
// four schema constants a caller passes to Runtime.ValidateSchema at
// startup. Modeled on a flat tag-switch dispatch style, generalized
// from a run-time tag lookup to a compile-time struct-index lookup.
func emitDispatch(db schemaSource, n names, cfg Config) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "package %s\n\n", cfg.PackageName)
	b.WriteString("import (\n")
	b.WriteString("\t\"fmt\"\n\n")
	b.WriteString("\t\"github.com/rawbytedev/datacore/pkg/typed\"\n")
	b.WriteString(")\n\n")

	fmt.Fprintf(&b, "const StructCount = %d\n", db.StructCount())
	fmt.Fprintf(&b, "const EnumCount = %d\n", db.EnumCount())
	fmt.Fprintf(&b, "const StructFingerprint = uint64(%#x)\n", db.StructFingerprint())
	fmt.Fprintf(&b, "const EnumFingerprint = uint64(%#x)\n\n", db.EnumFingerprint())

	fmt.Fprintf(&b, "func %s(ctx *typed.ReadContext, structIndex, instanceIndex int32) (any, error) {\n", cfg.dispatcherName())
	b.WriteString("\tswitch structIndex {\n")
	for i := 0; i < db.StructCount(); i++ {
		goName := n.structs[i]
		fmt.Fprintf(&b, "\tcase %d:\n", i)
		fmt.Fprintf(&b, "\t\treturn typed.GetOrReadInstance[*%s](ctx, structIndex, instanceIndex, Read%s)\n", goName, goName)
	}
	b.WriteString("\tdefault:\n")
	fmt.Fprintf(&b, "\t\treturn nil, fmt.Errorf(\"%%w: struct index %%d\", typed.ErrNullDispatch, structIndex)\n")
	b.WriteString("\t}\n}\n")

	return b.String(), nil
}
