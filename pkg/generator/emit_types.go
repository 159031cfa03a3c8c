package generator

import (
	"fmt"
	"strings"

	"github.com/rawbytedev/datacore/pkg/schema"
)

// emitTypes produces types.go: one named type and a by-name lookup map
// per enum, one marker interface plus struct value type per struct
// (embedding the parent's value type anonymously when one exists), and
// an AsBase accessor for every struct with a parent. The marker
// interfaces are what let a reference<Base> property's generated field
// type be satisfied by *Derived without Go needing structural
// subtyping for pointers: embedding Base promotes Base's unexported
// marker method onto *Derived for free.
func emitTypes(db schemaSource, n names, cfg Config) (string, error) {
	needsTyped, err := usesTyped(db)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "package %s\n\n", cfg.PackageName)
	if needsTyped {
		b.WriteString("import \"github.com/rawbytedev/datacore/pkg/typed\"\n\n")
	}

	for i := 0; i < db.EnumCount(); i++ {
		if err := emitEnum(&b, db, n, int32(i)); err != nil {
			return "", err
		}
	}

	for i := 0; i < db.StructCount(); i++ {
		if err := emitStruct(&b, db, n, int32(i)); err != nil {
			return "", err
		}
	}

	return b.String(), nil
}

func emitEnum(b *strings.Builder, db schemaSource, n names, enumIndex int32) error {
	e, err := db.Enum(enumIndex)
	if err != nil {
		return err
	}
	goName := n.enums[enumIndex]

	fmt.Fprintf(b, "type %s int32\n\n", goName)
	fmt.Fprintf(b, "const %sUnknown %s = -1\n", goName, goName)

	options, err := db.EnumOptions(enumIndex)
	if err != nil {
		return err
	}
	byName := make(map[string]string, len(options))
	for i := range options {
		optName, err := db.EnumOptionName(enumIndex, int32(i))
		if err != nil {
			return err
		}
		constName := fmt.Sprintf("%s%s", goName, toPascalCase(optName))
		fmt.Fprintf(b, "const %s %s = %d\n", constName, goName, i)
		byName[optName] = constName
	}

	fmt.Fprintf(b, "\nvar %sByName = map[string]%s{\n", toCamelCase(e.Name), goName)
	for i := range options {
		optName, err := db.EnumOptionName(enumIndex, int32(i))
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "\t%q: %s,\n", optName, byName[optName])
	}
	fmt.Fprintf(b, "}\n\n")
	return nil
}

func emitStruct(b *strings.Builder, db schemaSource, n names, structIndex int32) error {
	s, err := db.Struct(structIndex)
	if err != nil {
		return err
	}
	goName := n.structs[structIndex]

	fmt.Fprintf(b, "// is%s is the unexported marker %s and every struct embedding it\n", goName, goName)
	fmt.Fprintf(b, "// (directly or transitively) implement, satisfying %sRef.\n", goName)
	fmt.Fprintf(b, "type %sRef interface {\n\tis%s()\n}\n\n", goName, goName)
	fmt.Fprintf(b, "func (*%s) is%s() {}\n\n", goName, goName)

	props, err := structProperties(db, s)
	if err != nil {
		return err
	}

	fmt.Fprintf(b, "type %s struct {\n", goName)
	if s.ParentIndex != schema.NullIndex {
		fmt.Fprintf(b, "\t%s\n", n.structs[s.ParentIndex])
	}
	for _, p := range props {
		fmt.Fprintf(b, "\t%s %s\n", toPascalCase(p.Name), n.fieldGoType(p))
	}
	fmt.Fprintf(b, "}\n\n")

	if s.ParentIndex != schema.NullIndex {
		parentName := n.structs[s.ParentIndex]
		fmt.Fprintf(b, "// AsBase narrows to the embedded %s.\n", parentName)
		fmt.Fprintf(b, "func (v *%s) AsBase() *%s { return &v.%s }\n\n", goName, parentName, parentName)
	}

	return nil
}
