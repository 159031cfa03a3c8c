package generator

import (
	"fmt"
	"strings"

	"github.com/rawbytedev/datacore/pkg/schema"
)

// emitReaders produces read.go: a private read<Name>Fields(ctx, cur)
// per struct, decoding exactly that struct's own properties and, for a
// struct with a parent, starting by delegating to the parent's own
// read<Name>Fields to build the embedded value — giving the
// "ancestor chain base-to-derived, then its own properties" order of
// the archive layout for free from composition — plus an exported
// Read<Name>(ctx, cur) (*Name, error) wrapper every dispatch table
// entry and every class-array property calls. A scalar class property
// calls the target's read<Name>Fields directly.
func emitReaders(db schemaSource, n names, cfg Config) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "package %s\n\n", cfg.PackageName)
	b.WriteString("import (\n")
	b.WriteString("\t\"github.com/rawbytedev/datacore/pkg/cursor\"\n")
	b.WriteString("\t\"github.com/rawbytedev/datacore/pkg/database\"\n")
	b.WriteString("\t\"github.com/rawbytedev/datacore/pkg/typed\"\n")
	b.WriteString(")\n\n")

	for i := 0; i < db.StructCount(); i++ {
		if err := emitStructReader(&b, db, n, int32(i)); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func emitStructReader(b *strings.Builder, db schemaSource, n names, structIndex int32) error {
	s, err := db.Struct(structIndex)
	if err != nil {
		return err
	}
	goName := n.structs[structIndex]
	fieldsFn := fmt.Sprintf("read%sFields", goName)

	props, err := structProperties(db, s)
	if err != nil {
		return err
	}

	fmt.Fprintf(b, "func %s(ctx *typed.ReadContext, cur *cursor.Cursor) (%s, error) {\n", fieldsFn, goName)
	fmt.Fprintf(b, "\tvar v %s\n", goName)

	if s.ParentIndex != schema.NullIndex {
		parentName := n.structs[s.ParentIndex]
		parentFieldsFn := fmt.Sprintf("read%sFields", parentName)
		fmt.Fprintf(b, "\tbase, err := %s(ctx, cur)\n", parentFieldsFn)
		fmt.Fprintf(b, "\tif err != nil {\n\t\treturn v, err\n\t}\n")
		fmt.Fprintf(b, "\tv.%s = base\n", parentName)
	}

	for _, p := range props {
		if err := emitPropertyRead(b, n, p); err != nil {
			return err
		}
	}

	fmt.Fprintf(b, "\treturn v, nil\n}\n\n")

	fmt.Fprintf(b, "func Read%s(ctx *typed.ReadContext, cur *cursor.Cursor) (*%s, error) {\n", goName, goName)
	fmt.Fprintf(b, "\tv, err := %s(ctx, cur)\n", fieldsFn)
	fmt.Fprintf(b, "\tif err != nil {\n\t\treturn nil, err\n\t}\n")
	fmt.Fprintf(b, "\treturn &v, nil\n}\n\n")
	return nil
}

// emitPropertyRead writes the statements that read one property into
// its field of v, following the field-by-field algorithm of the format
// §4.3 exactly.
func emitPropertyRead(b *strings.Builder, n names, p schema.PropertyDef) error {
	field := toPascalCase(p.Name)
	local := toCamelCase(p.Name)

	if p.Conversion == schema.ConvArray {
		switch p.DataType {
		case schema.TypeClass:
			target := n.structs[p.TargetIndex]
			fmt.Fprintf(b, "\t%s, err := typed.ReadClassArray(ctx, cur, %d, Read%s)\n", local, p.TargetIndex, target)
		case schema.TypeReference:
			target := n.structs[p.TargetIndex]
			fmt.Fprintf(b, "\t%s, err := typed.ReadRefArray[%sRef](ctx.RT, cur)\n", local, target)
		case schema.TypeStrongPointer:
			target := n.structs[p.TargetIndex]
			fmt.Fprintf(b, "\t%s, err := typed.ReadStrongPointerArray[%sRef](ctx.RT, cur)\n", local, target)
		case schema.TypeWeakPointer:
			target := n.structs[p.TargetIndex]
			fmt.Fprintf(b, "\t%s, err := typed.ReadWeakPointerArray[%sRef](ctx.RT, cur)\n", local, target)
		case schema.TypeEnumChoice:
			enumName := n.enums[p.TargetIndex]
			fmt.Fprintf(b, "\t%s, err := typed.ReadEnumArray(ctx.RT, cur, %sUnknown, %sByName)\n", local, enumName, toCamelCase(enumName))
		case schema.TypeString:
			fmt.Fprintf(b, "\t%s, err := typed.ReadStringArray(cur, ctx.RT.Database())\n", local)
		case schema.TypeLocale:
			fmt.Fprintf(b, "\t%s, err := typed.ReadLocaleArray(cur, ctx.RT.Database())\n", local)
		default:
			fmt.Fprintf(b, "\t%s, err := typed.Read%sArray(cur, ctx.RT.Database().Pools())\n", local, arrayHelperSuffix(p.DataType))
		}
		fmt.Fprintf(b, "\tif err != nil {\n\t\treturn v, err\n\t}\n")
		fmt.Fprintf(b, "\tv.%s = %s\n", field, local)
		return nil
	}

	switch p.DataType {
	case schema.TypeBool:
		emitScalarPrimitive(b, field, local, "ReadBool")
	case schema.TypeInt8:
		emitScalarPrimitive(b, field, local, "ReadI8")
	case schema.TypeUint8:
		emitScalarPrimitive(b, field, local, "ReadU8")
	case schema.TypeInt16:
		emitScalarPrimitive(b, field, local, "ReadI16")
	case schema.TypeUint16:
		emitScalarPrimitive(b, field, local, "ReadU16")
	case schema.TypeInt32:
		emitScalarPrimitive(b, field, local, "ReadI32")
	case schema.TypeUint32:
		emitScalarPrimitive(b, field, local, "ReadU32")
	case schema.TypeInt64:
		emitScalarPrimitive(b, field, local, "ReadI64")
	case schema.TypeUint64:
		emitScalarPrimitive(b, field, local, "ReadU64")
	case schema.TypeSingle:
		emitScalarPrimitive(b, field, local, "ReadF32")
	case schema.TypeDouble:
		emitScalarPrimitive(b, field, local, "ReadF64")
	case schema.TypeGUID:
		emitScalarPrimitive(b, field, local, "ReadGUID")
	case schema.TypeString:
		fmt.Fprintf(b, "\t%sID, err := cur.ReadI32()\n", local)
		fmt.Fprintf(b, "\tif err != nil {\n\t\treturn v, err\n\t}\n")
		fmt.Fprintf(b, "\t%s, err := ctx.RT.Database().String(%sID)\n", local, local)
		fmt.Fprintf(b, "\tif err != nil {\n\t\treturn v, err\n\t}\n")
		fmt.Fprintf(b, "\tv.%s = %s\n", field, local)
	case schema.TypeLocale:
		fmt.Fprintf(b, "\t%sID, err := cur.ReadI32()\n", local)
		fmt.Fprintf(b, "\tif err != nil {\n\t\treturn v, err\n\t}\n")
		fmt.Fprintf(b, "\t%s, err := ctx.RT.Database().String(%sID)\n", local, local)
		fmt.Fprintf(b, "\tif err != nil {\n\t\treturn v, err\n\t}\n")
		fmt.Fprintf(b, "\tv.%s = %s\n", field, local)
	case schema.TypeEnumChoice:
		enumName := n.enums[p.TargetIndex]
		fmt.Fprintf(b, "\t%sID, err := cur.ReadI32()\n", local)
		fmt.Fprintf(b, "\tif err != nil {\n\t\treturn v, err\n\t}\n")
		fmt.Fprintf(b, "\tv.%s = typed.EnumParse(ctx.RT, %sID, %sUnknown, %sByName)\n", field, local, enumName, toCamelCase(enumName))
	case schema.TypeClass:
		target := n.structs[p.TargetIndex]
		fmt.Fprintf(b, "\t%s, err := read%sFields(ctx, cur)\n", local, target)
		fmt.Fprintf(b, "\tif err != nil {\n\t\treturn v, err\n\t}\n")
		fmt.Fprintf(b, "\tv.%s = %s\n", field, local)
	case schema.TypeReference:
		target := n.structs[p.TargetIndex]
		fmt.Fprintf(b, "\t%sGUID, err := cur.ReadGUID()\n", local)
		fmt.Fprintf(b, "\tif err != nil {\n\t\treturn v, err\n\t}\n")
		fmt.Fprintf(b, "\t%sIdx, err := cur.ReadI32()\n", local)
		fmt.Fprintf(b, "\tif err != nil {\n\t\treturn v, err\n\t}\n")
		fmt.Fprintf(b, "\tv.%s = typed.CreateRefFromReference[%sRef](ctx.RT, database.ReferenceEntry{GUID: %sGUID, InstanceIndex: %sIdx})\n", field, target, local, local)
	case schema.TypeStrongPointer, schema.TypeWeakPointer:
		target := n.structs[p.TargetIndex]
		helper := "CreateRefFromPointer"
		fmt.Fprintf(b, "\t%sStruct, %sInst, err := cur.ReadIndexPair()\n", local, local)
		fmt.Fprintf(b, "\tif err != nil {\n\t\treturn v, err\n\t}\n")
		fmt.Fprintf(b, "\tv.%s = typed.%s[%sRef](ctx.RT, database.PointerEntry{StructIndex: %sStruct, InstanceIndex: %sInst})\n", field, helper, target, local, local)
	default:
		return fmt.Errorf("generator: unsupported data type %d for property %q", p.DataType, p.Name)
	}
	return nil
}

func emitScalarPrimitive(b *strings.Builder, field, local, readFn string) {
	fmt.Fprintf(b, "\t%s, err := cur.%s()\n", local, readFn)
	fmt.Fprintf(b, "\tif err != nil {\n\t\treturn v, err\n\t}\n")
	fmt.Fprintf(b, "\tv.%s = %s\n", field, local)
}

// arrayHelperSuffix names the typed.Read<Suffix>Array helper for a
// primitive data type, following pkg/typed/arrays.go's naming.
func arrayHelperSuffix(dt schema.DataType) string {
	switch dt {
	case schema.TypeBool:
		return "Bool"
	case schema.TypeInt8:
		return "Int8"
	case schema.TypeUint8:
		return "Uint8"
	case schema.TypeInt16:
		return "Int16"
	case schema.TypeUint16:
		return "Uint16"
	case schema.TypeInt32:
		return "Int32"
	case schema.TypeUint32:
		return "Uint32"
	case schema.TypeInt64:
		return "Int64"
	case schema.TypeUint64:
		return "Uint64"
	case schema.TypeSingle:
		return "Single"
	case schema.TypeDouble:
		return "Double"
	case schema.TypeGUID:
		return "GUID"
	default:
		return ""
	}
}
