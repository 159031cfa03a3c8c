package generator

import (
	"fmt"

	"github.com/rawbytedev/datacore/pkg/schema"
)

// names resolves struct and enum indices to the Go identifiers the
// rest of this package already decided on for them, so every emission
// function agrees on spelling without recomputing toPascalCase
// everywhere.
type names struct {
	structs []string // Go type name per struct index
	enums   []string // Go type name per enum index
}

func newNames(db schemaSource) names {
	n := names{
		structs: make([]string, db.StructCount()),
		enums:   make([]string, db.EnumCount()),
	}
	for i := range n.structs {
		s, _ := db.Struct(int32(i))
		n.structs[i] = toPascalCase(s.Name)
	}
	for i := range n.enums {
		e, _ := db.Enum(int32(i))
		n.enums[i] = toPascalCase(e.Name)
	}
	return n
}

// scalarGoType returns the Go type of property p when read as a single
// value — the element type for an array property, the embedded value
// type for a scalar class, and "" for reference/pointer properties,
// which the caller special-cases since they need a *typed.LazyRef[...]
// rather than a plain type name.
func (n names) scalarGoType(p schema.PropertyDef) string {
	switch p.DataType {
	case schema.TypeBool:
		return "bool"
	case schema.TypeInt8:
		return "int8"
	case schema.TypeUint8:
		return "uint8"
	case schema.TypeInt16:
		return "int16"
	case schema.TypeUint16:
		return "uint16"
	case schema.TypeInt32:
		return "int32"
	case schema.TypeUint32:
		return "uint32"
	case schema.TypeInt64:
		return "int64"
	case schema.TypeUint64:
		return "uint64"
	case schema.TypeSingle:
		return "float32"
	case schema.TypeDouble:
		return "float64"
	case schema.TypeGUID:
		return "[16]byte"
	case schema.TypeString, schema.TypeLocale:
		return "string"
	case schema.TypeEnumChoice:
		return n.enums[p.TargetIndex]
	case schema.TypeClass:
		return n.structs[p.TargetIndex]
	default:
		return ""
	}
}

// fieldGoType returns the Go type of the struct field generated for
// property p, covering every data type and both conversions.
func (n names) fieldGoType(p schema.PropertyDef) string {
	if p.Conversion == schema.ConvArray {
		switch p.DataType {
		case schema.TypeClass:
			return "[]*" + n.structs[p.TargetIndex]
		case schema.TypeReference, schema.TypeStrongPointer, schema.TypeWeakPointer:
			return fmt.Sprintf("[]*typed.LazyRef[%sRef]", n.structs[p.TargetIndex])
		default:
			return "[]" + n.scalarGoType(p)
		}
	}
	switch p.DataType {
	case schema.TypeReference, schema.TypeStrongPointer, schema.TypeWeakPointer:
		return fmt.Sprintf("*typed.LazyRef[%sRef]", n.structs[p.TargetIndex])
	default:
		return n.scalarGoType(p)
	}
}

// schemaSource is the subset of *database.Database the generator
// needs, narrowed to keep this package's dependency on pkg/database
// explicit about what it actually walks.
type schemaSource interface {
	StructCount() int
	EnumCount() int
	Struct(int32) (schema.StructDef, error)
	Enum(int32) (schema.EnumDef, error)
	Property(int32) (schema.PropertyDef, error)
	EnumOptions(int32) ([]schema.EnumOption, error)
	EnumOptionName(int32, int32) (string, error)
	StructFingerprint() uint64
	EnumFingerprint() uint64
}
