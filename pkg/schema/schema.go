// Package schema holds the value types describing a DataCore archive's
// struct, property, and enum tables. These types are shared by pkg/database
// (which parses them from the archive) and pkg/generator (which reads them
// to emit record types).
package schema

// DataType tags the on-disk representation of a property,
type DataType uint8

const (
	TypeBool DataType = iota
	TypeInt8
	TypeUint8
	TypeInt16
	TypeUint16
	TypeInt32
	TypeUint32
	TypeInt64
	TypeUint64
	TypeSingle
	TypeDouble
	TypeGUID
	TypeString
	TypeLocale
	TypeEnumChoice
	TypeClass
	TypeReference
	TypeStrongPointer
	TypeWeakPointer
)

// Conversion describes whether a property stores a single value or an
// array of values.
type Conversion uint8

const (
	ConvScalar Conversion = iota
	ConvArray
)

// NullIndex is the sentinel stored for an absent struct or instance index.
const NullIndex int32 = -1

// StructDef is one entry in the struct table.
type StructDef struct {
	Name            string
	ParentIndex     int32 // NullIndex if root
	FirstProperty   int32
	PropertyCount   int32
}

// PropertyDef is one entry in the property table.
type PropertyDef struct {
	Name       string
	DataType   DataType
	Conversion Conversion
	// TargetIndex is a struct index for Class/Reference/StrongPointer/
	// WeakPointer, an enum index for EnumChoice, and unused (NullIndex)
	// for primitive types.
	TargetIndex int32
}

// EnumDef is one entry in the enum table.
type EnumDef struct {
	Name        string
	FirstOption int32
	OptionCount int32
}

// EnumOption is one entry in the enum-option table: a string-pool offset
// naming the option.
type EnumOption struct {
	NameOffset int32
}

// MainRecordEntry is one entry in the main-record index.
type MainRecordEntry struct {
	ID             [16]byte
	FileNameOffset int32
	StructIndex    int32
	InstanceIndex  int32
}

// PropertyWidth returns the inline byte width of a scalar property of the
// given data type — the stride contribution of one property to its
// struct's instance layout. Pool-backed scalar types (string, locale,
// reference) and array properties of any type store a fixed-width handle
// inline instead of the full value.
func PropertyWidth(p PropertyDef) int {
	if p.Conversion == ConvArray {
		return 8 // (count int32, firstIndex int32)
	}
	switch p.DataType {
	case TypeBool, TypeInt8, TypeUint8:
		return 1
	case TypeInt16, TypeUint16:
		return 2
	case TypeInt32, TypeUint32, TypeSingle:
		return 4
	case TypeInt64, TypeUint64, TypeDouble:
		return 8
	case TypeGUID:
		return 16
	case TypeString, TypeLocale, TypeEnumChoice:
		return 4 // string-pool / enum-option id
	case TypeReference:
		return 20 // GUID(16) + instanceIndex int32(4),
	case TypeStrongPointer, TypeWeakPointer:
		return 8 // (structIndex int32, instanceIndex int32)
	case TypeClass:
		return -1 // caller must sum the embedded struct's own stride
	default:
		return -1
	}
}
