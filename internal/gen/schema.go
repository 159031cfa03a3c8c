// Package gen is a hand-written stand-in for pkg/generator's output:
// the record types, field readers, and dispatch table for one small
// fixture schema, used by the database and typed runtime tests to
// exercise inheritance, self-referential cycles, class arrays, and
// enum parsing against real generated-style code rather than mocks.
//
// The fixture declares:
//
//	struct 0 Point    { X int32, Y int32 }
//	struct 1 Base     { A uint8 }
//	struct 2 Derived  { B string }            (parent Base)
//	struct 3 Node     { Name string, Next reference<Node> }
//	struct 4 Item     { Value int32 }
//	struct 5 Bag      { Items []class<Item> }
//	struct 6 Widget   { Tint enum<Color> }
//	struct 7 Holder   { Ref reference<Base> }
//	struct 8 Loop     { Next []class<Loop> }
//	enum   0 Color    { Red, Green, Blue }
package gen

import (
	"github.com/rawbytedev/datacore/pkg/database"
	"github.com/rawbytedev/datacore/pkg/schema"
)

const (
	StructPoint int32 = iota
	StructBase
	StructDerived
	StructNode
	StructItem
	StructBag
	StructWidget
	StructHolder
	StructLoop
)

const EnumColor int32 = 0

// StructDefs, PropertyDefs, EnumDefs, and ColorOptionNames mirror the
// archive's struct/property/enum/enum-option tables exactly, in the
// declaration order a real archive targeting this schema must use.
// Tests pass these straight to internal/testarchive.Builder.
var (
	StructDefs = []schema.StructDef{
		StructPoint:   {Name: "Point", ParentIndex: schema.NullIndex, FirstProperty: 0, PropertyCount: 2},
		StructBase:    {Name: "Base", ParentIndex: schema.NullIndex, FirstProperty: 2, PropertyCount: 1},
		StructDerived: {Name: "Derived", ParentIndex: StructBase, FirstProperty: 3, PropertyCount: 1},
		StructNode:    {Name: "Node", ParentIndex: schema.NullIndex, FirstProperty: 4, PropertyCount: 2},
		StructItem:    {Name: "Item", ParentIndex: schema.NullIndex, FirstProperty: 6, PropertyCount: 1},
		StructBag:     {Name: "Bag", ParentIndex: schema.NullIndex, FirstProperty: 7, PropertyCount: 1},
		StructWidget:  {Name: "Widget", ParentIndex: schema.NullIndex, FirstProperty: 8, PropertyCount: 1},
		StructHolder:  {Name: "Holder", ParentIndex: schema.NullIndex, FirstProperty: 9, PropertyCount: 1},
		StructLoop:    {Name: "Loop", ParentIndex: schema.NullIndex, FirstProperty: 10, PropertyCount: 1},
	}

	PropertyDefs = []schema.PropertyDef{
		{Name: "X", DataType: schema.TypeInt32, Conversion: schema.ConvScalar, TargetIndex: schema.NullIndex},
		{Name: "Y", DataType: schema.TypeInt32, Conversion: schema.ConvScalar, TargetIndex: schema.NullIndex},
		{Name: "A", DataType: schema.TypeUint8, Conversion: schema.ConvScalar, TargetIndex: schema.NullIndex},
		{Name: "B", DataType: schema.TypeString, Conversion: schema.ConvScalar, TargetIndex: schema.NullIndex},
		{Name: "Name", DataType: schema.TypeString, Conversion: schema.ConvScalar, TargetIndex: schema.NullIndex},
		{Name: "Next", DataType: schema.TypeReference, Conversion: schema.ConvScalar, TargetIndex: StructNode},
		{Name: "Value", DataType: schema.TypeInt32, Conversion: schema.ConvScalar, TargetIndex: schema.NullIndex},
		{Name: "Items", DataType: schema.TypeClass, Conversion: schema.ConvArray, TargetIndex: StructItem},
		{Name: "Tint", DataType: schema.TypeEnumChoice, Conversion: schema.ConvScalar, TargetIndex: EnumColor},
		{Name: "Ref", DataType: schema.TypeReference, Conversion: schema.ConvScalar, TargetIndex: StructBase},
		{Name: "Next", DataType: schema.TypeClass, Conversion: schema.ConvArray, TargetIndex: StructLoop},
	}

	EnumDefs = []schema.EnumDef{
		{Name: "Color", FirstOption: 0, OptionCount: 3},
	}
)

// ColorOptionNames names Color's options in declaration order; a
// caller assembling an archive interns them via its builder's
// AddEnumOption so the resulting NameOffsets land wherever that
// archive's string pool puts them.
var ColorOptionNames = []string{"Red", "Green", "Blue"}

// StructFingerprint and EnumFingerprint are computed from StructDefs
// and EnumDefs rather than baked in as literal constants, since this
// fixture's tables are hand-maintained Go data rather than a parsed
// archive's output. Runtime.ValidateSchema compares these against
// whatever a test archive reports.
var (
	StructFingerprint = database.StructFingerprint(StructDefs)
	EnumFingerprint   = database.EnumFingerprint(EnumDefs)
)

const (
	StructCount = 9
	EnumCount   = 1
)
