package gen

import (
	"github.com/rawbytedev/datacore/pkg/cursor"
	"github.com/rawbytedev/datacore/pkg/database"
	"github.com/rawbytedev/datacore/pkg/typed"
)

func readPointFields(ctx *typed.ReadContext, cur *cursor.Cursor) (Point, error) {
	var v Point
	x, err := cur.ReadI32()
	if err != nil {
		return v, err
	}
	v.X = x
	y, err := cur.ReadI32()
	if err != nil {
		return v, err
	}
	v.Y = y
	return v, nil
}

func ReadPoint(ctx *typed.ReadContext, cur *cursor.Cursor) (*Point, error) {
	v, err := readPointFields(ctx, cur)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func readBaseFields(ctx *typed.ReadContext, cur *cursor.Cursor) (Base, error) {
	var v Base
	a, err := cur.ReadU8()
	if err != nil {
		return v, err
	}
	v.A = a
	return v, nil
}

func ReadBase(ctx *typed.ReadContext, cur *cursor.Cursor) (*Base, error) {
	v, err := readBaseFields(ctx, cur)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func readDerivedFields(ctx *typed.ReadContext, cur *cursor.Cursor) (Derived, error) {
	var v Derived
	base, err := readBaseFields(ctx, cur)
	if err != nil {
		return v, err
	}
	v.Base = base
	bID, err := cur.ReadI32()
	if err != nil {
		return v, err
	}
	b, err := ctx.RT.Database().String(bID)
	if err != nil {
		return v, err
	}
	v.B = b
	return v, nil
}

func ReadDerived(ctx *typed.ReadContext, cur *cursor.Cursor) (*Derived, error) {
	v, err := readDerivedFields(ctx, cur)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func readNodeFields(ctx *typed.ReadContext, cur *cursor.Cursor) (Node, error) {
	var v Node
	nameID, err := cur.ReadI32()
	if err != nil {
		return v, err
	}
	name, err := ctx.RT.Database().String(nameID)
	if err != nil {
		return v, err
	}
	v.Name = name
	nextGUID, err := cur.ReadGUID()
	if err != nil {
		return v, err
	}
	nextIdx, err := cur.ReadI32()
	if err != nil {
		return v, err
	}
	v.Next = typed.CreateRefFromReference[NodeRef](ctx.RT, database.ReferenceEntry{GUID: nextGUID, InstanceIndex: nextIdx})
	return v, nil
}

func ReadNode(ctx *typed.ReadContext, cur *cursor.Cursor) (*Node, error) {
	v, err := readNodeFields(ctx, cur)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func readItemFields(ctx *typed.ReadContext, cur *cursor.Cursor) (Item, error) {
	var v Item
	value, err := cur.ReadI32()
	if err != nil {
		return v, err
	}
	v.Value = value
	return v, nil
}

func ReadItem(ctx *typed.ReadContext, cur *cursor.Cursor) (*Item, error) {
	v, err := readItemFields(ctx, cur)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func readBagFields(ctx *typed.ReadContext, cur *cursor.Cursor) (Bag, error) {
	var v Bag
	items, err := typed.ReadClassArray(ctx, cur, StructItem, ReadItem)
	if err != nil {
		return v, err
	}
	v.Items = items
	return v, nil
}

func ReadBag(ctx *typed.ReadContext, cur *cursor.Cursor) (*Bag, error) {
	v, err := readBagFields(ctx, cur)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func readWidgetFields(ctx *typed.ReadContext, cur *cursor.Cursor) (Widget, error) {
	var v Widget
	tintID, err := cur.ReadI32()
	if err != nil {
		return v, err
	}
	v.Tint = typed.EnumParse(ctx.RT, tintID, ColorUnknown, colorByName)
	return v, nil
}

func ReadWidget(ctx *typed.ReadContext, cur *cursor.Cursor) (*Widget, error) {
	v, err := readWidgetFields(ctx, cur)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func readHolderFields(ctx *typed.ReadContext, cur *cursor.Cursor) (Holder, error) {
	var v Holder
	refGUID, err := cur.ReadGUID()
	if err != nil {
		return v, err
	}
	refIdx, err := cur.ReadI32()
	if err != nil {
		return v, err
	}
	v.Ref = typed.CreateRefFromReference[BaseRef](ctx.RT, database.ReferenceEntry{GUID: refGUID, InstanceIndex: refIdx})
	return v, nil
}

func ReadHolder(ctx *typed.ReadContext, cur *cursor.Cursor) (*Holder, error) {
	v, err := readHolderFields(ctx, cur)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func readLoopFields(ctx *typed.ReadContext, cur *cursor.Cursor) (Loop, error) {
	var v Loop
	next, err := typed.ReadClassArray(ctx, cur, StructLoop, ReadLoop)
	if err != nil {
		return v, err
	}
	v.Next = next
	return v, nil
}

func ReadLoop(ctx *typed.ReadContext, cur *cursor.Cursor) (*Loop, error) {
	v, err := readLoopFields(ctx, cur)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
