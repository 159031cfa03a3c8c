package database

import (
	"github.com/rawbytedev/datacore/pkg/cursor"
	"github.com/rawbytedev/datacore/pkg/schema"
)

// readStringPool reads the archive's string table: a varint count
// followed by that many (varint length, UTF-8 bytes) entries. Every
// StringID used elsewhere in the archive is an index into the returned
// slice.
func readStringPool(c *cursor.Cursor) ([]string, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := range out {
		l, err := c.ReadVarUint()
		if err != nil {
			return nil, err
		}
		b, err := c.Slice(int(l))
		if err != nil {
			return nil, err
		}
		out[i] = string(b)
	}
	return out, nil
}

// nameAt resolves a StringID into its text, used while reading the
// struct/property/enum tables since the string pool (section 1) always
// precedes them in parse order.
func nameAt(strings []string, id int32) (string, error) {
	if id < 0 || int(id) >= len(strings) {
		return "", ErrBadIndex
	}
	return strings[id], nil
}

func readStructTable(c *cursor.Cursor, strings []string) ([]schema.StructDef, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]schema.StructDef, n)
	for i := range out {
		nameID, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		name, err := nameAt(strings, nameID)
		if err != nil {
			return nil, err
		}
		parent, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		firstProp, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		propCount, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		out[i] = schema.StructDef{
			Name:          name,
			ParentIndex:   parent,
			FirstProperty: firstProp,
			PropertyCount: propCount,
		}
	}
	return out, nil
}

func readPropertyTable(c *cursor.Cursor, strings []string) ([]schema.PropertyDef, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]schema.PropertyDef, n)
	for i := range out {
		nameID, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		name, err := nameAt(strings, nameID)
		if err != nil {
			return nil, err
		}
		dt, err := c.ReadU8()
		if err != nil {
			return nil, err
		}
		conv, err := c.ReadU8()
		if err != nil {
			return nil, err
		}
		target, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		out[i] = schema.PropertyDef{
			Name:        name,
			DataType:    schema.DataType(dt),
			Conversion:  schema.Conversion(conv),
			TargetIndex: target,
		}
	}
	return out, nil
}

func readEnumTable(c *cursor.Cursor, strings []string) ([]schema.EnumDef, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]schema.EnumDef, n)
	for i := range out {
		nameID, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		name, err := nameAt(strings, nameID)
		if err != nil {
			return nil, err
		}
		first, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		count, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		out[i] = schema.EnumDef{
			Name:        name,
			FirstOption: first,
			OptionCount: count,
		}
	}
	return out, nil
}

func readEnumOptionTable(c *cursor.Cursor) ([]schema.EnumOption, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]schema.EnumOption, n)
	for i := range out {
		nameID, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		out[i] = schema.EnumOption{NameOffset: nameID}
	}
	return out, nil
}
