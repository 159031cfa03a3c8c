// Package database parses a DataCore archive into its schema tables,
// value pools, instance byte storage, and main-record index, and exposes
// bounds-checked, read-only access to all of it. A Database is immutable
// once Open returns and is safe to share across goroutines.
package database

import (
	"fmt"

	"github.com/rawbytedev/datacore/pkg/cursor"
	"github.com/rawbytedev/datacore/pkg/schema"
)

// Database is the parsed, read-only archive. The zero value is not
// useful; construct with Open.
type Database struct {
	header Header

	strings     []string
	structs     []schema.StructDef
	properties  []schema.PropertyDef
	enums       []schema.EnumDef
	enumOptions []schema.EnumOption

	pools Pools

	instanceBytes []byte
	layout        instanceLayout
	strides       []int32

	mainRecords  []schema.MainRecordEntry
	recordByGUID map[[16]byte]int32
}

// Open parses buf as a DataCore archive, following its fixed section
// order. Every string, pool, and instance byte region is copied out of
// buf during parsing, so the returned Database does not retain buf.
func Open(buf []byte) (*Database, error) {
	c := cursor.New(buf)

	header, err := readHeader(&c)
	if err != nil {
		return nil, fmt.Errorf("database: header: %w", err)
	}

	strs, err := readStringPool(&c)
	if err != nil {
		return nil, fmt.Errorf("database: string pool: %w", err)
	}

	structs, err := readStructTable(&c, strs)
	if err != nil {
		return nil, fmt.Errorf("database: struct table: %w", err)
	}

	properties, err := readPropertyTable(&c, strs)
	if err != nil {
		return nil, fmt.Errorf("database: property table: %w", err)
	}
	if err := validateStructs(structs, properties); err != nil {
		return nil, err
	}

	enums, err := readEnumTable(&c, strs)
	if err != nil {
		return nil, fmt.Errorf("database: enum table: %w", err)
	}

	enumOptions, err := readEnumOptionTable(&c)
	if err != nil {
		return nil, fmt.Errorf("database: enum option table: %w", err)
	}
	if err := validateEnums(enums, enumOptions, len(strs)); err != nil {
		return nil, err
	}

	var pools Pools
	if pools.Bool, err = readBoolPool(&c); err != nil {
		return nil, fmt.Errorf("database: bool pool: %w", err)
	}
	if pools.I8, err = readI8Pool(&c); err != nil {
		return nil, fmt.Errorf("database: int8 pool: %w", err)
	}
	if pools.U8, err = readU8Pool(&c); err != nil {
		return nil, fmt.Errorf("database: uint8 pool: %w", err)
	}
	if pools.I16, err = readI16Pool(&c); err != nil {
		return nil, fmt.Errorf("database: int16 pool: %w", err)
	}
	if pools.U16, err = readU16Pool(&c); err != nil {
		return nil, fmt.Errorf("database: uint16 pool: %w", err)
	}
	if pools.I32, err = readI32Pool(&c); err != nil {
		return nil, fmt.Errorf("database: int32 pool: %w", err)
	}
	if pools.U32, err = readU32Pool(&c); err != nil {
		return nil, fmt.Errorf("database: uint32 pool: %w", err)
	}
	if pools.I64, err = readI64Pool(&c); err != nil {
		return nil, fmt.Errorf("database: int64 pool: %w", err)
	}
	if pools.U64, err = readU64Pool(&c); err != nil {
		return nil, fmt.Errorf("database: uint64 pool: %w", err)
	}
	if pools.Single, err = readSinglePool(&c); err != nil {
		return nil, fmt.Errorf("database: single pool: %w", err)
	}
	if pools.Double, err = readDoublePool(&c); err != nil {
		return nil, fmt.Errorf("database: double pool: %w", err)
	}
	if pools.GUID, err = readGUIDPool(&c); err != nil {
		return nil, fmt.Errorf("database: guid pool: %w", err)
	}
	if pools.Str, err = readStringIDPool(&c); err != nil {
		return nil, fmt.Errorf("database: string-ref pool: %w", err)
	}
	if pools.Locale, err = readStringIDPool(&c); err != nil {
		return nil, fmt.Errorf("database: locale pool: %w", err)
	}

	if pools.EnumValue, err = readStringIDPool(&c); err != nil {
		return nil, fmt.Errorf("database: enum-value pool: %w", err)
	}
	if pools.Reference, err = readReferencePool(&c); err != nil {
		return nil, fmt.Errorf("database: reference pool: %w", err)
	}
	if pools.StrongPtr, err = readPointerPool(&c); err != nil {
		return nil, fmt.Errorf("database: strong pointer pool: %w", err)
	}
	if pools.WeakPtr, err = readPointerPool(&c); err != nil {
		return nil, fmt.Errorf("database: weak pointer pool: %w", err)
	}

	if err := validatePools(pools, len(strs), len(structs)); err != nil {
		return nil, err
	}

	strideCalc := newStrideCalc(structs, properties)
	strides := make([]int32, len(structs))
	for i := range structs {
		s, err := strideCalc.Stride(int32(i))
		if err != nil {
			return nil, fmt.Errorf("database: struct %d: %w", i, err)
		}
		strides[i] = s
	}

	instanceBytes, layout, err := readInstanceSection(&c, structs, strides, header.Flags&FlagInstanceBytesCompressed != 0)
	if err != nil {
		return nil, fmt.Errorf("database: instance bytes: %w", err)
	}

	mainRecords, err := readMainRecordIndex(&c)
	if err != nil {
		return nil, fmt.Errorf("database: main record index: %w", err)
	}
	if err := validateMainRecords(mainRecords, len(structs)); err != nil {
		return nil, err
	}
	guidIndex, err := buildGUIDIndex(mainRecords)
	if err != nil {
		return nil, err
	}

	return &Database{
		header:        header,
		strings:       strs,
		structs:       structs,
		properties:    properties,
		enums:         enums,
		enumOptions:   enumOptions,
		pools:         pools,
		instanceBytes: instanceBytes,
		layout:        layout,
		strides:       strides,
		mainRecords:   mainRecords,
		recordByGUID:  guidIndex,
	}, nil
}

// GetReader returns a Cursor positioned at the first byte of instance
// instanceIndex of struct structIndex.
func (db *Database) GetReader(structIndex, instanceIndex int32) (cursor.Cursor, error) {
	if structIndex < 0 || int(structIndex) >= len(db.structs) {
		return cursor.Cursor{}, ErrBadIndex
	}
	if instanceIndex < 0 || instanceIndex >= db.layout.count[structIndex] {
		return cursor.Cursor{}, ErrBadIndex
	}
	offset := int(db.layout.base[structIndex]) + int(instanceIndex)*int(db.strides[structIndex])
	return cursor.At(db.instanceBytes, offset), nil
}

// String resolves a StringID into its text.
func (db *Database) String(id int32) (string, error) {
	if id < 0 || int(id) >= len(db.strings) {
		return "", ErrBadIndex
	}
	return db.strings[id], nil
}

// Struct returns the struct definition at structIndex.
func (db *Database) Struct(structIndex int32) (schema.StructDef, error) {
	if structIndex < 0 || int(structIndex) >= len(db.structs) {
		return schema.StructDef{}, ErrBadIndex
	}
	return db.structs[structIndex], nil
}

// StructCount returns the number of structs in the schema.
func (db *Database) StructCount() int { return len(db.structs) }

// EnumCount returns the number of enums in the schema.
func (db *Database) EnumCount() int { return len(db.enums) }

// Property returns the property definition at propertyIndex.
func (db *Database) Property(propertyIndex int32) (schema.PropertyDef, error) {
	if propertyIndex < 0 || int(propertyIndex) >= len(db.properties) {
		return schema.PropertyDef{}, ErrBadIndex
	}
	return db.properties[propertyIndex], nil
}

// Enum returns the enum definition at enumIndex.
func (db *Database) Enum(enumIndex int32) (schema.EnumDef, error) {
	if enumIndex < 0 || int(enumIndex) >= len(db.enums) {
		return schema.EnumDef{}, ErrBadIndex
	}
	return db.enums[enumIndex], nil
}

// EnumOptionName resolves the name of option optionIndex within
// enumIndex's option run.
func (db *Database) EnumOptionName(enumIndex, optionIndex int32) (string, error) {
	e, err := db.Enum(enumIndex)
	if err != nil {
		return "", err
	}
	if optionIndex < 0 || optionIndex >= e.OptionCount {
		return "", ErrBadIndex
	}
	opt := db.enumOptions[e.FirstOption+optionIndex]
	return db.String(opt.NameOffset)
}

// EnumOptions returns the options belonging to enumIndex, in declaration
// order.
func (db *Database) EnumOptions(enumIndex int32) ([]schema.EnumOption, error) {
	e, err := db.Enum(enumIndex)
	if err != nil {
		return nil, err
	}
	return db.enumOptions[e.FirstOption : e.FirstOption+e.OptionCount], nil
}

// Pools returns a read-only view of every value pool.
func (db *Database) Pools() *Pools { return &db.pools }

// Stride returns the instance byte width of structIndex.
func (db *Database) Stride(structIndex int32) (int32, error) {
	if structIndex < 0 || int(structIndex) >= len(db.strides) {
		return 0, ErrBadIndex
	}
	return db.strides[structIndex], nil
}

// InstanceCount returns the number of instances stored for structIndex.
func (db *Database) InstanceCount(structIndex int32) (int32, error) {
	if structIndex < 0 || int(structIndex) >= len(db.layout.count) {
		return 0, ErrBadIndex
	}
	return db.layout.count[structIndex], nil
}

// MainRecordCount returns the number of entries in the main-record
// index.
func (db *Database) MainRecordCount() int { return len(db.mainRecords) }

// StructFingerprint returns the stable hash of this archive's struct
// table, for comparison against the generator's embedded constant.
func (db *Database) StructFingerprint() uint64 { return StructFingerprint(db.structs) }

// EnumFingerprint returns the stable hash of this archive's enum table,
// for comparison against the generator's embedded constant.
func (db *Database) EnumFingerprint() uint64 { return EnumFingerprint(db.enums) }
