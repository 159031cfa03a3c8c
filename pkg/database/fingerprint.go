package database

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/rawbytedev/datacore/pkg/schema"
)

// StructFingerprint returns a stable hash over the struct table in
// declaration order: name, parent index, first-property index, and
// property count for every struct, in the order the archive declares
// them. Reordering struct definitions changes this hash; permuting
// unrelated pools does not, since pools never contribute to it.
func StructFingerprint(structs []schema.StructDef) uint64 {
	h := fnv.New64a()
	var scratch [4]byte
	writeI32 := func(v int32) {
		binary.LittleEndian.PutUint32(scratch[:], uint32(v))
		h.Write(scratch[:])
	}
	for _, s := range structs {
		h.Write([]byte(s.Name))
		writeI32(s.ParentIndex)
		writeI32(s.FirstProperty)
		writeI32(s.PropertyCount)
	}
	return h.Sum64()
}

// EnumFingerprint returns a stable hash over the enum table in
// declaration order, following the same rule as StructFingerprint.
func EnumFingerprint(enums []schema.EnumDef) uint64 {
	h := fnv.New64a()
	var scratch [4]byte
	writeI32 := func(v int32) {
		binary.LittleEndian.PutUint32(scratch[:], uint32(v))
		h.Write(scratch[:])
	}
	for _, e := range enums {
		h.Write([]byte(e.Name))
		writeI32(e.FirstOption)
		writeI32(e.OptionCount)
	}
	return h.Sum64()
}
