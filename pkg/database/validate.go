package database

import (
	"fmt"

	"github.com/rawbytedev/datacore/pkg/schema"
)

// validateStructs checks the archive format's invariants that apply to the
// struct/property tables: every property run is in range, every target
// struct index is in range or the null sentinel, and the parent chain is
// acyclic.
func validateStructs(structs []schema.StructDef, properties []schema.PropertyDef) error {
	for i, s := range structs {
		if s.FirstProperty < 0 || s.PropertyCount < 0 ||
			int(s.FirstProperty+s.PropertyCount) > len(properties) {
			return fmt.Errorf("%w: struct %d property range out of bounds", ErrCorrupt, i)
		}
		if s.ParentIndex != schema.NullIndex &&
			(s.ParentIndex < 0 || int(s.ParentIndex) >= len(structs)) {
			return fmt.Errorf("%w: struct %d parent index out of bounds", ErrCorrupt, i)
		}
	}
	visited := make([]uint8, len(structs)) // 0=unseen, 1=in-progress, 2=done
	for i := range structs {
		if err := checkAcyclic(structs, int32(i), visited); err != nil {
			return err
		}
	}
	for i, p := range properties {
		switch p.DataType {
		case schema.TypeClass, schema.TypeReference, schema.TypeStrongPointer, schema.TypeWeakPointer:
			if p.TargetIndex != schema.NullIndex &&
				(p.TargetIndex < 0 || int(p.TargetIndex) >= len(structs)) {
				return fmt.Errorf("%w: property %d target struct index out of bounds", ErrCorrupt, i)
			}
		}
	}
	return nil
}

func checkAcyclic(structs []schema.StructDef, start int32, visited []uint8) error {
	if visited[start] == 2 {
		return nil
	}
	var chain []int32
	cur := start
	for cur != schema.NullIndex {
		if visited[cur] == 1 {
			return fmt.Errorf("%w: cyclic struct parent chain at %d", ErrCorrupt, cur)
		}
		if visited[cur] == 2 {
			break
		}
		visited[cur] = 1
		chain = append(chain, cur)
		cur = structs[cur].ParentIndex
	}
	for _, idx := range chain {
		visited[idx] = 2
	}
	return nil
}

// validateEnums checks that every enum's option run is in range and
// every option's name offset resolves in the string pool.
func validateEnums(enums []schema.EnumDef, options []schema.EnumOption, stringCount int) error {
	for i, e := range enums {
		if e.FirstOption < 0 || e.OptionCount < 0 ||
			int(e.FirstOption+e.OptionCount) > len(options) {
			return fmt.Errorf("%w: enum %d option range out of bounds", ErrCorrupt, i)
		}
	}
	for i, o := range options {
		if o.NameOffset < 0 || int(o.NameOffset) >= stringCount {
			return fmt.Errorf("%w: enum option %d name offset out of bounds", ErrCorrupt, i)
		}
	}
	return nil
}

// validatePools checks the pool entries themselves: every string,
// locale, and enum-value ID resolves in the string pool, and every
// strong/weak pointer's struct index is in range or the null sentinel.
// Reference pool entries are not checked here.
func validatePools(pools Pools, stringCount, structCount int) error {
	// firstIndex+count <= pool.length is enforced per-read in
	// pkg/typed's array helpers: the (count, firstIndex) pair lives in
	// instance bytes, not in the property table, so it cannot be checked
	// until an instance referencing a given property is actually read.
	for i, p := range pools.StrongPtr {
		if p.StructIndex != schema.NullIndex && (p.StructIndex < 0 || int(p.StructIndex) >= structCount) {
			return fmt.Errorf("%w: strong pointer %d struct index out of bounds", ErrCorrupt, i)
		}
	}
	for i, p := range pools.WeakPtr {
		if p.StructIndex != schema.NullIndex && (p.StructIndex < 0 || int(p.StructIndex) >= structCount) {
			return fmt.Errorf("%w: weak pointer %d struct index out of bounds", ErrCorrupt, i)
		}
	}
	for i, id := range pools.Str {
		if id < 0 || int(id) >= stringCount {
			return fmt.Errorf("%w: string pool %d out of bounds", ErrCorrupt, i)
		}
	}
	for i, id := range pools.EnumValue {
		if id < 0 || int(id) >= stringCount {
			return fmt.Errorf("%w: enum-value pool %d out of bounds", ErrCorrupt, i)
		}
	}
	for i, id := range pools.Locale {
		if id < 0 || int(id) >= stringCount {
			return fmt.Errorf("%w: locale pool %d out of bounds", ErrCorrupt, i)
		}
	}
	return nil
}

// validateMainRecords checks that every main record's struct index is in
// range. GUID uniqueness is checked by buildGUIDIndex.
func validateMainRecords(records []schema.MainRecordEntry, structCount int) error {
	for i, r := range records {
		if r.StructIndex < 0 || int(r.StructIndex) >= structCount {
			return fmt.Errorf("%w: main record %d struct index out of bounds", ErrCorrupt, i)
		}
	}
	return nil
}
