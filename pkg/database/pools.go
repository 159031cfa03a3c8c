package database

import "github.com/rawbytedev/datacore/pkg/cursor"

// ReferenceEntry is one entry of the reference pool:
// a GUID-keyed link plus the instance-index hint the archive stores
// alongside it. The concrete struct index is only known once the GUID is
// resolved through the main-record index.
type ReferenceEntry struct {
	GUID          [16]byte
	InstanceIndex int32
}

// PointerEntry is one entry of the strong or weak pointer pool: an
// already-resolved (structIndex, instanceIndex) pair.
type PointerEntry struct {
	StructIndex   int32
	InstanceIndex int32
}

// Pools holds every value pool described in the archive format, one contiguous
// slice per primitive data type plus reference/strong-pointer/
// weak-pointer pools. All slices are immutable once Open returns.
type Pools struct {
	Bool   []bool
	I8     []int8
	U8     []uint8
	I16    []int16
	U16    []uint16
	I32    []int32
	U32    []uint32
	I64    []int64
	U64    []uint64
	Single []float32
	Double []float64
	GUID   [][16]byte
	// Str and Locale hold string-pool IDs (indices into Database.strings),
	// one per array slot; scalar string/locale properties store their ID
	// inline instead of through these pools.
	Str    []int32
	Locale []int32

	// EnumValue holds one string-pool ID per array slot of an enum-array
	// property; scalar enum properties store
	// their string ID inline.
	EnumValue []int32

	Reference    []ReferenceEntry
	StrongPtr    []PointerEntry
	WeakPtr      []PointerEntry
}

func readBoolPool(c *cursor.Cursor) ([]bool, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]bool, n)
	for i := range out {
		v, err := c.ReadBool()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readI8Pool(c *cursor.Cursor) ([]int8, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]int8, n)
	for i := range out {
		v, err := c.ReadI8()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readU8Pool(c *cursor.Cursor) ([]uint8, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]uint8, n)
	for i := range out {
		v, err := c.ReadU8()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readI16Pool(c *cursor.Cursor) ([]int16, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]int16, n)
	for i := range out {
		v, err := c.ReadI16()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readU16Pool(c *cursor.Cursor) ([]uint16, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	for i := range out {
		v, err := c.ReadU16()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readI32Pool(c *cursor.Cursor) ([]int32, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		v, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readU32Pool(c *cursor.Cursor) ([]uint32, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]uint32, n)
	for i := range out {
		v, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readI64Pool(c *cursor.Cursor) ([]int64, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]int64, n)
	for i := range out {
		v, err := c.ReadI64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readU64Pool(c *cursor.Cursor) ([]uint64, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]uint64, n)
	for i := range out {
		v, err := c.ReadU64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readSinglePool(c *cursor.Cursor) ([]float32, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		v, err := c.ReadF32()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readDoublePool(c *cursor.Cursor) ([]float64, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		v, err := c.ReadF64()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func readGUIDPool(c *cursor.Cursor) ([][16]byte, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([][16]byte, n)
	for i := range out {
		v, err := c.ReadGUID()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// readStringIDPool is shared by the string pool, the locale pool, and the
// enum-value pool: all three are arrays of string-table IDs.
func readStringIDPool(c *cursor.Cursor) ([]int32, error) {
	return readI32Pool(c)
}

func readReferencePool(c *cursor.Cursor) ([]ReferenceEntry, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]ReferenceEntry, n)
	for i := range out {
		g, err := c.ReadGUID()
		if err != nil {
			return nil, err
		}
		idx, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		out[i] = ReferenceEntry{GUID: g, InstanceIndex: idx}
	}
	return out, nil
}

func readPointerPool(c *cursor.Cursor) ([]PointerEntry, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]PointerEntry, n)
	for i := range out {
		s, i2, err := c.ReadIndexPair()
		if err != nil {
			return nil, err
		}
		out[i] = PointerEntry{StructIndex: s, InstanceIndex: i2}
	}
	return out, nil
}
