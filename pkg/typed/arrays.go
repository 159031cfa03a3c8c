package typed

import (
	"fmt"

	"github.com/rawbytedev/datacore/pkg/cursor"
	"github.com/rawbytedev/datacore/pkg/database"
)

// The array helpers below all follow the same shape: read the inline
// (count, firstIndex) pair, bounds-check it against the matching pool,
// and materialise count values eagerly into a freshly allocated slice.
// Eagerly, not lazily: arrays of primitives are cheap to copy in full
// and a lazy array would have to retain the cursor and pool anyway,
// buying nothing. A count of zero always yields an empty slice, even
// if firstIndex is stale or out of range: a writer has no reason to
// normalize firstIndex when there is nothing to point it at.

func checkRange(count, first, poolLen int32, what string) error {
	if count < 0 {
		return fmt.Errorf("%w: %s array [%d,%d) out of bounds for pool of length %d", database.ErrCorrupt, what, first, first+count, poolLen)
	}
	if count == 0 {
		return nil
	}
	if first < 0 || int64(first)+int64(count) > int64(poolLen) {
		return fmt.Errorf("%w: %s array [%d,%d) out of bounds for pool of length %d", database.ErrCorrupt, what, first, first+count, poolLen)
	}
	return nil
}

func ReadBoolArray(cur *cursor.Cursor, pools *database.Pools) ([]bool, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	if err := checkRange(count, first, int32(len(pools.Bool)), "bool"); err != nil {
		return nil, err
	}
	out := make([]bool, count)
	if count > 0 {
		copy(out, pools.Bool[first:first+count])
	}
	return out, nil
}

func ReadInt8Array(cur *cursor.Cursor, pools *database.Pools) ([]int8, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	if err := checkRange(count, first, int32(len(pools.I8)), "int8"); err != nil {
		return nil, err
	}
	out := make([]int8, count)
	if count > 0 {
		copy(out, pools.I8[first:first+count])
	}
	return out, nil
}

func ReadUint8Array(cur *cursor.Cursor, pools *database.Pools) ([]uint8, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	if err := checkRange(count, first, int32(len(pools.U8)), "uint8"); err != nil {
		return nil, err
	}
	out := make([]uint8, count)
	if count > 0 {
		copy(out, pools.U8[first:first+count])
	}
	return out, nil
}

func ReadInt16Array(cur *cursor.Cursor, pools *database.Pools) ([]int16, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	if err := checkRange(count, first, int32(len(pools.I16)), "int16"); err != nil {
		return nil, err
	}
	out := make([]int16, count)
	if count > 0 {
		copy(out, pools.I16[first:first+count])
	}
	return out, nil
}

func ReadUint16Array(cur *cursor.Cursor, pools *database.Pools) ([]uint16, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	if err := checkRange(count, first, int32(len(pools.U16)), "uint16"); err != nil {
		return nil, err
	}
	out := make([]uint16, count)
	if count > 0 {
		copy(out, pools.U16[first:first+count])
	}
	return out, nil
}

func ReadInt32Array(cur *cursor.Cursor, pools *database.Pools) ([]int32, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	if err := checkRange(count, first, int32(len(pools.I32)), "int32"); err != nil {
		return nil, err
	}
	out := make([]int32, count)
	if count > 0 {
		copy(out, pools.I32[first:first+count])
	}
	return out, nil
}

func ReadUint32Array(cur *cursor.Cursor, pools *database.Pools) ([]uint32, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	if err := checkRange(count, first, int32(len(pools.U32)), "uint32"); err != nil {
		return nil, err
	}
	out := make([]uint32, count)
	if count > 0 {
		copy(out, pools.U32[first:first+count])
	}
	return out, nil
}

func ReadInt64Array(cur *cursor.Cursor, pools *database.Pools) ([]int64, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	if err := checkRange(count, first, int32(len(pools.I64)), "int64"); err != nil {
		return nil, err
	}
	out := make([]int64, count)
	if count > 0 {
		copy(out, pools.I64[first:first+count])
	}
	return out, nil
}

func ReadUint64Array(cur *cursor.Cursor, pools *database.Pools) ([]uint64, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	if err := checkRange(count, first, int32(len(pools.U64)), "uint64"); err != nil {
		return nil, err
	}
	out := make([]uint64, count)
	if count > 0 {
		copy(out, pools.U64[first:first+count])
	}
	return out, nil
}

func ReadSingleArray(cur *cursor.Cursor, pools *database.Pools) ([]float32, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	if err := checkRange(count, first, int32(len(pools.Single)), "single"); err != nil {
		return nil, err
	}
	out := make([]float32, count)
	if count > 0 {
		copy(out, pools.Single[first:first+count])
	}
	return out, nil
}

func ReadDoubleArray(cur *cursor.Cursor, pools *database.Pools) ([]float64, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	if err := checkRange(count, first, int32(len(pools.Double)), "double"); err != nil {
		return nil, err
	}
	out := make([]float64, count)
	if count > 0 {
		copy(out, pools.Double[first:first+count])
	}
	return out, nil
}

func ReadGUIDArray(cur *cursor.Cursor, pools *database.Pools) ([][16]byte, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	if err := checkRange(count, first, int32(len(pools.GUID)), "guid"); err != nil {
		return nil, err
	}
	out := make([][16]byte, count)
	if count > 0 {
		copy(out, pools.GUID[first:first+count])
	}
	return out, nil
}

// ReadStringArray resolves an array of string-pool IDs (pools.Str) into
// their text, eagerly, the same way a generated Read resolves a scalar
// string property's inline ID through Database.String, so callers
// consume the array as []string directly.
func ReadStringArray(cur *cursor.Cursor, db *database.Database) ([]string, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	pools := db.Pools()
	if err := checkRange(count, first, int32(len(pools.Str)), "string"); err != nil {
		return nil, err
	}
	out := make([]string, count)
	for i := int32(0); i < count; i++ {
		out[i], err = db.String(pools.Str[first+i])
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadLocaleArray mirrors ReadStringArray over the distinct locale
// pool.
func ReadLocaleArray(cur *cursor.Cursor, db *database.Database) ([]string, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	pools := db.Pools()
	if err := checkRange(count, first, int32(len(pools.Locale)), "locale"); err != nil {
		return nil, err
	}
	out := make([]string, count)
	for i := int32(0); i < count; i++ {
		out[i], err = db.String(pools.Locale[first+i])
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadEnumArray resolves an array of enum-value string IDs through
// EnumParse, one element at a time so each still benefits from the
// per-(enum,stringId) memoisation a scalar enum property gets.
func ReadEnumArray[T any](rt *Runtime, cur *cursor.Cursor, fallback T, lookup map[string]T) ([]T, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	pools := rt.db.Pools()
	if err := checkRange(count, first, int32(len(pools.EnumValue)), "enum"); err != nil {
		return nil, err
	}
	out := make([]T, count)
	for i := int32(0); i < count; i++ {
		out[i] = EnumParse(rt, pools.EnumValue[first+i], fallback, lookup)
	}
	return out, nil
}

// ReadClassArray materialises an array-of-embedded-class property.
// Unlike a scalar class (read inline, uncached, as part of the
// enclosing instance), array elements live as ordinary instances of
// the target struct at consecutive indices starting at firstIndex —
// there is no class pool — so each goes through the same cache and
// cycle-breaking as any other instance.
func ReadClassArray[T any](ctx *ReadContext, cur *cursor.Cursor, targetStructIndex int32, read ReaderFunc[T]) ([]T, error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	if count < 0 || (count > 0 && first < 0) {
		return nil, fmt.Errorf("%w: class array has negative count or firstIndex", database.ErrCorrupt)
	}
	out := make([]T, count)
	for i := int32(0); i < count; i++ {
		out[i], err = GetOrReadInstance(ctx, targetStructIndex, first+i, read)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadRefArray builds one LazyRef per element of a reference-array
// property from the shared reference pool.
func ReadRefArray[T any](rt *Runtime, cur *cursor.Cursor) ([]*LazyRef[T], error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	pools := rt.db.Pools()
	if err := checkRange(count, first, int32(len(pools.Reference)), "reference"); err != nil {
		return nil, err
	}
	out := make([]*LazyRef[T], count)
	for i := int32(0); i < count; i++ {
		out[i] = CreateRefFromReference[T](rt, pools.Reference[first+i])
	}
	return out, nil
}

// ReadStrongPointerArray builds one LazyRef per element of a strong
// pointer array property from the shared strong pointer pool.
func ReadStrongPointerArray[T any](rt *Runtime, cur *cursor.Cursor) ([]*LazyRef[T], error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	pools := rt.db.Pools()
	if err := checkRange(count, first, int32(len(pools.StrongPtr)), "strong pointer"); err != nil {
		return nil, err
	}
	out := make([]*LazyRef[T], count)
	for i := int32(0); i < count; i++ {
		out[i] = CreateRefFromPointer[T](rt, pools.StrongPtr[first+i])
	}
	return out, nil
}

// ReadWeakPointerArray mirrors ReadStrongPointerArray over the weak
// pointer pool.
func ReadWeakPointerArray[T any](rt *Runtime, cur *cursor.Cursor) ([]*LazyRef[T], error) {
	count, first, err := cur.ReadCountFirst()
	if err != nil {
		return nil, err
	}
	pools := rt.db.Pools()
	if err := checkRange(count, first, int32(len(pools.WeakPtr)), "weak pointer"); err != nil {
		return nil, err
	}
	out := make([]*LazyRef[T], count)
	for i := int32(0); i < count; i++ {
		out[i] = CreateRefFromPointer[T](rt, pools.WeakPtr[first+i])
	}
	return out, nil
}
