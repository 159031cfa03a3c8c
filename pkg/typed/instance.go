package typed

import (
	"fmt"

	"github.com/rawbytedev/datacore/pkg/cursor"
	"github.com/rawbytedev/datacore/pkg/schema"
)

// ReaderFunc materialises one instance from its byte region. Every
// generated record type has exactly one (Read<Name>), emitted by
// pkg/generator; the runtime never calls one
// directly — only through GetOrReadInstance, which owns the caching
// and cycle-breaking around it.
type ReaderFunc[T any] func(ctx *ReadContext, cur *cursor.Cursor) (T, error)

// GetOrReadInstance is the cache-aware reader for a statically known
// concrete type T: used wherever the caller's property
// already fixes the exact struct index, so the only way T ends up
// wrong is a generator/runtime bug, never archive data. On a cache hit
// the cached value is asserted back to T; a failed assertion there is
// ErrTypeMismatch, not a recoverable condition.
//
// The null sentinel and cycle breaks both return the zero value of T
// with a nil error — for the pointer types generated code uses, that
// zero value is a nil pointer, the caller's natural "absent" spelling.
func GetOrReadInstance[T any](ctx *ReadContext, structIndex, instanceIndex int32, read ReaderFunc[T]) (T, error) {
	var zero T
	if structIndex == schema.NullIndex || instanceIndex == schema.NullIndex {
		return zero, nil
	}
	key := instanceKey{structIndex, instanceIndex}
	rt := ctx.RT

	if v, ok := rt.cache.Load(key); ok {
		t, ok := v.(T)
		if !ok {
			return zero, fmt.Errorf("%w: struct %d instance %d", ErrTypeMismatch, structIndex, instanceIndex)
		}
		return t, nil
	}

	if ctx.Visited.contains(key) {
		rt.logCycle(structIndex, instanceIndex)
		return zero, nil
	}
	ctx.Visited.add(key)
	defer ctx.Visited.remove(key)

	cur, err := rt.db.GetReader(structIndex, instanceIndex)
	if err != nil {
		return zero, fmt.Errorf("struct %d instance %d: %w", structIndex, instanceIndex, err)
	}
	val, err := read(ctx, &cur)
	if err != nil {
		return zero, fmt.Errorf("struct %d instance %d: %w", structIndex, instanceIndex, err)
	}

	actual, _ := rt.cache.LoadOrStore(key, val)
	result, ok := actual.(T)
	if !ok {
		return zero, fmt.Errorf("%w: struct %d instance %d", ErrTypeMismatch, structIndex, instanceIndex)
	}
	return result, nil
}

// GetOrReadInstancePolymorphic has the same cache and null semantics as
// GetOrReadInstance, but resolves the concrete type through the
// runtime's DispatchFunc instead of a caller-supplied reader — used
// wherever the target's concrete type may be a subtype of T, as with a
// reference or pointer property declared against a base struct. T is
// ordinarily an interface here; a concrete dispatched value that
// doesn't implement it is ErrTypeMismatch.
func GetOrReadInstancePolymorphic[T any](ctx *ReadContext, structIndex, instanceIndex int32) (T, error) {
	var zero T
	if structIndex == schema.NullIndex || instanceIndex == schema.NullIndex {
		return zero, nil
	}
	value, err := ctx.RT.dispatch(ctx, structIndex, instanceIndex)
	if err != nil {
		return zero, err
	}
	if isNilBoxed(value) {
		return zero, nil
	}
	t, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: struct %d instance %d", ErrTypeMismatch, structIndex, instanceIndex)
	}
	return t, nil
}
