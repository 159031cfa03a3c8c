package typed

import (
	"sync"

	"github.com/rawbytedev/datacore/pkg/database"
	"github.com/rawbytedev/datacore/pkg/schema"
)

// LazyRef is the handle a reference or pointer property resolves to: it
// knows enough to find its target but doesn't read it until Value is
// called. A nil *LazyRef[T] is itself the
// well-formed "no target" value — callers check for it the same way
// they'd check a nil pointer in any other Go API.
type LazyRef[T any] struct {
	rt *Runtime

	once  sync.Once
	value T
	err   error

	// set at construction for a pointer-backed ref, or lazily on first
	// Value() for a GUID-backed one.
	resolved      bool
	structIndex   int32
	instanceIndex int32
	isMain        bool
	fileNameOff   int32

	guid [16]byte
}

// CreateRefFromReference builds a LazyRef from a reference-pool entry
// (or a scalar reference property's inline GUID/instanceIndex pair).
// It returns nil if the entry is the null sentinel.
func CreateRefFromReference[T any](rt *Runtime, ref database.ReferenceEntry) *LazyRef[T] {
	if ref.InstanceIndex == schema.NullIndex {
		return nil
	}
	return &LazyRef[T]{rt: rt, guid: ref.GUID}
}

// CreateRefFromPointer builds a LazyRef from a strong or weak pointer
// pool entry (or a scalar pointer property's inline pair), both of
// which already carry a resolved (structIndex, instanceIndex) and need
// no main-record lookup. It returns nil if the entry is the null
// sentinel.
func CreateRefFromPointer[T any](rt *Runtime, ptr database.PointerEntry) *LazyRef[T] {
	if ptr.StructIndex == schema.NullIndex || ptr.InstanceIndex == schema.NullIndex {
		return nil
	}
	return &LazyRef[T]{
		rt:            rt,
		resolved:      true,
		structIndex:   ptr.StructIndex,
		instanceIndex: ptr.InstanceIndex,
	}
}

// Value resolves and materialises the reference's target, memoising
// the result on the LazyRef itself — a second call against the same
// ctx or a different one returns the same value without re-resolving.
// A GUID that has no main-record entry resolves to the zero value of T
// with no error, logged on the debug channel; it is never escalated to
// a failure, since dangling references are expected in
// partially-loaded archives.
func (r *LazyRef[T]) Value(ctx *ReadContext) (T, error) {
	if r == nil {
		var zero T
		return zero, nil
	}
	r.once.Do(func() {
		if !r.resolved {
			info, ok := r.rt.db.TryGetRecordInfo(r.guid)
			if !ok {
				r.rt.logUnknownRecord(r.guid)
				return
			}
			r.structIndex = info.StructIndex
			r.instanceIndex = info.InstanceIndex
			r.isMain = info.IsMain
			r.fileNameOff = info.FileNameOffset
			r.resolved = true
		}
		r.value, r.err = GetOrReadInstancePolymorphic[T](ctx, r.structIndex, r.instanceIndex)
	})
	return r.value, r.err
}

// RecordID returns the GUID this reference was addressed by. A
// pointer-backed ref (no GUID in the archive) returns the zero GUID.
func (r *LazyRef[T]) RecordID() [16]byte {
	if r == nil {
		return [16]byte{}
	}
	return r.guid
}

// IsResolved reports whether the target's (structIndex, instanceIndex)
// is known yet — always true for a pointer-backed ref, true for a
// GUID-backed ref only after a successful Value call.
func (r *LazyRef[T]) IsResolved() bool {
	return r != nil && r.resolved
}

// StructIndex returns the target's struct index. Valid only once
// IsResolved reports true.
func (r *LazyRef[T]) StructIndex() int32 {
	if r == nil {
		return schema.NullIndex
	}
	return r.structIndex
}

// InstanceIndex returns the target's instance index. Valid only once
// IsResolved reports true.
func (r *LazyRef[T]) InstanceIndex() int32 {
	if r == nil {
		return schema.NullIndex
	}
	return r.instanceIndex
}

// IsExternalFile reports whether the target is itself a main record
// (found through the main-record index), as opposed to an instance
// reached only by a pointer. It does not check whether that record has
// a file name. Valid only once IsResolved reports true.
func (r *LazyRef[T]) IsExternalFile() bool {
	return r != nil && r.resolved && r.isMain
}

// ExternalFilePath resolves the target's file name, if IsExternalFile
// reports true.
func (r *LazyRef[T]) ExternalFilePath(db *database.Database) (string, error) {
	if r == nil || !r.isMain || r.fileNameOff == schema.NullIndex {
		return "", nil
	}
	return db.String(r.fileNameOff)
}
