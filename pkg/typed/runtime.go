// Package typed is the cache-aware materialisation runtime sitting
// between pkg/database's byte-level view and the record types emitted
// by pkg/generator. The runtime itself never knows any
// concrete record type; it knows only a caller-supplied dispatch
// function from struct index to a boxed, materialised value, and the
// generic helpers generated Read functions call back into to exploit
// the instance cache and the reference/enum/pointer pools uniformly.
package typed

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"sync"

	"github.com/rawbytedev/datacore/pkg/database"
)

// DispatchFunc materialises the instance at (structIndex, instanceIndex)
// into its concrete, generated Go type, boxed as any. Generated code
// supplies one central implementation — a switch over structIndex,
// each case delegating to GetOrReadInstance with that struct's own
// Read function — built once per schema version by pkg/generator. An
// ErrNullDispatch error return is fatal: it signals a struct index
// the generator never saw, i.e. schema drift the fingerprint check let
// slip through.
type DispatchFunc func(ctx *ReadContext, structIndex, instanceIndex int32) (any, error)

// Runtime owns a parsed Database and the caller's DispatchFunc, plus
// the two caches (instances, parsed enum values) that make repeated
// resolution of the same reference or pointer cheap. A Runtime is safe
// for concurrent use: the caches are sync.Map, and visitSet is never
// shared across call chains.
type Runtime struct {
	db       *database.Database
	dispatch DispatchFunc
	logger   *slog.Logger

	cache     sync.Map // instanceKey -> any
	enumCache sync.Map // enumCacheKey -> any
}

// Option configures a Runtime at construction time.
type Option func(*Runtime)

// WithLogger overrides the default debug-channel logger, which
// otherwise discards every record.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) { rt.logger = logger }
}

// NewRuntime builds a Runtime over db, dispatching polymorphic lookups
// through dispatch.
func NewRuntime(db *database.Database, dispatch DispatchFunc, opts ...Option) *Runtime {
	rt := &Runtime{
		db:       db,
		dispatch: dispatch,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// ReadContext carries the plumbing a generated Read function needs to
// recurse: the Runtime it's reading through, and the in-flight
// visitSet for this call chain. Generated code never constructs one
// directly except at the very top (NewReadContext); every recursive
// call passes the same ctx down.
type ReadContext struct {
	RT      *Runtime
	Visited *visitSet
}

// NewReadContext starts a fresh materialisation call chain with an
// empty visit set.
func (rt *Runtime) NewReadContext() *ReadContext {
	return &ReadContext{RT: rt, Visited: newVisitSet()}
}

// Database returns the underlying parsed archive.
func (rt *Runtime) Database() *database.Database { return rt.db }

// ValidateSchema compares the open archive's struct/enum counts and
// fingerprints against the constants pkg/generator embedded in
// generated code for the schema version it was run against. A mismatch
// means the generated record types do not describe this archive and
// must not be used against it.
func (rt *Runtime) ValidateSchema(expectedStructCount, expectedEnumCount int, expectedStructFingerprint, expectedEnumFingerprint uint64) error {
	if rt.db.StructCount() != expectedStructCount {
		return fmt.Errorf("%w: struct count %d, generated code expects %d", ErrSchemaMismatch, rt.db.StructCount(), expectedStructCount)
	}
	if rt.db.EnumCount() != expectedEnumCount {
		return fmt.Errorf("%w: enum count %d, generated code expects %d", ErrSchemaMismatch, rt.db.EnumCount(), expectedEnumCount)
	}
	if got := rt.db.StructFingerprint(); got != expectedStructFingerprint {
		return fmt.Errorf("%w: struct fingerprint %x, generated code expects %x", ErrSchemaMismatch, got, expectedStructFingerprint)
	}
	if got := rt.db.EnumFingerprint(); got != expectedEnumFingerprint {
		return fmt.Errorf("%w: enum fingerprint %x, generated code expects %x", ErrSchemaMismatch, got, expectedEnumFingerprint)
	}
	return nil
}

// isNilBoxed reports whether v is an interface wrapping a nil pointer,
// map, slice, chan, or func — the classic boxed-nil case that a plain
// v == nil comparison misses once a concrete nil has crossed an any
// boundary (as it does whenever a dispatch case returns a nil
// generated record pointer). Needed to distinguish a legitimately null
// dispatch result (cycle break) from one that carries real data.
func isNilBoxed(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
