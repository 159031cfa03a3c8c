package typed

import "errors"

// ErrSchemaMismatch is returned by Runtime.ValidateSchema when the
// archive's struct/enum counts or fingerprints disagree with the
// generated code's embedded constants.
var ErrSchemaMismatch = errors.New("typed: schema mismatch")

// ErrNullDispatch is returned when the dispatch table has no entry for a
// non-sentinel struct index — generator/runtime drift the schema
// fingerprint did not catch.
var ErrNullDispatch = errors.New("typed: dispatch returned nothing for a live index")

// ErrTypeMismatch is returned when a cached or dispatched value's
// concrete type is incompatible with the statically requested type
// parameter — a generator bug, never a data error.
var ErrTypeMismatch = errors.New("typed: cached value has incompatible type")
