package typed

import (
	"reflect"

	"github.com/rawbytedev/datacore/pkg/schema"
)

type enumCacheKey struct {
	enumType reflect.Type
	stringID int32
}

// EnumParse resolves a string-pool ID to a generated enum constant of
// type T, memoised by (enum type, stringId) so repeated properties
// sharing the same string don't repeatedly round-trip the string pool
// and the lookup map. lookup is the generated by-name map for this
// enum, built once by pkg/generator;
// fallback is always the generated Unknown constant. A null stringID,
// a string pool miss, or a name absent from lookup all resolve to
// fallback and are recorded on the debug channel rather than failing
// the read — an archive written against a newer schema version may use
// enum options this build's generated code has never heard of.
func EnumParse[T any](rt *Runtime, stringID int32, fallback T, lookup map[string]T) T {
	if stringID == schema.NullIndex {
		return fallback
	}
	key := enumCacheKey{enumType: reflect.TypeOf(fallback), stringID: stringID}
	if v, ok := rt.enumCache.Load(key); ok {
		return v.(T)
	}

	result := fallback
	name, err := rt.db.String(stringID)
	if err != nil {
		rt.logEnumMiss(stringID, err)
	} else if v, ok := lookup[name]; ok {
		result = v
	} else {
		rt.logEnumMiss(stringID, name)
	}

	actual, _ := rt.enumCache.LoadOrStore(key, result)
	return actual.(T)
}
