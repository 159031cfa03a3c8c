package database

import (
	"errors"

	"github.com/rawbytedev/datacore/pkg/cursor"
)

// ErrEndOfBuffer is returned when a read would run past the archive's
// byte slice. It aliases cursor.ErrEndOfBuffer so callers can match on
// either package's sentinel.
var ErrEndOfBuffer = cursor.ErrEndOfBuffer

// ErrBadIndex is returned when a struct, instance, or string index is
// out of range. The -1 null sentinel counts as out of range here.
var ErrBadIndex = errors.New("database: index out of range")

// ErrUnknownRecord is returned when a GUID has no entry in the
// main-record index.
var ErrUnknownRecord = errors.New("database: unknown record")

// ErrBadMagic is returned when the archive header's magic value does not
// match the expected constant.
var ErrBadMagic = errors.New("database: bad magic")

// ErrCorrupt is returned when the archive's internal invariants
// (pool bounds, acyclic parent chain, unique main-record GUIDs) are
// violated during parsing.
var ErrCorrupt = errors.New("database: corrupt archive")
