package typed

import (
	"fmt"

	"github.com/rawbytedev/datacore/pkg/schema"
)

// TypedRecord is the materialised form of one main-record index entry:
// the file it was addressed by, the schema name of its concrete type,
// its GUID, and the fully read-through value itself.
type TypedRecord struct {
	FileName string
	Name     string
	ID       [16]byte
	Data     any
}

// GetFromMainRecord materialises a main-record entry in full, starting
// a fresh call chain (its own visitSet) since a top-level record begins
// outside any in-flight read. Fails with ErrNullDispatch if dispatch
// reports nothing for a record's struct index — the main-record index
// never holds the null sentinel, so that can only mean schema drift.
func (rt *Runtime) GetFromMainRecord(main schema.MainRecordEntry) (TypedRecord, error) {
	ctx := rt.NewReadContext()

	value, err := rt.dispatch(ctx, main.StructIndex, main.InstanceIndex)
	if err != nil {
		return TypedRecord{}, err
	}
	if isNilBoxed(value) {
		return TypedRecord{}, fmt.Errorf("%w: struct %d instance %d", ErrNullDispatch, main.StructIndex, main.InstanceIndex)
	}

	structDef, err := rt.db.Struct(main.StructIndex)
	if err != nil {
		return TypedRecord{}, err
	}

	var fileName string
	if main.FileNameOffset != schema.NullIndex {
		fileName, err = rt.db.String(main.FileNameOffset)
		if err != nil {
			return TypedRecord{}, err
		}
	}

	return TypedRecord{
		FileName: fileName,
		Name:     structDef.Name,
		ID:       main.ID,
		Data:     value,
	}, nil
}
