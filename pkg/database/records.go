package database

import (
	"fmt"

	"github.com/rawbytedev/datacore/pkg/cursor"
	"github.com/rawbytedev/datacore/pkg/schema"
)

func readMainRecordIndex(c *cursor.Cursor) ([]schema.MainRecordEntry, error) {
	n, err := c.ReadVarUint()
	if err != nil {
		return nil, err
	}
	out := make([]schema.MainRecordEntry, n)
	for i := range out {
		guid, err := c.ReadGUID()
		if err != nil {
			return nil, fmt.Errorf("main record index: entry %d: %w", i, err)
		}
		fileName, err := c.ReadI32()
		if err != nil {
			return nil, fmt.Errorf("main record index: entry %d: %w", i, err)
		}
		structIndex, err := c.ReadI32()
		if err != nil {
			return nil, fmt.Errorf("main record index: entry %d: %w", i, err)
		}
		instanceIndex, err := c.ReadI32()
		if err != nil {
			return nil, fmt.Errorf("main record index: entry %d: %w", i, err)
		}
		out[i] = schema.MainRecordEntry{
			ID:             guid,
			FileNameOffset: fileName,
			StructIndex:    structIndex,
			InstanceIndex:  instanceIndex,
		}
	}
	return out, nil
}

func buildGUIDIndex(records []schema.MainRecordEntry) (map[[16]byte]int32, error) {
	m := make(map[[16]byte]int32, len(records))
	for i, r := range records {
		if _, dup := m[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate main record GUID", ErrCorrupt)
		}
		m[r.ID] = int32(i)
	}
	return m, nil
}

// GetRecord looks up a main record by its GUID.
func (db *Database) GetRecord(guid [16]byte) (schema.MainRecordEntry, error) {
	idx, ok := db.recordByGUID[guid]
	if !ok {
		return schema.MainRecordEntry{}, ErrUnknownRecord
	}
	return db.mainRecords[idx], nil
}

// GetRecordByIndex looks up a main record by its ordinal position in the
// main-record index.
func (db *Database) GetRecordByIndex(i int32) (schema.MainRecordEntry, error) {
	if i < 0 || int(i) >= len(db.mainRecords) {
		return schema.MainRecordEntry{}, ErrUnknownRecord
	}
	return db.mainRecords[i], nil
}

// RecordInfo is the resolved target of a reference, returned by
// TryGetRecordInfo.
type RecordInfo struct {
	StructIndex    int32
	InstanceIndex  int32
	IsMain         bool
	FileNameOffset int32
}

// TryGetRecordInfo is the single entry point for reference resolution:
// given a GUID, report where its target lives. A GUID with no
// main-record entry is reported as not found; it is the caller's
// responsibility to treat this as the recoverable UnknownRecord case.
func (db *Database) TryGetRecordInfo(guid [16]byte) (RecordInfo, bool) {
	idx, ok := db.recordByGUID[guid]
	if !ok {
		return RecordInfo{}, false
	}
	r := db.mainRecords[idx]
	return RecordInfo{
		StructIndex:    r.StructIndex,
		InstanceIndex:  r.InstanceIndex,
		IsMain:         true,
		FileNameOffset: r.FileNameOffset,
	}, true
}
