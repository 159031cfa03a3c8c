package database_test

import (
	"testing"

	"github.com/rawbytedev/datacore/internal/gen"
	"github.com/rawbytedev/datacore/internal/testarchive"
	"github.com/rawbytedev/datacore/pkg/database"
	"github.com/rawbytedev/datacore/pkg/schema"
	"github.com/stretchr/testify/require"
)

func buildFixture(t *testing.T) *testarchive.Builder {
	t.Helper()
	b := testarchive.New()
	gen.Populate(b)
	return b
}

func TestOpen_PointRoundTrip(t *testing.T) {
	b := buildFixture(t)
	raw := testarchive.NewInstanceWriter().I32(3).I32(-4).Bytes()
	b.AddInstance(gen.StructPoint, raw)

	buf, err := b.Build()
	require.NoError(t, err)

	db, err := database.Open(buf)
	require.NoError(t, err)

	stride, err := db.Stride(gen.StructPoint)
	require.NoError(t, err)
	require.Equal(t, int32(8), stride)

	cur, err := db.GetReader(gen.StructPoint, 0)
	require.NoError(t, err)
	x, err := cur.ReadI32()
	require.NoError(t, err)
	y, err := cur.ReadI32()
	require.NoError(t, err)
	require.Equal(t, int32(3), x)
	require.Equal(t, int32(-4), y)
}

func TestOpen_DerivedStrideIncludesParent(t *testing.T) {
	b := buildFixture(t)
	nameID := b.AddString("widget-b")
	raw := testarchive.NewInstanceWriter().U8(9).I32(nameID).Bytes()
	b.AddInstance(gen.StructDerived, raw)

	buf, err := b.Build()
	require.NoError(t, err)

	db, err := database.Open(buf)
	require.NoError(t, err)

	stride, err := db.Stride(gen.StructDerived)
	require.NoError(t, err)
	require.Equal(t, int32(5), stride) // Base.A(1) + B stringID(4)

	cur, err := db.GetReader(gen.StructDerived, 0)
	require.NoError(t, err)
	a, err := cur.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(9), a)
}

func TestOpen_MaxUnsignedByteDoesNotSignExtend(t *testing.T) {
	b := buildFixture(t)
	raw := testarchive.NewInstanceWriter().U8(255).I32(0).Bytes()
	b.AddInstance(gen.StructDerived, raw)

	buf, err := b.Build()
	require.NoError(t, err)
	db, err := database.Open(buf)
	require.NoError(t, err)

	cur, err := db.GetReader(gen.StructDerived, 0)
	require.NoError(t, err)
	a, err := cur.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(255), a)
}

func TestOpen_MainRecordLookup(t *testing.T) {
	b := buildFixture(t)
	raw := testarchive.NewInstanceWriter().I32(1).I32(2).Bytes()
	b.AddInstance(gen.StructPoint, raw)

	guid := [16]byte{1, 2, 3, 4}
	b.AddMainRecord(schema.MainRecordEntry{
		ID:             guid,
		FileNameOffset: schema.NullIndex,
		StructIndex:    gen.StructPoint,
		InstanceIndex:  0,
	})

	buf, err := b.Build()
	require.NoError(t, err)
	db, err := database.Open(buf)
	require.NoError(t, err)

	info, ok := db.TryGetRecordInfo(guid)
	require.True(t, ok)
	require.Equal(t, gen.StructPoint, info.StructIndex)
	require.Equal(t, int32(0), info.InstanceIndex)

	_, ok = db.TryGetRecordInfo([16]byte{9, 9, 9})
	require.False(t, ok)
}

func TestOpen_DuplicateMainRecordGUIDIsCorrupt(t *testing.T) {
	b := buildFixture(t)
	raw := testarchive.NewInstanceWriter().I32(0).I32(0).Bytes()
	b.AddInstance(gen.StructPoint, raw)
	b.AddInstance(gen.StructPoint, raw)

	guid := [16]byte{5, 5, 5}
	b.AddMainRecord(schema.MainRecordEntry{ID: guid, FileNameOffset: schema.NullIndex, StructIndex: gen.StructPoint, InstanceIndex: 0})
	b.AddMainRecord(schema.MainRecordEntry{ID: guid, FileNameOffset: schema.NullIndex, StructIndex: gen.StructPoint, InstanceIndex: 1})

	buf, err := b.Build()
	require.NoError(t, err)

	_, err = database.Open(buf)
	require.ErrorIs(t, err, database.ErrCorrupt)
}

func TestOpen_CompressedInstanceSection(t *testing.T) {
	b := buildFixture(t)
	b.Compress = true
	raw := testarchive.NewInstanceWriter().I32(10).I32(20).Bytes()
	b.AddInstance(gen.StructPoint, raw)

	buf, err := b.Build()
	require.NoError(t, err)

	db, err := database.Open(buf)
	require.NoError(t, err)

	cur, err := db.GetReader(gen.StructPoint, 0)
	require.NoError(t, err)
	x, err := cur.ReadI32()
	require.NoError(t, err)
	y, err := cur.ReadI32()
	require.NoError(t, err)
	require.Equal(t, int32(10), x)
	require.Equal(t, int32(20), y)
}

func TestOpen_BadIndexOutOfRange(t *testing.T) {
	b := buildFixture(t)
	raw := testarchive.NewInstanceWriter().I32(0).I32(0).Bytes()
	b.AddInstance(gen.StructPoint, raw)

	buf, err := b.Build()
	require.NoError(t, err)
	db, err := database.Open(buf)
	require.NoError(t, err)

	_, err = db.GetReader(gen.StructPoint, 1)
	require.ErrorIs(t, err, database.ErrBadIndex)

	_, err = db.GetReader(42, 0)
	require.ErrorIs(t, err, database.ErrBadIndex)
}

func TestOpen_FingerprintsMatchGeneratedConstants(t *testing.T) {
	b := buildFixture(t)
	buf, err := b.Build()
	require.NoError(t, err)
	db, err := database.Open(buf)
	require.NoError(t, err)

	require.Equal(t, gen.StructFingerprint, db.StructFingerprint())
	require.Equal(t, gen.EnumFingerprint, db.EnumFingerprint())
	require.Equal(t, gen.StructCount, db.StructCount())
	require.Equal(t, gen.EnumCount, db.EnumCount())
}
