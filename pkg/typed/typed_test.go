package typed_test

import (
	"testing"

	"github.com/rawbytedev/datacore/internal/gen"
	"github.com/rawbytedev/datacore/internal/testarchive"
	"github.com/rawbytedev/datacore/pkg/cursor"
	"github.com/rawbytedev/datacore/pkg/database"
	"github.com/rawbytedev/datacore/pkg/schema"
	"github.com/rawbytedev/datacore/pkg/typed"
	"github.com/stretchr/testify/require"
)

func openFixture(t *testing.T, b *testarchive.Builder) *database.Database {
	t.Helper()
	buf, err := b.Build()
	require.NoError(t, err)
	db, err := database.Open(buf)
	require.NoError(t, err)
	return db
}

func newRuntime(t *testing.T, b *testarchive.Builder) *typed.Runtime {
	t.Helper()
	db := openFixture(t, b)
	rt := typed.NewRuntime(db, gen.Dispatch)
	require.NoError(t, rt.ValidateSchema(gen.StructCount, gen.EnumCount, gen.StructFingerprint, gen.EnumFingerprint))
	return rt
}

func TestGetOrReadInstance_CacheReturnsSameValue(t *testing.T) {
	b := testarchive.New()
	gen.Populate(b)
	b.AddInstance(gen.StructPoint, testarchive.NewInstanceWriter().I32(1).I32(2).Bytes())
	rt := newRuntime(t, b)

	ctx := rt.NewReadContext()
	first, err := gen.Dispatch(ctx, gen.StructPoint, 0)
	require.NoError(t, err)
	second, err := gen.Dispatch(ctx, gen.StructPoint, 0)
	require.NoError(t, err)

	require.Same(t, first.(*gen.Point), second.(*gen.Point))
}

func TestPolymorphicReference_DerivedSatisfiesBaseRef(t *testing.T) {
	b := testarchive.New()
	gen.Populate(b)

	nameID := b.AddString("derived-name")
	derivedRaw := testarchive.NewInstanceWriter().U8(1).I32(nameID).Bytes()
	b.AddInstance(gen.StructDerived, derivedRaw)

	derivedGUID := [16]byte{1, 1, 1, 1}
	b.AddMainRecord(schema.MainRecordEntry{
		ID:             derivedGUID,
		FileNameOffset: schema.NullIndex,
		StructIndex:    gen.StructDerived,
		InstanceIndex:  0,
	})

	holderRaw := testarchive.NewInstanceWriter().Reference(derivedGUID, 0).Bytes()
	b.AddInstance(gen.StructHolder, holderRaw)

	rt := newRuntime(t, b)
	ctx := rt.NewReadContext()

	holderAny, err := gen.Dispatch(ctx, gen.StructHolder, 0)
	require.NoError(t, err)
	holder := holderAny.(*gen.Holder)
	require.NotNil(t, holder.Ref)

	base, err := holder.Ref.Value(ctx)
	require.NoError(t, err)
	require.NotNil(t, base)

	derived, ok := base.(*gen.Derived)
	require.True(t, ok, "expected the reference to narrow to *gen.Derived")
	require.Equal(t, "derived-name", derived.B)
	require.Equal(t, uint8(1), derived.A)
}

func TestLazyRef_UnknownRecordResolvesToZeroWithoutError(t *testing.T) {
	b := testarchive.New()
	gen.Populate(b)
	holderRaw := testarchive.NewInstanceWriter().Reference([16]byte{9, 9, 9}, 0).Bytes()
	b.AddInstance(gen.StructHolder, holderRaw)

	rt := newRuntime(t, b)
	ctx := rt.NewReadContext()

	holderAny, err := gen.Dispatch(ctx, gen.StructHolder, 0)
	require.NoError(t, err)
	holder := holderAny.(*gen.Holder)

	base, err := holder.Ref.Value(ctx)
	require.NoError(t, err)
	require.Nil(t, base)
	require.False(t, holder.Ref.IsResolved())
}

func TestCycleBreak_SelfReferentialClassArray(t *testing.T) {
	b := testarchive.New()
	gen.Populate(b)
	loopRaw := testarchive.NewInstanceWriter().CountFirst(1, 0).Bytes()
	b.AddInstance(gen.StructLoop, loopRaw)

	rt := newRuntime(t, b)
	ctx := rt.NewReadContext()

	loopAny, err := gen.Dispatch(ctx, gen.StructLoop, 0)
	require.NoError(t, err)
	loop := loopAny.(*gen.Loop)

	require.Len(t, loop.Next, 1)
	require.Nil(t, loop.Next[0], "the self-referential element must break the cycle, not recurse forever")
}

func TestEnumParse_UnknownNameFallsBackToUnknown(t *testing.T) {
	b := testarchive.New()
	gen.Populate(b)
	badID := b.AddString("Purple")
	widgetRaw := testarchive.NewInstanceWriter().I32(badID).Bytes()
	b.AddInstance(gen.StructWidget, widgetRaw)

	rt := newRuntime(t, b)
	ctx := rt.NewReadContext()

	widgetAny, err := gen.Dispatch(ctx, gen.StructWidget, 0)
	require.NoError(t, err)
	widget := widgetAny.(*gen.Widget)
	require.Equal(t, gen.ColorUnknown, widget.Tint)
}

func TestEnumParse_KnownNameResolves(t *testing.T) {
	b := testarchive.New()
	gen.Populate(b)
	goodID := b.AddString("Green")
	widgetRaw := testarchive.NewInstanceWriter().I32(goodID).Bytes()
	b.AddInstance(gen.StructWidget, widgetRaw)

	rt := newRuntime(t, b)
	ctx := rt.NewReadContext()

	widgetAny, err := gen.Dispatch(ctx, gen.StructWidget, 0)
	require.NoError(t, err)
	widget := widgetAny.(*gen.Widget)
	require.Equal(t, gen.ColorGreen, widget.Tint)
}

func TestReadClassArray_MaterialisesConsecutiveInstances(t *testing.T) {
	b := testarchive.New()
	gen.Populate(b)
	b.AddInstance(gen.StructItem, testarchive.NewInstanceWriter().I32(10).Bytes())
	b.AddInstance(gen.StructItem, testarchive.NewInstanceWriter().I32(20).Bytes())
	b.AddInstance(gen.StructBag, testarchive.NewInstanceWriter().CountFirst(2, 0).Bytes())

	rt := newRuntime(t, b)
	ctx := rt.NewReadContext()

	bagAny, err := gen.Dispatch(ctx, gen.StructBag, 0)
	require.NoError(t, err)
	bag := bagAny.(*gen.Bag)
	require.Len(t, bag.Items, 2)
	require.Equal(t, int32(10), bag.Items[0].Value)
	require.Equal(t, int32(20), bag.Items[1].Value)
}

func TestReadClassArray_EmptyArrayIsEmptyNotNilError(t *testing.T) {
	b := testarchive.New()
	gen.Populate(b)
	b.AddInstance(gen.StructBag, testarchive.NewInstanceWriter().CountFirst(0, 0).Bytes())

	rt := newRuntime(t, b)
	ctx := rt.NewReadContext()

	bagAny, err := gen.Dispatch(ctx, gen.StructBag, 0)
	require.NoError(t, err)
	bag := bagAny.(*gen.Bag)
	require.Len(t, bag.Items, 0)
}

func TestGetFromMainRecord_ResolvesNamedTypeAndFile(t *testing.T) {
	b := testarchive.New()
	gen.Populate(b)
	b.AddInstance(gen.StructPoint, testarchive.NewInstanceWriter().I32(7).I32(8).Bytes())

	fileID := b.AddString("points/origin.point")
	guid := [16]byte{4, 5, 6}
	b.AddMainRecord(schema.MainRecordEntry{
		ID:             guid,
		FileNameOffset: fileID,
		StructIndex:    gen.StructPoint,
		InstanceIndex:  0,
	})

	rt := newRuntime(t, b)
	db := rt.Database()
	main, err := db.GetRecord(guid)
	require.NoError(t, err)

	rec, err := rt.GetFromMainRecord(main)
	require.NoError(t, err)
	require.Equal(t, "Point", rec.Name)
	require.Equal(t, "points/origin.point", rec.FileName)
	require.Equal(t, guid, rec.ID)

	point, ok := rec.Data.(*gen.Point)
	require.True(t, ok)
	require.Equal(t, int32(7), point.X)
	require.Equal(t, int32(8), point.Y)
}

func TestReadInt32Array_EmptyArrayIgnoresStaleFirstIndex(t *testing.T) {
	pools := database.Pools{I32: []int32{1, 2, 3}}
	raw := testarchive.NewInstanceWriter().CountFirst(0, 999).Bytes()
	cur := cursor.New(raw)

	out, err := typed.ReadInt32Array(&cur, &pools)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestReadInt32Array_NonEmptyArrayOutOfBoundsIsCorrupt(t *testing.T) {
	pools := database.Pools{I32: []int32{1, 2, 3}}
	raw := testarchive.NewInstanceWriter().CountFirst(1, 999).Bytes()
	cur := cursor.New(raw)

	_, err := typed.ReadInt32Array(&cur, &pools)
	require.ErrorIs(t, err, database.ErrCorrupt)
}

func TestReadBoolArray_EmptyArrayIgnoresStaleFirstIndex(t *testing.T) {
	pools := database.Pools{Bool: []bool{true, false}}
	raw := testarchive.NewInstanceWriter().CountFirst(0, 500).Bytes()
	cur := cursor.New(raw)

	out, err := typed.ReadBoolArray(&cur, &pools)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestReadRefArray_EmptyArrayIgnoresStaleFirstIndex(t *testing.T) {
	b := testarchive.New()
	gen.Populate(b)
	b.Pools.Reference = []database.ReferenceEntry{{InstanceIndex: 0}}
	b.AddInstance(gen.StructPoint, testarchive.NewInstanceWriter().I32(0).I32(0).Bytes())

	rt := newRuntime(t, b)
	raw := testarchive.NewInstanceWriter().CountFirst(0, 7).Bytes()
	cur := cursor.New(raw)

	out, err := typed.ReadRefArray[gen.NodeRef](rt, &cur)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestLazyRef_TwoNodesResolveEachOtherAcrossReferences(t *testing.T) {
	b := testarchive.New()
	gen.Populate(b)

	guidA := [16]byte{0xA, 0xA}
	guidB := [16]byte{0xB, 0xB}
	nameA := b.AddString("node-a")
	nameB := b.AddString("node-b")

	// Node A's Next points at Node B, and Node B's Next points back at
	// Node A, so resolving either one's LazyRef must terminate instead
	// of chasing the cycle forever.
	nodeARaw := testarchive.NewInstanceWriter().I32(nameA).Reference(guidB, 1).Bytes()
	nodeBRaw := testarchive.NewInstanceWriter().I32(nameB).Reference(guidA, 0).Bytes()
	b.AddInstance(gen.StructNode, nodeARaw)
	b.AddInstance(gen.StructNode, nodeBRaw)

	b.AddMainRecord(schema.MainRecordEntry{ID: guidA, FileNameOffset: schema.NullIndex, StructIndex: gen.StructNode, InstanceIndex: 0})
	b.AddMainRecord(schema.MainRecordEntry{ID: guidB, FileNameOffset: schema.NullIndex, StructIndex: gen.StructNode, InstanceIndex: 1})

	rt := newRuntime(t, b)
	ctx := rt.NewReadContext()

	nodeAAny, err := gen.Dispatch(ctx, gen.StructNode, 0)
	require.NoError(t, err)
	nodeA := nodeAAny.(*gen.Node)
	require.Equal(t, "node-a", nodeA.Name)

	nextAny, err := nodeA.Next.Value(ctx)
	require.NoError(t, err)
	nodeB, ok := nextAny.(*gen.Node)
	require.True(t, ok)
	require.Equal(t, "node-b", nodeB.Name)

	backAny, err := nodeB.Next.Value(ctx)
	require.NoError(t, err)
	backToA, ok := backAny.(*gen.Node)
	require.True(t, ok)
	require.Equal(t, "node-a", backToA.Name)
	require.Same(t, nodeA, backToA)
}

func TestLazyRef_SelfReferentialNodeResolvesToItself(t *testing.T) {
	b := testarchive.New()
	gen.Populate(b)

	guid := [16]byte{0xC, 0xC}
	name := b.AddString("node-self")
	nodeRaw := testarchive.NewInstanceWriter().I32(name).Reference(guid, 0).Bytes()
	b.AddInstance(gen.StructNode, nodeRaw)
	b.AddMainRecord(schema.MainRecordEntry{ID: guid, FileNameOffset: schema.NullIndex, StructIndex: gen.StructNode, InstanceIndex: 0})

	rt := newRuntime(t, b)
	ctx := rt.NewReadContext()

	nodeAny, err := gen.Dispatch(ctx, gen.StructNode, 0)
	require.NoError(t, err)
	node := nodeAny.(*gen.Node)

	selfAny, err := node.Next.Value(ctx)
	require.NoError(t, err)
	self, ok := selfAny.(*gen.Node)
	require.True(t, ok)
	require.Same(t, node, self)
}

func TestValidateSchema_MismatchIsRejected(t *testing.T) {
	b := testarchive.New()
	gen.Populate(b)
	b.AddInstance(gen.StructPoint, testarchive.NewInstanceWriter().I32(0).I32(0).Bytes())
	db := openFixture(t, b)

	rt := typed.NewRuntime(db, gen.Dispatch)
	err := rt.ValidateSchema(gen.StructCount, gen.EnumCount, gen.StructFingerprint+1, gen.EnumFingerprint)
	require.ErrorIs(t, err, typed.ErrSchemaMismatch)
}
