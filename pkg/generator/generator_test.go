package generator_test

import (
	"fmt"
	"testing"

	"github.com/rawbytedev/datacore/internal/gen"
	"github.com/rawbytedev/datacore/internal/testarchive"
	"github.com/rawbytedev/datacore/pkg/database"
	"github.com/rawbytedev/datacore/pkg/generator"
	"github.com/stretchr/testify/require"
)

func buildFixtureDatabase(t *testing.T) *database.Database {
	t.Helper()
	b := testarchive.New()
	gen.Populate(b)
	buf, err := b.Build()
	require.NoError(t, err)
	db, err := database.Open(buf)
	require.NoError(t, err)
	return db
}

func TestGenerate_EmitsOneFilePerConcern(t *testing.T) {
	db := buildFixtureDatabase(t)
	out, err := generator.Generate(db, generator.Config{PackageName: "gen"})
	require.NoError(t, err)
	require.Contains(t, out, "types.go")
	require.Contains(t, out, "read.go")
	require.Contains(t, out, "dispatch.go")
	require.NotContains(t, out, "MANIFEST.txt")
}

func TestGenerate_TypesFileDeclaresEveryStruct(t *testing.T) {
	db := buildFixtureDatabase(t)
	out, err := generator.Generate(db, generator.Config{PackageName: "gen"})
	require.NoError(t, err)

	types := string(out["types.go"])
	for _, name := range []string{"Point", "Base", "Derived", "Node", "Item", "Bag", "Widget", "Holder", "Loop"} {
		require.Contains(t, types, "type "+name+" struct", name)
	}
	require.Contains(t, types, "type Color int32")
}

func TestGenerate_DispatchCoversEveryStructIndex(t *testing.T) {
	db := buildFixtureDatabase(t)
	out, err := generator.Generate(db, generator.Config{PackageName: "gen", DispatcherName: "Dispatch"})
	require.NoError(t, err)

	dispatch := string(out["dispatch.go"])
	require.Contains(t, dispatch, "func Dispatch(")
	for i := 0; i < db.StructCount(); i++ {
		require.Contains(t, dispatch, fmt.Sprintf("case %d:", i))
	}
}

func TestGenerate_ManifestReflectsFingerprints(t *testing.T) {
	db := buildFixtureDatabase(t)
	out, err := generator.Generate(db, generator.Config{PackageName: "gen", EmitManifest: true})
	require.NoError(t, err)

	manifest, ok := out["MANIFEST.txt"]
	require.True(t, ok)
	require.Contains(t, string(manifest), "structCount: 9")
	require.Contains(t, string(manifest), "enumCount: 1")
	require.Contains(t, string(manifest), fmt.Sprintf("structFingerprint: %#x", db.StructFingerprint()))
	require.Contains(t, string(manifest), fmt.Sprintf("enumFingerprint: %#x", db.EnumFingerprint()))
}
