package gen

import "github.com/rawbytedev/datacore/internal/testarchive"

// Populate writes this package's struct, property, enum, and
// enum-option tables into b in database.Open's declaration order, so
// a test only has to add instance bytes and main records before
// calling b.Build().
func Populate(b *testarchive.Builder) {
	for _, s := range StructDefs {
		b.AddStruct(s)
	}
	for _, p := range PropertyDefs {
		b.AddProperty(p)
	}
	for _, e := range EnumDefs {
		b.AddEnum(e)
	}
	for _, name := range ColorOptionNames {
		b.AddEnumOption(name)
	}
}
