package generator

import (
	"fmt"
	"strings"

	"github.com/rawbytedev/datacore/pkg/schema"
)

// Generate walks db's schema tables and returns a generated source
// tree keyed by file name, one file per concern: a value type, a Read
// function, and a dispatch table, plus the four schema constants
// ValidateSchema checks at startup. A caller that wants the tree on
// disk writes the returned map itself; Generate has no filesystem
// side effects. Generation is deterministic: the same schema tables
// always produce byte-identical output, since every loop here walks
// tables in their declared (index) order.
func Generate(db schemaSource, cfg Config) (map[string][]byte, error) {
	n := newNames(db)
	out := make(map[string][]byte)

	typesSrc, err := emitTypes(db, n, cfg)
	if err != nil {
		return nil, fmt.Errorf("generator: types: %w", err)
	}
	out["types.go"] = []byte(typesSrc)

	readSrc, err := emitReaders(db, n, cfg)
	if err != nil {
		return nil, fmt.Errorf("generator: readers: %w", err)
	}
	out["read.go"] = []byte(readSrc)

	dispatchSrc, err := emitDispatch(db, n, cfg)
	if err != nil {
		return nil, fmt.Errorf("generator: dispatch: %w", err)
	}
	out["dispatch.go"] = []byte(dispatchSrc)

	if cfg.EmitManifest {
		out["MANIFEST.txt"] = []byte(emitManifest(db, cfg))
	}

	return out, nil
}

func emitManifest(db schemaSource, cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "package: %s\n", cfg.PackageName)
	fmt.Fprintf(&b, "structCount: %d\n", db.StructCount())
	fmt.Fprintf(&b, "enumCount: %d\n", db.EnumCount())
	fmt.Fprintf(&b, "structFingerprint: %#x\n", db.StructFingerprint())
	fmt.Fprintf(&b, "enumFingerprint: %#x\n", db.EnumFingerprint())
	fmt.Fprintln(&b, "files: types.go, read.go, dispatch.go")
	return b.String()
}

// usesTyped reports whether any property across the whole schema needs
// the typed package in types.go (a LazyRef field: a reference or
// pointer property, scalar or array), so types.go only imports it when
// something in the emitted file actually references it. read.go always
// imports it.
func usesTyped(db schemaSource) (bool, error) {
	for i := 0; i < db.StructCount(); i++ {
		s, err := db.Struct(int32(i))
		if err != nil {
			return false, err
		}
		for j := s.FirstProperty; j < s.FirstProperty+s.PropertyCount; j++ {
			p, err := db.Property(j)
			if err != nil {
				return false, err
			}
			switch p.DataType {
			case schema.TypeReference, schema.TypeStrongPointer, schema.TypeWeakPointer:
				return true, nil
			}
		}
	}
	return false, nil
}

func structProperties(db schemaSource, s schema.StructDef) ([]schema.PropertyDef, error) {
	props := make([]schema.PropertyDef, 0, s.PropertyCount)
	for j := s.FirstProperty; j < s.FirstProperty+s.PropertyCount; j++ {
		p, err := db.Property(j)
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, nil
}
