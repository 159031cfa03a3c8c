package testarchive

import (
	"encoding/binary"
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/rawbytedev/datacore/pkg/database"
	"github.com/rawbytedev/datacore/pkg/schema"
)

// Builder assembles a synthetic DataCore archive byte-for-byte in the
// exact section order database.Open expects, so tests can construct a
// fixture schema and its instance bytes in Go rather than carrying a
// binary test fixture on disk.
type Builder struct {
	Flags uint16

	Strings     []string
	Structs     []schema.StructDef
	Properties  []schema.PropertyDef
	Enums       []schema.EnumDef
	EnumOptions []schema.EnumOption

	Pools database.Pools

	// Instances holds each struct's instances in declaration order,
	// keyed by struct index; every entry must be exactly that struct's
	// stride wide.
	Instances map[int32][][]byte

	MainRecords []schema.MainRecordEntry

	// Compress wraps the instance byte section in a single zstd frame
	// and sets header.FlagInstanceBytesCompressed, exercising the same
	// path a real compressed archive takes.
	Compress bool

	stringIndex map[string]int32
}

func New() *Builder {
	return &Builder{
		Instances:   make(map[int32][][]byte),
		stringIndex: make(map[string]int32),
	}
}

// AddString interns s in the string pool, returning its existing
// StringID if s was already added. schema.StructDef.Name,
// PropertyDef.Name, and EnumDef.Name are resolved through this same
// table when the archive is built, so callers normally never need to
// call it directly.
func (b *Builder) AddString(s string) int32 {
	if id, ok := b.stringIndex[s]; ok {
		return id
	}
	b.Strings = append(b.Strings, s)
	id := int32(len(b.Strings) - 1)
	b.stringIndex[s] = id
	return id
}

// AddStruct appends a struct table entry and returns its struct index.
func (b *Builder) AddStruct(s schema.StructDef) int32 {
	b.AddString(s.Name)
	b.Structs = append(b.Structs, s)
	return int32(len(b.Structs) - 1)
}

// AddProperty appends a property table entry and returns its property
// index.
func (b *Builder) AddProperty(p schema.PropertyDef) int32 {
	b.AddString(p.Name)
	b.Properties = append(b.Properties, p)
	return int32(len(b.Properties) - 1)
}

// AddEnum appends an enum table entry and returns its enum index.
func (b *Builder) AddEnum(e schema.EnumDef) int32 {
	b.AddString(e.Name)
	b.Enums = append(b.Enums, e)
	return int32(len(b.Enums) - 1)
}

// AddEnumOption appends an enum-option table entry naming optionName
// and returns its option index.
func (b *Builder) AddEnumOption(optionName string) int32 {
	id := b.AddString(optionName)
	b.EnumOptions = append(b.EnumOptions, schema.EnumOption{NameOffset: id})
	return int32(len(b.EnumOptions) - 1)
}

// AddInstance appends one instance's raw bytes to structIndex's region
// and returns its instance index within that struct.
func (b *Builder) AddInstance(structIndex int32, raw []byte) int32 {
	b.Instances[structIndex] = append(b.Instances[structIndex], raw)
	return int32(len(b.Instances[structIndex]) - 1)
}

// AddMainRecord appends a main-record index entry.
func (b *Builder) AddMainRecord(r schema.MainRecordEntry) {
	b.MainRecords = append(b.MainRecords, r)
}

// Build serialises the archive, following database.Open's section
// order exactly: header, string pool, struct table, property table,
// enum table, enum-option table, the eighteen value pools in
// declaration order, the instance byte section, then the main-record
// index.
func (b *Builder) Build() ([]byte, error) {
	var out []byte

	flags := b.Flags
	if b.Compress {
		flags |= database.FlagInstanceBytesCompressed
	}
	out = appendU32(out, database.MagicV1)
	out = appendU16(out, database.VersionV1)
	out = appendU16(out, flags)

	out = writeStringPool(out, b.Strings)
	out = writeStructTable(out, b.Structs, b.stringIndex)
	out = writePropertyTable(out, b.Properties, b.stringIndex)
	out = writeEnumTable(out, b.Enums, b.stringIndex)
	out = writeEnumOptionTable(out, b.EnumOptions)

	out = writeBoolPool(out, b.Pools.Bool)
	out = writeI8Pool(out, b.Pools.I8)
	out = writeU8Pool(out, b.Pools.U8)
	out = writeI16Pool(out, b.Pools.I16)
	out = writeU16Pool(out, b.Pools.U16)
	out = writeI32Pool(out, b.Pools.I32)
	out = writeU32Pool(out, b.Pools.U32)
	out = writeI64Pool(out, b.Pools.I64)
	out = writeU64Pool(out, b.Pools.U64)
	out = writeSinglePool(out, b.Pools.Single)
	out = writeDoublePool(out, b.Pools.Double)
	out = writeGUIDPool(out, b.Pools.GUID)
	out = writeI32Pool(out, b.Pools.Str)
	out = writeI32Pool(out, b.Pools.Locale)
	out = writeI32Pool(out, b.Pools.EnumValue)
	out = writeReferencePool(out, b.Pools.Reference)
	out = writePointerPool(out, b.Pools.StrongPtr)
	out = writePointerPool(out, b.Pools.WeakPtr)

	instanceSection := b.buildInstanceSection()
	if b.Compress {
		compressed, err := compressSection(instanceSection)
		if err != nil {
			return nil, err
		}
		out = append(out, compressed...)
	} else {
		out = append(out, instanceSection...)
	}

	out = writeMainRecordIndex(out, b.MainRecords)

	return out, nil
}

func (b *Builder) buildInstanceSection() []byte {
	var out []byte
	for i := range b.Structs {
		instances := b.Instances[int32(i)]
		out = VarUint(out, uint64(len(instances)))
		for _, raw := range instances {
			out = append(out, raw...)
		}
	}
	return out
}

func compressSection(raw []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	frame := enc.EncodeAll(raw, nil)
	if err := enc.Close(); err != nil {
		return nil, err
	}
	var out []byte
	out = VarUint(out, uint64(len(raw)))
	out = VarUint(out, uint64(len(frame)))
	out = append(out, frame...)
	return out, nil
}

func appendU16(dst []byte, v uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return append(dst, b[:]...)
}

func appendU32(dst []byte, v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return append(dst, b[:]...)
}

func appendU64(dst []byte, v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return append(dst, b[:]...)
}

func appendGUID(dst []byte, v [16]byte) []byte { return append(dst, v[:]...) }

func writeStringPool(dst []byte, strs []string) []byte {
	dst = VarUint(dst, uint64(len(strs)))
	for _, s := range strs {
		dst = VarUint(dst, uint64(len(s)))
		dst = append(dst, s...)
	}
	return dst
}

func writeStructTable(dst []byte, structs []schema.StructDef, names map[string]int32) []byte {
	dst = VarUint(dst, uint64(len(structs)))
	for _, s := range structs {
		dst = appendU32(dst, uint32(names[s.Name]))
		dst = appendU32(dst, uint32(s.ParentIndex))
		dst = appendU32(dst, uint32(s.FirstProperty))
		dst = appendU32(dst, uint32(s.PropertyCount))
	}
	return dst
}

func writePropertyTable(dst []byte, props []schema.PropertyDef, names map[string]int32) []byte {
	dst = VarUint(dst, uint64(len(props)))
	for _, p := range props {
		dst = appendU32(dst, uint32(names[p.Name]))
		dst = append(dst, byte(p.DataType), byte(p.Conversion))
		dst = appendU32(dst, uint32(p.TargetIndex))
	}
	return dst
}

func writeEnumTable(dst []byte, enums []schema.EnumDef, names map[string]int32) []byte {
	dst = VarUint(dst, uint64(len(enums)))
	for _, e := range enums {
		dst = appendU32(dst, uint32(names[e.Name]))
		dst = appendU32(dst, uint32(e.FirstOption))
		dst = appendU32(dst, uint32(e.OptionCount))
	}
	return dst
}

func writeEnumOptionTable(dst []byte, opts []schema.EnumOption) []byte {
	dst = VarUint(dst, uint64(len(opts)))
	for _, o := range opts {
		dst = appendU32(dst, uint32(o.NameOffset))
	}
	return dst
}

func writeMainRecordIndex(dst []byte, recs []schema.MainRecordEntry) []byte {
	dst = VarUint(dst, uint64(len(recs)))
	for _, r := range recs {
		dst = appendGUID(dst, r.ID)
		dst = appendU32(dst, uint32(r.FileNameOffset))
		dst = appendU32(dst, uint32(r.StructIndex))
		dst = appendU32(dst, uint32(r.InstanceIndex))
	}
	return dst
}

func writeBoolPool(dst []byte, v []bool) []byte {
	dst = VarUint(dst, uint64(len(v)))
	for _, x := range v {
		if x {
			dst = append(dst, 1)
		} else {
			dst = append(dst, 0)
		}
	}
	return dst
}

func writeI8Pool(dst []byte, v []int8) []byte {
	dst = VarUint(dst, uint64(len(v)))
	for _, x := range v {
		dst = append(dst, byte(x))
	}
	return dst
}

func writeU8Pool(dst []byte, v []uint8) []byte {
	dst = VarUint(dst, uint64(len(v)))
	return append(dst, v...)
}

func writeI16Pool(dst []byte, v []int16) []byte {
	dst = VarUint(dst, uint64(len(v)))
	for _, x := range v {
		dst = appendU16(dst, uint16(x))
	}
	return dst
}

func writeU16Pool(dst []byte, v []uint16) []byte {
	dst = VarUint(dst, uint64(len(v)))
	for _, x := range v {
		dst = appendU16(dst, x)
	}
	return dst
}

func writeI32Pool(dst []byte, v []int32) []byte {
	dst = VarUint(dst, uint64(len(v)))
	for _, x := range v {
		dst = appendU32(dst, uint32(x))
	}
	return dst
}

func writeU32Pool(dst []byte, v []uint32) []byte {
	dst = VarUint(dst, uint64(len(v)))
	for _, x := range v {
		dst = appendU32(dst, x)
	}
	return dst
}

func writeI64Pool(dst []byte, v []int64) []byte {
	dst = VarUint(dst, uint64(len(v)))
	for _, x := range v {
		dst = appendU64(dst, uint64(x))
	}
	return dst
}

func writeU64Pool(dst []byte, v []uint64) []byte {
	dst = VarUint(dst, uint64(len(v)))
	for _, x := range v {
		dst = appendU64(dst, x)
	}
	return dst
}

func writeSinglePool(dst []byte, v []float32) []byte {
	dst = VarUint(dst, uint64(len(v)))
	for _, x := range v {
		dst = appendU32(dst, math.Float32bits(x))
	}
	return dst
}

func writeDoublePool(dst []byte, v []float64) []byte {
	dst = VarUint(dst, uint64(len(v)))
	for _, x := range v {
		dst = appendU64(dst, math.Float64bits(x))
	}
	return dst
}

func writeGUIDPool(dst []byte, v [][16]byte) []byte {
	dst = VarUint(dst, uint64(len(v)))
	for _, x := range v {
		dst = appendGUID(dst, x)
	}
	return dst
}

func writeReferencePool(dst []byte, v []database.ReferenceEntry) []byte {
	dst = VarUint(dst, uint64(len(v)))
	for _, x := range v {
		dst = appendGUID(dst, x.GUID)
		dst = appendU32(dst, uint32(x.InstanceIndex))
	}
	return dst
}

func writePointerPool(dst []byte, v []database.PointerEntry) []byte {
	dst = VarUint(dst, uint64(len(v)))
	for _, x := range v {
		dst = appendU32(dst, uint32(x.StructIndex))
		dst = appendU32(dst, uint32(x.InstanceIndex))
	}
	return dst
}
