package database

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/rawbytedev/datacore/pkg/cursor"
	"github.com/rawbytedev/datacore/pkg/schema"
)

// instanceLayout is the per-struct base offset and element count into
// the single flat Database.instanceBytes buffer.
type instanceLayout struct {
	base  []int32
	count []int32
}

// readInstanceSection parses, for every struct index in declaration
// order, a varint instance count followed by that many instances' raw
// bytes, stride(structIndex) wide each. When
// compressed is true the whole section is instead a single zstd frame
// (varint uncompressed size, varint compressed size, compressed bytes)
// that is inflated once before being walked the same way.
func readInstanceSection(c *cursor.Cursor, structs []schema.StructDef, strides []int32, compressed bool) ([]byte, instanceLayout, error) {
	if compressed {
		return readCompressedInstanceSection(c, structs, strides)
	}
	return readInstanceSectionFrom(c, structs, strides)
}

func readInstanceSectionFrom(c *cursor.Cursor, structs []schema.StructDef, strides []int32) ([]byte, instanceLayout, error) {
	layout := instanceLayout{
		base:  make([]int32, len(structs)),
		count: make([]int32, len(structs)),
	}
	var buf []byte
	for i := range structs {
		n, err := c.ReadVarUint()
		if err != nil {
			return nil, layout, fmt.Errorf("instance section: struct %d: %w", i, err)
		}
		byteLen := int(n) * int(strides[i])
		b, err := c.Slice(byteLen)
		if err != nil {
			return nil, layout, fmt.Errorf("instance section: struct %d: %w", i, err)
		}
		layout.base[i] = int32(len(buf))
		layout.count[i] = int32(n)
		buf = append(buf, b...)
	}
	return buf, layout, nil
}

func readCompressedInstanceSection(c *cursor.Cursor, structs []schema.StructDef, strides []int32) ([]byte, instanceLayout, error) {
	uncompressedSize, err := c.ReadVarUint()
	if err != nil {
		return nil, instanceLayout{}, fmt.Errorf("instance section: %w", err)
	}
	compressedSize, err := c.ReadVarUint()
	if err != nil {
		return nil, instanceLayout{}, fmt.Errorf("instance section: %w", err)
	}
	frame, err := c.Slice(int(compressedSize))
	if err != nil {
		return nil, instanceLayout{}, fmt.Errorf("instance section: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, instanceLayout{}, fmt.Errorf("instance section: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(frame, make([]byte, 0, uncompressedSize))
	if err != nil {
		return nil, instanceLayout{}, fmt.Errorf("instance section: decompress: %w", err)
	}
	inner := cursor.New(raw)
	return readInstanceSectionFrom(&inner, structs, strides)
}
