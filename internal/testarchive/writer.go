// Package testarchive assembles synthetic DataCore archive byte
// layouts in-test, building records by hand at the byte level before
// decoding them. It is not part of the module's public API.
package testarchive

import (
	"encoding/binary"
	"math"

	"github.com/rawbytedev/datacore/pkg/cursor"
)

// InstanceWriter builds one instance's raw byte region field by field,
// mirroring cursor.Cursor's reads so a test can write exactly the
// bytes pkg/database and pkg/typed are expected to parse back.
type InstanceWriter struct {
	buf []byte
}

func NewInstanceWriter() *InstanceWriter { return &InstanceWriter{} }

func (w *InstanceWriter) Bytes() []byte { return w.buf }

func (w *InstanceWriter) Bool(v bool) *InstanceWriter {
	if v {
		w.buf = append(w.buf, 1)
	} else {
		w.buf = append(w.buf, 0)
	}
	return w
}

func (w *InstanceWriter) U8(v uint8) *InstanceWriter  { w.buf = append(w.buf, v); return w }
func (w *InstanceWriter) I8(v int8) *InstanceWriter    { return w.U8(uint8(v)) }

func (w *InstanceWriter) U16(v uint16) *InstanceWriter {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
	return w
}
func (w *InstanceWriter) I16(v int16) *InstanceWriter { return w.U16(uint16(v)) }

func (w *InstanceWriter) U32(v uint32) *InstanceWriter {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
	return w
}
func (w *InstanceWriter) I32(v int32) *InstanceWriter { return w.U32(uint32(v)) }

func (w *InstanceWriter) U64(v uint64) *InstanceWriter {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
	return w
}
func (w *InstanceWriter) I64(v int64) *InstanceWriter { return w.U64(uint64(v)) }

func (w *InstanceWriter) F32(v float32) *InstanceWriter { return w.U32(math.Float32bits(v)) }
func (w *InstanceWriter) F64(v float64) *InstanceWriter { return w.U64(math.Float64bits(v)) }

func (w *InstanceWriter) GUID(v [16]byte) *InstanceWriter {
	w.buf = append(w.buf, v[:]...)
	return w
}

// IndexPair writes a (structIndex, instanceIndex) pair, used for
// scalar strong/weak pointer properties and pointer pool entries.
func (w *InstanceWriter) IndexPair(structIndex, instanceIndex int32) *InstanceWriter {
	return w.I32(structIndex).I32(instanceIndex)
}

// CountFirst writes a (count, firstIndex) pair, used inline for array
// properties of every data type.
func (w *InstanceWriter) CountFirst(count, firstIndex int32) *InstanceWriter {
	return w.I32(count).I32(firstIndex)
}

// Reference writes a scalar reference property's inline (guid,
// instanceIndex) pair.
func (w *InstanceWriter) Reference(guid [16]byte, instanceIndex int32) *InstanceWriter {
	return w.GUID(guid).I32(instanceIndex)
}

// Raw appends a fully precomposed instance (e.g. a nested class read
// inline) to the buffer.
func (w *InstanceWriter) Raw(b []byte) *InstanceWriter {
	w.buf = append(w.buf, b...)
	return w
}

// VarUint appends a base-128 varint, used by Builder for every section
// count and length prefix.
func VarUint(dst []byte, v uint64) []byte { return cursor.WriteVarUint(dst, v) }
