package database

import (
	"github.com/rawbytedev/datacore/pkg/cursor"
)

// MagicV1 identifies a DataCore archive. "DCOR" read little-endian.
const MagicV1 uint32 = 0x52434f44

// VersionV1 is the only archive layout version this package understands.
const VersionV1 uint16 = 1

// Flags bits in the archive header.
const (
	// FlagInstanceBytesCompressed indicates the per-struct instance byte
	// region (§4.2 section 11) is stored as a single zstd frame rather
	// than raw bytes. This is the one section worth compressing: it is
	// the bulk of a real archive's size.
	FlagInstanceBytesCompressed uint16 = 1 << 0
)

// Header is the fixed-size preamble every archive begins with, before
// the fixed section order that follows it. Each section after the
// header is self-describing: it begins
// with its own element count (a varint), so the header itself carries
// only the archive identity and the one compression flag, not a central
// offset/size table.
type Header struct {
	Magic   uint32
	Version uint16
	Flags   uint16
}

func readHeader(c *cursor.Cursor) (Header, error) {
	var h Header
	var err error
	h.Magic, err = c.ReadU32()
	if err != nil {
		return h, err
	}
	h.Version, err = c.ReadU16()
	if err != nil {
		return h, err
	}
	h.Flags, err = c.ReadU16()
	if err != nil {
		return h, err
	}
	if h.Magic != MagicV1 {
		return h, ErrBadMagic
	}
	return h, nil
}
