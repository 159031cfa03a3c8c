// Package container implements the CRC-checked outer framing that
// wraps a DataCore archive on disk: a two-byte magic, a length-prefixed
// body, and a trailing CRC32 over everything but the magic. The core
// decoder in pkg/database never sees this layer; it only operates on
// the unwrapped archive bytes Unwrap returns.
package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
)

// magic identifies a framed DataCore payload, distinct from the
// archive's own MagicV1 which starts only after unwrapping.
var magic = [2]byte{'D', 'F'}

// ErrBadMagic is returned when a frame does not start with the
// expected preamble.
var ErrBadMagic = errors.New("container: bad frame magic")

// ErrLengthMismatch is returned when a frame's declared length does
// not match the bytes actually present.
var ErrLengthMismatch = errors.New("container: length mismatch")

// ErrChecksumMismatch is returned when a frame's trailing CRC32 does
// not match its body.
var ErrChecksumMismatch = errors.New("container: checksum mismatch")

// Wrap frames payload as a single Data Frame: magic, a little-endian
// uint32 total length (including the length field and CRC), the
// payload itself, then a CRC32 over everything after the magic.
func Wrap(payload []byte) []byte {
	var buf bytes.Buffer
	buf.Write(magic[:])
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	buf.Write(payload)

	out := buf.Bytes()
	total := uint32(len(out) - len(magic) + 4)
	binary.LittleEndian.PutUint32(out[len(magic):], total)

	crc := crc32.ChecksumIEEE(out[len(magic):])
	out = append(out, 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(out[len(out)-4:], crc)
	return out
}

// Unwrap validates a Data Frame's magic, length, and checksum, and
// returns its payload.
func Unwrap(frame []byte) ([]byte, error) {
	if len(frame) < len(magic)+4+4 {
		return nil, ErrLengthMismatch
	}
	if !bytes.Equal(frame[:len(magic)], magic[:]) {
		return nil, ErrBadMagic
	}
	body := frame[len(magic):]
	length := binary.LittleEndian.Uint32(body[:4])
	if int(length) != len(body) {
		return nil, ErrLengthMismatch
	}
	payloadEnd := len(frame) - 4
	payload := frame[len(magic)+4 : payloadEnd]

	want := binary.LittleEndian.Uint32(frame[payloadEnd:])
	if crc32.ChecksumIEEE(frame[len(magic):payloadEnd]) != want {
		return nil, ErrChecksumMismatch
	}
	return payload, nil
}
