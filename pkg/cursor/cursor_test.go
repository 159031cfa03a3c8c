package cursor

import (
	"encoding/binary"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
)

func TestReadPrimitivesLittleEndian(t *testing.T) {
	buf := make([]byte, 0, 64)
	buf = append(buf, 1)                 // bool
	buf = append(buf, 0xFF)               // u8 / i8 == -1
	u16 := make([]byte, 2)
	binary.LittleEndian.PutUint16(u16, 0xFFFE)
	buf = append(buf, u16...)
	u32 := make([]byte, 4)
	binary.LittleEndian.PutUint32(u32, 0xFFFFFFFE)
	buf = append(buf, u32...)
	guid := [16]byte{0: 1, 15: 2}
	buf = append(buf, guid[:]...)

	c := New(buf)
	b, err := c.ReadBool()
	require.NoError(t, err)
	require.True(t, b)

	u8, err := c.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(0xFF), u8)

	got16, err := c.ReadU16()
	require.NoError(t, err)
	require.Equal(t, uint16(0xFFFE), got16)
	// max-width unsigned reads must not sign-extend
	require.Equal(t, uint16(0xFFFE), got16)

	got32, err := c.ReadU32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xFFFFFFFE), got32)

	gotGUID, err := c.ReadGUID()
	require.NoError(t, err)
	require.Equal(t, guid, gotGUID)

	require.Equal(t, 0, c.Remaining())
}

func TestReadPastEndReturnsErrEndOfBuffer(t *testing.T) {
	c := New([]byte{1, 2, 3})
	_, err := c.ReadU32()
	require.ErrorIs(t, err, ErrEndOfBuffer)
}

func TestSkipAndSeek(t *testing.T) {
	c := New([]byte{1, 2, 3, 4, 5})
	require.NoError(t, c.Skip(2))
	require.Equal(t, 2, c.Pos())
	require.NoError(t, c.SeekTo(0))
	v, err := c.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(1), v)
}

func TestVarUintRoundTrip(t *testing.T) {
	f := func(x uint64) bool {
		buf := WriteVarUint(nil, x)
		c := New(buf)
		got, err := c.ReadVarUint()
		return err == nil && got == x
	}
	require.NoError(t, quick.Check(f, nil))
}

func TestSliceIsZeroCopy(t *testing.T) {
	buf := []byte{1, 2, 3, 4}
	c := New(buf)
	s, err := c.Slice(4)
	require.NoError(t, err)
	require.Equal(t, &buf[0], &s[0])
}
