package container_test

import (
	"testing"

	"github.com/rawbytedev/datacore/internal/container"
	"github.com/stretchr/testify/require"
)

func TestWrapUnwrap_RoundTrip(t *testing.T) {
	payload := []byte("a small archive body")
	frame := container.Wrap(payload)

	got, err := container.Unwrap(frame)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestUnwrap_EmptyPayload(t *testing.T) {
	frame := container.Wrap(nil)
	got, err := container.Unwrap(frame)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestUnwrap_BadMagicIsRejected(t *testing.T) {
	frame := container.Wrap([]byte("hello"))
	frame[0] = 'X'
	_, err := container.Unwrap(frame)
	require.ErrorIs(t, err, container.ErrBadMagic)
}

func TestUnwrap_TruncatedFrameIsRejected(t *testing.T) {
	frame := container.Wrap([]byte("hello"))
	_, err := container.Unwrap(frame[:len(frame)-2])
	require.Error(t, err)
}

func TestUnwrap_CorruptedByteFailsChecksum(t *testing.T) {
	frame := container.Wrap([]byte("hello world"))
	frame[len(frame)-6] ^= 0xFF
	_, err := container.Unwrap(frame)
	require.ErrorIs(t, err, container.ErrChecksumMismatch)
}
