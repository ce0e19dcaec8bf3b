package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("CreateBooking: court=%d", 1)
	log.Warn("CreateBooking: slot=%d taken", 7)

	out := buf.String()
	assert.NotContains(t, out, "court=1")
	assert.Contains(t, out, "slot=7 taken")
	assert.Contains(t, out, "level=WARN")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}
