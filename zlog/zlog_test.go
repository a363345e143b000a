package zlog

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesJSONLinesAtConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf), WithLevel(zerolog.WarnLevel))

	l.Debugf("iteration %d", 1) // below threshold, must be dropped
	l.Infof("iteration %d", 2)  // below threshold, must be dropped
	l.Warnf("cost stalled at %d", 42)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	require.Equal(t, "cost stalled at 42", entry["message"])
	require.Equal(t, "warn", entry["level"])
}

func TestLoggerDefaultsToInfoLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(WithOutput(&buf))

	l.Debugf("dropped")
	l.Infof("kept")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)
}
