package logutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_FileAppends(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "tend.log")

	for _, msg := range []string{"first", "second"} {
		l, closer, err := New("info", file)
		require.NoError(t, err)
		l.Info().Msg(msg)
		closer()
	}

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "second", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_Level(t *testing.T) {
	l, closer, err := New("warn", filepath.Join(t.TempDir(), "x.log"))
	require.NoError(t, err)
	defer closer()

	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, closer, err := New("loud", "")
	assert.Error(t, err)
	closer()
}
