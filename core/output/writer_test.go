package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "physics_Dhaka_Board", Sanitize("physics Dhaka-Board"))
	assert.Equal(t, "ict_ঢাকা_বোর্ড", Sanitize("ict ঢাকা বোর্ড"))
	assert.Equal(t, "output", Sanitize(""))
}

func TestWriter_WriteOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := New(dir)
	require.NoError(t, err)

	p, err := w.WriteOnly("physics Unknown Source", []byte("[]"), ".json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "physics_Unknown_Source.json"), p)

	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWriter_WriteAll(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	tests := []struct {
		source string
		want   string
	}{
		{"exports/dhaka board.json", "dhaka_board.md"},
		{"/abs/path/rajshahi.html", "rajshahi.md"},
		{"https://example.com/qb/cumilla.json", "cumilla.md"},
		{"https://example.com/", "example_com.md"},
	}
	for _, tt := range tests {
		p, err := w.WriteAll(tt.source, []byte("x"), ".md")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, tt.want), p, tt.source)
	}
}
