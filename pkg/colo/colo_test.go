package colo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinLookup(t *testing.T) {
	table := Builtin()

	info, ok := table.Lookup("HKG")
	require.True(t, ok)
	assert.Equal(t, "香港", info.Name)
	assert.Equal(t, "亚太", info.Region)

	_, ok = table.Lookup("ZZZ")
	assert.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	table := Builtin()
	assert.Equal(t, "香港", table.DisplayName("HKG"))
	assert.Equal(t, "ZZZ", table.DisplayName("ZZZ"))
	assert.Equal(t, UnknownRegion, table.DisplayName(""))
}

func TestDescribe(t *testing.T) {
	table := Builtin()
	assert.Equal(t, "新加坡 (新加坡)", table.Describe("SIN"))
	assert.Equal(t, "ZZZ", table.Describe("ZZZ"))
}

func TestMergeFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airport_codes.json")
	overlay := `{"HKG": {"name": "Hong Kong", "region": "APAC", "country": "HK"},
		"ZZZ": {"name": "Testville", "region": "Nowhere", "country": "XX"}}`
	require.NoError(t, os.WriteFile(path, []byte(overlay), 0644))

	table := Builtin()
	require.NoError(t, table.MergeFile(path))

	assert.Equal(t, "Hong Kong", table.DisplayName("HKG"))
	assert.Equal(t, "Testville", table.DisplayName("ZZZ"))
	// Untouched entries survive the overlay.
	assert.Equal(t, "新加坡", table.DisplayName("SIN"))
}

func TestMergeFileMissingIsNoop(t *testing.T) {
	table := Builtin()
	require.NoError(t, table.MergeFile(filepath.Join(t.TempDir(), "absent.json")))
	assert.Equal(t, "香港", table.DisplayName("HKG"))
}

func TestSaveAndReloadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.json")
	require.NoError(t, Builtin().SaveFile(path))

	fresh := &Table{codes: map[string]Info{}}
	require.NoError(t, fresh.MergeFile(path))
	assert.Equal(t, "香港", fresh.DisplayName("HKG"))
	assert.Equal(t, len(Builtin().Codes()), len(fresh.Codes()))
}

func TestCodesSorted(t *testing.T) {
	codes := Builtin().Codes()
	require.NotEmpty(t, codes)
	for i := 1; i < len(codes); i++ {
		assert.Less(t, codes[i-1], codes[i])
	}
}
