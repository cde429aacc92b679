package universe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mcdev12/rosterbot/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizesAndDedupes(t *testing.T) {
	u, err := New([]string{" zim ", "Gir", "", "ZIM", "dib"})
	require.NoError(t, err)

	assert.Equal(t, 3, u.Len())
	assert.Equal(t, []models.PlayerID{"ZIM", "GIR", "DIB"}, u.Players())
	assert.True(t, u.Contains("GIR"))
	assert.False(t, u.Contains("gir"), "lookups expect normalized ids")
	assert.Equal(t, 2, u.Position("DIB"))
	assert.Equal(t, -1, u.Position("TAK"))
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New([]string{"", "   "})
	require.Error(t, err)
}

func TestPlayersReturnsCopy(t *testing.T) {
	u, err := New([]string{"ZIM", "GIR"})
	require.NoError(t, err)

	players := u.Players()
	players[0] = "TAK"
	assert.Equal(t, models.PlayerID("ZIM"), u.Players()[0])
}

func TestWithout(t *testing.T) {
	u, err := New([]string{"ZIM", "GIR", "DIB", "GAZ"})
	require.NoError(t, err)

	free := u.Without(map[models.PlayerID]models.OwnerID{"GIR": "1", "GAZ": "2"})
	assert.Equal(t, []models.PlayerID{"ZIM", "DIB"}, free)
}

func TestParseLines(t *testing.T) {
	u, err := ParseLines([]byte("# invaders\nzim\n\ngir\r\n  dib  \n"))
	require.NoError(t, err)
	assert.Equal(t, []models.PlayerID{"ZIM", "GIR", "DIB"}, u.Players())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "characters.txt")
	require.NoError(t, os.WriteFile(txt, []byte("Zim\nGir\n"), 0o600))
	u, err := LoadFile(txt)
	require.NoError(t, err)
	assert.Equal(t, 2, u.Len())

	yml := filepath.Join(dir, "players.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("players:\n  - zim\n  - Professor Membrane\n"), 0o600))
	u, err = LoadFile(yml)
	require.NoError(t, err)
	assert.Equal(t, []models.PlayerID{"ZIM", "PROFESSOR MEMBRANE"}, u.Players())

	_, err = LoadFile(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
}
