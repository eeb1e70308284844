package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchedFilters(t *testing.T) {
	cases := map[string]bool{
		"prefabs/lara.yaml":         true,
		"prefabs/viewer.YML":        true,
		"prefabs/scripts/bat.tengo": true,
		"prefabs/scripts/bat.lua":   false,
		"prefabs/notes.txt":         false,
		"prefabs/lara.yaml~":        false,
	}
	for path, want := range cases {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, want, Watched(path))
		})
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	target := filepath.Join(dir, "wolf.tengo")
	require.NoError(t, os.WriteFile(target, []byte("decide := func(e, m) {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Pending()...)
		return len(got) > 0
	}, 2*time.Second, 10*time.Millisecond)
	for _, name := range got {
		assert.Equal(t, target, name)
	}
}

func TestCleanScriptPath(t *testing.T) {
	assert.Equal(t, "scripts/bat.tengo", CleanScriptPath("bat.tengo"))
	assert.Equal(t, "scripts/bat.tengo", CleanScriptPath("prefabs/scripts/bat.tengo"))
	assert.Equal(t, "scripts/bat.tengo", CleanScriptPath("/home/dev/raidercore/prefabs/scripts/bat.tengo"))
	assert.Equal(t, "", CleanScriptPath(""))
}

func TestLoadEmbeddedSpecs(t *testing.T) {
	lara, err := LoadEntityBuildSpec("lara.yaml")
	require.NoError(t, err)
	actor, err := DecodeComponentSpec[ActorComponentSpec](lara.Components["actor"])
	require.NoError(t, err)
	assert.Equal(t, 100, actor.Radius)

	creatures, err := LoadCreaturesSpec()
	require.NoError(t, err)
	bat, ok := creatures.Find("bat")
	require.True(t, ok)
	cr, err := DecodeComponentSpec[CreatureComponentSpec](bat.Components["creature"])
	require.NoError(t, err)
	assert.Equal(t, 16, cr.Traversal.Fly)
	assert.Equal(t, "bat.tengo", cr.Script)

	table, err := LoadAnimations("animations/lara.yaml")
	require.NoError(t, err)
	assert.Greater(t, table.Len(), 40)

	viewer, err := LoadViewerSpec()
	require.NoError(t, err)
	assert.NotNil(t, viewer.Colors.Player.Color)

	src, err := LoadScript("bat.tengo")
	require.NoError(t, err)
	assert.Contains(t, string(src), "decide")
}
