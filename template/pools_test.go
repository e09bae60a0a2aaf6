package template

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshprobe/freshprobe/errors"
)

func TestPickFromBuiltinPools(t *testing.T) {
	ps := NewPoolSet()
	rng := rand.New(rand.NewSource(1))

	for _, pool := range []string{DefaultPoolName, "colors", "metals", "gems"} {
		v, err := ps.Pick(pool, rng)
		require.NoError(t, err, "pool %s", pool)
		assert.NotEmpty(t, v)
	}
}

func TestPickUnknownPool(t *testing.T) {
	ps := NewPoolSet()
	_, err := ps.Pick("vegetables", rand.New(rand.NewSource(1)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrArgument))
}

func TestLoadPoolFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.yaml")
	content := `
colors:
  - cerulean
  - ochre
animals:
  - heron
  - lynx
  - otter
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	ps, err := LoadPoolFile(path)
	require.NoError(t, err)

	// File pool overrides the built-in of the same name
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		v, err := ps.Pick("colors", rng)
		require.NoError(t, err)
		assert.Contains(t, []string{"cerulean", "ochre"}, v)
	}

	// New pools are added, built-ins survive
	_, err = ps.Pick("animals", rng)
	assert.NoError(t, err)
	_, err = ps.Pick("metals", rng)
	assert.NoError(t, err)
}

func TestLoadPoolFileMissing(t *testing.T) {
	_, err := LoadPoolFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSourceNotFound))
}

func TestLoadPoolFileEmptyPool(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pools.yaml")
	require.NoError(t, os.WriteFile(path, []byte("empty: []\n"), 0644))

	_, err := LoadPoolFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrArgument))
}

func TestPoolNamesSorted(t *testing.T) {
	names := NewPoolSet().Names()
	assert.Equal(t, []string{"colors", "default", "gems", "metals"}, names)
}
