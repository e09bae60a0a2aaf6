package template

import (
	"math/rand"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/freshprobe/freshprobe/errors"
)

// DefaultPoolName is the pool used by legacy bare {{entityN}} placeholders.
const DefaultPoolName = "default"

// builtinPools are always available; a pool file adds to or overrides them.
var builtinPools = map[string][]string{
	DefaultPoolName: {
		"falcon", "meadow", "lantern", "harbor", "thicket",
		"quartz", "bramble", "vesper", "orchard", "drift",
		"cairn", "sable", "willow", "garnet", "fathom",
	},
	"colors": {
		"red", "blue", "green", "yellow", "purple",
		"orange", "teal", "maroon", "indigo", "crimson",
	},
	"metals": {
		"iron", "copper", "silver", "gold", "titanium",
		"nickel", "zinc", "cobalt", "platinum", "tungsten",
	},
	"gems": {
		"ruby", "sapphire", "emerald", "topaz", "opal",
		"amethyst", "garnet", "onyx", "jade", "peridot",
	},
}

// PoolSet holds named entity pools for {{entityN[:pool]}} resolution.
type PoolSet struct {
	pools map[string][]string
}

// NewPoolSet returns a pool set containing only the built-in pools.
func NewPoolSet() *PoolSet {
	ps := &PoolSet{pools: make(map[string][]string, len(builtinPools))}
	for name, entries := range builtinPools {
		ps.pools[name] = append([]string(nil), entries...)
	}
	return ps
}

// LoadPoolFile merges named pools from a YAML file (pool name -> list of
// strings) over the built-ins. A file entry with the same name replaces the
// built-in pool entirely.
func LoadPoolFile(path string) (*PoolSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewSourceNotFound("pool file does not exist: %s", path)
		}
		return nil, errors.Wrapf(err, "failed to read pool file %s", path)
	}

	var loaded map[string][]string
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, errors.Wrapf(err, "failed to parse pool file %s", path)
	}

	ps := NewPoolSet()
	for name, entries := range loaded {
		if len(entries) == 0 {
			return nil, errors.NewArgument("pool %q in %s is empty", name, path)
		}
		ps.pools[name] = entries
	}
	return ps, nil
}

// Pick draws a uniform-random entry from the named pool.
func (ps *PoolSet) Pick(name string, rng *rand.Rand) (string, error) {
	entries, ok := ps.pools[name]
	if !ok {
		return "", errors.NewArgument("unknown entity pool %q (have: %v)", name, ps.Names())
	}
	return entries[rng.Intn(len(entries))], nil
}

// Names returns the sorted pool names.
func (ps *PoolSet) Names() []string {
	names := make([]string, 0, len(ps.pools))
	for name := range ps.pools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
