package template

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshprobe/freshprobe/errors"
)

func newVarResolver(t *testing.T) *VarResolver {
	t.Helper()
	return NewVarResolver(NewSession(), NewPoolSet())
}

func TestReferentialConsistency(t *testing.T) {
	for trial := 0; trial < 20; trial++ {
		r := newVarResolver(t)
		out, err := r.Resolve("{{entity1}}|{{entity2}}|{{entity1}}|{{entity1}}")
		require.NoError(t, err)
		assert.NotContains(t, out, "{{")

		parts := strings.Split(out, "|")
		require.Len(t, parts, 4)
		assert.Equal(t, parts[0], parts[2], "entity1 occurrences must agree")
		assert.Equal(t, parts[0], parts[3], "entity1 occurrences must agree")

		v1, ok := r.session.Lookup("entity1")
		require.True(t, ok)
		assert.Equal(t, v1, parts[0])
	}
}

func TestCrossKeyIndependence(t *testing.T) {
	unique1 := make(map[string]bool)
	unique2 := make(map[string]bool)
	identical := 0

	for trial := 0; trial < 100; trial++ {
		r := newVarResolver(t)
		_, err := r.Resolve("{{entity1}} and {{entity2}}")
		require.NoError(t, err)

		v1, _ := r.session.Lookup("entity1")
		v2, _ := r.session.Lookup("entity2")
		unique1[v1] = true
		unique2[v2] = true
		if v1 == v2 {
			identical++
		}
	}

	// Default pool has 15 entries; 100 independent draws should see most
	assert.Greater(t, len(unique1), 6, "entity1 should vary across sessions")
	assert.Greater(t, len(unique2), 6, "entity2 should vary across sessions")
	assert.Less(t, identical, 30, "entity1 and entity2 should not be correlated")
}

func TestNamedPoolSelection(t *testing.T) {
	colors := map[string]bool{}
	for _, c := range builtinPools["colors"] {
		colors[c] = true
	}

	for trial := 0; trial < 50; trial++ {
		r := newVarResolver(t)
		out, err := r.Resolve("{{entity1:colors}}")
		require.NoError(t, err)
		assert.True(t, colors[out], "%q should come from the colors pool", out)
	}
}

func TestSemanticKindSelection(t *testing.T) {
	r := newVarResolver(t)
	out, err := r.Resolve("{{semantic1:city}} in {{semantic2:country}}")
	require.NoError(t, err)
	assert.NotContains(t, out, "{{")

	city, ok := r.session.Lookup("semantic1:city")
	require.True(t, ok)
	assert.Contains(t, semanticKinds["city"], city)
}

func TestUnknownSemanticKind(t *testing.T) {
	r := newVarResolver(t)
	_, err := r.Resolve("{{semantic1:flavor}}")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrArgument))
	assert.Contains(t, err.Error(), "semantic1:flavor")
}

func TestUnknownEntityPool(t *testing.T) {
	r := newVarResolver(t)
	_, err := r.Resolve("{{entity1:vegetables}}")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrArgument))
}

func TestNumberRangeValidity(t *testing.T) {
	seen := make(map[int]bool)

	for trial := 0; trial < 100; trial++ {
		r := newVarResolver(t)
		out, err := r.Resolve("{{number1:10:20}}")
		require.NoError(t, err)

		n, err := strconv.Atoi(out)
		require.NoError(t, err, "integer format should yield a plain integer")
		assert.GreaterOrEqual(t, n, 10)
		assert.LessOrEqual(t, n, 20)
		seen[n] = true
	}

	assert.Greater(t, len(seen), 1, "100 draws in [10,20] should not collapse to one value")
}

func TestNumberFormats(t *testing.T) {
	tests := []struct {
		name     string
		template string
		check    func(t *testing.T, out string)
	}{
		{
			name:     "decimal",
			template: "{{number1:1:2:decimal}}",
			check: func(t *testing.T, out string) {
				f, err := strconv.ParseFloat(out, 64)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, f, 1.0)
				assert.LessOrEqual(t, f, 2.0)
				assert.Contains(t, out, ".")
			},
		},
		{
			name:     "currency",
			template: "{{number1:10:50:currency}}",
			check: func(t *testing.T, out string) {
				require.True(t, strings.HasPrefix(out, "$"), "got %q", out)
				f, err := strconv.ParseFloat(out[1:], 64)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, f, 10.0)
				assert.LessOrEqual(t, f, 50.0)
			},
		},
		{
			name:     "percentage",
			template: "{{number1:0:100:percentage}}",
			check: func(t *testing.T, out string) {
				require.True(t, strings.HasSuffix(out, "%"), "got %q", out)
				f, err := strconv.ParseFloat(strings.TrimSuffix(out, "%"), 64)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, f, 0.0)
				assert.LessOrEqual(t, f, 100.0)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := newVarResolver(t).Resolve(tt.template)
			require.NoError(t, err)
			tt.check(t, out)
		})
	}
}

func TestNumberArgumentErrors(t *testing.T) {
	tests := []string{
		"{{number1:abc:20}}",
		"{{number1:10:xyz}}",
		"{{number1:50:10}}",
		"{{number1:1:5:roman}}",
	}

	for _, tpl := range tests {
		t.Run(tpl, func(t *testing.T) {
			_, err := newVarResolver(t).Resolve(tpl)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrArgument), "got %v", err)
		})
	}
}

func TestNumberKeyIncludesRange(t *testing.T) {
	r := newVarResolver(t)
	out, err := r.Resolve("{{number1:5:5}} {{number1:5:5}} {{number2:7:7}}")
	require.NoError(t, err)
	assert.Equal(t, "5 5 7", out)

	_, ok := r.session.Lookup("number1:5:5")
	assert.True(t, ok)
}

func TestResolveCollectGathersErrors(t *testing.T) {
	r := newVarResolver(t)
	out, errs := r.ResolveCollect("{{entity1:vegetables}} and {{entity2:colors}}")

	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], errors.ErrArgument))
	assert.NotContains(t, out, "{{entity2:colors}}", "valid variable still resolves")
	assert.NotContains(t, out, "{{entity1:vegetables}}", "failed variable is removed")
}

func TestSeededResolutionIsReproducible(t *testing.T) {
	tpl := "{{entity1}} {{entity2:gems}} {{semantic1:person}} {{number1:1:1000}}"

	sess := NewSeededSession(99)
	r := NewVarResolver(sess, NewPoolSet())
	first, err := r.Resolve(tpl)
	require.NoError(t, err)

	sess.Clear()
	second, err := r.Resolve(tpl)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
