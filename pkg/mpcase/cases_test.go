package mpcase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powerflow/pkg/mpcase"
)

func TestBundled(t *testing.T) {
	t.Run("case9", func(t *testing.T) {
		c, ok := mpcase.Bundled("case9")
		require.True(t, ok)
		assert.Equal(t, 100.0, c["baseMVA"])
		assert.Len(t, c["bus"], 9)
		assert.Len(t, c["gen"], 3)
		assert.Len(t, c["branch"], 9)
	})

	t.Run("aliases", func(t *testing.T) {
		for _, alias := range []string{"IEEE14", " case14 ", "14", "ieee-14"} {
			c, ok := mpcase.Bundled(alias)
			require.True(t, ok, "alias %q", alias)
			assert.Len(t, c["bus"], 14)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		_, ok := mpcase.Bundled("case300")
		assert.False(t, ok)
	})

	t.Run("lookups are isolated copies", func(t *testing.T) {
		a, _ := mpcase.Bundled("case9")
		a["bus"].([]any)[0].([]float64)[2] = 999

		b, _ := mpcase.Bundled("case9")
		assert.Equal(t, 0.0, b["bus"].([]any)[0].([]float64)[2])
	})
}

func TestExpandCase(t *testing.T) {
	t.Run("passthrough without alias", func(t *testing.T) {
		m := map[string]any{"baseMVA": 100.0, "bus": []any{}}
		out, err := mpcase.ExpandCase(m)
		require.NoError(t, err)
		assert.Equal(t, m, out)
	})

	t.Run("case_id expansion", func(t *testing.T) {
		out, err := mpcase.ExpandCase(map[string]any{"case_id": "case9"})
		require.NoError(t, err)
		assert.Len(t, out["bus"], 9)
	})

	t.Run("name key expansion", func(t *testing.T) {
		out, err := mpcase.ExpandCase(map[string]any{"name": "ieee14"})
		require.NoError(t, err)
		assert.Len(t, out["bus"], 14)
	})

	t.Run("unknown alias", func(t *testing.T) {
		_, err := mpcase.ExpandCase(map[string]any{"case_id": "case118"})
		require.Error(t, err)
		assert.True(t, mpcase.IsValidation(err))
		assert.Contains(t, err.Error(), "case118")
	})
}
