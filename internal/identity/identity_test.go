package identity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFor_Deterministic(t *testing.T) {
	a := For("download", map[string]any{"url": "http://x", "depth": 2})
	b := For("download", map[string]any{"depth": 2, "url": "http://x"})
	assert.Equal(t, a, b, "identity must not depend on insertion order")

	c := For("download", map[string]any{"url": "http://y", "depth": 2})
	assert.NotEqual(t, a, c, "different attributes must change identity")

	d := For("scrape", map[string]any{"url": "http://x", "depth": 2})
	assert.NotEqual(t, a, d, "different kind must change identity")
}

func TestFor_NestedValues(t *testing.T) {
	a := For("t", map[string]any{
		"meta": map[string]any{"a": 1, "b": []any{"x", "y"}},
	})
	b := For("t", map[string]any{
		"meta": map[string]any{"b": []any{"x", "y"}, "a": 1},
	})
	assert.Equal(t, a, b)

	c := For("t", map[string]any{
		"meta": map[string]any{"a": 1, "b": []any{"y", "x"}},
	})
	assert.NotEqual(t, a, c, "sequence order is significant")
}

func TestFor_StableAcrossJSONRoundtrip(t *testing.T) {
	attrs := map[string]any{"url": "http://x", "depth": 2, "flag": true}
	before := For("download", attrs)

	raw, err := json.Marshal(attrs)
	require.NoError(t, err)
	decoded := make(map[string]any)
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// depth decoded back as float64(2); identity must not notice.
	assert.Equal(t, before, For("download", decoded))
}

func TestFor_EmptyAttrs(t *testing.T) {
	assert.Equal(t, For("t", nil), For("t", map[string]any{}))
}
