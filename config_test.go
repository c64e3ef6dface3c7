package spiderkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConf_TypedGetters(t *testing.T) {
	c := Conf{
		"name":    "crawler",
		"depth":   3,
		"ratio":   2.0,
		"follow":  true,
		"hosts":   []any{"a.example", "b.example"},
		"clients": []string{"x"},
	}

	assert.Equal(t, "crawler", c.String("name", "def"))
	assert.Equal(t, "def", c.String("missing", "def"))
	assert.Equal(t, "def", c.String("depth", "def"), "wrong type falls back to default")

	assert.Equal(t, 3, c.Int("depth", 0))
	assert.Equal(t, 2, c.Int("ratio", 0), "float values are accepted")
	assert.Equal(t, 9, c.Int("missing", 9))

	assert.True(t, c.Bool("follow", false))
	assert.False(t, c.Bool("missing", false))

	assert.Equal(t, []string{"a.example", "b.example"}, c.Strings("hosts"))
	assert.Equal(t, []string{"x"}, c.Strings("clients"))
	assert.Nil(t, c.Strings("missing"))

	v, ok := c.Value("name")
	assert.True(t, ok)
	assert.Equal(t, "crawler", v)
}

func TestLoadConf(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
seeds:
  - https://example.com/
allowed_hosts:
  - example.com
user_agent: spiderkit-test
max_body: 4096
`), 0o600))

	c, err := LoadConf(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/"}, c.Strings("seeds"))
	assert.Equal(t, []string{"example.com"}, c.Strings("allowed_hosts"))
	assert.Equal(t, "spiderkit-test", c.String("user_agent", ""))
	assert.Equal(t, 4096, c.Int("max_body", 0))
}

func TestLoadConf_MissingFile(t *testing.T) {
	_, err := LoadConf(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConf_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not: [valid"), 0o600))
	_, err := LoadConf(path)
	require.Error(t, err)
}
