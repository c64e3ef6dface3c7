package spiderkit

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"
)

// Conf is a read-only configuration mapping handed to runners at
// registration time. Typed getters return the zero value (or the provided
// default) when a key is absent or of the wrong type, so runner code stays
// free of type assertions.
type Conf map[string]any

// String returns the string value for key, or def when absent.
func (c Conf) String(key, def string) string {
	if s, ok := c[key].(string); ok {
		return s
	}
	return def
}

// Int returns the integer value for key, or def when absent. YAML and JSON
// decoders disagree on numeric types, so both int and float64 are accepted.
func (c Conf) Int(key string, def int) int {
	switch v := c[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Bool returns the boolean value for key, or def when absent.
func (c Conf) Bool(key string, def bool) bool {
	if b, ok := c[key].(bool); ok {
		return b
	}
	return def
}

// Strings returns the string-slice value for key, or nil when absent. YAML
// decodes sequences as []any, so both forms are accepted.
func (c Conf) Strings(key string) []string {
	switch v := c[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Value returns the raw value for key.
func (c Conf) Value(key string) (any, bool) {
	v, ok := c[key]
	return v, ok
}

func (c Conf) clone() Conf {
	return Conf(copyMap(c))
}

// LoadConf reads a YAML file into a Conf mapping.
func LoadConf(path string) (Conf, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read conf: %w", err)
	}
	var c Conf
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse conf %s: %w", path, err)
	}
	return c, nil
}
