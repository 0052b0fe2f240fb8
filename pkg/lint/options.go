package lint

import (
	"strings"

	"github.com/spf13/cast"
)

// Rule options reach a Pass from YAML (typed values) or from environment
// variables (always strings), so the getters accept both forms.

// GetBoolOption returns a bool option. Strings such as "true" or "0" are
// parsed; anything unparsable yields defaultVal.
func GetBoolOption(opts map[string]any, key string, defaultVal bool) bool {
	v, ok := opts[key]
	if !ok {
		return defaultVal
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return defaultVal
	}
	return b
}

// GetStringSliceOption returns a list option. A single string is split on
// commas, so "Vec, String" and [Vec, String] are equivalent. Empty items
// are dropped.
func GetStringSliceOption(opts map[string]any, key string, defaultVal []string) []string {
	v, ok := opts[key]
	if !ok {
		return defaultVal
	}

	var items []string
	if s, isString := v.(string); isString {
		items = strings.Split(s, ",")
	} else {
		var err error
		if items, err = cast.ToStringSliceE(v); err != nil {
			return defaultVal
		}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
