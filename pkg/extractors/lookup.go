package extractors

import "igposts/pkg/models"

// asMap returns v as a generic mapping
func asMap(v interface{}) (map[string]interface{}, bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		return t, true
	case models.RawPost:
		return t, true
	}
	return nil, false
}

// asSlice returns v as a generic sequence
func asSlice(v interface{}) ([]interface{}, bool) {
	t, ok := v.([]interface{})
	return t, ok
}

// first returns the first truthy value of keys in m, or nil
func first(m map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok && truthy(v) {
			return v
		}
	}
	return nil
}

// present returns the value of the first key in m that is set to anything
// but null, falsy values included
func present(m map[string]interface{}, keys ...string) interface{} {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// path walks nested mappings and sequence indexes; "0" selects the first
// element of a sequence. Any miss returns nil.
func path(m map[string]interface{}, keys ...string) interface{} {
	var cur interface{} = m
	for _, k := range keys {
		if seq, ok := asSlice(cur); ok {
			if k != "0" || len(seq) == 0 {
				return nil
			}
			cur = seq[0]
			continue
		}
		mm, ok := asMap(cur)
		if !ok {
			return nil
		}
		cur = mm[k]
	}
	return cur
}

// firstPath returns the first truthy value among several key paths
func firstPath(m map[string]interface{}, paths ...[]string) interface{} {
	for _, p := range paths {
		if v := path(m, p...); truthy(v) {
			return v
		}
	}
	return nil
}

// unwrapNode returns the mapping under "node" when there is one
func unwrapNode(raw map[string]interface{}) map[string]interface{} {
	if node, ok := asMap(raw["node"]); ok {
		return node
	}
	return raw
}

// str returns the string under key or ""
func str(m map[string]interface{}, keys ...string) string {
	if v := first(m, keys...); v != nil {
		return stringify(v)
	}
	return ""
}
