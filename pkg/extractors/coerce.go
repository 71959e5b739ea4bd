package extractors

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"igposts/pkg/models"
)

// truthy reports whether v counts as set: nil, false, zero numbers and
// empty strings, slices and maps do not.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case map[string]interface{}:
		return len(t) > 0
	case models.RawPost:
		return len(t) > 0
	case []interface{}:
		return len(t) > 0
	case []models.TaggedUser:
		return len(t) > 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Map, reflect.String:
		return rv.Len() > 0
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// asNumber returns v as a float64 when it is a numeric value
func asNumber(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case bool, string, nil:
		return 0, false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// CoerceInt converts v to an integer, falling back to def for nil,
// non-numeric values and strings that are not integers.
// Floats truncate toward zero; bools count as 0 and 1.
func CoerceInt(v interface{}, def int64) int64 {
	switch t := v.(type) {
	case nil:
		return def
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return def
		}
		return n
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, err := t.Float64()
		if err != nil {
			return def
		}
		return truncate(f, def)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return truncate(rv.Float(), def)
	}
	return def
}

func truncate(f float64, def int64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return int64(f)
}

// CoerceBool recognizes true, "true", "True", "1" and 1 as true and
// false, "false", "False", "0" and 0 as false. Anything else yields def.
func CoerceBool(v interface{}, def bool) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch t {
		case "true", "True", "1":
			return true
		case "false", "False", "0":
			return false
		}
		return def
	}

	if n, ok := asNumber(v); ok {
		switch n {
		case 1:
			return true
		case 0:
			return false
		}
	}
	return def
}

// stringify renders ids and names that may arrive as numbers
func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	}
	return fmt.Sprint(v)
}

// optionalString returns nil for nil and a stringified pointer otherwise
func optionalString(v interface{}) *string {
	if v == nil {
		return nil
	}
	return models.StringPtr(stringify(v))
}

// optionalBool returns nil for nil and the value's truthiness otherwise
func optionalBool(v interface{}) *bool {
	if v == nil {
		return nil
	}
	return models.BoolPtr(truthy(v))
}
