package inkwell

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/grindlemire/go-inkwell/internal/debug"
)

type decoder interface {
	decode(raw any) bool
}

// decode stores raw into the field. A nil raw value clears the field.
func (f *Field[T]) decode(raw any) bool {
	if raw == nil {
		*f = Unset[T]()
		return true
	}
	var v T
	if !decodeStyleValue(raw, &v) {
		return false
	}
	*f = Set(v)
	return true
}

var styleKeys = func() map[string]int {
	keys := make(map[string]int)
	t := reflect.TypeOf(StyleRecord{})
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("style"); tag != "" {
			keys[tag] = i
		}
	}
	return keys
}()

// StyleFromMap decodes a loosely typed property map, as produced by YAML
// or JSON decoding, into a StyleRecord. Keys use the camelCase property
// names ("flexDirection", "paddingX"). Unknown keys and values of the
// wrong type are ignored. A nil value produces an explicit unset.
func StyleFromMap(m map[string]any) StyleRecord {
	var s StyleRecord
	rv := reflect.ValueOf(&s).Elem()
	for key, raw := range m {
		i, ok := styleKeys[key]
		if !ok {
			debug.Log("style: ignoring unknown property %q", key)
			continue
		}
		if !rv.Field(i).Addr().Interface().(decoder).decode(raw) {
			ignored(key, raw)
		}
	}
	return s
}

func decodeStyleValue(raw any, dst any) bool {
	switch d := dst.(type) {
	case *Value:
		v, ok := parseDimension(raw)
		*d = v
		return ok
	case *float64:
		n, ok := toFloat(raw)
		*d = n
		return ok
	case *int:
		n, ok := toFloat(raw)
		if !ok || n != math.Trunc(n) {
			return false
		}
		*d = int(n)
		return true
	case *bool:
		b, ok := raw.(bool)
		*d = b
		return ok
	case *Color:
		switch c := raw.(type) {
		case string:
			parsed, err := ParseColor(c)
			if err != nil {
				return false
			}
			*d = parsed
			return true
		case Color:
			*d = c
			return true
		}
		n, ok := toFloat(raw)
		if !ok || n < 0 || n > 255 || n != math.Trunc(n) {
			return false
		}
		*d = ANSIColor(uint8(n))
		return true
	}

	// String-backed enumerations and plain strings.
	rv := reflect.ValueOf(dst).Elem()
	str, ok := raw.(string)
	if !ok || rv.Kind() != reflect.String {
		return false
	}
	rv.SetString(str)
	return true
}

// parseDimension accepts a number of cells, "N%" or "auto".
func parseDimension(raw any) (Value, bool) {
	if n, ok := toFloat(raw); ok {
		return Fixed(n), true
	}
	s, ok := raw.(string)
	if !ok {
		return Value{}, false
	}
	s = strings.TrimSpace(s)
	if s == "auto" {
		return Auto(), true
	}
	if pct, found := strings.CutSuffix(s, "%"); found {
		n, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return Value{}, false
		}
		return Percent(n), true
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, false
	}
	return Fixed(n), true
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}
