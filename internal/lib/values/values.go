package values

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

type M = map[string]any

// ToMap converts slog like key/value pairs into a map.
// A dangling value or a non string key is stored under !BADKEY.
func ToMap(args []any) M {
	data := make(M, len(args)/2)
	var k string
	var v any
	for len(args) > 0 {
		k, v, args = argsToValues(args)
		data[k] = v
	}
	return data
}

const badKey = "!BADKEY"

func argsToValues(args []any) (string, any, []any) {
	switch x := args[0].(type) {
	case string:
		if len(args) == 1 {
			return badKey, x, nil
		}
		return x, args[1], args[2:]

	default:
		return badKey, x, args[1:]
	}
}

// ToStr renders the map as "(k1=v1; k2=v2)" with sorted keys.
func ToStr(data M) string {
	if len(data) == 0 {
		return ""
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	buf := &strings.Builder{}
	buf.WriteString("(")
	for i, k := range keys {
		if i > 0 {
			buf.WriteString("; ")
		}
		switch t := data[k].(type) {
		case string:
			fmt.Fprintf(buf, "%s=%s", k, t)
		case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
			fmt.Fprintf(buf, "%s=%v", k, t)
		default:
			jsonData, err := json.Marshal(t)
			if err != nil {
				fmt.Fprintf(buf, "%s=%v", k, t)
			} else {
				fmt.Fprintf(buf, "%s=%s", k, string(jsonData))
			}
		}
	}
	buf.WriteString(")")

	return buf.String()
}

// Coalesce returns the first non zero value.
func Coalesce[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}
