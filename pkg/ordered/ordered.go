// Package ordered decodes JSON documents into insertion-ordered maps.
//
// Both PROV serializations handled by provgraph are order-sensitive:
// statement order, attribute order, and namespace declaration order all
// carry meaning. Go's builtin maps shuffle keys, so documents are decoded
// into ordered maps instead, with object key order preserved at every
// nesting depth.
package ordered

import (
	"fmt"
	"math"
	"strconv"

	"github.com/buger/jsonparser"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is an insertion-ordered JSON object. Values are strings, float64
// numbers, bools, nil, []any arrays, or nested *Map objects.
type Map = orderedmap.OrderedMap[string, any]

// NewMap returns an empty ordered object.
func NewMap() *Map {
	return orderedmap.New[string, any]()
}

// DecodeObject parses a JSON object, preserving key order recursively.
// Duplicate keys keep their first position with the last value winning.
func DecodeObject(data []byte) (*Map, error) {
	om := NewMap()
	err := jsonparser.ObjectEach(data, func(key, value []byte, dt jsonparser.ValueType, _ int) error {
		k, err := jsonparser.ParseString(key)
		if err != nil {
			return fmt.Errorf("object key: %w", err)
		}
		v, err := decodeValue(value, dt)
		if err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		om.Set(k, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return om, nil
}

func decodeArray(data []byte) ([]any, error) {
	out := []any{}
	var cbErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dt jsonparser.ValueType, _ int, elemErr error) {
		if cbErr != nil {
			return
		}
		if elemErr != nil {
			cbErr = elemErr
			return
		}
		v, err := decodeValue(value, dt)
		if err != nil {
			cbErr = err
			return
		}
		out = append(out, v)
	})
	if err != nil {
		return nil, err
	}
	if cbErr != nil {
		return nil, cbErr
	}
	return out, nil
}

func decodeValue(value []byte, dt jsonparser.ValueType) (any, error) {
	switch dt {
	case jsonparser.Object:
		return DecodeObject(value)
	case jsonparser.Array:
		return decodeArray(value)
	case jsonparser.String:
		return jsonparser.ParseString(value)
	case jsonparser.Number:
		return jsonparser.ParseFloat(value)
	case jsonparser.Boolean:
		return jsonparser.ParseBoolean(value)
	case jsonparser.Null:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported JSON value type %v", dt)
	}
}

// FormatScalar renders a decoded scalar as text. Whole numbers print
// without an exponent or decimal point so identifiers and years survive
// the float64 round-trip intact.
func FormatScalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case nil:
		return "null"
	default:
		return fmt.Sprint(x)
	}
}
