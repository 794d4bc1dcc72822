// Package normalize converts arbitrary-precision numerics coming out of record
// stores into float64 so they can be embedded in response text.
package normalize

import (
	"fmt"
	"math/big"
)

// decimal is satisfied by json.Number and the DynamoDB attributevalue.Number.
type decimal interface {
	Float64() (float64, error)
}

// Value walks v recursively through maps and slices and replaces every
// arbitrary-precision number with its float64 value. Everything else is
// returned unchanged. The input is not modified.
func Value(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, elem := range x {
			n, err := Value(elem)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			out[k] = n
		}
		return out, nil
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			n, err := Value(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case []map[string]any:
		out := make([]any, len(x))
		for i, elem := range x {
			n, err := Value(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = n
		}
		return out, nil
	case *big.Rat:
		if x == nil {
			return nil, nil
		}
		f, _ := x.Float64()
		return f, nil
	case *big.Float:
		if x == nil {
			return nil, nil
		}
		f, _ := x.Float64()
		return f, nil
	case *big.Int:
		if x == nil {
			return nil, nil
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return f, nil
	case decimal:
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("converting %v to float: %w", x, err)
		}
		return f, nil
	default:
		return v, nil
	}
}

// Map is Value for a single record.
func Map(m map[string]any) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}
	v, err := Value(m)
	if err != nil {
		return nil, err
	}
	return v.(map[string]any), nil
}
