package types

import "fmt"

// FromNative converts a native Go value into the Value model.
// Supported inputs: string, bool, nil, the common integer and float
// widths, []any, []string, map[string]any, and values that are already
// a Value. Anything else is rejected here so the recursive scan never
// sees an out-of-model value.
func FromNative(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Nil{}, nil
	case Value:
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(x), nil
	case int8:
		return Int(x), nil
	case int16:
		return Int(x), nil
	case int32:
		return Int(x), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(x), nil
	case uint8:
		return Int(x), nil
	case uint16:
		return Int(x), nil
	case uint32:
		return Int(x), nil
	case uint64:
		return Int(x), nil
	case float32:
		return Float(x), nil
	case float64:
		return Float(x), nil
	case []string:
		seq := make(Sequence, len(x))
		for i, item := range x {
			seq[i] = String(item)
		}
		return seq, nil
	case []any:
		seq := make(Sequence, len(x))
		for i, item := range x {
			converted, err := FromNative(item)
			if err != nil {
				return nil, err
			}
			seq[i] = converted
		}
		return seq, nil
	case map[string]any:
		m := make(Mapping, len(x))
		for key, item := range x {
			converted, err := FromNative(item)
			if err != nil {
				return nil, err
			}
			m[key] = converted
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}
