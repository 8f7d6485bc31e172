// Package jsondata provides deep-merge helpers for layout data instances.
package jsondata

// Merge combines overlay on top of base, recursing into nested objects.
// Scalars and arrays in overlay replace the base value wholesale. Neither
// input is mutated; the result is a fresh tree.
func Merge(base, overlay map[string]any) map[string]any {
	result := make(map[string]any, len(base)+len(overlay))
	for k, v := range base {
		result[k] = copyValue(v)
	}

	for k, v := range overlay {
		existing, ok := result[k]
		if !ok {
			result[k] = copyValue(v)
			continue
		}

		baseMap, baseIsMap := existing.(map[string]any)
		overlayMap, overlayIsMap := v.(map[string]any)
		if baseIsMap && overlayIsMap {
			result[k] = Merge(baseMap, overlayMap)
			continue
		}

		result[k] = copyValue(v)
	}

	return result
}

func copyValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = copyValue(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = copyValue(val)
		}
		return out
	default:
		return v
	}
}
