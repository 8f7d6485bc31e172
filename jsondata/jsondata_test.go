package jsondata_test

import (
	"testing"

	"gotest.tools/v3/assert"

	"github.com/easelkit/easel/jsondata"
)

func TestMerge(t *testing.T) {
	base := map[string]any{
		"title": "Untitled",
		"meta": map[string]any{
			"author": "anon",
			"year":   2024,
		},
		"tags": []any{"a", "b"},
	}
	overlay := map[string]any{
		"title": "Final",
		"meta": map[string]any{
			"year": 2026,
		},
		"tags":  []any{"c"},
		"extra": true,
	}

	got := jsondata.Merge(base, overlay)
	assert.DeepEqual(t, got, map[string]any{
		"title": "Final",
		"meta": map[string]any{
			"author": "anon",
			"year":   2026,
		},
		"tags":  []any{"c"},
		"extra": true,
	})
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	base := map[string]any{"nested": map[string]any{"a": 1}}
	overlay := map[string]any{"nested": map[string]any{"b": 2}}

	got := jsondata.Merge(base, overlay)
	got["nested"].(map[string]any)["a"] = 99

	assert.Equal(t, base["nested"].(map[string]any)["a"], 1)
	_, ok := base["nested"].(map[string]any)["b"]
	assert.Assert(t, !ok)
	assert.Equal(t, overlay["nested"].(map[string]any)["b"], 2)
}

func TestMerge_EmptyInputs(t *testing.T) {
	assert.DeepEqual(t, jsondata.Merge(nil, nil), map[string]any{})
	assert.DeepEqual(t, jsondata.Merge(map[string]any{"a": 1}, nil), map[string]any{"a": 1})
	assert.DeepEqual(t, jsondata.Merge(nil, map[string]any{"a": 1}), map[string]any{"a": 1})
}
