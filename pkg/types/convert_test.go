package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromNative_Scalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want Value
	}{
		{"string", "hello", String("hello")},
		{"bool", true, Bool(true)},
		{"nil", nil, Nil{}},
		{"int", 42, Int(42)},
		{"int64", int64(-7), Int(-7)},
		{"uint32", uint32(9), Int(9)},
		{"float64", 1.5, Float(1.5)},
		{"float32", float32(0.5), Float(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromNative(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromNative_Containers(t *testing.T) {
	got, err := FromNative(map[string]any{
		"name": "alice",
		"tags": []any{"a", 1},
		"meta": map[string]any{"deep": "value"},
	})
	require.NoError(t, err)

	m, ok := got.(Mapping)
	require.True(t, ok)
	assert.Equal(t, String("alice"), m["name"])
	assert.Equal(t, Sequence{String("a"), Int(1)}, m["tags"])
	assert.Equal(t, Mapping{"deep": String("value")}, m["meta"])
}

func TestFromNative_StringSlice(t *testing.T) {
	got, err := FromNative([]string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, Sequence{String("x"), String("y")}, got)
}

func TestFromNative_PassthroughValue(t *testing.T) {
	v := Sequence{String("x")}
	got, err := FromNative(v)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestFromNative_RejectsOutOfModel(t *testing.T) {
	_, err := FromNative(struct{ X int }{1})
	assert.Error(t, err)

	_, err = FromNative(map[int]any{1: "x"})
	assert.Error(t, err)

	// Rejection happens at the boundary, including nested positions.
	_, err = FromNative(map[string]any{"ok": "fine", "bad": make(chan int)})
	assert.Error(t, err)
}
