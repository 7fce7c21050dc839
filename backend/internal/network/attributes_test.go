package network

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributes_JSON(t *testing.T) {
	var attrs Attributes
	require.NoError(t, json.Unmarshal([]byte(`{"age": 30, "occupation": "Engineer", "active": true, "score": -1.5}`), &attrs))

	assert.Equal(t, Attributes{
		"age":        Int(30),
		"occupation": String("Engineer"),
		"active":     Bool(true),
		"score":      Number(-1.5),
	}, attrs)

	out, err := json.Marshal(attrs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"age": 30, "occupation": "Engineer", "active": true, "score": -1.5}`, string(out))
}

func TestValue_UnmarshalRejects(t *testing.T) {
	for _, raw := range []string{`null`, `{"a": 1}`, `[1, 2]`, `"unterminated`} {
		t.Run(raw, func(t *testing.T) {
			var v Value
			assert.Error(t, json.Unmarshal([]byte(raw), &v))
		})
	}
}

func TestValue_Accessors(t *testing.T) {
	s, ok := String("x").AsString()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	_, ok = String("x").AsNumber()
	assert.False(t, ok)

	n, ok := Int(7).AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 7.0, n)

	b, ok := Bool(true).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	assert.False(t, Value{}.IsValid())
	assert.Equal(t, "invalid", Value{}.Kind().String())
	assert.Nil(t, Value{}.Interface())
	_, err := json.Marshal(Value{})
	assert.Error(t, err)
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		want Value
	}{
		{"true", Bool(true)},
		{"FALSE", Bool(false)},
		{"1", Int(1)},
		{"30", Int(30)},
		{"2.5", Number(2.5)},
		{"Engineer", String("Engineer")},
		{"t", String("t")},
		{"Inf", String("Inf")},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseValue(tt.raw))
		})
	}
}

func TestAttributes_Validate(t *testing.T) {
	assert.NoError(t, Attributes(nil).Validate())
	assert.NoError(t, Attributes{"a": String("")}.Validate())
	assert.Error(t, Attributes{"": String("x")}.Validate())
	assert.Error(t, Attributes{"a": Value{}}.Validate())
	assert.Error(t, Attributes{"a": Number(math.NaN())}.Validate())
}

func TestAttributes_MergeAndClone(t *testing.T) {
	base := Attributes{"age": Int(30), "city": String("Oslo")}
	clone := base.Clone()
	clone.Merge(Attributes{"age": Int(31), "active": Bool(true)})

	assert.Equal(t, Attributes{"age": Int(30), "city": String("Oslo")}, base)
	assert.Equal(t, Attributes{"age": Int(31), "city": String("Oslo"), "active": Bool(true)}, clone)
	assert.Equal(t, map[string]any{"age": 31.0, "city": "Oslo", "active": true}, clone.Map())
	assert.NotNil(t, Attributes(nil).Clone())
}
