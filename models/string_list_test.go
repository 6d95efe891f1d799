package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeList_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		list []string
	}{
		{name: "empty", list: []string{}},
		{name: "single", list: []string{"cs.AI"}},
		{name: "order preserved", list: []string{"b", "a", "c", "a"}},
		{name: "quotes and commas", list: []string{`say "hi"`, "a, b", `back\slash`}},
		{name: "unicode", list: []string{"Müller", "Łukasz", "東京", "naïve"}},
		{name: "blank entries", list: []string{"", " "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.list, DecodeList(EncodeList(tt.list)))
		})
	}
}

func TestEncodeList_NilAndEmpty(t *testing.T) {
	assert.Equal(t, "[]", EncodeList(nil))
	assert.Equal(t, "[]", EncodeList([]string{}))
}

func TestDecodeList_InvalidText(t *testing.T) {
	for _, raw := range []string{"", "not json", "{}", "null", `["unterminated`} {
		got := DecodeList(raw)
		assert.NotNil(t, got, raw)
		assert.Empty(t, got, raw)
	}
}

func TestStringList_ValueScan(t *testing.T) {
	in := StringList{"deep learning", "transformer"}
	v, err := in.Value()
	require.NoError(t, err)
	assert.Equal(t, `["deep learning","transformer"]`, v)

	var fromString StringList
	require.NoError(t, fromString.Scan(v))
	assert.Equal(t, in, fromString)

	var fromBytes StringList
	require.NoError(t, fromBytes.Scan([]byte(`["x"]`)))
	assert.Equal(t, StringList{"x"}, fromBytes)

	var fromNil StringList
	require.NoError(t, fromNil.Scan(nil))
	assert.Equal(t, StringList{}, fromNil)

	var bad StringList
	assert.Error(t, bad.Scan(42))
}
