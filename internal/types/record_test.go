package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsKeyOrder(t *testing.T) {
	r, err := Parse([]byte(`{"zipcode": 98178, "price": 221900, "bedrooms": 3, "grade": "average"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"zipcode", "price", "bedrooms", "grade"}, r.Keys())
	assert.Equal(t, 4, r.Len())
}

func TestParseDuplicateKeyKeepsFirstPosition(t *testing.T) {
	r, err := Parse([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, r.Keys())
	v, ok := r.Number("a")
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)
}

func TestParseNonObject(t *testing.T) {
	for _, raw := range []string{`null`, `42`, `"house"`, `[1,2]`, `true`} {
		r, err := Parse([]byte(raw))
		require.NoError(t, err, raw)
		assert.Zero(t, r.Len(), raw)
		_, ok := r.Number(FieldPrice)
		assert.False(t, ok, raw)
	}
}

func TestAccessorsTreatWrongTypesAsAbsent(t *testing.T) {
	r, err := Parse([]byte(`{
		"price": "500000",
		"bedrooms": null,
		"bathrooms": 1.75,
		"grade": 7,
		"condition": "",
		"description": ["not", "text"],
		"waterfront": "yes"
	}`))
	require.NoError(t, err)

	_, ok := r.Number(FieldPrice)
	assert.False(t, ok, "string price is not a number")

	_, ok = r.Number(FieldBedrooms)
	assert.False(t, ok, "null is absent")

	baths, ok := r.Number(FieldBathrooms)
	assert.True(t, ok)
	assert.Equal(t, 1.75, baths)

	grade, ok := r.Text(FieldGrade)
	assert.True(t, ok)
	assert.Equal(t, "7", grade)

	_, ok = r.Text(FieldCondition)
	assert.False(t, ok, "empty text is absent")

	_, ok = r.Text(FieldDescription)
	assert.False(t, ok)

	assert.False(t, r.Flag(FieldWaterfront))
}

func TestFlag(t *testing.T) {
	cases := map[string]bool{
		`{"waterfront": true}`:  true,
		`{"waterfront": false}`: false,
		`{"waterfront": 1}`:     true,
		`{"waterfront": 0}`:     false,
		`{"waterfront": null}`:  false,
		`{}`:                    false,
	}
	for raw, want := range cases {
		r, err := Parse([]byte(raw))
		require.NoError(t, err)
		assert.Equal(t, want, r.Flag(FieldWaterfront), raw)
	}
}

func TestValueOnZeroRecord(t *testing.T) {
	var r Record
	_, ok := r.Value(FieldPrice)
	assert.False(t, ok)
	assert.Empty(t, r.Keys())
}
