package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyfinder/internal/types"
)

func prices(t *testing.T, records []types.Record) []float64 {
	t.Helper()
	out := make([]float64, 0, len(records))
	for _, r := range records {
		p, _ := r.Number(types.FieldPrice)
		out = append(out, p)
	}
	return out
}

func TestNormalizeBareList(t *testing.T) {
	out := Normalize([]byte(`[{"price": 3}, {"price": 1}, {"price": 2}]`))
	require.False(t, out.Failed())
	assert.Equal(t, []float64{3, 1, 2}, prices(t, out.Records))
}

func TestNormalizeBareListKeepsNonObjects(t *testing.T) {
	out := Normalize([]byte(`[{"price": 1}, 7, null, "x"]`))
	require.False(t, out.Failed())
	require.Len(t, out.Records, 4)
	assert.Zero(t, out.Records[1].Len())
	assert.Zero(t, out.Records[3].Len())
}

func TestNormalizeResultsField(t *testing.T) {
	out := Normalize([]byte(`{"results": [{"price": 10}, {"price": 20}], "took_ms": 12}`))
	require.False(t, out.Failed())
	assert.Equal(t, []float64{10, 20}, prices(t, out.Records))
}

func TestNormalizeEmptyResults(t *testing.T) {
	out := Normalize([]byte(`{"results": []}`))
	require.False(t, out.Failed())
	assert.NotNil(t, out.Records)
	assert.Empty(t, out.Records)
}

func TestNormalizeErrorField(t *testing.T) {
	out := Normalize([]byte(`{"error": "index unavailable"}`))
	require.True(t, out.Failed())
	assert.Equal(t, ApplicationFailure, out.Err.Kind)
	assert.Equal(t, "index unavailable", out.Err.Message)
	assert.Equal(t, GenericMessage, out.Err.UserMessage())
}

func TestNormalizeErrorFieldNonString(t *testing.T) {
	out := Normalize([]byte(`{"error": {"code": 503, "detail": "down"}}`))
	require.True(t, out.Failed())
	assert.Equal(t, `{"code":503,"detail":"down"}`, out.Err.Message)
}

func TestNormalizeUnsetErrorFieldIsNoResults(t *testing.T) {
	for _, body := range []string{`{"error": null}`, `{"error": ""}`, `{"error": false}`, `{"error": 0}`} {
		out := Normalize([]byte(body))
		assert.False(t, out.Failed(), body)
		assert.Empty(t, out.Records, body)
	}
}

func TestNormalizeResultsWinOverError(t *testing.T) {
	out := Normalize([]byte(`{"results": [{"price": 1}], "error": "partial"}`))
	require.False(t, out.Failed())
	assert.Len(t, out.Records, 1)
}

func TestNormalizeNonListResultsFallsThrough(t *testing.T) {
	out := Normalize([]byte(`{"results": null, "error": "boom"}`))
	require.True(t, out.Failed())
	assert.Equal(t, "boom", out.Err.Message)

	out = Normalize([]byte(`{"results": {"price": 1}}`))
	require.False(t, out.Failed())
	assert.Empty(t, out.Records)
}

func TestNormalizeOtherShapesAreNoResults(t *testing.T) {
	for _, body := range []string{`{}`, `{"items": [{"price": 1}]}`, `null`, `42`, `"text"`, `true`} {
		out := Normalize([]byte(body))
		assert.False(t, out.Failed(), body)
		assert.Empty(t, out.Records, body)
	}
}

func TestNormalizeInvalidJSONIsTransportFailure(t *testing.T) {
	for _, body := range []string{``, `{bad json`, `<html>oops</html>`} {
		out := Normalize([]byte(body))
		require.True(t, out.Failed(), body)
		assert.Equal(t, TransportFailure, out.Err.Kind, body)
		assert.Error(t, out.Err.Err)
	}
}
