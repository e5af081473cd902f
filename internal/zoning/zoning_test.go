package zoning

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertyfinder/internal/types"
)

// square returns a closed ring of points with the given x/y bounds.
func square(minX, minY, maxX, maxY float64) []shp.Point {
	return []shp.Point{
		{X: minX, Y: minY}, {X: minX, Y: maxY}, {X: maxX, Y: maxY}, {X: maxX, Y: minY}, {X: minX, Y: minY},
	}
}

type zone struct {
	ring    []shp.Point
	zoning  string
	baseZon string
}

func writeLayer(t *testing.T, zones []zone) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zones.shp")
	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)
	require.NoError(t, w.SetFields([]shp.Field{
		shp.StringField("ZONING", 12),
		shp.StringField("BASE_ZONIN", 12),
	}))
	for _, z := range zones {
		poly := shp.Polygon(*shp.NewPolyLine([][]shp.Point{z.ring}))
		row := int(w.Write(&poly))
		require.NoError(t, w.WriteAttribute(row, 0, z.zoning))
		require.NoError(t, w.WriteAttribute(row, 1, z.baseZon))
	}
	w.Close()

	// go-shp v0.1.1 names the attribute file "zonesdbf" (no dot) when writing
	// but reads "zones.dbf".
	base := strings.TrimSuffix(path, ".shp")
	if _, err := os.Stat(base + "dbf"); err == nil {
		require.NoError(t, os.Rename(base+"dbf", base+".dbf"))
	}
	return path
}

func TestLoadAndLookup(t *testing.T) {
	path := writeLayer(t, []zone{
		{ring: square(-97.40, 32.70, -97.30, 32.80), zoning: "A-5"},
		{ring: square(-97.30, 32.70, -97.20, 32.80), zoning: "", baseZon: "PD1234"},
	})

	ix, err := Load([]string{path}, WGS84Name)
	require.NoError(t, err)
	assert.Equal(t, 2, ix.Len())

	attrs, ok := ix.Lookup(32.75, -97.35)
	require.True(t, ok)
	assert.Equal(t, "A-5", Code(attrs))

	attrs, ok = ix.Lookup(32.75, -97.25)
	require.True(t, ok)
	assert.Equal(t, "PD1234", Code(attrs))

	_, ok = ix.Lookup(40.0, -97.25)
	assert.False(t, ok)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load([]string{filepath.Join(t.TempDir(), "missing.shp")}, WGS84Name)
	assert.Error(t, err)

	_, err = Load(nil, "mercator")
	assert.Error(t, err)
}

func TestEnricher(t *testing.T) {
	ix := NewIndex([]Feature{{
		Parts: [][][2]float64{{{0, 0}, {0, 10}, {10, 10}, {10, 0}, {0, 0}}},
		Attrs: map[string]string{"ZONING": "R-1"},
		MinY:  0, MinX: 0, MaxY: 10, MaxX: 10,
	}}, nil)
	enrich := ix.Enricher()

	r, err := types.Parse([]byte(`{"lat": 5, "long": 5}`))
	require.NoError(t, err)
	line, ok := enrich(r)
	require.True(t, ok)
	assert.Equal(t, "zoning: R-1", line.String())

	for _, js := range []string{`{"lat": 5}`, `{"lat": 50, "long": 5}`, `{}`} {
		r, err := types.Parse([]byte(js))
		require.NoError(t, err)
		_, ok := enrich(r)
		assert.False(t, ok, js)
	}
}

func TestPointInPolygonConcave(t *testing.T) {
	// An L shape; (7,7) sits in the notch.
	ring := [][2]float64{{0, 0}, {0, 10}, {5, 10}, {5, 5}, {10, 5}, {10, 0}, {0, 0}}
	assert.True(t, pointInPolygon(2, 2, ring))
	assert.True(t, pointInPolygon(2, 8, ring))
	assert.False(t, pointInPolygon(7, 7, ring))
}

func TestTexasNorthCentralOrigin(t *testing.T) {
	n, e := TexasNorthCentral(31.66666666666667, -98.5)
	assert.InDelta(t, 6561666.666666666, n, 0.01)
	assert.InDelta(t, 1968500.0, e, 0.01)

	nNorth, _ := TexasNorthCentral(32.75, -98.5)
	_, eEast := TexasNorthCentral(31.66666666666667, -97.3)
	assert.Greater(t, nNorth, n)
	assert.Greater(t, eEast, e)
}

func TestProjectionFor(t *testing.T) {
	p, err := ProjectionFor("")
	require.NoError(t, err)
	y, x := p(1, 2)
	assert.Equal(t, [2]float64{1, 2}, [2]float64{y, x})

	_, err = ProjectionFor(TXNorthCentralName)
	assert.NoError(t, err)
}
