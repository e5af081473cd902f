// Package zoning finds the zoning district under a property's coordinates
// using polygon shapefiles.
package zoning

import (
	"fmt"
	"math"
	"strings"

	shp "github.com/jonas-p/go-shp"

	"propertyfinder/internal/render"
	"propertyfinder/internal/types"
)

// Attribute names checked by Code, in order.
var codeFields = []string{"ZONING", "BASE_ZONIN"}

// Feature is a polygon (possibly multi-part) with its attribute row.
type Feature struct {
	Parts [][][2]float64    // closed rings of [y, x] points
	Attrs map[string]string // DBF values keyed by field name
	MinY  float64
	MinX  float64
	MaxY  float64
	MaxX  float64
}

// Index answers point-in-polygon queries over loaded features.
type Index struct {
	features []Feature
	project  Projection
}

// NewIndex builds an index over features stored in the given projection.
func NewIndex(features []Feature, p Projection) *Index {
	if p == nil {
		p = WGS84
	}
	return &Index{features: features, project: p}
}

// Load reads every shapefile in paths into one index.
func Load(paths []string, projection string) (*Index, error) {
	p, err := ProjectionFor(projection)
	if err != nil {
		return nil, err
	}
	var all []Feature
	for _, path := range paths {
		feats, err := LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load zoning shapefile %s: %w", path, err)
		}
		all = append(all, feats...)
	}
	return NewIndex(all, p), nil
}

// LoadFile reads the polygons of one shapefile. Other geometries are skipped.
func LoadFile(path string) ([]Feature, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	fields := r.Fields()

	var features []Feature
	for r.Next() {
		idx, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}

		f := Feature{
			Parts: make([][][2]float64, len(poly.Parts)),
			Attrs: make(map[string]string, len(fields)),
			MinY:  math.MaxFloat64,
			MinX:  math.MaxFloat64,
			MaxY:  -math.MaxFloat64,
			MaxX:  -math.MaxFloat64,
		}
		for part := range poly.Parts {
			start := poly.Parts[part]
			end := int32(len(poly.Points))
			if part+1 < len(poly.Parts) {
				end = poly.Parts[part+1]
			}
			ring := make([][2]float64, 0, end-start)
			for _, pt := range poly.Points[start:end] {
				ring = append(ring, [2]float64{pt.Y, pt.X})
				f.MinY, f.MaxY = math.Min(f.MinY, pt.Y), math.Max(f.MaxY, pt.Y)
				f.MinX, f.MaxX = math.Min(f.MinX, pt.X), math.Max(f.MaxX, pt.X)
			}
			f.Parts[part] = ring
		}
		for i, field := range fields {
			f.Attrs[field.String()] = strings.TrimSpace(strings.TrimRight(r.ReadAttribute(idx, i), "\x00"))
		}
		features = append(features, f)
	}
	return features, nil
}

// Len returns the number of loaded polygons.
func (ix *Index) Len() int { return len(ix.features) }

// Lookup returns the attributes of the first polygon containing the point.
func (ix *Index) Lookup(lat, lon float64) (map[string]string, bool) {
	y, x := ix.project(lat, lon)
	for _, f := range ix.features {
		if y < f.MinY || y > f.MaxY || x < f.MinX || x > f.MaxX {
			continue
		}
		for _, ring := range f.Parts {
			if pointInPolygon(y, x, ring) {
				return f.Attrs, true
			}
		}
	}
	return nil, false
}

// Code picks the zoning designation out of an attribute row.
func Code(attrs map[string]string) string {
	for _, name := range codeFields {
		if v := attrs[name]; v != "" {
			return v
		}
	}
	return ""
}

// Enricher adds a "zoning" detail line for records whose coordinates fall in
// a zoned polygon.
func (ix *Index) Enricher() render.Enricher {
	return func(r types.Record) (render.Line, bool) {
		lat, okLat := r.Number(types.FieldLatitude)
		lon, okLon := r.Number(types.FieldLongitude)
		if !okLat || !okLon {
			return render.Line{}, false
		}
		attrs, ok := ix.Lookup(lat, lon)
		if !ok {
			return render.Line{}, false
		}
		code := Code(attrs)
		if code == "" {
			return render.Line{}, false
		}
		return render.Line{Key: "zoning", Value: code}, true
	}
}

// pointInPolygon is the even-odd ray casting test. Rings from shapefiles are
// closed, but an open ring works too.
func pointInPolygon(y, x float64, ring [][2]float64) bool {
	inside := false
	j := len(ring) - 1
	for i := range ring {
		yi, xi := ring[i][0], ring[i][1]
		yj, xj := ring[j][0], ring[j][1]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}
