package zoning

import (
	"fmt"
	"math"
)

// Projection maps WGS-84 degrees into the coordinate system of the zoning
// layers. It returns (y, x): northing/easting, or lat/lon for WGS84.
type Projection func(lat, lon float64) (y, x float64)

// Projection names accepted by ProjectionFor.
const (
	WGS84Name          = "wgs84"
	TXNorthCentralName = "tx-north-central"
)

// ProjectionFor returns the projection registered under name.
func ProjectionFor(name string) (Projection, error) {
	switch name {
	case "", WGS84Name:
		return WGS84, nil
	case TXNorthCentralName:
		return TexasNorthCentral, nil
	}
	return nil, fmt.Errorf("unknown projection %q", name)
}

// WGS84 is the identity projection for layers stored in degrees.
func WGS84(lat, lon float64) (float64, float64) { return lat, lon }

// TexasNorthCentral converts to Texas North-Central state plane (EPSG:2276),
// Lambert conformal conic in US survey feet.
func TexasNorthCentral(lat, lon float64) (northingFt, eastingFt float64) {
	return txNorthCentral.project(lat, lon)
}

const (
	ftPerMeter = 3.2808333333333334 // US survey foot
	nad83A     = 6378137.0          // semi-major axis, metres
	nad83E2    = 0.00669438002290   // eccentricity squared
)

var txNorthCentral = newLambertConic(lambertParams{
	lat0:          31.66666666666667,
	lat1:          32.13333333333333,
	lat2:          33.96666666666667,
	lon0:          -98.5,
	falseEasting:  1968500.0,
	falseNorthing: 6561666.666666666,
})

type lambertParams struct {
	lat0, lat1, lat2, lon0      float64 // degrees
	falseEasting, falseNorthing float64 // feet
}

// lambertConic is a two-standard-parallel Lambert conformal conic on the
// NAD83 ellipsoid.
type lambertConic struct {
	n, f, rho0, lambda0 float64
	falseE, falseN      float64
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func lccM(phi float64) float64 {
	s := math.Sin(phi)
	return math.Cos(phi) / math.Sqrt(1-nad83E2*s*s)
}

func lccT(phi float64) float64 {
	e := math.Sqrt(nad83E2)
	s := math.Sin(phi)
	return math.Tan(math.Pi/4-phi/2) / math.Pow((1-e*s)/(1+e*s), e/2)
}

func newLambertConic(p lambertParams) lambertConic {
	phi1, phi2 := radians(p.lat1), radians(p.lat2)
	m1, m2 := lccM(phi1), lccM(phi2)
	t1, t2 := lccT(phi1), lccT(phi2)

	n := math.Log(m1/m2) / math.Log(t1/t2)
	f := nad83A * ftPerMeter * m1 / (n * math.Pow(t1, n))
	return lambertConic{
		n:       n,
		f:       f,
		rho0:    f * math.Pow(lccT(radians(p.lat0)), n),
		lambda0: radians(p.lon0),
		falseE:  p.falseEasting,
		falseN:  p.falseNorthing,
	}
}

func (c lambertConic) project(lat, lon float64) (northing, easting float64) {
	rho := c.f * math.Pow(lccT(radians(lat)), c.n)
	theta := c.n * (radians(lon) - c.lambda0)
	easting = rho*math.Sin(theta) + c.falseE
	northing = c.rho0 - rho*math.Cos(theta) + c.falseN
	return northing, easting
}
