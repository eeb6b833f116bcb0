package hotspots

import (
	"fmt"
	"math"
)

const (
	metersPerDegree = 111_320.0
	earthRadius     = 6_371_000.0

	observedPrefix  = "hs-"
	predictedPrefix = "pred-"
)

// grid snaps coordinates to cells roughly radius meters on a side. Cell width
// in longitude is computed at the centre latitude of each row so cells do not
// collapse towards the poles.
type grid struct {
	cellLat float64
	radius  float64
}

type cellKey struct{ row, col int64 }

func (k cellKey) String() string { return fmt.Sprintf("r%d_c%d", k.row, k.col) }

func newGrid(radiusMeters float64) grid {
	return grid{cellLat: radiusMeters / metersPerDegree, radius: radiusMeters}
}

func (g grid) cell(lat, lng float64) cellKey {
	row := int64(math.Floor(lat / g.cellLat))
	centre := (float64(row) + 0.5) * g.cellLat
	cos := math.Cos(centre * math.Pi / 180)
	if cos < 0.01 {
		cos = 0.01
	}
	cellLng := g.radius / (metersPerDegree * cos)
	col := int64(math.Floor(lng / cellLng))
	return cellKey{row: row, col: col}
}

// distance is the haversine distance in meters.
func distance(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadius * math.Asin(math.Min(1, math.Sqrt(a)))
}
