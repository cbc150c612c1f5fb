// Package geo holds the planar geometry used to hit-test drawn polygons.
//
// Coordinates are WGS84 latitude/longitude treated as a flat plane, which is
// accurate enough for the city-scale shapes users draw by hand.
package geo

import (
	"math"

	"github.com/dmitrijs2005/polymap/internal/models"
)

// BBox is an axis-aligned bounding box: MinLon, MinLat, MaxLon, MaxLat.
type BBox [4]float64

// BBoxOf returns the bounding box of pts. An empty input yields an inverted
// box that contains nothing.
func BBoxOf(pts []models.Point) BBox {
	b := BBox{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, p := range pts {
		b[0] = math.Min(b[0], p.Lon)
		b[1] = math.Min(b[1], p.Lat)
		b[2] = math.Max(b[2], p.Lon)
		b[3] = math.Max(b[3], p.Lat)
	}
	return b
}

func (b BBox) Contains(p models.Point) bool {
	return p.Lon >= b[0] && p.Lon <= b[2] && p.Lat >= b[1] && p.Lat <= b[3]
}

// ContainsPoint reports whether p lies inside the ring using the even-odd
// rule. The ring is closed implicitly; fewer than 3 vertices never contain.
func ContainsPoint(ring []models.Point, p models.Point) bool {
	n := len(ring)
	if n < models.MinPolygonPoints {
		return false
	}
	if !BBoxOf(ring).Contains(p) {
		return false
	}
	inside := false
	x, y := p.Lon, p.Lat
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i].Lon, ring[i].Lat
		xj, yj := ring[j].Lon, ring[j].Lat
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// TopmostContaining returns the index of the last polygon in the list that
// contains p, or -1. Later polygons are drawn above earlier ones.
func TopmostContaining(polys []models.Polygon, p models.Point) int {
	for i := len(polys) - 1; i >= 0; i-- {
		if ContainsPoint(polys[i].Points, p) {
			return i
		}
	}
	return -1
}
