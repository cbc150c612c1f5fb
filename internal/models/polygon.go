package models

import (
	"encoding/json"
	"fmt"
	"math"
)

// MinPolygonPoints is the smallest number of vertices a committed polygon may have.
const MinPolygonPoints = 3

// Point is a WGS84 coordinate. It is stored as a [lat, lon] JSON array.
type Point struct {
	Lat float64
	Lon float64
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lat, p.Lon})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("point must have 2 coordinates, got %d", len(pair))
	}
	p.Lat, p.Lon = pair[0], pair[1]
	return nil
}

// Finite reports whether both coordinates are finite numbers. Only finite
// points can be encoded.
func (p Point) Finite() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) && !math.IsNaN(p.Lon) && !math.IsInf(p.Lon, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("[%.6f, %.6f]", p.Lat, p.Lon)
}

// Polygon is a closed boundary drawn by a user. Points are in drawing order
// and the ring closes implicitly from the last point back to the first.
type Polygon struct {
	ID     string  `json:"id,omitempty"`
	Points []Point `json:"points"`
	Color  string  `json:"color"`
	Name   string  `json:"name"`
}

// Valid reports whether p has enough points to be committed.
func (p Polygon) Valid() bool {
	return len(p.Points) >= MinPolygonPoints
}

func (p Polygon) Clone() Polygon {
	out := p
	out.Points = append([]Point(nil), p.Points...)
	return out
}
