package model

import (
	"errors"
	"fmt"
	"math"
)

// Unit conversion constants.
const (
	SqFtPerSquare = 100.0     // 1 roofing square = 100 sq ft
	sqFtPerSqM    = 10.7639   // square meters to square feet
	ftPerM        = 3.28084   // meters to feet
	metersPerDeg  = 111320.0  // meters per degree of latitude
)

// MinFootprintAreaSqFt is the smallest footprint area accepted as a real
// building outline. Anything below is rejected as degenerate.
const MinFootprintAreaSqFt = 50.0

// rectAngleToleranceDeg is the allowed deviation of each interior angle
// from 90 degrees for a footprint to classify as rectangular.
const rectAngleToleranceDeg = 15.0

// ErrInvalidFootprint is returned when a footprint fails structural
// validation. The error is fatal: no partial geometry is produced.
var ErrInvalidFootprint = errors.New("invalid footprint")

// planarPoint is a footprint vertex projected to local planar meters.
type planarPoint struct {
	X float64
	Y float64
}

// NewRing builds a closed, validated ring from raw vertices. The input is
// auto-closed if the first and last vertex differ. It fails when fewer than
// three distinct vertices remain, when two consecutive vertices are
// identical, or when the enclosed area is below MinFootprintAreaSqFt.
func NewRing(vertices []Vertex) (Ring, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("%w: no vertices", ErrInvalidFootprint)
	}

	ring := make(Ring, len(vertices))
	copy(ring, vertices)

	// Auto-close the ring.
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}

	distinct := len(ring) - 1
	if distinct < 3 {
		return nil, fmt.Errorf("%w: need at least 3 distinct vertices, got %d", ErrInvalidFootprint, distinct)
	}

	for i := 1; i < len(ring); i++ {
		if ring[i] == ring[i-1] {
			return nil, fmt.Errorf("%w: repeated vertex at position %d", ErrInvalidFootprint, i)
		}
	}

	area := ring.AreaSqFt()
	if area < MinFootprintAreaSqFt {
		return nil, fmt.Errorf("%w: area %.1f sq ft below minimum %.0f sq ft", ErrInvalidFootprint, area, MinFootprintAreaSqFt)
	}

	return ring, nil
}

// vertices returns the ring without its closing duplicate.
func (r Ring) vertices() Ring {
	if len(r) > 1 && r[0] == r[len(r)-1] {
		return r[:len(r)-1]
	}
	return r
}

// project converts the ring's vertices to a local planar frame in meters
// using a flat-earth approximation around the ring's mean latitude. Valid
// for building-footprint scale; polygons spanning the anti-meridian or
// large areas are out of scope.
func (r Ring) project() []planarPoint {
	vs := r.vertices()
	if len(vs) == 0 {
		return nil
	}

	var meanLat float64
	for _, v := range vs {
		meanLat += v.Lat
	}
	meanLat /= float64(len(vs))

	mPerDegLng := metersPerDeg * math.Cos(meanLat*math.Pi/180)

	pts := make([]planarPoint, len(vs))
	for i, v := range vs {
		pts[i] = planarPoint{
			X: v.Lng * mPerDegLng,
			Y: v.Lat * metersPerDeg,
		}
	}
	return pts
}

// PlanarPoint is a footprint vertex in a local planar frame, in feet,
// translated so the bounding box starts at the origin.
type PlanarPoint struct {
	X float64
	Y float64
}

// PlanarFeet projects the ring to local planar feet and normalizes it to
// the origin, for drawing exports.
func (r Ring) PlanarFeet() []PlanarPoint {
	pts := r.project()
	if len(pts) == 0 {
		return nil
	}

	minX, minY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
	}

	out := make([]PlanarPoint, len(pts))
	for i, p := range pts {
		out[i] = PlanarPoint{
			X: (p.X - minX) * ftPerM,
			Y: (p.Y - minY) * ftPerM,
		}
	}
	return out
}

// AreaSqFt computes the enclosed area in square feet using the shoelace
// formula over the projected vertices. The result is independent of the
// starting vertex and of traversal direction.
func (r Ring) AreaSqFt() float64 {
	pts := r.project()
	n := len(pts)
	if n < 3 {
		return 0
	}

	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += pts[i].X * pts[j].Y
		area -= pts[j].X * pts[i].Y
	}
	return math.Abs(area) / 2 * sqFtPerSqM
}

// PerimeterFt computes the ring's perimeter in feet by summing planar edge
// lengths.
func (r Ring) PerimeterFt() float64 {
	pts := r.project()
	n := len(pts)
	if n < 2 {
		return 0
	}

	var perim float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		dx := pts[j].X - pts[i].X
		dy := pts[j].Y - pts[i].Y
		perim += math.Sqrt(dx*dx + dy*dy)
	}
	return perim * ftPerM
}

// IsRectangular reports whether the footprint is a tolerant rectangle:
// exactly four distinct vertices, each interior angle within 15 degrees of
// 90. Any other vertex count returns false without computing angles.
func (r Ring) IsRectangular() bool {
	pts := r.project()
	if len(pts) != 4 {
		return false
	}

	for i := range pts {
		prev := pts[(i+3)%4]
		next := pts[(i+1)%4]
		angle := vertexAngleDeg(pts[i], prev, next)
		if math.Abs(angle-90) > rectAngleToleranceDeg {
			return false
		}
	}
	return true
}

// vertexAngleDeg returns the angle in degrees at vertex p between the
// edges toward a and b.
func vertexAngleDeg(p, a, b planarPoint) float64 {
	v1x, v1y := a.X-p.X, a.Y-p.Y
	v2x, v2y := b.X-p.X, b.Y-p.Y

	mag1 := math.Sqrt(v1x*v1x + v1y*v1y)
	mag2 := math.Sqrt(v2x*v2x + v2y*v2y)
	if mag1 == 0 || mag2 == 0 {
		return 0
	}

	cos := (v1x*v2x + v1y*v2y) / (mag1 * mag2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}
