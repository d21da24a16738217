package model

import (
	"fmt"
	"strconv"
	"strings"
)

// WKT serializes the ring as POLYGON((lng lat, lng lat, ...)) with the
// closing vertex repeated, longitude first per the geospatial convention.
func (r Ring) WKT() string {
	vs := r.vertices()
	if len(vs) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(vs)+1)
	for _, v := range vs {
		pairs = append(pairs, fmt.Sprintf("%s %s", formatCoord(v.Lng), formatCoord(v.Lat)))
	}
	pairs = append(pairs, pairs[0])

	return "POLYGON((" + strings.Join(pairs, ", ") + "))"
}

// ParseFootprint parses a POLYGON((lng lat, ...)) string back into a ring.
// Footprint text is optional upstream data, so parsing never fails hard:
// a malformed string returns ok=false and the caller treats geometry as
// unavailable (zero area and perimeter).
func ParseFootprint(s string) (Ring, bool) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "POLYGON") {
		return nil, false
	}

	open := strings.Index(s, "((")
	closeIdx := strings.LastIndex(s, "))")
	if open < 0 || closeIdx < 0 || closeIdx <= open+2 {
		return nil, false
	}

	body := s[open+2 : closeIdx]
	pairs := strings.Split(body, ",")
	if len(pairs) < 3 {
		return nil, false
	}

	ring := make(Ring, 0, len(pairs))
	for _, pair := range pairs {
		fields := strings.Fields(strings.TrimSpace(pair))
		if len(fields) != 2 {
			return nil, false
		}
		lng, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, false
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, false
		}
		ring = append(ring, Vertex{Lat: lat, Lng: lng})
	}

	// Ensure the ring is closed even if the source omitted the
	// duplicate final coordinate.
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}

	return ring, true
}

// formatCoord renders a coordinate with full precision and no trailing
// zeros, so serialize/parse round-trips reproduce the input.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
