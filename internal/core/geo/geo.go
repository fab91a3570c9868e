// Package geo holds the pure geometric primitives used for targeting:
// great-circle distance, point-in-polygon and bounding boxes.
package geo

import (
	"math"

	"geo-bidder/internal/core/domain"
)

// EarthRadiusKm is the mean Earth radius used by Distance.
const EarthRadiusKm = 6371.0

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Distance returns the great-circle distance between a and b in kilometres
// using the haversine formula.
func Distance(a, b domain.GeoPoint) float64 {
	lat1, lat2 := radians(a.Lat), radians(b.Lat)
	dLat := lat2 - lat1
	dLon := radians(b.Lon - a.Lon)

	sLat := math.Sin(dLat / 2)
	sLon := math.Sin(dLon / 2)
	h := sLat*sLat + math.Cos(lat1)*math.Cos(lat2)*sLon*sLon
	// rounding can push h marginally outside [0,1] for antipodal points
	h = math.Min(math.Max(h, 0), 1)

	return EarthRadiusKm * 2 * math.Asin(math.Sqrt(h))
}

// PointInPolygon reports whether p lies inside the implicitly closed ring,
// using even-odd ray casting along the longitude axis.
//
// An edge is considered when min(lon) < p.Lon <= max(lon). The half-open
// interval counts a vertex shared by two edges exactly once. For a
// considered edge the edge latitude at p.Lon is computed and parity flips
// when p.Lat is at or below it; edges of constant latitude use that
// latitude directly. Points on the boundary may fall on either side.
func PointInPolygon(p domain.GeoPoint, ring []domain.GeoPoint) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	inside := false
	prev := ring[n-1]
	for _, cur := range ring {
		// order endpoints by longitude so the result does not depend on the
		// traversal direction of the ring
		a, b := prev, cur
		if a.Lon > b.Lon {
			a, b = b, a
		}
		prev = cur

		if p.Lon <= a.Lon || p.Lon > b.Lon {
			continue
		}
		if p.Lat > math.Max(a.Lat, b.Lat) {
			continue
		}

		crossLat := a.Lat
		if a.Lat != b.Lat {
			crossLat = a.Lat + (p.Lon-a.Lon)*(b.Lat-a.Lat)/(b.Lon-a.Lon)
		}
		if p.Lat <= crossLat {
			inside = !inside
		}
	}
	return inside
}
