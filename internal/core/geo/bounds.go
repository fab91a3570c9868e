package geo

import (
	"math"

	"geo-bidder/internal/core/domain"
)

// BBox is a latitude/longitude bounding box in degrees. MinLon and MaxLon
// may extend past ±180 when the box crosses the antimeridian; consumers
// wrap them. FullLon marks boxes that span every longitude.
type BBox struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
	FullLon        bool
}

// RadiusBounds returns the smallest box containing every point within km of
// center. The longitude half-width is asin(sin(d)/cos(lat)), which is exact
// for a spherical cap; a cap reaching a pole spans all longitudes.
func RadiusBounds(center domain.GeoPoint, km float64) BBox {
	d := km / EarthRadiusKm
	dLat := degrees(d)

	b := BBox{
		MinLat: center.Lat - dLat,
		MaxLat: center.Lat + dLat,
	}
	if b.MinLat <= -90 || b.MaxLat >= 90 || d >= math.Pi/2 {
		b.MinLat = math.Max(b.MinLat, -90)
		b.MaxLat = math.Min(b.MaxLat, 90)
		return b.fullLon()
	}

	s := math.Sin(d) / math.Cos(radians(center.Lat))
	if s >= 1 {
		return b.fullLon()
	}
	dLon := degrees(math.Asin(s))
	b.MinLon = center.Lon - dLon
	b.MaxLon = center.Lon + dLon
	return b
}

// RingBounds returns the min/max box of the ring's vertices.
func RingBounds(ring []domain.GeoPoint) BBox {
	if len(ring) == 0 {
		return BBox{}
	}
	b := BBox{
		MinLat: ring[0].Lat, MaxLat: ring[0].Lat,
		MinLon: ring[0].Lon, MaxLon: ring[0].Lon,
	}
	for _, p := range ring[1:] {
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
		b.MinLon = math.Min(b.MinLon, p.Lon)
		b.MaxLon = math.Max(b.MaxLon, p.Lon)
	}
	return b
}

// Contains reports whether p lies inside b, taking antimeridian wrapping
// into account.
func (b BBox) Contains(p domain.GeoPoint) bool {
	if p.Lat < b.MinLat || p.Lat > b.MaxLat {
		return false
	}
	if b.FullLon {
		return true
	}
	for _, shift := range [...]float64{0, -360, 360} {
		lon := p.Lon + shift
		if lon >= b.MinLon && lon <= b.MaxLon {
			return true
		}
	}
	return false
}

func (b BBox) fullLon() BBox {
	b.MinLon, b.MaxLon, b.FullLon = -180, 180, true
	return b
}
