package geo

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geo-bidder/internal/core/domain"
)

var paulista = domain.GeoPoint{Lat: -23.5613, Lon: -46.6563}

// destination returns the point reached from start after travelling km along
// the initial bearing (degrees).
func destination(start domain.GeoPoint, bearing, km float64) domain.GeoPoint {
	d := km / EarthRadiusKm
	th := radians(bearing)
	lat1, lon1 := radians(start.Lat), radians(start.Lon)
	lat2 := math.Asin(math.Sin(lat1)*math.Cos(d) + math.Cos(lat1)*math.Sin(d)*math.Cos(th))
	lon2 := lon1 + math.Atan2(math.Sin(th)*math.Sin(d)*math.Cos(lat1), math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))
	lon := degrees(lon2)
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return domain.GeoPoint{Lat: degrees(lat2), Lon: lon}
}

// hexagon builds a ring the way the dataset generator does.
func hexagon(center domain.GeoPoint, km float64, sides int) []domain.GeoPoint {
	ring := make([]domain.GeoPoint, 0, sides)
	for i := 0; i < sides; i++ {
		angle := 2 * math.Pi * float64(i) / float64(sides)
		ring = append(ring, domain.GeoPoint{
			Lat: center.Lat + (km/111.0)*math.Cos(angle),
			Lon: center.Lon + (km/(111.0*math.Cos(radians(center.Lat))))*math.Sin(angle),
		})
	}
	return ring
}

func TestDistanceKnownValues(t *testing.T) {
	oneDegree := EarthRadiusKm * math.Pi / 180

	tests := []struct {
		name string
		a, b domain.GeoPoint
		want float64
	}{
		{"same point", paulista, paulista, 0},
		{"one degree on equator", domain.GeoPoint{}, domain.GeoPoint{Lon: 1}, oneDegree},
		{"one degree on meridian", domain.GeoPoint{Lat: 10}, domain.GeoPoint{Lat: 11}, oneDegree},
		{"quarter meridian", domain.GeoPoint{}, domain.GeoPoint{Lat: 90}, EarthRadiusKm * math.Pi / 2},
		{"antipodal", domain.GeoPoint{}, domain.GeoPoint{Lon: 180}, EarthRadiusKm * math.Pi},
		{"across antimeridian", domain.GeoPoint{Lon: 179.5}, domain.GeoPoint{Lon: -179.5}, oneDegree},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			assert.InEpsilon(t, tt.want+1, got+1, 1e-9)
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a := domain.GeoPoint{Lat: r.Float64()*180 - 90, Lon: r.Float64()*360 - 180}
		b := domain.GeoPoint{Lat: r.Float64()*180 - 90, Lon: r.Float64()*360 - 180}
		require.Equal(t, Distance(a, b), Distance(b, a))
	}
}

func TestDistanceMatchesDestination(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		km := r.Float64() * 50
		p := destination(paulista, r.Float64()*360, km)
		require.InDelta(t, km, Distance(paulista, p), 1e-6)
	}
}

func TestPointInPolygonConvex(t *testing.T) {
	for _, sides := range []int{4, 5, 6, 8} {
		ring := hexagon(paulista, 2, sides)
		assert.True(t, PointInPolygon(paulista, ring), "centroid of %d-gon", sides)
		assert.False(t, PointInPolygon(domain.GeoPoint{Lat: paulista.Lat + 1, Lon: paulista.Lon}, ring))
		assert.False(t, PointInPolygon(domain.GeoPoint{Lat: paulista.Lat, Lon: paulista.Lon - 1}, ring))
		assert.False(t, PointInPolygon(domain.GeoPoint{Lat: 60, Lon: 100}, ring))
	}
}

func TestPointInPolygonHorizontalEdges(t *testing.T) {
	// axis-aligned square: two edges of constant latitude, two of constant longitude
	square := []domain.GeoPoint{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 1},
		{Lat: 1, Lon: 1},
		{Lat: 1, Lon: 0},
	}
	assert.True(t, PointInPolygon(domain.GeoPoint{Lat: 0.5, Lon: 0.5}, square))
	assert.True(t, PointInPolygon(domain.GeoPoint{Lat: 0.999, Lon: 0.001}, square))
	assert.False(t, PointInPolygon(domain.GeoPoint{Lat: 1.5, Lon: 0.5}, square))
	assert.False(t, PointInPolygon(domain.GeoPoint{Lat: -0.5, Lon: 0.5}, square))
	assert.False(t, PointInPolygon(domain.GeoPoint{Lat: 0.5, Lon: 1.5}, square))
	// starting the ring on a constant-latitude edge changes nothing
	rotated := append(slices.Clone(square[1:]), square[0])
	assert.True(t, PointInPolygon(domain.GeoPoint{Lat: 0.5, Lon: 0.5}, rotated))
}

func TestPointInPolygonConcave(t *testing.T) {
	// L shape opening to the north-east
	ring := []domain.GeoPoint{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 2},
		{Lat: 1, Lon: 2},
		{Lat: 1, Lon: 1},
		{Lat: 2, Lon: 1},
		{Lat: 2, Lon: 0},
	}
	assert.True(t, PointInPolygon(domain.GeoPoint{Lat: 0.5, Lon: 1.5}, ring))
	assert.True(t, PointInPolygon(domain.GeoPoint{Lat: 1.5, Lon: 0.5}, ring))
	assert.False(t, PointInPolygon(domain.GeoPoint{Lat: 1.5, Lon: 1.5}, ring))
}

func TestPointInPolygonDirectionInvariant(t *testing.T) {
	rings := [][]domain.GeoPoint{
		hexagon(paulista, 3, 6),
		hexagon(paulista, 1, 5),
		{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 2}, {Lat: 1, Lon: 2}, {Lat: 1, Lon: 1}, {Lat: 2, Lon: 1}, {Lat: 2, Lon: 0}},
	}
	r := rand.New(rand.NewSource(3))
	for _, ring := range rings {
		reversed := slices.Clone(ring)
		slices.Reverse(reversed)
		box := RingBounds(ring)
		for i := 0; i < 2000; i++ {
			p := domain.GeoPoint{
				Lat: box.MinLat - 0.01 + r.Float64()*(box.MaxLat-box.MinLat+0.02),
				Lon: box.MinLon - 0.01 + r.Float64()*(box.MaxLon-box.MinLon+0.02),
			}
			require.Equal(t, PointInPolygon(p, ring), PointInPolygon(p, reversed), "point %+v", p)
		}
	}
}

func TestPointInPolygonDegenerate(t *testing.T) {
	assert.False(t, PointInPolygon(paulista, nil))
	assert.False(t, PointInPolygon(paulista, []domain.GeoPoint{paulista, {Lat: 0, Lon: 0}}))
}

func TestRadiusBoundsContainsCap(t *testing.T) {
	centers := []domain.GeoPoint{
		paulista,
		{Lat: 0, Lon: 0},
		{Lat: 70, Lon: 20},
		{Lat: -85, Lon: -120},
		{Lat: 10, Lon: 179.9},
	}
	r := rand.New(rand.NewSource(5))
	for _, c := range centers {
		for _, km := range []float64{0.5, 10, 500} {
			box := RadiusBounds(c, km)
			for i := 0; i < 500; i++ {
				p := destination(c, r.Float64()*360, km*0.999*r.Float64())
				require.True(t, box.Contains(p), "center %+v km %v point %+v box %+v", c, km, p, box)
			}
		}
	}
}

func TestRadiusBoundsPole(t *testing.T) {
	box := RadiusBounds(domain.GeoPoint{Lat: 89.9, Lon: 10}, 50)
	assert.True(t, box.FullLon)
	assert.Equal(t, 90.0, box.MaxLat)

	box = RadiusBounds(paulista, 1)
	assert.False(t, box.FullLon)
	assert.InDelta(t, 1/111.19, box.MaxLat-paulista.Lat, 1e-4)
	assert.Greater(t, box.MaxLon-paulista.Lon, box.MaxLat-paulista.Lat)
}

func TestRingBounds(t *testing.T) {
	box := RingBounds([]domain.GeoPoint{{Lat: 1, Lon: 5}, {Lat: -2, Lon: 3}, {Lat: 0, Lon: 7}})
	assert.Equal(t, BBox{MinLat: -2, MinLon: 3, MaxLat: 1, MaxLon: 7}, box)
}
