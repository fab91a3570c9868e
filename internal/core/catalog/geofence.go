package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"geo-bidder/internal/core/domain"
)

func convertGeofence(r GeofenceRecord) (domain.Geofence, error) {
	switch strings.ToLower(strings.TrimSpace(r.Type)) {
	case "radius":
		rad, err := convertRadius(r.Center, r.RadiusKm)
		if err != nil {
			return domain.Geofence{}, err
		}
		return domain.NewRadius(rad.Center, rad.RadiusKm), nil

	case "polygon":
		ring, err := convertRing(r.Coords)
		if err != nil {
			return domain.Geofence{}, err
		}
		return domain.NewPolygon(ring), nil

	case "multi_radius":
		if len(r.Targets) == 0 {
			return domain.Geofence{}, errors.New("multi_radius needs at least one target")
		}
		targets := make([]domain.Radius, 0, len(r.Targets))
		for i, t := range r.Targets {
			rad, err := convertRadius(t.Center, t.RadiusKm)
			if err != nil {
				return domain.Geofence{}, fmt.Errorf("targets[%d]: %w", i, err)
			}
			targets = append(targets, rad)
		}
		return domain.NewMultiRadius(targets...), nil

	default:
		return domain.Geofence{}, fmt.Errorf("unknown geofence type %q", r.Type)
	}
}

func convertRadius(center *PointRecord, km float64) (domain.Radius, error) {
	if center == nil {
		return domain.Radius{}, errors.New("radius without center")
	}
	p := domain.GeoPoint{Lat: center.Lat, Lon: center.Lon}
	if !p.Valid() {
		return domain.Radius{}, fmt.Errorf("center %v,%v out of range", p.Lat, p.Lon)
	}
	if !(km > 0) || math.IsInf(km, 0) {
		return domain.Radius{}, fmt.Errorf("radius_km must be positive, got %v", km)
	}
	return domain.Radius{Center: p, RadiusKm: km}, nil
}

// convertRing turns [lat, lon] pairs into a ring. A closing vertex equal to
// the first one is dropped since rings are implicitly closed.
func convertRing(coords [][]float64) ([]domain.GeoPoint, error) {
	ring := make([]domain.GeoPoint, 0, len(coords))
	for i, pair := range coords {
		if len(pair) != 2 {
			return nil, fmt.Errorf("coords[%d]: want [lat, lon], got %d values", i, len(pair))
		}
		p := domain.GeoPoint{Lat: pair[0], Lon: pair[1]}
		if !p.Valid() {
			return nil, fmt.Errorf("coords[%d]: %v,%v out of range", i, p.Lat, p.Lon)
		}
		ring = append(ring, p)
	}
	if n := len(ring); n > 1 && ring[0] == ring[n-1] {
		ring = ring[:n-1]
	}

	distinct := make(map[domain.GeoPoint]struct{}, len(ring))
	for _, p := range ring {
		distinct[p] = struct{}{}
	}
	if len(distinct) < 3 {
		return nil, fmt.Errorf("polygon needs at least 3 distinct vertices, got %d", len(distinct))
	}
	return ring, nil
}
