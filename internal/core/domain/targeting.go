package domain

// GeofenceKind tags the variant held by a Geofence.
type GeofenceKind uint8

const (
	GeofenceRadius GeofenceKind = iota + 1
	GeofencePolygon
	GeofenceMultiRadius
)

// String returns the catalog tag of the kind.
func (k GeofenceKind) String() string {
	switch k {
	case GeofenceRadius:
		return "radius"
	case GeofencePolygon:
		return "polygon"
	case GeofenceMultiRadius:
		return "multi_radius"
	default:
		return "unknown"
	}
}

// Radius matches every point whose great-circle distance to Center is at
// most RadiusKm.
type Radius struct {
	Center   GeoPoint
	RadiusKm float64
}

// Geofence is a targeting or exclusion region. Exactly one variant is
// populated, selected by Kind:
//
//	GeofenceRadius      -> Radius
//	GeofencePolygon     -> Ring (implicitly closed, at least 3 distinct vertices)
//	GeofenceMultiRadius -> Targets (matches if any member matches)
//
// Geofences are built by the catalog and never modified afterwards.
type Geofence struct {
	Kind    GeofenceKind
	Radius  Radius
	Ring    []GeoPoint
	Targets []Radius
}

// NewRadius returns a radius geofence.
func NewRadius(center GeoPoint, km float64) Geofence {
	return Geofence{Kind: GeofenceRadius, Radius: Radius{Center: center, RadiusKm: km}}
}

// NewPolygon returns a polygon geofence over ring.
func NewPolygon(ring []GeoPoint) Geofence {
	return Geofence{Kind: GeofencePolygon, Ring: ring}
}

// NewMultiRadius returns a geofence matching any of targets.
func NewMultiRadius(targets ...Radius) Geofence {
	return Geofence{Kind: GeofenceMultiRadius, Targets: targets}
}
