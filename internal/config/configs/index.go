package configs

// Index tunes the uniform grid. 0.01 degrees is about 1.1 km of latitude.
type Index struct {
	CellDegrees         float64 `env:"CELL_DEGREES" envDefault:"0.01"`
	MaxCellsPerGeofence int     `env:"MAX_CELLS_PER_GEOFENCE" envDefault:"250000"`
}
