// Package index implements the uniform lat/lon grid used to retrieve
// candidate campaigns for a location without scanning the whole catalog.
package index

import (
	"fmt"
	"math"
	"slices"

	"geo-bidder/internal/core/domain"
	"geo-bidder/internal/core/geo"
)

// Options tunes the grid.
type Options struct {
	// CellDegrees is the side of a cell in degrees. 0.01 is about 1.1 km of
	// latitude.
	CellDegrees float64
	// MaxCellsPerCampaign bounds how many cells one campaign may occupy.
	// Campaigns above the bound are returned by every query instead.
	MaxCellsPerCampaign int
}

// DefaultOptions returns options suited to city-scale geofences.
func DefaultOptions() Options {
	return Options{CellDegrees: 0.01, MaxCellsPerCampaign: 250_000}
}

// Grid maps cells to the campaigns whose targeting bounding boxes overlap
// them. It is built once and is read-only afterwards.
type Grid struct {
	cell      float64
	rows      int
	cols      int
	cells     map[uint64][]int32
	oversized []int32
	entries   int
}

// Stats describes the built grid.
type Stats struct {
	Cells     int
	Entries   int
	Oversized int
}

// Build indexes the targeting geometry of every campaign. Exclusions are not
// indexed: they can only remove candidates.
func Build(campaigns []domain.Campaign, opts Options) (*Grid, error) {
	if !(opts.CellDegrees > 0) || opts.CellDegrees > 90 {
		return nil, fmt.Errorf("index: cell size %v out of range (0, 90]", opts.CellDegrees)
	}
	if opts.MaxCellsPerCampaign <= 0 {
		return nil, fmt.Errorf("index: max cells per campaign must be positive, got %d", opts.MaxCellsPerCampaign)
	}

	g := &Grid{
		cell:  opts.CellDegrees,
		rows:  int(math.Ceil(180 / opts.CellDegrees)),
		cols:  int(math.Ceil(360 / opts.CellDegrees)),
		cells: make(map[uint64][]int32),
	}

	for i := range campaigns {
		boxes := targetingBounds(&campaigns[i].Targeting)
		total := 0
		for _, b := range boxes {
			total += g.cellCount(b)
		}
		if total > opts.MaxCellsPerCampaign {
			g.oversized = append(g.oversized, int32(i))
			continue
		}
		for _, b := range boxes {
			g.insert(b, int32(i))
		}
	}
	return g, nil
}

// Candidates appends to buf the indices of campaigns registered in the
// cell containing p and its eight neighbours, plus oversized campaigns. The
// result is sorted and free of duplicates.
func (g *Grid) Candidates(p domain.GeoPoint, buf []int) []int {
	buf = buf[:0]
	row, col := g.row(p.Lat), g.col(p.Lon)
	for dr := -1; dr <= 1; dr++ {
		r := row + dr
		if r < 0 || r >= g.rows {
			continue
		}
		for dc := -1; dc <= 1; dc++ {
			for _, i := range g.cells[key(r, g.wrap(col+dc))] {
				buf = append(buf, int(i))
			}
		}
	}
	for _, i := range g.oversized {
		buf = append(buf, int(i))
	}
	slices.Sort(buf)
	return slices.Compact(buf)
}

// Stats returns the size of the grid.
func (g *Grid) Stats() Stats {
	return Stats{Cells: len(g.cells), Entries: g.entries, Oversized: len(g.oversized)}
}

func targetingBounds(t *domain.Geofence) []geo.BBox {
	switch t.Kind {
	case domain.GeofenceRadius:
		return []geo.BBox{geo.RadiusBounds(t.Radius.Center, t.Radius.RadiusKm)}
	case domain.GeofencePolygon:
		return []geo.BBox{geo.RingBounds(t.Ring)}
	case domain.GeofenceMultiRadius:
		boxes := make([]geo.BBox, 0, len(t.Targets))
		for _, r := range t.Targets {
			boxes = append(boxes, geo.RadiusBounds(r.Center, r.RadiusKm))
		}
		return boxes
	default:
		return nil
	}
}

// colSpan returns the first column and the number of columns covered by b.
// The first column may be negative or past the last one; callers wrap it.
func (g *Grid) colSpan(b geo.BBox) (int, int) {
	if b.FullLon {
		return 0, g.cols
	}
	first := int(math.Floor((b.MinLon + 180) / g.cell))
	last := int(math.Floor((b.MaxLon + 180) / g.cell))
	if n := last - first + 1; n < g.cols {
		return first, n
	}
	return 0, g.cols
}

func (g *Grid) cellCount(b geo.BBox) int {
	_, n := g.colSpan(b)
	return (g.row(b.MaxLat) - g.row(b.MinLat) + 1) * n
}

func (g *Grid) insert(b geo.BBox, id int32) {
	first, n := g.colSpan(b)
	for r := g.row(b.MinLat); r <= g.row(b.MaxLat); r++ {
		for c := first; c < first+n; c++ {
			k := key(r, g.wrap(c))
			ids := g.cells[k]
			// boxes of one campaign are inserted back to back, so a repeat
			// can only be the last element
			if len(ids) > 0 && ids[len(ids)-1] == id {
				continue
			}
			g.cells[k] = append(ids, id)
			g.entries++
		}
	}
}

func (g *Grid) row(lat float64) int {
	r := int(math.Floor((lat + 90) / g.cell))
	return min(max(r, 0), g.rows-1)
}

func (g *Grid) col(lon float64) int {
	return g.wrap(int(math.Floor((lon + 180) / g.cell)))
}

func (g *Grid) wrap(c int) int {
	c %= g.cols
	if c < 0 {
		c += g.cols
	}
	return c
}

func key(row, col int) uint64 {
	return uint64(row)<<32 | uint64(uint32(col))
}
