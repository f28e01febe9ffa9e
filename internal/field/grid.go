package field

import (
	"math"

	"github.com/kamstrup/intmap"
)

// grid buckets particle indices into square cells one threshold wide, so a
// particle only needs comparing against its own and the eight adjacent
// cells. Pairs and opacities match the exhaustive pass exactly.
type grid struct {
	cells *intmap.Map[uint64, []int]
	keys  []uint64
}

func newGrid() *grid {
	return &grid{cells: intmap.New[uint64, []int](128)}
}

func cellKey(cx, cy int32) uint64 {
	return uint64(uint32(cx))<<32 | uint64(uint32(cy))
}

func (g *grid) cellOf(p Particle, size float64) (int32, int32) {
	return int32(math.Floor(p.X / size)), int32(math.Floor(p.Y / size))
}

func (g *grid) rebuild(f *Field) {
	g.cells.Clear()
	g.keys = g.keys[:0]
	for i, p := range f.Particles {
		cx, cy := g.cellOf(p, f.threshold)
		k := cellKey(cx, cy)
		bucket, ok := g.cells.Get(k)
		if !ok {
			g.keys = append(g.keys, k)
		}
		g.cells.Put(k, append(bucket, i))
	}
}

func (g *grid) connections(f *Field, fn func(Connection)) {
	g.rebuild(f)
	for a, p := range f.Particles {
		cx, cy := g.cellOf(p, f.threshold)
		for ox := int32(-1); ox <= 1; ox++ {
			for oy := int32(-1); oy <= 1; oy++ {
				bucket, ok := g.cells.Get(cellKey(cx+ox, cy+oy))
				if !ok {
					continue
				}
				for _, b := range bucket {
					if b > a {
						f.pair(a, b, fn)
					}
				}
			}
		}
	}
}

// occupied is the number of non-empty cells after the last rebuild.
func (g *grid) occupied() int { return len(g.keys) }
