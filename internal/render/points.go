// Package render draws the cells of a run as a coverage plot (PNG, via
// gonum/plot) or an interactive chart (HTML, via go-echarts).
package render

import (
	"image/color"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/banshee-data/gridcells/internal/fsutil"
	"github.com/banshee-data/gridcells/internal/grid"
)

// Point is a cell projected onto integer coordinates.
type Point struct {
	Row int
	Col int
	ID  string
}

// Points projects cells onto integer coordinates in emission order. Cells
// whose row or column text is not an integer cannot be placed and are
// counted in skipped instead.
func Points(cells []grid.Cell) (points []Point, skipped int) {
	for _, c := range cells {
		row, err := strconv.Atoi(strings.TrimSpace(c.Row))
		if err != nil {
			skipped++
			continue
		}
		col, err := strconv.Atoi(strings.TrimSpace(c.Col))
		if err != nil {
			skipped++
			continue
		}
		points = append(points, Point{Row: row, Col: col, ID: c.ID})
	}
	return points, skipped
}

// bySegment groups points by segment id. The ids come back sorted so series
// and colours are stable between runs.
func bySegment(points []Point) ([]string, map[string][]Point) {
	groups := make(map[string][]Point)
	for _, p := range points {
		groups[p.ID] = append(groups[p.ID], p)
	}
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, groups
}

// ensureDir creates the parent directory of path.
func ensureDir(fsys fsutil.FileSystem, path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "/" {
		return nil
	}
	return fsys.MkdirAll(dir, 0755)
}

// generateColors spreads n colours evenly around the hue circle.
func generateColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
