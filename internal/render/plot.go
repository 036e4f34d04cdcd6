package render

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/banshee-data/gridcells/internal/fsutil"
	"github.com/banshee-data/gridcells/internal/grid"
	"github.com/banshee-data/gridcells/internal/monitoring"
)

const plotSize = 8 * vg.Inch

// PlotPNG draws cells as a scatter plot with one series per segment id and
// writes it to path as PNG. Rows grow downwards. It returns the number of
// points drawn; when nothing can be drawn no file is written.
func PlotPNG(fsys fsutil.FileSystem, path string, cells []grid.Cell) (int, error) {
	points, skipped := Points(cells)
	if skipped > 0 {
		monitoring.Logf("plot: %d cells with non-integer coordinates left out", skipped)
	}
	if len(points) == 0 {
		return 0, nil
	}

	p := plot.New()
	p.Title.Text = "Grid coverage"
	p.X.Label.Text = "Column"
	p.Y.Label.Text = "Row"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())

	ids, groups := bySegment(points)
	colors := generateColors(len(ids))
	for i, id := range ids {
		pts := groups[id]
		xys := make(plotter.XYs, len(pts))
		for j, pt := range pts {
			xys[j] = plotter.XY{X: float64(pt.Col), Y: float64(pt.Row)}
		}

		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return 0, fmt.Errorf("segment %s: %w", id, err)
		}
		sc.GlyphStyle.Color = colors[i]
		sc.GlyphStyle.Shape = draw.BoxGlyph{}
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
		p.Legend.Add(id, sc)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	wt, err := p.WriterTo(plotSize, plotSize, "png")
	if err != nil {
		return 0, fmt.Errorf("render plot: %w", err)
	}
	if err := ensureDir(fsys, path); err != nil {
		return 0, fmt.Errorf("create plot dir: %w", err)
	}
	w, err := fsys.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create plot file: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		w.Close()
		return 0, fmt.Errorf("write plot: %w", err)
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("close plot: %w", err)
	}
	return len(points), nil
}
