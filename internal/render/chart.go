package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/gridcells/internal/fsutil"
	"github.com/banshee-data/gridcells/internal/grid"
	"github.com/banshee-data/gridcells/internal/monitoring"
)

// ChartHTML renders cells as an interactive scatter chart, one series per
// segment id, and writes the page to path. It returns the number of points
// drawn; when nothing can be drawn no file is written.
func ChartHTML(fsys fsutil.FileSystem, path string, cells []grid.Cell) (int, error) {
	points, skipped := Points(cells)
	if skipped > 0 {
		monitoring.Logf("chart: %d cells with non-integer coordinates left out", skipped)
	}
	if len(points) == 0 {
		return 0, nil
	}

	ids, groups := bySegment(points)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Grid coverage", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Grid coverage", Subtitle: fmt.Sprintf("segments=%d cells=%d", len(ids), len(points))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Column", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Row", NameLocation: "middle", NameGap: 30}),
	)

	colors := generateColors(len(ids))
	for i, id := range ids {
		pts := groups[id]
		data := make([]opts.ScatterData, 0, len(pts))
		for _, pt := range pts {
			data = append(data, opts.ScatterData{Value: []interface{}{pt.Col, pt.Row}})
		}
		scatter.AddSeries(id, data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 10}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hexColor(colors[i])}),
		)
	}

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		return 0, fmt.Errorf("render chart: %w", err)
	}
	if err := ensureDir(fsys, path); err != nil {
		return 0, fmt.Errorf("create chart dir: %w", err)
	}
	if err := fsys.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return 0, fmt.Errorf("write chart: %w", err)
	}
	return len(points), nil
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
