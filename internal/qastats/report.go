package qastats

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/eros-data/landsat.qa/internal/fsutil"
	"github.com/eros-data/landsat.qa/internal/monitoring"
)

// WriteClassReport writes a standalone HTML bar chart of class populations.
func WriteClassReport(fsys fsutil.FileSystem, path, scene string, st *ClassStats) error {
	x := make([]string, 0, len(st.Counts))
	y := make([]opts.BarData, 0, len(st.Counts))
	for _, c := range st.Counts {
		x = append(x, c.Name)
		y = append(y, opts.BarData{Value: c.Count})
	}

	subtitle := fmt.Sprintf("scene=%s pixels=%d cloud_cover=%.2f%% cloud_shadow=%.2f%%",
		scene, st.Total, st.CloudCover, st.CloudShadowCover)
	return writeBarReport(fsys, path, "Class QA Populations", subtitle, x, y)
}

// WritePixelReport writes a standalone HTML bar chart of flag bit
// populations.
func WritePixelReport(fsys fsutil.FileSystem, path, scene string, st *PixelStats) error {
	x := make([]string, 0, len(st.Bits))
	y := make([]opts.BarData, 0, len(st.Bits))
	for _, b := range st.Bits {
		x = append(x, b.Name)
		y = append(y, opts.BarData{Value: b.Count})
	}

	subtitle := fmt.Sprintf("scene=%s pixels=%d cloud_cover=%.2f%%",
		scene, st.Total, st.CloudCover)
	return writeBarReport(fsys, path, "Pixel QA Populations", subtitle, x, y)
}

func writeBarReport(fsys fsutil.FileSystem, path, title, subtitle string, x []string, y []opts.BarData) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "540px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).
		AddSeries("pixels", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)

	page := components.NewPage()
	page.AddCharts(bar)

	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %v", err)
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render report: %v", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report: %v", err)
	}

	monitoring.Logf("wrote QA report %s", path)
	return nil
}
