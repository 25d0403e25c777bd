package qastats

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/eros-data/landsat.qa/internal/classqa"
	"github.com/eros-data/landsat.qa/internal/pixelqa"
)

// RowCloudClassFraction returns, for each row of a class QA band, the
// fraction of non-fill pixels classified cloud. An all-fill row reports 0.
func RowCloudClassFraction(data []uint8, nrows, ncols int) []float64 {
	rows := make([]float64, nrows)
	for r := 0; r < nrows; r++ {
		cloud, valid := 0, 0
		for _, v := range data[r*ncols : (r+1)*ncols] {
			if v == classqa.Fill {
				continue
			}
			valid++
			if v == classqa.Cloud {
				cloud++
			}
		}
		if valid > 0 {
			rows[r] = float64(cloud) / float64(valid)
		}
	}
	return rows
}

// RowCloudPixelFraction returns, for each row of a pixel QA band, the
// fraction of non-fill pixels with the cloud bit set. An all-fill row
// reports 0.
func RowCloudPixelFraction(data []uint16, nrows, ncols int) []float64 {
	rows := make([]float64, nrows)
	for r := 0; r < nrows; r++ {
		cloud, valid := 0, 0
		for _, v := range data[r*ncols : (r+1)*ncols] {
			if pixelqa.IsFill(v) {
				continue
			}
			valid++
			if pixelqa.IsCloud(v) {
				cloud++
			}
		}
		if valid > 0 {
			rows[r] = float64(cloud) / float64(valid)
		}
	}
	return rows
}

// ProfileSummary describes the distribution of per-row cloud fractions.
type ProfileSummary struct {
	Mean   float64
	StdDev float64
	P5     float64
	P50    float64
	P95    float64
}

// SummarizeProfile summarizes a per-row fraction series. An empty series
// returns the zero summary; a single row reports zero deviation.
func SummarizeProfile(rows []float64) ProfileSummary {
	if len(rows) == 0 {
		return ProfileSummary{}
	}

	sorted := make([]float64, len(rows))
	copy(sorted, rows)
	sort.Float64s(sorted)

	s := ProfileSummary{
		Mean: stat.Mean(sorted, nil),
		P5:   stat.Quantile(0.05, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P95:  stat.Quantile(0.95, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	return s
}
