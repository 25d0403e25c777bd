// Package dilate grows a target class value or mask bit across neighboring
// pixels of a QA raster. Every pixel whose square window of radius distance
// (Chebyshev distance) contains a match becomes a match itself; fill pixels
// pass through untouched on both the read and write side. Two passes at
// distance d are not equivalent to one pass at 2d: fill gaps block repeated
// growth that a wider window would see across. The scan is row-parallel:
// rows depend only on the read-only input, so worker goroutines never share
// mutable state.
package dilate

import (
	"runtime"
	"sync"

	"github.com/eros-data/landsat.qa/internal/classqa"
	"github.com/eros-data/landsat.qa/internal/pixelqa"
)

// ClassValue dilates one class value of a scalar class QA raster and
// returns a fresh output raster of the same shape. The input is never
// modified. workers <= 0 uses one worker per CPU.
func ClassValue(input []uint8, searchValue uint8, distance, nrows, ncols, workers int) []uint8 {
	output := make([]uint8, len(input))
	forEachRows(nrows, workers, func(r0, r1 int) {
		for row := r0; row < r1; row++ {
			rowIndex := row * ncols
			for col := 0; col < ncols; col++ {
				i := rowIndex + col
				v := input[i]
				if v == classqa.Fill {
					output[i] = classqa.Fill
					continue
				}
				// the window trivially contains its own center
				if v == searchValue {
					output[i] = searchValue
					continue
				}
				if classWindowMatch(input, searchValue, distance, nrows, ncols, row, col) {
					output[i] = searchValue
				} else {
					output[i] = v
				}
			}
		}
	})
	return output
}

// PixelBit dilates one bit of a bit-packed pixel QA raster and returns a
// fresh output raster of the same shape. A matched pixel gets the bit
// OR-ed in; dilating the cloud bit additionally clears the clear and cloud
// shadow bits on every matched pixel, since those contradict cloud. The
// input is never modified. workers <= 0 uses one worker per CPU.
func PixelBit(input []uint16, searchBit, distance, nrows, ncols, workers int) []uint16 {
	mask := uint16(1) << searchBit
	clean := ^uint16(0)
	if searchBit == pixelqa.BitCloud {
		clean &^= 1 << pixelqa.BitClear
		clean &^= 1 << pixelqa.BitCloudShadow
	}

	output := make([]uint16, len(input))
	forEachRows(nrows, workers, func(r0, r1 int) {
		for row := r0; row < r1; row++ {
			rowIndex := row * ncols
			for col := 0; col < ncols; col++ {
				i := rowIndex + col
				v := input[i]
				if pixelqa.IsFill(v) {
					output[i] = v
					continue
				}
				if bitWindowMatch(input, mask, distance, nrows, ncols, row, col) {
					output[i] = (v | mask) & clean
				} else {
					output[i] = v
				}
			}
		}
	})
	return output
}

// classWindowMatch reports whether any in-bounds cell of the window around
// (row,col) equals the search value. The scan stops at the first match.
func classWindowMatch(input []uint8, searchValue uint8, distance, nrows, ncols, row, col int) bool {
	r0, r1 := clampWindow(row, distance, nrows)
	c0, c1 := clampWindow(col, distance, ncols)
	for wr := r0; wr <= r1; wr++ {
		base := wr * ncols
		for wc := c0; wc <= c1; wc++ {
			if input[base+wc] == searchValue {
				return true
			}
		}
	}
	return false
}

// bitWindowMatch reports whether any in-bounds cell of the window around
// (row,col) has the mask bit set. The scan stops at the first match.
func bitWindowMatch(input []uint16, mask uint16, distance, nrows, ncols, row, col int) bool {
	r0, r1 := clampWindow(row, distance, nrows)
	c0, c1 := clampWindow(col, distance, ncols)
	for wr := r0; wr <= r1; wr++ {
		base := wr * ncols
		for wc := c0; wc <= c1; wc++ {
			if input[base+wc]&mask != 0 {
				return true
			}
		}
	}
	return false
}

// clampWindow returns the in-bounds [lo,hi] index range of a window of
// radius distance centered at center, for an axis of length n. Cells past
// the raster edge are simply not scanned.
func clampWindow(center, distance, n int) (lo, hi int) {
	lo = center - distance
	if lo < 0 {
		lo = 0
	}
	hi = center + distance
	if hi > n-1 {
		hi = n - 1
	}
	return lo, hi
}

// forEachRows runs fn over [0,nrows) split into contiguous row blocks, one
// per worker goroutine. The only coordination is the final wait; each block
// writes a disjoint slice of the output.
func forEachRows(nrows, workers int, fn func(r0, r1 int)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > nrows {
		workers = nrows
	}
	if workers <= 1 {
		fn(0, nrows)
		return
	}

	chunk := (nrows + workers - 1) / workers
	var wg sync.WaitGroup
	for r0 := 0; r0 < nrows; r0 += chunk {
		r1 := r0 + chunk
		if r1 > nrows {
			r1 = nrows
		}
		wg.Add(1)
		go func(r0, r1 int) {
			defer wg.Done()
			fn(r0, r1)
		}(r0, r1)
	}
	wg.Wait()
}
