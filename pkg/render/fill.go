package render

import "sync"

// DefaultFillWorkers is the worker count used by ParallelFill when
// Workers is not positive.
const DefaultFillWorkers = 4

// FillStrategy scan-converts one triangle into a framebuffer and returns
// the number of pixels written.
type FillStrategy interface {
	Fill(fb *Framebuffer, tex *Texture, tri *ScreenTriangle) int
}

// SerialFill scans every row on the calling goroutine.
type SerialFill struct{}

// Fill implements FillStrategy.
func (SerialFill) Fill(fb *Framebuffer, tex *Texture, tri *ScreenTriangle) int {
	return tri.ScanRows(fb, tex, 0, 1)
}

// ParallelFill interleaves rows across Workers goroutines: worker k takes
// rows MinY+k, MinY+k+Workers, and so on. Rows are disjoint, so the output
// is identical to SerialFill.
type ParallelFill struct {
	Workers int
}

// Fill implements FillStrategy. It returns after every worker has finished.
func (p ParallelFill) Fill(fb *Framebuffer, tex *Texture, tri *ScreenTriangle) int {
	n := p.Workers
	if n <= 0 {
		n = DefaultFillWorkers
	}
	if rows := tri.MaxY - tri.MinY; rows < n {
		n = max(rows, 1)
	}
	if n == 1 {
		return tri.ScanRows(fb, tex, 0, 1)
	}

	counts := make([]int, n)
	var wg sync.WaitGroup
	for k := range n {
		wg.Go(func() {
			counts[k] = tri.ScanRows(fb, tex, k, n)
		})
	}
	wg.Wait()

	total := 0
	for _, c := range counts {
		total += c
	}
	return total
}
