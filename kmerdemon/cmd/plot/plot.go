// Copyright © 2023-2026 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package plot renders k-mer abundance histograms.
package plot

import (
	"fmt"
	"image/color"

	"github.com/pkg/errors"
	"github.com/twotwotwo/sorts/sortutil"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Options contains the parameters of plotting.
type Options struct {
	Width  vg.Length
	Height vg.Length

	// MaxAbundance limits the range of abundances, 0 for no limit.
	MaxAbundance int

	FillColor color.Color
}

// DefaultOptions is the default options.
var DefaultOptions = Options{
	Width:     10 * vg.Inch,
	Height:    6 * vg.Inch,
	FillColor: color.RGBA{R: 31, G: 119, B: 180, A: 255},
}

// Histogram plots a k-mer abundance histogram, i.e., a map of abundances
// to numbers of distinct k-mers, with a log-scaled Y axis, and saves it
// to file. The image format is decided by the file extension,
// e.g., .png, .svg, .pdf.
func Histogram(h map[int]int, k int, file string, opt *Options) error {
	if opt == nil {
		opt = &DefaultOptions
	}

	as := make([]int, 0, len(h))
	for a, f := range h {
		if f <= 0 || a <= 0 {
			continue
		}
		if opt.MaxAbundance > 0 && a > opt.MaxAbundance {
			continue
		}
		as = append(as, a)
	}
	if len(as) == 0 {
		return errors.Errorf("no data to plot for k=%d", k)
	}
	sortutil.Ints(as)

	bins := make([]plotter.HistogramBin, len(as))
	for i, a := range as {
		bins[i] = plotter.HistogramBin{
			Min:    float64(a) - 0.5,
			Max:    float64(a) + 0.5,
			Weight: float64(h[a]),
		}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("K-mer Abundance Histogram for k=%d", k)
	p.X.Label.Text = "K-mer Abundance"
	p.Y.Label.Text = "Frequency"

	hist := &plotter.Histogram{
		Bins:      bins,
		Width:     1,
		FillColor: opt.FillColor,
		LineStyle: plotter.DefaultLineStyle,
		LogY:      true,
	}
	hist.LineStyle.Color = color.Black
	p.Add(hist)

	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}

	if err := p.Save(opt.Width, opt.Height, file); err != nil {
		return errors.Wrapf(err, "failed to save plot: %s", file)
	}
	return nil
}
