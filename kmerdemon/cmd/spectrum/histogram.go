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

package spectrum

import (
	"github.com/twotwotwo/sorts/sortutil"
	"gonum.org/v1/gonum/stat"
)

// Histogram is a k-mer abundance histogram. It maps an abundance,
// i.e., the occurrence count of a k-mer, to the number of distinct k-mers
// with that abundance.
type Histogram map[int]int

// NewHistogram collapses a frequency table into a new Histogram.
//
// For any table t, NewHistogram(t).Total() == t.Total() and
// NewHistogram(t).Distinct() == t.Distinct().
func NewHistogram(t *Table) Histogram {
	h := make(Histogram, 128)
	for _, n := range t.codes {
		h[n]++
	}
	for _, n := range t.mers {
		h[n]++
	}
	return h
}

// Total returns the total number of k-mer occurrences,
// i.e., sum(abundance * frequency).
func (h Histogram) Total() int {
	var n int
	for a, f := range h {
		n += a * f
	}
	return n
}

// Distinct returns the number of distinct k-mers, i.e., sum(frequency).
func (h Histogram) Distinct() int {
	var n int
	for _, f := range h {
		n += f
	}
	return n
}

// NonSingleton returns the number of distinct k-mers occurring more than once.
func (h Histogram) NonSingleton() int {
	var n int
	for a, f := range h {
		if a > 1 {
			n += f
		}
	}
	return n
}

// Mode returns the abundance shared by the most distinct k-mers.
// The smallest abundance wins ties. 0 is returned for an empty histogram.
func (h Histogram) Mode() int {
	var mode, max int
	for _, a := range h.Abundances() {
		if h[a] > max {
			mode, max = a, h[a]
		}
	}
	return mode
}

// Abundances returns all abundances in ascending order.
func (h Histogram) Abundances() []int {
	as := make([]int, 0, len(h))
	for a := range h {
		as = append(as, a)
	}
	sortutil.Ints(as)
	return as
}

// Summary returns the mean and standard deviation of k-mer abundances,
// weighted by frequencies.
func (h Histogram) Summary() (mean, stdev float64) {
	if len(h) == 0 {
		return 0, 0
	}
	as := h.Abundances()
	x := make([]float64, len(as))
	w := make([]float64, len(as))
	for i, a := range as {
		x[i] = float64(a)
		w[i] = float64(h[a])
	}
	if h.Distinct() < 2 {
		return stat.Mean(x, w), 0
	}
	return stat.MeanStdDev(x, w)
}

// Clone returns a copy of the histogram.
func (h Histogram) Clone() Histogram {
	h2 := make(Histogram, len(h))
	for a, f := range h {
		h2[a] = f
	}
	return h2
}
