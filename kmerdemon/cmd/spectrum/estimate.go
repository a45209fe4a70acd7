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
	"github.com/pkg/errors"
)

// Estimate is a genome size estimate.
type Estimate struct {
	TotalKmers  int     // total k-mer occurrences
	Coverage    int     // coverage proxy, the dominant abundance of the histogram
	UniqueKmers int     // informative k-mer count reported by selection
	GenomeSize  float64 // TotalKmers / Coverage
}

// EstimateGenomeSize estimates genome size from a k-mer abundance histogram,
// as total k-mer occurrences divided by the coverage proxy, i.e.,
// Histogram.Mode(). uniqueKmers is only carried into the result.
//
// An error wrapping ErrEstimation is returned for an empty histogram or
// a zero coverage proxy.
func EstimateGenomeSize(h Histogram, uniqueKmers int) (*Estimate, error) {
	if len(h) == 0 {
		return nil, errors.Wrap(ErrEstimation, "empty histogram")
	}

	total := h.Total()
	if total <= 0 {
		return nil, errors.Wrap(ErrEstimation, "no k-mers in histogram")
	}

	cov := h.Mode()
	if cov <= 0 {
		return nil, errors.Wrapf(ErrEstimation, "invalid coverage proxy: %d", cov)
	}

	return &Estimate{
		TotalKmers:  total,
		Coverage:    cov,
		UniqueKmers: uniqueKmers,
		GenomeSize:  float64(total) / float64(cov),
	}, nil
}
