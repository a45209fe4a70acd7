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
	"sync"

	"github.com/pkg/errors"
)

// Sweep computes the spectra of candidate k-mer sizes for a sample,
// with at most threads candidates in parallel.
// Spectra are returned in the same order as candidates, whatever the
// completion order is.
//
// A candidate without any k-mer gets a Spectrum with Err wrapping
// ErrInsufficientData, other candidates are not affected.
//
// onDone, if not nil, is called after each candidate is finished,
// calls are serialized.
//
// A frequency table is released right after its histogram is built,
// so peak memory is about threads tables.
func Sweep(sample []string, candidates []int, threads int, onDone func(*Spectrum)) []*Spectrum {
	if threads < 1 {
		threads = 1
	}

	spectra := make([]*Spectrum, len(candidates))

	var mu sync.Mutex
	var wg sync.WaitGroup
	tokens := make(chan int, threads)
	for i, k := range candidates {
		tokens <- 1
		wg.Add(1)

		go func(i, k int) {
			defer func() {
				wg.Done()
				<-tokens
			}()

			s := ComputeSpectrum(sample, k)
			spectra[i] = s

			if onDone != nil {
				mu.Lock()
				onDone(s)
				mu.Unlock()
			}
		}(i, k)
	}
	wg.Wait()

	return spectra
}

// ComputeSpectrum tabulates the k-mers of reads and builds the histogram.
func ComputeSpectrum(reads []string, k int) *Spectrum {
	t, err := Tabulate(reads, k)
	if err != nil {
		return &Spectrum{K: k, Err: err}
	}

	s := &Spectrum{K: k, Total: t.Total(), Distinct: t.Distinct()}
	if s.Distinct == 0 {
		s.Err = errors.Wrapf(ErrInsufficientData, "no reads are longer than or equal to k (%d) in %d reads", k, len(reads))
		return s
	}

	s.Histogram = NewHistogram(t)
	return s
}
