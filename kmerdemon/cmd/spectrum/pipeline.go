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
	"math/rand"

	"github.com/pkg/errors"
)

// Options contains the parameters of Run.
type Options struct {
	Config

	Threads  int        // maximum number of candidates computed in parallel
	Rand     *rand.Rand // random source for sampling, needed if Proportion < 1
	Selector Selector   // nil for NonSingletonSelector

	// Refine runs a second sweep around the optimal k-mer size
	// if the increment of the first sweep is > 1.
	Refine bool

	// OnSpectrum is called after each candidate is finished.
	OnSpectrum func(*Spectrum)
}

// Result is the result of Run.
type Result struct {
	Reads        int // number of input reads
	SampledReads int
	SampledBases int

	Candidates []int       // candidates of the first sweep
	Spectra    []*Spectrum // spectra of the first sweep
	Refined    []*Spectrum // spectra of the refinement sweep, only new candidates

	Selector  string
	Selection *Selection
	Estimate  *Estimate
}

// Run validates the options, samples reads, computes spectra of all
// candidate k-mer sizes, chooses the optimal k-mer size and estimates the
// genome size.
//
// Invalid options are reported before any sampling or counting.
// If the genome size could not be estimated, the error wraps ErrEstimation
// and the returned Result still holds a valid Selection.
func Run(reads []string, opt *Options) (*Result, error) {
	if opt == nil {
		return nil, errors.Wrap(ErrConfig, "options needed")
	}
	candidates, err := opt.Candidates()
	if err != nil {
		return nil, err
	}
	if len(reads) == 0 {
		return nil, errors.Wrap(ErrConfig, "no input reads")
	}
	if opt.Proportion < 1 && opt.Rand == nil {
		return nil, errors.Wrap(ErrConfig, "random source needed for sampling")
	}
	selector := opt.Selector
	if selector == nil {
		selector = NonSingletonSelector{}
	}

	// ------------------------------------------------------------
	// sampling

	var sample []string
	if opt.Proportion == 1 {
		sample = reads
	} else {
		sample, err = Sample(reads, opt.Proportion, opt.Rand)
		if err != nil {
			return nil, err
		}
	}

	res := &Result{
		Reads:        len(reads),
		SampledReads: len(sample),
		Candidates:   candidates,
		Selector:     selector.Name(),
	}
	for _, read := range sample {
		res.SampledBases += len(read)
	}

	// ------------------------------------------------------------
	// sweeping

	res.Spectra = Sweep(sample, candidates, opt.Threads, opt.OnSpectrum)

	sel, err := selector.Select(res.Spectra)
	if err != nil {
		return nil, err
	}

	if opt.Refine && Increment(opt.MinK, opt.MaxK) > 1 {
		done := make(map[int]*Spectrum, len(res.Spectra))
		for _, s := range res.Spectra {
			done[s.K] = s
		}

		ks := make([]int, 0, 5)
		for _, k := range RefineCandidates(sel.K, opt.MinK, opt.MaxK) {
			if _, ok := done[k]; !ok {
				ks = append(ks, k)
			}
		}

		if len(ks) > 0 {
			res.Refined = Sweep(sample, ks, opt.Threads, opt.OnSpectrum)

			// the first winner stays a candidate
			spectra := make([]*Spectrum, 0, len(ks)+1)
			spectra = append(spectra, done[sel.K])
			spectra = append(spectra, res.Refined...)

			sel2, err := selector.Select(spectra)
			if err == nil {
				sel2.Scores = mergeScores(sel.Scores, sel2.Scores)
				sel2.Skipped = append(sel.Skipped, sel2.Skipped...)
				sel = sel2
			}
		}
	}
	res.Selection = sel

	// ------------------------------------------------------------
	// estimating

	res.Estimate, err = EstimateGenomeSize(sel.Histogram, sel.Informative)
	if err != nil {
		return res, err
	}

	return res, nil
}

// mergeScores merges two lists of scores in ascending order of k,
// ignoring duplicated k.
func mergeScores(a, b []Score) []Score {
	m := make([]Score, 0, len(a)+len(b))
	var i, j int
	for i < len(a) && j < len(b) {
		switch {
		case a[i].K < b[j].K:
			m = append(m, a[i])
			i++
		case a[i].K > b[j].K:
			m = append(m, b[j])
			j++
		default:
			m = append(m, a[i])
			i++
			j++
		}
	}
	m = append(m, a[i:]...)
	m = append(m, b[j:]...)
	return m
}
