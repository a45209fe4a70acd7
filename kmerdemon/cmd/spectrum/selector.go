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
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Spectrum holds the k-mer abundance histogram of a candidate k-mer size.
type Spectrum struct {
	K         int
	Histogram Histogram
	Total     int // total k-mer occurrences
	Distinct  int // distinct k-mers

	// Err is not nil if the candidate is not usable,
	// e.g., ErrInsufficientData for no k-mers.
	Err error
}

// Score is the informative k-mer count of a candidate k-mer size.
type Score struct {
	K           int
	Informative int
}

// Selection is the result of k-mer size selection.
type Selection struct {
	K           int       // optimal k-mer size
	Histogram   Histogram // histogram of the optimal k-mer size
	Informative int       // informative k-mer count of the optimal k-mer size

	Scores  []Score // scores of usable candidates, in ascending order of k
	Skipped []int   // unusable candidates
}

// Selector chooses the most informative k-mer size from the spectra
// of candidate k-mer sizes.
type Selector interface {
	// Name returns the name of the strategy.
	Name() string

	// Select returns the selection. Candidates with a non-nil Err are skipped.
	// An error wrapping ErrConfig is returned if no candidate is usable.
	Select(spectra []*Spectrum) (*Selection, error)
}

// NonSingletonSelector chooses the k-mer size with the most distinct k-mers
// occurring more than once. The smallest k wins ties.
//
// This favors larger k on non-repetitive sequences, as larger k gives more
// distinct k-mers. It does not look for the valley and peak of a real
// k-mer spectrum.
type NonSingletonSelector struct{}

// Name returns the name of the strategy.
func (NonSingletonSelector) Name() string { return "non-singleton" }

// Select chooses the k-mer size.
func (NonSingletonSelector) Select(spectra []*Spectrum) (*Selection, error) {
	if len(spectra) == 0 {
		return nil, errors.Wrap(ErrConfig, "empty candidate set")
	}

	// completion order of a parallel sweep does not matter
	sorted := make([]*Spectrum, 0, len(spectra))
	for _, s := range spectra {
		if s != nil {
			sorted = append(sorted, s)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].K < sorted[j].K })

	var sel *Selection
	scores := make([]Score, 0, len(sorted))
	skipped := make([]int, 0, 4)
	var reasons []string
	var n int
	for _, s := range sorted {
		if s.Err != nil || len(s.Histogram) == 0 {
			skipped = append(skipped, s.K)
			if s.Err != nil {
				reasons = append(reasons, s.Err.Error())
			}
			continue
		}

		n = s.Histogram.NonSingleton()
		scores = append(scores, Score{K: s.K, Informative: n})

		if sel == nil || n > sel.Informative {
			sel = &Selection{K: s.K, Histogram: s.Histogram, Informative: n}
		}
	}

	if sel == nil {
		if len(reasons) > 0 {
			return nil, errors.Wrapf(ErrConfig, "no usable candidate k-mer sizes (%s)", strings.Join(reasons, "; "))
		}
		return nil, errors.Wrap(ErrConfig, "no usable candidate k-mer sizes")
	}

	sel.Scores = scores
	sel.Skipped = skipped
	return sel, nil
}
