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
	"math"

	"github.com/pkg/errors"
)

// MinKmerSize is the minimum k-mer size.
const MinKmerSize = 5

// MaxCandidates is the maximum number of candidate k-mer sizes of a sweep,
// roughly. The increment between candidates is (maxK-minK)/MaxCandidates.
const MaxCandidates = 10

// Config contains the parameters of a k-mer spectrum analysis.
type Config struct {
	MinK       int     // minimum k-mer size, inclusive
	MaxK       int     // maximum k-mer size, exclusive
	Proportion float64 // proportion of reads to sample, (0, 1]
}

// Validate checks the parameters.
func (c *Config) Validate() error {
	if c.MinK < MinKmerSize {
		return errors.Wrapf(ErrConfig, "minimum k-mer size should be >= %d, given: %d", MinKmerSize, c.MinK)
	}
	if err := checkProportion(c.Proportion); err != nil {
		return err
	}
	if len(Candidates(c.MinK, c.MaxK)) == 0 {
		return errors.Wrapf(ErrConfig, "no candidate k-mer sizes in range [%d, %d)", c.MinK, c.MaxK)
	}
	return nil
}

// Candidates validates the parameters and returns the candidate k-mer sizes.
func (c *Config) Candidates() ([]int, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return Candidates(c.MinK, c.MaxK), nil
}

func checkProportion(p float64) error {
	if math.IsNaN(p) || p <= 0 || p > 1 {
		return errors.Wrapf(ErrConfig, "sampling proportion should be in range (0, 1], given: %v", p)
	}
	return nil
}

// Increment returns the step between two neighbouring candidate k-mer sizes,
// max(1, (maxK-minK)/10).
func Increment(minK, maxK int) int {
	inc := (maxK - minK) / MaxCandidates
	if inc < 1 {
		return 1
	}
	return inc
}

// Candidates returns k-mer sizes in [minK, maxK) stepped by Increment(minK, maxK).
// Nil is returned if minK >= maxK.
func Candidates(minK, maxK int) []int {
	if minK >= maxK {
		return nil
	}
	inc := Increment(minK, maxK)
	ks := make([]int, 0, (maxK-minK+inc-1)/inc)
	for k := minK; k < maxK; k += inc {
		ks = append(ks, k)
	}
	return ks
}

// RefineCandidates returns k-mer sizes around k, i.e., k-5, k-3, k-1, k+1, k+3,
// limited to [minK, maxK).
func RefineCandidates(k, minK, maxK int) []int {
	ks := make([]int, 0, 5)
	for _k := k - 5; _k < k+5; _k += 2 {
		if _k < minK || _k >= maxK {
			continue
		}
		ks = append(ks, _k)
	}
	return ks
}
