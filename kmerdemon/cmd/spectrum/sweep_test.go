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
	"testing"

	"github.com/pkg/errors"
)

func TestSweep(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	reads := make([]string, 50)
	for i := range reads {
		reads[i] = randSeq(r, 30)
	}
	reads = append(reads, "ACGTAC") // shorter than most k

	candidates := []int{21, 5, 13, 9, 31, 40}

	var done []int
	for _, threads := range []int{1, 4} {
		done = done[:0]
		spectra := Sweep(reads, candidates, threads, func(s *Spectrum) {
			done = append(done, s.K)
		})

		if len(spectra) != len(candidates) {
			t.Errorf("expected %d spectra, returned %d", len(candidates), len(spectra))
			return
		}
		if len(done) != len(candidates) {
			t.Errorf("expected %d callbacks, returned %d", len(candidates), len(done))
		}

		for i, s := range spectra {
			if s.K != candidates[i] {
				t.Errorf("threads=%d: spectra should keep the order of candidates, #%d: %d != %d",
					threads, i, s.K, candidates[i])
			}

			if s.K > 30 {
				if !errors.Is(s.Err, ErrInsufficientData) {
					t.Errorf("k=%d: ErrInsufficientData expected, returned: %v", s.K, s.Err)
				}
				continue
			}
			if s.Err != nil {
				t.Errorf("k=%d: unexpected error: %s", s.K, s.Err)
				continue
			}

			expected := 50 * (30 - s.K + 1)
			if s.K <= 6 {
				expected += 6 - s.K + 1
			}
			if s.Total != expected || s.Histogram.Total() != expected {
				t.Errorf("k=%d: expected %d k-mers, returned %d/%d", s.K, expected, s.Total, s.Histogram.Total())
			}
			if s.Histogram.Distinct() != s.Distinct {
				t.Errorf("k=%d: distinct k-mers mismatch: %d != %d", s.K, s.Histogram.Distinct(), s.Distinct)
			}
		}
	}
}

func TestSweepDeterministicSelection(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	genome := randSeq(r, 300)
	reads := make([]string, 0, 100)
	for i := 0; i < 100; i++ {
		start := r.Intn(len(genome) - 50)
		reads = append(reads, genome[start:start+50])
	}

	candidates := Candidates(5, 40)
	var k0 int
	for i := 0; i < 5; i++ {
		sel, err := NonSingletonSelector{}.Select(Sweep(reads, candidates, 1+i, nil))
		if err != nil {
			t.Error(err)
			return
		}
		if i == 0 {
			k0 = sel.K
		} else if sel.K != k0 {
			t.Errorf("selection changed with threads=%d: %d != %d", 1+i, sel.K, k0)
		}
	}
}
