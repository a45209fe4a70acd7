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

// simulated error-free reads from a random genome
func simulateReads(seed int64, genomeSize, readLen, n int) []string {
	r := rand.New(rand.NewSource(seed))
	genome := randSeq(r, genomeSize)
	reads := make([]string, n)
	for i := range reads {
		start := r.Intn(genomeSize - readLen + 1)
		reads[i] = genome[start : start+readLen]
	}
	return reads
}

func TestRun(t *testing.T) {
	reads := simulateReads(1, 2000, 100, 400)

	var n int
	opt := &Options{
		Config:     Config{MinK: 15, MaxK: 31, Proportion: 1},
		Threads:    4,
		OnSpectrum: func(*Spectrum) { n++ },
	}
	res, err := Run(reads, opt)
	if err != nil {
		t.Error(err)
		return
	}

	if res.Reads != 400 || res.SampledReads != 400 || res.SampledBases != 40000 {
		t.Errorf("unexpected numbers of reads: %d, %d, %d", res.Reads, res.SampledReads, res.SampledBases)
	}
	if len(res.Candidates) != 16 || n != 16 {
		t.Errorf("expected 16 candidates, returned %d (%d callbacks)", len(res.Candidates), n)
	}
	if res.Selector != "non-singleton" {
		t.Errorf("unexpected selector: %s", res.Selector)
	}

	sel := res.Selection
	if sel.K < 15 || sel.K >= 31 {
		t.Errorf("optimal k out of range: %d", sel.K)
	}
	if sel.Informative != sel.Histogram.NonSingleton() {
		t.Errorf("informative k-mers mismatch: %d != %d", sel.Informative, sel.Histogram.NonSingleton())
	}
	for _, s := range res.Spectra {
		if s.Histogram.NonSingleton() > sel.Informative {
			t.Errorf("k=%d has more informative k-mers than the optimal k=%d", s.K, sel.K)
		}
	}

	e := res.Estimate
	if e == nil {
		t.Errorf("estimate expected")
		return
	}
	if e.UniqueKmers != sel.Informative {
		t.Errorf("unique k-mers should be the informative count: %d != %d", e.UniqueKmers, sel.Informative)
	}
	if e.TotalKmers != 400*(100-sel.K+1) {
		t.Errorf("unexpected total k-mers: %d", e.TotalKmers)
	}
	if e.GenomeSize <= 0 || e.GenomeSize > float64(e.TotalKmers) {
		t.Errorf("unexpected genome size: %f", e.GenomeSize)
	}
}

func TestRunSampling(t *testing.T) {
	reads := simulateReads(2, 1000, 80, 500)

	run := func(seed int64) *Result {
		res, err := Run(reads, &Options{
			Config: Config{MinK: 11, MaxK: 21, Proportion: 0.5},
			Rand:   rand.New(rand.NewSource(seed)),
		})
		if err != nil {
			t.Error(err)
			return nil
		}
		return res
	}

	res1, res2 := run(11), run(11)
	if res1 == nil || res2 == nil {
		return
	}
	if res1.SampledReads == 0 || res1.SampledReads >= 500 {
		t.Errorf("unexpected sample size: %d", res1.SampledReads)
	}
	if res1.SampledReads != res2.SampledReads || res1.Selection.K != res2.Selection.K ||
		res1.Estimate.GenomeSize != res2.Estimate.GenomeSize {
		t.Errorf("same seed, different results")
	}
}

func TestRunRefine(t *testing.T) {
	reads := simulateReads(3, 3000, 100, 300)

	opt := &Options{
		Config:  Config{MinK: 15, MaxK: 61, Proportion: 1},
		Threads: 2,
		Refine:  true,
	}
	res, err := Run(reads, opt)
	if err != nil {
		t.Error(err)
		return
	}

	inFirst := make(map[int]bool, len(res.Candidates))
	for _, k := range res.Candidates {
		inFirst[k] = true
	}
	for _, s := range res.Refined {
		if inFirst[s.K] {
			t.Errorf("k=%d of the first sweep should not be computed again", s.K)
		}
	}

	for i := 1; i < len(res.Selection.Scores); i++ {
		if res.Selection.Scores[i].K <= res.Selection.Scores[i-1].K {
			t.Errorf("scores should be in ascending order of k: %v", res.Selection.Scores)
			break
		}
	}

	// never worse than the first sweep
	first, err := NonSingletonSelector{}.Select(res.Spectra)
	if err != nil {
		t.Error(err)
		return
	}
	if res.Selection.Informative < first.Informative {
		t.Errorf("refinement should not choose a worse k: %d < %d", res.Selection.Informative, first.Informative)
	}
}

func TestRunErrors(t *testing.T) {
	reads := []string{"ACGTACGTAC", "ACGTACGTAA"}
	tests := []*Options{
		nil,
		{Config: Config{MinK: 4, MaxK: 9, Proportion: 1}},
		{Config: Config{MinK: 5, MaxK: 9, Proportion: 0}},
		{Config: Config{MinK: 9, MaxK: 9, Proportion: 1}},
		{Config: Config{MinK: 5, MaxK: 9, Proportion: 0.5}}, // no random source
		{Config: Config{MinK: 15, MaxK: 21, Proportion: 1}}, // reads too short
	}
	for i, opt := range tests {
		if _, err := Run(reads, opt); !errors.Is(err, ErrConfig) {
			t.Errorf("case #%d: ErrConfig expected, returned: %v", i+1, err)
		}
	}

	_, err := Run(nil, &Options{Config: Config{MinK: 5, MaxK: 9, Proportion: 1}})
	if !errors.Is(err, ErrConfig) {
		t.Errorf("no reads: ErrConfig expected, returned: %v", err)
	}
}

func TestMergeScores(t *testing.T) {
	a := []Score{{K: 15}, {K: 25}, {K: 35}}
	b := []Score{{K: 20}, {K: 25}, {K: 40}}
	m := mergeScores(a, b)
	expected := []int{15, 20, 25, 35, 40}
	if len(m) != len(expected) {
		t.Errorf("expected %v, returned %v", expected, m)
		return
	}
	for i, s := range m {
		if s.K != expected[i] {
			t.Errorf("expected %v, returned %v", expected, m)
			return
		}
	}
}
