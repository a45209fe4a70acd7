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
	"strings"
	"testing"
)

func TestTabulate(t *testing.T) {
	reads := []string{"ACGTACGT", "ACGTACGA"}
	tb, err := Tabulate(reads, 4)
	if err != nil {
		t.Error(err)
		return
	}

	expected := map[string]int{
		"ACGT": 3,
		"CGTA": 2,
		"GTAC": 2,
		"TACG": 2,
		"ACGA": 1,
	}

	counts := tb.Counts()
	if len(counts) != len(expected) {
		t.Errorf("expected %d distinct k-mers, returned %d: %v", len(expected), len(counts), counts)
		return
	}
	for mer, n := range expected {
		if counts[mer] != n {
			t.Errorf("%s: expected count %d, returned %d", mer, n, counts[mer])
		}
		if tb.Count(mer) != n {
			t.Errorf("%s: expected Count() %d, returned %d", mer, n, tb.Count(mer))
		}
	}

	if tb.Total() != 10 {
		t.Errorf("expected 10 k-mers, returned %d", tb.Total())
	}
	if tb.Distinct() != 5 {
		t.Errorf("expected 5 distinct k-mers, returned %d", tb.Distinct())
	}
	if tb.K() != 4 {
		t.Errorf("expected k=4, returned %d", tb.K())
	}
}

func TestTabulateKmerCount(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, l := range []int{5, 6, 20, 100, 151} {
		read := randSeq(r, l)
		for _, k := range []int{5, 11, 21, 31, 32, 33, 63} {
			if k > l {
				continue
			}
			tb, err := Tabulate([]string{read}, k)
			if err != nil {
				t.Error(err)
				return
			}
			if tb.Total() != l-k+1 {
				t.Errorf("l=%d, k=%d: expected %d k-mers, returned %d", l, k, l-k+1, tb.Total())
			}

			var sum int
			for _, n := range tb.Counts() {
				sum += n
			}
			if sum != tb.Total() {
				t.Errorf("l=%d, k=%d: sum of counts %d != total %d", l, k, sum, tb.Total())
			}
		}
	}
}

func TestTabulateSkipShortReads(t *testing.T) {
	tb, err := Tabulate([]string{"ACG", "", "ACGTA"}, 5)
	if err != nil {
		t.Errorf("short reads should not cause an error: %s", err)
		return
	}
	if tb.Total() != 1 || tb.Distinct() != 1 || tb.Count("ACGTA") != 1 {
		t.Errorf("only one k-mer expected, returned %v", tb.Counts())
	}

	tb, err = Tabulate([]string{"ACG", "ACGT"}, 5)
	if err != nil {
		t.Errorf("short reads should not cause an error: %s", err)
		return
	}
	if tb.Total() != 0 || tb.Distinct() != 0 {
		t.Errorf("empty table expected, returned %v", tb.Counts())
	}
}

func TestTabulateOpaqueKmers(t *testing.T) {
	// no case folding, no reverse complement, N is kept
	reads := []string{"ACGTN", "acgtn", "NACGT", "ACGTA"}
	tb, err := Tabulate(reads, 4)
	if err != nil {
		t.Error(err)
		return
	}
	expected := map[string]int{
		"ACGT": 3,
		"CGTN": 1,
		"acgt": 1,
		"cgtn": 1,
		"NACG": 1,
		"CGTA": 1,
	}
	counts := tb.Counts()
	if len(counts) != len(expected) {
		t.Errorf("expected %v, returned %v", expected, counts)
		return
	}
	for mer, n := range expected {
		if counts[mer] != n {
			t.Errorf("%s: expected count %d, returned %d", mer, n, counts[mer])
		}
	}

	// long k-mers are counted as strings
	read := strings.Repeat("ACGT", 20)
	tb, _ = Tabulate([]string{read, read}, 40)
	if tb.Distinct() != 4 || tb.Total() != 82 {
		t.Errorf("k=40: unexpected distinct/total: %d/%d", tb.Distinct(), tb.Total())
	}
	if tb.Count(read[:40]) != 22 {
		t.Errorf("k=40: unexpected count of %s: %d", read[:40], tb.Count(read[:40]))
	}
}

func TestTabulateInvalidK(t *testing.T) {
	if _, err := Tabulate([]string{"ACGT"}, 0); err == nil {
		t.Errorf("error expected for k=0")
	}
}

func randSeq(r *rand.Rand, n int) string {
	bases := []byte("ACGT")
	s := make([]byte, n)
	for i := range s {
		s[i] = bases[r.Intn(4)]
	}
	return string(s)
}
