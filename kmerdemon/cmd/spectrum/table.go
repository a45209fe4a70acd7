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
	"github.com/shenwei356/kmerdemon/kmerdemon/cmd/util"
	"github.com/shenwei356/kmers"
)

var mapInitSize = 1 << 10

// Table is an exact k-mer frequency table of a fixed k-mer size.
// K-mers are compared as plain strings: no case folding, no reverse
// complement.
//
// K-mers made of upper-case A, C, G, T with k <= 32 are stored by their
// 2-bit codes, others by strings.
type Table struct {
	k     int
	codes map[uint64]int
	mers  map[string]int
	total int
}

// NewTable creates an empty Table for k-mer size k.
func NewTable(k int) *Table {
	return &Table{
		k:     k,
		codes: make(map[uint64]int, mapInitSize),
		mers:  make(map[string]int, 8),
	}
}

// Tabulate counts all k-mers of the reads.
// Reads shorter than k are skipped.
func Tabulate(reads []string, k int) (*Table, error) {
	if k < 1 {
		return nil, errors.Wrapf(ErrConfig, "invalid k-mer size: %d", k)
	}
	t := NewTable(k)
	for _, read := range reads {
		t.Add(read)
	}
	return t, nil
}

// Add counts the k-mers of a read and returns the number of k-mers added,
// which is len(read)-k+1, or 0 for a read shorter than k.
func (t *Table) Add(read string) int {
	n := util.NumKmers(len(read), t.k)
	if n == 0 {
		return 0
	}

	util.ForEachKmer([]byte(read), t.k, func(kmer []byte, code uint64, ok bool) {
		if ok {
			t.codes[code]++
		} else {
			t.mers[string(kmer)]++
		}
	})
	t.total += n
	return n
}

// K returns the k-mer size.
func (t *Table) K() int { return t.k }

// Total returns the total number of k-mer occurrences.
func (t *Table) Total() int { return t.total }

// Distinct returns the number of distinct k-mers.
func (t *Table) Distinct() int { return len(t.codes) + len(t.mers) }

// Count returns the occurrence count of a k-mer.
func (t *Table) Count(kmer string) int {
	if len(kmer) != t.k {
		return 0
	}
	if t.k <= util.MaxCodeK && util.IsACGT([]byte(kmer)) {
		code, err := kmers.Encode([]byte(kmer))
		if err != nil {
			return 0
		}
		return t.codes[code]
	}
	return t.mers[kmer]
}

// Counts returns a new map of k-mers to occurrence counts.
func (t *Table) Counts() map[string]int {
	m := make(map[string]int, t.Distinct())
	for code, n := range t.codes {
		m[util.DecodeKmer(code, t.k)] = n
	}
	for mer, n := range t.mers {
		m[mer] = n
	}
	return m
}
