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

package util

import (
	"github.com/shenwei356/kmers"
)

// MaxCodeK is the maximum k-mer size that a 2-bit code (uint64) could hold.
const MaxCodeK = 32

// NumKmers returns the number of k-mers of a sequence with length l.
// A sequence shorter than k has no k-mers.
func NumKmers(l, k int) int {
	if k < 1 || l < k {
		return 0
	}
	return l - k + 1
}

// Kmers returns all k-mers of s from left to right.
// Nil is returned if len(s) < k.
func Kmers(s string, k int) []string {
	n := NumKmers(len(s), k)
	if n == 0 {
		return nil
	}
	mers := make([]string, n)
	for i := 0; i < n; i++ {
		mers[i] = s[i : i+k]
	}
	return mers
}

// ForEachKmer calls fn for every k-mer of s from left to right.
// ok is true if the k-mer only contains upper-case A, C, G, T and k <= 32,
// in which case code is its 2-bit code, otherwise code is 0.
// Nothing happens if len(s) < k.
//
// The slice passed to fn is a sub-slice of s, it should be copied if needed.
func ForEachKmer(s []byte, k int, fn func(kmer []byte, code uint64, ok bool)) {
	n := NumKmers(len(s), k)
	if n == 0 {
		return
	}

	if k > MaxCodeK {
		for i := 0; i < n; i++ {
			fn(s[i:i+k], 0, false)
		}
		return
	}

	// position of the last base out of ACGT, -1 for none.
	last := -1
	for i := 0; i < k-1; i++ {
		if !isACGT(s[i]) {
			last = i
		}
	}

	var code uint64
	var err error
	var end int
	for i := 0; i < n; i++ {
		end = i + k - 1
		if !isACGT(s[end]) {
			last = end
		}
		if last >= i {
			fn(s[i:end+1], 0, false)
			continue
		}

		code, err = kmers.Encode(s[i : end+1])
		if err != nil { // not expected for ACGT
			fn(s[i:end+1], 0, false)
			continue
		}
		fn(s[i:end+1], code, true)
	}
}

// DecodeKmer returns the k-mer of a 2-bit code.
func DecodeKmer(code uint64, k int) string {
	return string(kmers.MustDecode(code, k))
}

// IsACGT checks if a sequence only contains upper-case A, C, G, T.
func IsACGT(s []byte) bool {
	for _, b := range s {
		if !isACGT(b) {
			return false
		}
	}
	return true
}

func isACGT(b byte) bool {
	switch b {
	case 'A', 'C', 'G', 'T':
		return true
	}
	return false
}
