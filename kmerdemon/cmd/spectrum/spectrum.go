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

// Package spectrum estimates the most informative k-mer size and an
// approximate genome size from k-mer abundance histograms of sequencing reads.
//
// The pipeline is:
//
//	Sample -> (for each candidate k) Tabulate -> NewHistogram -> Selector -> EstimateGenomeSize
//
// All stages are pure functions over explicit inputs, Run chains them.
package spectrum

import (
	"github.com/pkg/errors"
)

// ErrConfig means invalid parameters or input, including an empty candidate set
// or no usable candidate k-mer sizes.
var ErrConfig = errors.New("kmer spectrum: invalid configuration")

// ErrInsufficientData means no k-mers were found for a candidate k-mer size,
// i.e., all sampled reads are shorter than k.
var ErrInsufficientData = errors.New("kmer spectrum: insufficient data")

// ErrEstimation means the genome size could not be estimated from the histogram.
var ErrEstimation = errors.New("kmer spectrum: genome size estimation failed")
