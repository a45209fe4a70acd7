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

// Sample returns a subset of reads, where every read is included
// independently with a probability of p, drawn from rng.
// The order of reads is kept and no read is duplicated.
//
// Seeding rng is the caller's concern. Since rng.Float64() is in [0, 1),
// p = 1 keeps all reads.
func Sample(reads []string, p float64, rng *rand.Rand) ([]string, error) {
	if err := checkProportion(p); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.Wrap(ErrConfig, "random source needed for sampling")
	}

	sample := make([]string, 0, int(float64(len(reads))*p)+1)
	for _, read := range reads {
		if rng.Float64() < p {
			sample = append(sample, read)
		}
	}
	return sample, nil
}
