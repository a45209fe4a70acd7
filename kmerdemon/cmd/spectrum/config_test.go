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
	"testing"

	"github.com/pkg/errors"
)

func TestCandidates(t *testing.T) {
	tests := []struct {
		minK, maxK int
		expected   []int
	}{
		{5, 7, []int{5, 6}},
		{15, 121, []int{15, 25, 35, 45, 55, 65, 75, 85, 95, 105, 115}},
		{21, 22, []int{21}},
		{21, 21, nil},
		{31, 21, nil},
		{15, 35, []int{15, 17, 19, 21, 23, 25, 27, 29, 31, 33}},
	}

	for _, test := range tests {
		ks := Candidates(test.minK, test.maxK)
		if len(ks) != len(test.expected) {
			t.Errorf("[%d, %d): expected %v, returned %v", test.minK, test.maxK, test.expected, ks)
			continue
		}
		for i, k := range ks {
			if k != test.expected[i] {
				t.Errorf("[%d, %d): expected %v, returned %v", test.minK, test.maxK, test.expected, ks)
				break
			}
		}
	}
}

func TestIncrement(t *testing.T) {
	if inc := Increment(5, 7); inc != 1 {
		t.Errorf("expected increment 1, returned %d", inc)
	}
	if inc := Increment(15, 121); inc != 10 {
		t.Errorf("expected increment 10, returned %d", inc)
	}
	if inc := Increment(30, 20); inc != 1 {
		t.Errorf("expected increment 1, returned %d", inc)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := []Config{
		{MinK: 5, MaxK: 7, Proportion: 1},
		{MinK: 15, MaxK: 121, Proportion: 0.01},
	}
	for _, c := range valid {
		if err := c.Validate(); err != nil {
			t.Errorf("%+v: unexpected error: %s", c, err)
		}
	}

	invalid := []Config{
		{MinK: 4, MaxK: 7, Proportion: 1},
		{MinK: 5, MaxK: 7, Proportion: 0},
		{MinK: 5, MaxK: 7, Proportion: -0.1},
		{MinK: 5, MaxK: 7, Proportion: 1.01},
		{MinK: 7, MaxK: 7, Proportion: 0.5},
		{MinK: 9, MaxK: 7, Proportion: 0.5},
	}
	for _, c := range invalid {
		err := c.Validate()
		if err == nil {
			t.Errorf("%+v: error expected", c)
			continue
		}
		if !errors.Is(err, ErrConfig) {
			t.Errorf("%+v: ErrConfig expected, returned: %s", c, err)
		}
		if _, err = c.Candidates(); !errors.Is(err, ErrConfig) {
			t.Errorf("%+v: ErrConfig expected from Candidates(), returned: %v", c, err)
		}
	}
}

func TestRefineCandidates(t *testing.T) {
	ks := RefineCandidates(25, 15, 121)
	expected := []int{20, 22, 24, 26, 28}
	if len(ks) != len(expected) {
		t.Errorf("expected %v, returned %v", expected, ks)
		return
	}
	for i, k := range ks {
		if k != expected[i] {
			t.Errorf("expected %v, returned %v", expected, ks)
			return
		}
	}

	ks = RefineCandidates(15, 15, 17)
	if len(ks) != 1 || ks[0] != 16 {
		t.Errorf("expected [16], returned %v", ks)
	}
}
