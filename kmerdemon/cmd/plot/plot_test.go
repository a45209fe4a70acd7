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

package plot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHistogram(t *testing.T) {
	dir := t.TempDir()
	h := map[int]int{1: 5000, 2: 300, 3: 120, 8: 900, 9: 1200, 10: 800, 50: 3}

	for _, ext := range []string{".png", ".svg", ".pdf"} {
		file := filepath.Join(dir, "hist"+ext)
		if err := Histogram(h, 21, file, nil); err != nil {
			t.Errorf("%s: %s", ext, err)
			continue
		}
		info, err := os.Stat(file)
		if err != nil {
			t.Error(err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s: empty file", ext)
		}
	}

	opt := DefaultOptions
	opt.MaxAbundance = 10
	if err := Histogram(h, 21, filepath.Join(dir, "hist.max.png"), &opt); err != nil {
		t.Error(err)
	}
}

func TestHistogramErrors(t *testing.T) {
	dir := t.TempDir()

	if err := Histogram(map[int]int{}, 21, filepath.Join(dir, "empty.png"), nil); err == nil {
		t.Errorf("error expected for an empty histogram")
	}

	opt := DefaultOptions
	opt.MaxAbundance = 2
	if err := Histogram(map[int]int{5: 1}, 21, filepath.Join(dir, "cut.png"), &opt); err == nil {
		t.Errorf("error expected when all data is filtered out")
	}

	if err := Histogram(map[int]int{1: 1}, 21, filepath.Join(dir, "hist.unknown"), nil); err == nil {
		t.Errorf("error expected for an unsupported format")
	}
}
