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

package reads

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()

	fq := filepath.Join(dir, "t_1.fq")
	err := os.WriteFile(fq, []byte(`@r1
ACGTACGTAC
+
IIIIIIIIII
@r2 second read
ACGTN
+
IIIII
@r3
ACGTACGA
+
IIIIIIII
`), 0644)
	if err != nil {
		t.Error(err)
		return
	}

	fa := filepath.Join(dir, "t_2.fa")
	err = os.WriteFile(fa, []byte(`>s1
ACGTAC
GTAC
>s2
acgt
`), 0644)
	if err != nil {
		t.Error(err)
		return
	}

	counts := make(map[string]int)
	rs, err := ReadFiles([]string{fq, fa}, func(file string, n int) {
		counts[file] = n
	})
	if err != nil {
		t.Error(err)
		return
	}

	expected := []string{"ACGTACGTAC", "ACGTN", "ACGTACGA", "ACGTACGTAC", "acgt"}
	if len(rs.Seqs) != len(expected) {
		t.Errorf("expected %d reads, returned %d: %v", len(expected), len(rs.Seqs), rs.Seqs)
		return
	}
	for i, s := range rs.Seqs {
		if s != expected[i] {
			t.Errorf("read #%d: expected %s, returned %s", i+1, expected[i], s)
		}
	}

	if rs.FirstReadLen != 10 {
		t.Errorf("expected first read length 10, returned %d", rs.FirstReadLen)
	}
	if rs.Bases != 37 {
		t.Errorf("expected 37 bases, returned %d", rs.Bases)
	}
	if rs.Files != 2 {
		t.Errorf("expected 2 files, returned %d", rs.Files)
	}
	if counts[fq] != 3 || counts[fa] != 2 {
		t.Errorf("unexpected read counts per file: %v", counts)
	}
}

func TestReadFilesMissing(t *testing.T) {
	_, err := ReadFiles([]string{filepath.Join(t.TempDir(), "missing.fq")}, nil)
	if err == nil {
		t.Errorf("error expected for a missing file")
	}
}
