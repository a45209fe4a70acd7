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

// Package reads loads sequencing reads from FASTA/Q files.
package reads

import (
	"io"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

func init() {
	seq.ValidateSeq = false
}

// ReadSet holds sequences of reads from one or more files, in input order.
type ReadSet struct {
	Seqs []string

	// FirstReadLen is the length of the first read, a fallback
	// statistic of read length.
	FirstReadLen int

	Bases int64 // total bases
	Files int   // number of files read
}

// NewReadSet creates an empty ReadSet.
func NewReadSet() *ReadSet {
	return &ReadSet{Seqs: make([]string, 0, 1<<16)}
}

// ReadFile appends all reads of a plain or compressed FASTA/Q file ("-" for stdin),
// and returns the number of reads in the file.
// Sequences are kept as they are, format markers and qualities are dropped.
func (rs *ReadSet) ReadFile(file string) (int, error) {
	fastxReader, err := fastx.NewReader(nil, file, "")
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read seq file: %s", file)
	}
	defer fastxReader.Close()

	var record *fastx.Record
	var n int
	for {
		record, err = fastxReader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return n, errors.Wrapf(err, "read seq %d in %s", n+1, file)
		}

		if len(rs.Seqs) == 0 {
			rs.FirstReadLen = len(record.Seq.Seq)
		}
		// the record is reused by the reader
		rs.Seqs = append(rs.Seqs, string(record.Seq.Seq))
		rs.Bases += int64(len(record.Seq.Seq))
		n++
	}
	rs.Files++

	return n, nil
}

// ReadFiles reads all files in order. onFile, if not nil, is called after
// each file with the number of reads in it.
func ReadFiles(files []string, onFile func(file string, n int)) (*ReadSet, error) {
	rs := NewReadSet()
	for _, file := range files {
		n, err := rs.ReadFile(file)
		if err != nil {
			return nil, err
		}
		if onFile != nil {
			onFile(file, n)
		}
	}
	return rs, nil
}
