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

package cmd

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/pgzip"
	"github.com/pkg/errors"
)

// TmpFileExt is the path extension for temporary files
const TmpFileExt = ".tmp"

// outStream creates a buffered writer of a file ("-" for stdout),
// optionally gzipped with pgzip.
// Please call outfh.Flush(), gw.Close() (if not nil), and w.Close() in order.
func outStream(file string, gzipped bool, level int) (outfh *bufio.Writer, gw io.WriteCloser, w *os.File, err error) {
	if isStdout(file) {
		w = os.Stdout
	} else {
		w, err = os.Create(file)
		if err != nil {
			return nil, nil, nil, errors.Wrapf(err, "fail to write %s", file)
		}
	}

	if gzipped {
		gw, err = pgzip.NewWriterLevel(w, level)
		if err != nil {
			return nil, nil, nil, errors.Wrapf(err, "fail to write %s", file)
		}
		outfh = bufio.NewWriterSize(gw, os.Getpagesize())
	} else {
		outfh = bufio.NewWriterSize(w, os.Getpagesize())
	}
	return outfh, gw, w, nil
}

// tmpFile returns the temporary file path of an output file, the extension is kept.
func tmpFile(file string) string {
	ext := filepath.Ext(file)
	return strings.TrimSuffix(file, ext) + TmpFileExt + ext
}

// writeFileAtomic writes to a temporary file and renames it to file when all done,
// so the file is either complete or absent.
func writeFileAtomic(file string, gzipped bool, level int, write func(outfh *bufio.Writer) error) (err error) {
	tmp := tmpFile(file)
	outfh, gw, w, err := outStream(tmp, gzipped, level)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp)
		}
	}()

	err = write(outfh)
	if err == nil {
		err = outfh.Flush()
	}
	if gw != nil {
		if _err := gw.Close(); err == nil {
			err = _err
		}
	}
	if _err := w.Close(); err == nil {
		err = _err
	}
	if err != nil {
		return errors.Wrapf(err, "fail to write %s", file)
	}

	return os.Rename(tmp, file)
}

// saveFileAtomic is similar to writeFileAtomic, but for functions saving to a path.
func saveFileAtomic(file string, save func(file string) error) error {
	tmp := tmpFile(file)
	if err := save(tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, file)
}
