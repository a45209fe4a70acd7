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
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shenwei356/kmerdemon/kmerdemon/cmd/plot"
	"github.com/shenwei356/kmerdemon/kmerdemon/cmd/reads"
	"github.com/shenwei356/kmerdemon/kmerdemon/cmd/spectrum"
	"github.com/spf13/cobra"
)

var histCmd = &cobra.Command{
	Use:   "hist",
	Short: "Compute the k-mer abundance histogram of a k-mer size",
	Long: `Compute the k-mer abundance histogram of a k-mer size

Output format (tab-delimited):
  1. abundance,  number of occurrences of a k-mer.
  2. frequency,  number of distinct k-mers with the abundance.

Attentions:
  1. All reads are used by default, use -e/--kmer-sampling-proportion
     to sample a proportion of reads.
  2. K-mers are case-sensitive strings, no canonical k-mers are used.
  3. The output is gzipped if the file name ends with ".gz".

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		var fhLog *os.File
		if opt.Log2File {
			fhLog = addLog(opt.LogFile, opt.Verbose)
		}
		verbose := opt.Verbose || opt.Log2File
		timeStart := time.Now()
		defer func() {
			if verbose {
				log.Info()
				log.Infof("elapsed time: %s", time.Since(timeStart))
				log.Info()
			}
			if opt.Log2File {
				fhLog.Close()
			}
		}()

		// ---------------------------------------------------------------
		// flags

		k := getFlagPositiveInt(cmd, "kmer")
		if k < spectrum.MinKmerSize {
			checkError(fmt.Errorf("the value of flag -k/--kmer should be >= %d", spectrum.MinKmerSize))
		}
		proportion := getFlagFloat64(cmd, "kmer-sampling-proportion")
		if proportion <= 0 || proportion > 1 {
			checkError(fmt.Errorf("the value of flag -e/--kmer-sampling-proportion should be in range of (0, 1]"))
		}
		seed := getFlagInt64(cmd, "seed")
		outFile := getFlagString(cmd, "out-file")
		plotOut := getFlagString(cmd, "plot")
		skipFileCheck := getFlagBool(cmd, "skip-file-check")

		files := getFileListFromArgsAndFile(cmd, args, !skipFileCheck, "infile-list", !skipFileCheck)
		if verbose {
			if len(files) == 1 && isStdin(files[0]) {
				log.Info("no files given, reading from stdin")
			} else {
				log.Infof("%d input file(s) given", len(files))
			}
		}

		// ---------------------------------------------------------------
		// reads

		rs, err := reads.ReadFiles(files, nil)
		checkError(err)
		if len(rs.Seqs) == 0 {
			checkError(fmt.Errorf("no reads found in %d file(s)", len(files)))
		}

		sample := rs.Seqs
		if proportion < 1 {
			sample, err = spectrum.Sample(rs.Seqs, proportion, rand.New(rand.NewSource(seed)))
			checkError(err)
		}
		if verbose {
			log.Infof("%s of %s reads sampled", humanize.Comma(int64(len(sample))), humanize.Comma(int64(len(rs.Seqs))))
		}

		// ---------------------------------------------------------------
		// histogram

		s := spectrum.ComputeSpectrum(sample, k)
		if s.Err != nil {
			checkError(errors.Wrapf(s.Err, "k=%d", k))
		}
		h := s.Histogram

		gzipped := strings.HasSuffix(strings.ToLower(outFile), ".gz")
		if isStdout(outFile) {
			outfh := bufio.NewWriterSize(os.Stdout, os.Getpagesize())
			checkError(writeHistogramTo(outfh, h))
			checkError(outfh.Flush())
		} else {
			checkError(makeOutDir(outFile))
			checkError(writeHistogram(outFile, h, gzipped, opt.CompressionLevel))
		}

		if plotOut != "" {
			checkError(makeOutDir(plotOut))
			checkError(saveFileAtomic(plotOut, func(tmp string) error {
				return plot.Histogram(h, k, tmp, nil)
			}))
		}

		if verbose {
			mean, stdev := h.Summary()
			log.Infof("k-mer size: %d", k)
			log.Infof("  total k-mers: %s", humanize.Comma(int64(h.Total())))
			log.Infof("  distinct k-mers: %s", humanize.Comma(int64(h.Distinct())))
			log.Infof("  k-mers occurring more than once: %s", humanize.Comma(int64(h.NonSingleton())))
			log.Infof("  dominant abundance: %d", h.Mode())
			log.Infof("  mean abundance: %.2f, standard deviation: %.2f", mean, stdev)
			if e, err := spectrum.EstimateGenomeSize(h, h.NonSingleton()); err == nil {
				log.Infof("  estimated genome size: %s", formatGenomeSize(e.GenomeSize))
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(histCmd)

	histCmd.Flags().IntP("kmer", "k", 31,
		formatFlagUsage(`K-mer size.`))

	histCmd.Flags().Float64P("kmer-sampling-proportion", "e", 1,
		formatFlagUsage(`Proportion of reads to sample, in range of (0, 1].`))

	histCmd.Flags().Int64P("seed", "s", 11,
		formatFlagUsage(`Seed for sampling reads.`))

	histCmd.Flags().BoolP("skip-file-check", "S", false,
		formatFlagUsage(`Skip input file checking when given files or a file list.`))

	histCmd.Flags().StringP("out-file", "o", "-",
		formatFlagUsage(`Out file, supports and recommends a ".gz" suffix ("-" for stdout).`))

	histCmd.Flags().StringP("plot", "p", "",
		formatFlagUsage(`Plot the histogram to a file, the format is decided by the extension, e.g., .png, .svg, .pdf.`))

	histCmd.SetUsageTemplate(usageTemplate("-k <k> [-e <proportion>] {<seq files> | -X <file list>} [-o <out file>]"))
}
