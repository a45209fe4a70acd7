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
	"fmt"
	"math/rand"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shenwei356/kmerdemon/kmerdemon/cmd/reads"
	"github.com/shenwei356/kmerdemon/kmerdemon/cmd/spectrum"
	"github.com/shenwei356/util/pathutil"
	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the optimal k-mer size and genome size from reads",
	Long: `Estimate the optimal k-mer size and genome size from reads

How it works:
  1. A proportion (-e/--kmer-sampling-proportion) of reads are randomly
     sampled with a fixed seed (-s/--seed).
  2. Candidate k-mer sizes are chosen from [-l/--min-kmer-size, -k/--max-kmer-size),
     with an increment of max(1, (max - min) / 10).
  3. For each candidate, all k-mers of the sampled reads are counted, and
     a histogram of k-mer abundances is computed.
  4. The candidate with the most k-mers occurring more than once is chosen.
     With --refine, odd k-mer sizes around it are also checked.
  5. The genome size is estimated as the total number of k-mers divided
     by the dominant k-mer abundance.

Input:
  1. Input plain or gzipped FASTA/Q files can be given via positional
     arguments or the flag -X/--infile-list with the list of input files,
  2. Or a directory containing sequence files via the flag -I/--in-dir,
     with multiple-level sub-directories allowed. A regular expression
     for matching sequencing files is available via the flag -r/--file-regexp.
  3. Reads of all files are pooled. Reads shorter than a k-mer size
     contribute no k-mers to that k-mer size.

Output (<prefix> is set by -o/--out-prefix):
  1. <prefix>_kmer_<k>.txt             report of the optimal k-mer size and genome size.
  2. <prefix>_kmer_<k>.hist.tsv[.gz]   k-mer abundance histogram of the optimal k-mer size.
  3. <prefix>_info.toml                parameters and statistics of all candidates.
  4. <prefix>_kmer_histogram_k<k>.png  histogram plots, with -p/--plot or --plot-all.

  The report is written at last, it is absent if the genome size could
  not be estimated.

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
		// basic flags

		minK := getFlagInt(cmd, "min-kmer-size")
		maxK := getFlagInt(cmd, "max-kmer-size")
		proportion := getFlagFloat64(cmd, "kmer-sampling-proportion")
		seed := getFlagInt64(cmd, "seed")
		refine := getFlagBool(cmd, "refine")

		outPrefix := getFlagString(cmd, "out-prefix")
		force := getFlagBool(cmd, "force")
		gzipHist := getFlagBool(cmd, "gzip")
		skipFileCheck := getFlagBool(cmd, "skip-file-check")

		plotOptimal := getFlagBool(cmd, "plot")
		plotAll := getFlagBool(cmd, "plot-all")
		plotFormat := getFlagString(cmd, "plot-format")
		plotMaxAbundance := getFlagNonNegativeInt(cmd, "plot-max-abundance")

		var err error

		inDir := getFlagString(cmd, "in-dir")
		readFromDir := inDir != ""
		if readFromDir {
			var isDir bool
			isDir, err = pathutil.IsDir(inDir)
			if err != nil {
				checkError(errors.Wrapf(err, "checking -I/--in-dir"))
			}
			if !isDir {
				checkError(fmt.Errorf("value of -I/--in-dir should be a directory: %s", inDir))
			}
		}

		reFileStr := getFlagString(cmd, "file-regexp")
		var reFile *regexp.Regexp
		if reFileStr != "" {
			if !reIgnoreCase.MatchString(reFileStr) {
				reFileStr = reIgnoreCaseStr + reFileStr
			}
			reFile, err = regexp.Compile(reFileStr)
			checkError(errors.Wrapf(err, "failed to parse regular expression for matching file: %s", reFileStr))
		}

		// ---------------------------------------------------------------
		// options

		eopt := &EstimateOptions{
			// general
			NumCPUs:  opt.NumCPUs,
			Verbose:  opt.Verbose,
			Log2File: opt.Log2File,
			Force:    force,

			// k-mer spectrum
			MinK:       minK,
			MaxK:       maxK,
			Proportion: proportion,
			RandSeed:   seed,
			Refine:     refine,

			// output
			OutPrefix:        outPrefix,
			GzipHist:         gzipHist,
			CompressionLevel: opt.CompressionLevel,
			Plot:             plotOptimal,
			PlotAll:          plotAll,
			PlotFormat:       plotFormat,
			PlotMaxAbundance: plotMaxAbundance,
		}
		// invalid parameters are reported before reading any file
		checkError(CheckEstimateOptions(eopt))

		// ---------------------------------------------------------------
		// input files

		if verbose {
			log.Infof("KmerDemon v%s", VERSION)
			log.Info("  https://github.com/shenwei356/kmerdemon")
			log.Info()

			log.Info("checking input files ...")
		}

		var files []string
		if readFromDir {
			files, err = getFileListFromDir(inDir, reFile, opt.NumCPUs)
			if err != nil {
				checkError(errors.Wrapf(err, "walking dir: %s", inDir))
			}
			if len(files) == 0 {
				log.Warningf("  no files matching regular expression: %s", reFileStr)
			}
		} else {
			files = getFileListFromArgsAndFile(cmd, args, !skipFileCheck, "infile-list", !skipFileCheck)
			if verbose {
				if len(files) == 1 && isStdin(files[0]) {
					log.Info("  no files given, reading from stdin")
				}
			}
		}
		if len(files) < 1 {
			checkError(fmt.Errorf("FASTA/Q files needed"))
		} else if verbose {
			log.Infof("  %d input file(s) given", len(files))
		}

		// ---------------------------------------------------------------
		// log

		candidates := spectrum.Candidates(minK, maxK)
		if verbose {
			log.Info()
			log.Infof("-------------------- [main parameters] --------------------")
			log.Info()
			log.Info("input and output:")
			log.Infof("  input directory: %s", inDir)
			log.Infof("    regular expression of input files: %s", reFileStr)
			log.Infof("  output prefix: %s", outPrefix)
			log.Info()
			log.Infof("k-mer size range: [%d, %d), increment: %d", minK, maxK, spectrum.Increment(minK, maxK))
			log.Infof("candidate k-mer sizes: %s", strings.Join(IntSlice2StringSlice(candidates), ", "))
			log.Infof("refinement: %v", refine)
			log.Infof("sampling proportion: %g", proportion)
			log.Infof("rand seed: %d", seed)
			log.Info()
			log.Infof("-------------------- [main parameters] --------------------")
			log.Info()
			log.Infof("reading sequences ...")
		}

		// ---------------------------------------------------------------
		// reads

		rs, err := reads.ReadFiles(files, func(file string, n int) {
			if verbose {
				log.Infof("  %s reads in %s", humanize.Comma(int64(n)), file)
			}
		})
		checkError(err)
		if len(rs.Seqs) == 0 {
			checkError(fmt.Errorf("no reads found in %d file(s)", len(files)))
		}
		if verbose {
			log.Infof("  %s reads with %s bases read in %s, length of the first read: %d",
				humanize.Comma(int64(len(rs.Seqs))), humanize.Comma(rs.Bases),
				time.Since(timeStart), rs.FirstReadLen)
			log.Info()
			log.Infof("computing k-mer spectra of %d candidates with %d threads ...", len(candidates), opt.NumCPUs)
		}

		// ---------------------------------------------------------------
		// spectra

		var pbs *mpb.Progress
		var bar *mpb.Bar
		showProgressBar := opt.Verbose
		if showProgressBar {
			pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
			bar = pbs.AddBar(int64(len(candidates)),
				mpb.PrependDecorators(
					decor.Name("processed k-mer sizes: ", decor.WC{W: len("processed k-mer sizes: "), C: decor.DindentRight}),
					decor.Name("", decor.WCSyncSpaceR),
					decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
				),
				mpb.AppendDecorators(
					decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
					decor.EwmaETA(decor.ET_STYLE_GO, 5),
					decor.OnComplete(decor.Name(""), ". done"),
				),
			)
		}

		var nDone int
		var total = int64(len(candidates))
		timeSweep := time.Now()
		timeLast := timeSweep
		sopt := &spectrum.Options{
			Config:  eopt.spectrumConfig(),
			Threads: opt.NumCPUs,
			Rand:    rand.New(rand.NewSource(seed)),
			Refine:  refine,

			// calls are serialized
			OnSpectrum: func(s *spectrum.Spectrum) {
				nDone++
				if showProgressBar {
					if int64(nDone) > total { // candidates of refinement
						total = int64(nDone)
						bar.SetTotal(total, false)
					}
					bar.EwmaIncrBy(1, time.Since(timeLast))
				}
				timeLast = time.Now()

				if opt.Log2File {
					if s.Err != nil {
						log.Infof("  k=%d: skipped: %s", s.K, s.Err)
					} else {
						log.Infof("  k=%d: %s k-mers, %s distinct, %s occurring more than once",
							s.K, humanize.Comma(int64(s.Total)), humanize.Comma(int64(s.Distinct)),
							humanize.Comma(int64(s.Histogram.NonSingleton())))
					}
				}
			},
		}

		res, err := spectrum.Run(rs.Seqs, sopt)
		if showProgressBar {
			bar.SetTotal(-1, true)
			pbs.Wait()
		}
		if err != nil {
			if errors.Is(err, spectrum.ErrEstimation) && res != nil && res.Selection != nil {
				log.Warningf("optimal k-mer size: %d", res.Selection.K)
				log.Warningf("number of unique k-mers: %d", res.Selection.Informative)
			}
			checkError(errors.Wrap(err, "failed to estimate genome size"))
		}

		if verbose {
			log.Infof("  %s of %s reads (%s bases) sampled",
				humanize.Comma(int64(res.SampledReads)), humanize.Comma(int64(res.Reads)),
				humanize.Comma(int64(res.SampledBases)))
			if len(res.Selection.Skipped) > 0 {
				log.Infof("  skipped k-mer sizes: %s", strings.Join(IntSlice2StringSlice(res.Selection.Skipped), ", "))
			}
			log.Infof("  finished computing spectra in %s", time.Since(timeSweep))
			log.Info()
		}

		// ---------------------------------------------------------------
		// output

		checkError(checkOutFiles(force, outputFiles(eopt, res)...))
		checkError(saveResults(eopt, rs, res))

		if verbose {
			log.Infof("optimal k-mer size: %d", res.Selection.K)
			log.Infof("number of unique k-mers: %s", humanize.Comma(int64(res.Selection.Informative)))
			log.Infof("coverage: %d", res.Estimate.Coverage)
			log.Infof("estimated genome size: %s (%s)",
				formatGenomeSize(res.Estimate.GenomeSize), humanize.SI(res.Estimate.GenomeSize, "bp"))
			log.Info()
			log.Infof("report saved: %s", reportFile(outPrefix, res.Selection.K))
		}
	},
}

func init() {
	RootCmd.AddCommand(estimateCmd)

	// -----------------------------  input  -----------------------------

	estimateCmd.Flags().StringP("in-dir", "I", "",
		formatFlagUsage(`Directory containing FASTA/Q files. Directory symlinks are followed.`))

	estimateCmd.Flags().StringP("file-regexp", "r", `\.(f[aq](st[aq])?|fna)(.gz)?$`,
		formatFlagUsage(`Regular expression for matching sequence files in -I/--in-dir, case ignored.`))

	estimateCmd.Flags().BoolP("skip-file-check", "S", false,
		formatFlagUsage(`Skip input file checking when given files or a file list.`))

	// -----------------------------  output  -----------------------------

	estimateCmd.Flags().StringP("out-prefix", "o", "output",
		formatFlagUsage(`Prefix of output files.`))

	estimateCmd.Flags().BoolP("force", "", false,
		formatFlagUsage(`Overwrite existed output files.`))

	estimateCmd.Flags().BoolP("gzip", "", false,
		formatFlagUsage(`Gzip the histogram table.`))

	// -----------------------------  k-mer spectrum  -----------------------------

	estimateCmd.Flags().IntP("min-kmer-size", "l", 15,
		formatFlagUsage(`Minimum k-mer size, inclusive.`))

	estimateCmd.Flags().IntP("max-kmer-size", "k", 121,
		formatFlagUsage(`Maximum k-mer size, exclusive.`))

	estimateCmd.Flags().Float64P("kmer-sampling-proportion", "e", 0.01,
		formatFlagUsage(`Proportion of reads to sample, in range of (0, 1].`))

	estimateCmd.Flags().Int64P("seed", "s", 11,
		formatFlagUsage(`Seed for sampling reads.`))

	estimateCmd.Flags().BoolP("refine", "", false,
		formatFlagUsage(`Check odd k-mer sizes around the optimal one.`))

	// -----------------------------  plot  -----------------------------

	estimateCmd.Flags().BoolP("plot", "p", false,
		formatFlagUsage(`Plot the k-mer abundance histogram of the optimal k-mer size.`))

	estimateCmd.Flags().BoolP("plot-all", "", false,
		formatFlagUsage(`Plot k-mer abundance histograms of all candidate k-mer sizes.`))

	estimateCmd.Flags().StringP("plot-format", "", "png",
		formatFlagUsage(`Image format of plots: png, jpg, svg, pdf, eps, tif.`))

	estimateCmd.Flags().IntP("plot-max-abundance", "", 0,
		formatFlagUsage(`Maximum k-mer abundance to plot, 0 for no limit.`))

	// ----------------------------------------------------------

	estimateCmd.SetUsageTemplate(usageTemplate("[-l <min k>] [-k <max k>] [-e <proportion>] {[-I <seqs dir>] | <seq files> | -X <file list>} [-o <out prefix>]"))
}

var reIgnoreCaseStr = "(?i)"
var reIgnoreCase = regexp.MustCompile(`\(\?i\)`)
