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
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/shenwei356/kmerdemon/kmerdemon/cmd/plot"
	"github.com/shenwei356/kmerdemon/kmerdemon/cmd/reads"
	"github.com/shenwei356/kmerdemon/kmerdemon/cmd/spectrum"
)

// EstimateOptions contains the options of estimating the optimal k-mer size
// and genome size.
type EstimateOptions struct {
	// general
	NumCPUs  int
	Verbose  bool // show log
	Log2File bool
	Force    bool // overwrite existed output files

	// k-mer spectrum
	MinK       int     // minimum k-mer size, inclusive
	MaxK       int     // maximum k-mer size, exclusive
	Proportion float64 // sampling proportion of reads
	RandSeed   int64   // random seed for sampling
	Refine     bool    // refine around the optimal k-mer size

	// output
	OutPrefix        string
	GzipHist         bool // gzip histogram tables
	CompressionLevel int
	Plot             bool // plot the histogram of the optimal k-mer size
	PlotAll          bool // plot histograms of all candidates
	PlotFormat       string
	PlotMaxAbundance int
}

var plotFormats = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "svg": {}, "pdf": {}, "eps": {}, "tif": {}, "tiff": {},
}

// spectrumConfig returns the parameters for the spectrum analysis.
func (opt *EstimateOptions) spectrumConfig() spectrum.Config {
	return spectrum.Config{MinK: opt.MinK, MaxK: opt.MaxK, Proportion: opt.Proportion}
}

// CheckEstimateOptions check the options
func CheckEstimateOptions(opt *EstimateOptions) error {
	cfg := opt.spectrumConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	if opt.OutPrefix == "" {
		return fmt.Errorf("output prefix needed")
	}

	if opt.Plot || opt.PlotAll {
		if _, ok := plotFormats[strings.ToLower(opt.PlotFormat)]; !ok {
			return fmt.Errorf("unsupported plot format: %s", opt.PlotFormat)
		}
	}
	if opt.PlotMaxAbundance < 0 {
		return fmt.Errorf("invalid maximum abundance for plotting: %d, should be >= 0", opt.PlotMaxAbundance)
	}

	return nil
}

// ---------------------------------------------------------------------------
// output files

func reportFile(prefix string, k int) string {
	return fmt.Sprintf("%s_kmer_%d.txt", prefix, k)
}

func histFile(prefix string, k int, gzipped bool) string {
	if gzipped {
		return fmt.Sprintf("%s_kmer_%d.hist.tsv.gz", prefix, k)
	}
	return fmt.Sprintf("%s_kmer_%d.hist.tsv", prefix, k)
}

func plotFile(prefix string, k int, format string) string {
	return fmt.Sprintf("%s_kmer_histogram_k%d.%s", prefix, k, strings.ToLower(format))
}

func infoFile(prefix string) string {
	return prefix + "_info.toml"
}

// writeReport writes the three-line report.
func writeReport(file string, k int, e *spectrum.Estimate) error {
	return writeFileAtomic(file, false, -1, func(outfh *bufio.Writer) error {
		fmt.Fprintf(outfh, "K-mer Size: %d\n", k)
		fmt.Fprintf(outfh, "Number of Unique K-mers: %d\n", e.UniqueKmers)
		fmt.Fprintf(outfh, "Estimated Genome Size: %s\n", formatGenomeSize(e.GenomeSize))
		return nil
	})
}

// formatGenomeSize keeps all digits, fractions are not truncated.
func formatGenomeSize(size float64) string {
	return strconv.FormatFloat(size, 'f', -1, 64)
}

// writeHistogram writes a histogram in a two-column table,
// in ascending order of abundance.
func writeHistogram(file string, h spectrum.Histogram, gzipped bool, level int) error {
	return writeFileAtomic(file, gzipped, level, func(outfh *bufio.Writer) error {
		return writeHistogramTo(outfh, h)
	})
}

func writeHistogramTo(outfh *bufio.Writer, h spectrum.Histogram) error {
	_, err := outfh.WriteString("abundance\tfrequency\n")
	if err != nil {
		return err
	}
	for _, a := range h.Abundances() {
		if _, err = fmt.Fprintf(outfh, "%d\t%d\n", a, h[a]); err != nil {
			return err
		}
	}
	return nil
}

// outputFiles returns all files a run would create, the report comes last.
func outputFiles(opt *EstimateOptions, res *spectrum.Result) []string {
	k := res.Selection.K
	files := []string{histFile(opt.OutPrefix, k, opt.GzipHist)}
	for _, s := range plotSpectra(opt, res) {
		files = append(files, plotFile(opt.OutPrefix, s.K, opt.PlotFormat))
	}
	files = append(files, infoFile(opt.OutPrefix), reportFile(opt.OutPrefix, k))
	return files
}

// plotSpectra returns spectra to plot.
func plotSpectra(opt *EstimateOptions, res *spectrum.Result) []*spectrum.Spectrum {
	if opt.PlotAll {
		spectra := make([]*spectrum.Spectrum, 0, len(res.Spectra)+len(res.Refined))
		for _, s := range res.Spectra {
			if s.Err == nil {
				spectra = append(spectra, s)
			}
		}
		for _, s := range res.Refined {
			if s.Err == nil {
				spectra = append(spectra, s)
			}
		}
		return spectra
	}
	if opt.Plot {
		return []*spectrum.Spectrum{{K: res.Selection.K, Histogram: res.Selection.Histogram}}
	}
	return nil
}

// saveResults writes the histogram table, plots, run information and
// the report. The report is written at last, so its presence means
// a successful run.
func saveResults(opt *EstimateOptions, rs *reads.ReadSet, res *spectrum.Result) error {
	if res.Selection == nil || res.Estimate == nil {
		return errors.Wrap(spectrum.ErrEstimation, "nothing to save")
	}
	k := res.Selection.K

	err := makeOutDir(opt.OutPrefix)
	if err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	err = writeHistogram(histFile(opt.OutPrefix, k, opt.GzipHist),
		res.Selection.Histogram, opt.GzipHist, opt.CompressionLevel)
	if err != nil {
		return err
	}

	if spectra := plotSpectra(opt, res); len(spectra) > 0 {
		popt := plot.DefaultOptions
		popt.MaxAbundance = opt.PlotMaxAbundance
		for _, s := range spectra {
			file := plotFile(opt.OutPrefix, s.K, opt.PlotFormat)
			err = saveFileAtomic(file, func(tmp string) error {
				return plot.Histogram(s.Histogram, s.K, tmp, &popt)
			})
			if err != nil {
				return errors.Wrapf(err, "failed to plot histogram for k=%d", s.K)
			}
		}
	}

	err = writeRunInfo(infoFile(opt.OutPrefix), newRunInfo(opt, rs, res))
	if err != nil {
		return err
	}

	return writeReport(reportFile(opt.OutPrefix, k), k, res.Estimate)
}

// ---------------------------------------------------------------------------
// run information

// RunInfo records the parameters and results of a run.
type RunInfo struct {
	Version string `toml:"version" comment:"KmerDemon version"`
	Date    string `toml:"date" comment:"finishing time"`

	InputFiles   int   `toml:"input-files" comment:"number of input files"`
	InputReads   int   `toml:"input-reads" comment:"number of input reads"`
	InputBases   int64 `toml:"input-bases" comment:"number of input bases"`
	FirstReadLen int   `toml:"first-read-length" comment:"length of the first read"`

	MinK       int     `toml:"min-kmer-size" comment:"minimum k-mer size, inclusive"`
	MaxK       int     `toml:"max-kmer-size" comment:"maximum k-mer size, exclusive"`
	Increment  int     `toml:"increment" comment:"step of candidate k-mer sizes"`
	Proportion float64 `toml:"sampling-proportion" comment:"proportion of reads to sample"`
	RandSeed   int64   `toml:"seed" comment:"random seed for sampling"`
	Refine     bool    `toml:"refine" comment:"refine around the optimal k-mer size"`
	Selector   string  `toml:"selector" comment:"strategy of choosing the optimal k-mer size"`

	SampledReads int `toml:"sampled-reads" comment:"number of sampled reads"`
	SampledBases int `toml:"sampled-bases" comment:"number of sampled bases"`

	OptimalK    int     `toml:"optimal-kmer-size" comment:"the optimal k-mer size"`
	UniqueKmers int     `toml:"unique-kmers" comment:"number of distinct k-mers occurring more than once"`
	TotalKmers  int     `toml:"total-kmers" comment:"total k-mers of the optimal k-mer size"`
	Coverage    int     `toml:"coverage" comment:"coverage proxy, the dominant k-mer abundance"`
	GenomeSize  float64 `toml:"genome-size" comment:"estimated genome size"`

	Candidates []CandidateInfo `toml:"candidates"`
}

// CandidateInfo records the statistics of a candidate k-mer size.
type CandidateInfo struct {
	K              int     `toml:"k"`
	TotalKmers     int     `toml:"total-kmers"`
	DistinctKmers  int     `toml:"distinct-kmers"`
	Informative    int     `toml:"informative-kmers"`
	MeanAbundance  float64 `toml:"mean-abundance"`
	StdevAbundance float64 `toml:"stdev-abundance"`
	Refined        bool    `toml:"refined"`
	Skipped        bool    `toml:"skipped"`
}

func newRunInfo(opt *EstimateOptions, rs *reads.ReadSet, res *spectrum.Result) *RunInfo {
	info := &RunInfo{
		Version: VERSION,
		Date:    time.Now().Format(time.RFC3339),

		InputFiles:   rs.Files,
		InputReads:   len(rs.Seqs),
		InputBases:   rs.Bases,
		FirstReadLen: rs.FirstReadLen,

		MinK:       opt.MinK,
		MaxK:       opt.MaxK,
		Increment:  spectrum.Increment(opt.MinK, opt.MaxK),
		Proportion: opt.Proportion,
		RandSeed:   opt.RandSeed,
		Refine:     opt.Refine,
		Selector:   res.Selector,

		SampledReads: res.SampledReads,
		SampledBases: res.SampledBases,
	}

	if res.Selection != nil {
		info.OptimalK = res.Selection.K
		info.UniqueKmers = res.Selection.Informative
	}
	if res.Estimate != nil {
		info.TotalKmers = res.Estimate.TotalKmers
		info.Coverage = res.Estimate.Coverage
		info.GenomeSize = res.Estimate.GenomeSize
	}

	info.Candidates = make([]CandidateInfo, 0, len(res.Spectra)+len(res.Refined))
	add := func(s *spectrum.Spectrum, refined bool) {
		c := CandidateInfo{
			K:             s.K,
			TotalKmers:    s.Total,
			DistinctKmers: s.Distinct,
			Refined:       refined,
			Skipped:       s.Err != nil,
		}
		if s.Err == nil {
			c.Informative = s.Histogram.NonSingleton()
			c.MeanAbundance, c.StdevAbundance = s.Histogram.Summary()
		}
		info.Candidates = append(info.Candidates, c)
	}
	for _, s := range res.Spectra {
		add(s, false)
	}
	for _, s := range res.Refined {
		add(s, true)
	}

	return info
}

func writeRunInfo(file string, info *RunInfo) error {
	data, err := toml.Marshal(info)
	if err != nil {
		return errors.Wrap(err, "failed to marshal run information")
	}
	return writeFileAtomic(file, false, -1, func(outfh *bufio.Writer) error {
		_, err := outfh.Write(data)
		return err
	})
}

func readRunInfo(file string) (*RunInfo, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read run information: %s", file)
	}
	info := &RunInfo{}
	if err = toml.Unmarshal(data, info); err != nil {
		return nil, errors.Wrapf(err, "failed to parse run information: %s", file)
	}
	return info, nil
}
