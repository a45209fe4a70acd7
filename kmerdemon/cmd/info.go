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
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show statistics of candidate k-mer sizes of a run",
	Long: `Show statistics of candidate k-mer sizes of a run

Input:
  The run information file <prefix>_info.toml created by "kmerdemon estimate",
  or the output prefix via the flag -o/--out-prefix.

Output format (tab-delimited):
  1. k,            k-mer size.
  2. total,        total k-mers.
  3. distinct,     distinct k-mers.
  4. informative,  distinct k-mers occurring more than once.
  5. mean,         mean k-mer abundance.
  6. stdev,        standard deviation of k-mer abundance.
  7. refined,      whether it was checked in the refinement.
  8. skipped,      whether it was unusable, e.g., no reads are long enough.
  9. optimal,      whether it is the optimal k-mer size.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		prefix := getFlagString(cmd, "out-prefix")
		outFile := getFlagString(cmd, "out-file")

		var file string
		switch {
		case len(args) > 1:
			checkError(fmt.Errorf("only one run information file is allowed"))
		case len(args) == 1:
			file = args[0]
		case prefix != "":
			file = infoFile(prefix)
		default:
			checkError(fmt.Errorf("a run information file or the flag -o/--out-prefix is needed"))
		}

		info, err := readRunInfo(file)
		checkError(err)

		if opt.Verbose {
			log.Infof("KmerDemon v%s, finished at %s", info.Version, info.Date)
			log.Infof("  input: %d file(s), %s reads, %s bases",
				info.InputFiles, humanize.Comma(int64(info.InputReads)), humanize.Comma(info.InputBases))
			log.Infof("  sampled: %s reads (proportion: %g, seed: %d)",
				humanize.Comma(int64(info.SampledReads)), info.Proportion, info.RandSeed)
			log.Infof("  k-mer size range: [%d, %d), increment: %d", info.MinK, info.MaxK, info.Increment)
			log.Infof("  optimal k-mer size: %d, estimated genome size: %s",
				info.OptimalK, formatGenomeSize(info.GenomeSize))
		}

		outfh, gw, w, err := outStream(outFile, strings.HasSuffix(outFile, ".gz"), opt.CompressionLevel)
		checkError(err)
		defer func() {
			outfh.Flush()
			if gw != nil {
				gw.Close()
			}
			w.Close()
		}()

		outfh.WriteString("k\ttotal\tdistinct\tinformative\tmean\tstdev\trefined\tskipped\toptimal\n")
		for _, c := range info.Candidates {
			fmt.Fprintf(outfh, "%d\t%d\t%d\t%d\t%.2f\t%.2f\t%s\t%s\t%s\n",
				c.K, c.TotalKmers, c.DistinctKmers, c.Informative,
				c.MeanAbundance, c.StdevAbundance,
				yesOrEmpty(c.Refined), yesOrEmpty(c.Skipped), yesOrEmpty(c.K == info.OptimalK))
		}
	},
}

func yesOrEmpty(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

func init() {
	RootCmd.AddCommand(infoCmd)

	infoCmd.Flags().StringP("out-prefix", "o", "",
		formatFlagUsage(`Output prefix of a run, used if no file is given.`))

	infoCmd.Flags().StringP("out-file", "O", "-",
		formatFlagUsage(`Out file, supports a ".gz" suffix ("-" for stdout).`))

	infoCmd.SetUsageTemplate(usageTemplate("{<prefix>_info.toml | -o <out prefix>} [-O <out file>]"))
}
