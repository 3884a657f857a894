package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

var benchCmd = &cobra.Command{
	Use:   "bench INPUT",
	Short: "Time repeated conversions of one document",
	Long: `Bench converts INPUT --runs times into a scratch directory and prints the
fastest, slowest, and mean run along with input throughput. Each run is a
full process spawn, so the numbers include interpreter start-up.`,
	Args: cobra.ExactArgs(1),
	RunE: runBench,
}

func init() {
	benchCmd.Flags().Int("runs", 3, "number of conversions")
	benchCmd.Flags().String("to", "txt", "output format")

	rootCmd.AddCommand(benchCmd)
}

type benchStats struct {
	runs, ok      int
	min, max, sum time.Duration
}

func (b *benchStats) add(d time.Duration, ok bool) {
	if b.runs == 0 || d < b.min {
		b.min = d
	}
	if d > b.max {
		b.max = d
	}
	b.sum += d
	b.runs++
	if ok {
		b.ok++
	}
}

func (b *benchStats) mean() time.Duration {
	if b.runs == 0 {
		return 0
	}
	return b.sum / time.Duration(b.runs)
}

func runBench(cmd *cobra.Command, args []string) error {
	runs, _ := cmd.Flags().GetInt("runs")
	to, _ := cmd.Flags().GetString("to")
	if runs < 1 {
		return fmt.Errorf("--runs must be at least 1")
	}
	input := args[0]
	st, err := os.Stat(input)
	if err != nil {
		return report(types.Errored("Input file not found: %s", input))
	}

	scratch, err := os.MkdirTemp("", "ucshim-bench-")
	if err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	ctx := contextOf(cmd)
	s := newShim()
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	var stats benchStats
	var last types.Result
	for i := 0; i < runs; i++ {
		req := types.Request{
			InputPath:    input,
			OutputPath:   filepath.Join(scratch, fmt.Sprintf("%s-%d.%s", base, i+1, to)),
			OutputFormat: to,
		}
		started := time.Now()
		o := s.Run(ctx, req)
		recordOutcome(ctx, "bench", started, req, o)
		stats.add(o.Duration, o.OK())
		last = o.Result
		log.Debug().Int("run", i+1).Dur("elapsed", o.Duration).Str("status", o.Status.String()).Msg("bench run")
		if o.Status == types.StatusError {
			break
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "input      %s (%s)\n", input, humanize.Bytes(uint64(st.Size())))
	fmt.Fprintf(out, "runs       %s of %s succeeded\n", humanize.Comma(int64(stats.ok)), humanize.Comma(int64(stats.runs)))
	fmt.Fprintf(out, "min        %s\n", stats.min.Round(time.Millisecond))
	fmt.Fprintf(out, "mean       %s\n", stats.mean().Round(time.Millisecond))
	fmt.Fprintf(out, "max        %s\n", stats.max.Round(time.Millisecond))
	if m := stats.mean(); m > 0 {
		perSec := float64(st.Size()) / m.Seconds()
		fmt.Fprintf(out, "throughput %s/s\n", humanize.Bytes(uint64(perSec)))
	}

	if stats.ok == stats.runs {
		return nil
	}
	return report(last)
}
