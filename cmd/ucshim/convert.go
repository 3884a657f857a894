package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/journal"
	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/shim"
	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert INPUT OUTPUT",
	Short: "Convert one document",
	Long: `Convert runs the conversion CLI on INPUT and reports success when OUTPUT
exists afterwards. Without --to the tool picks the format from OUTPUT's
extension. --from is accepted for parity with ConvertDocument and, like the
DLL, is not passed to the tool.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		req := types.Request{InputPath: args[0], OutputPath: args[1], InputFormat: from, OutputFormat: to}
		return runConversion(cmd, "convert", req)
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch INPUT_DIR OUTPUT_DIR",
	Short: "Convert a directory (not implemented)",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in, out string
		if len(args) > 0 {
			in = args[0]
		}
		if len(args) > 1 {
			out = args[1]
		}
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		return report(newShim().ConvertBatch(in, out, from, to))
	},
}

func init() {
	for _, c := range []*cobra.Command{convertCmd, batchCmd} {
		c.Flags().String("from", "", "input format hint")
		c.Flags().String("to", "", "output format (txt, md, html, json)")
	}
	convertCmd.Flags().Bool("show-output", false, "print what the conversion tool wrote to stdout and stderr")

	rootCmd.AddCommand(convertCmd, batchCmd)
	for _, p := range shim.Pairs {
		rootCmd.AddCommand(pairCmd(p))
	}
}

// pairCmd builds the subcommand for one fixed conversion, e.g. pdf-to-text.
func pairCmd(p shim.Pair) *cobra.Command {
	c := &cobra.Command{
		Use:   p.Command + " INPUT OUTPUT",
		Short: fmt.Sprintf("Convert %s to %s (%s)", p.From, p.To, p.Export),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConversion(cmd, p.Command, p.Request(args[0], args[1]))
		},
	}
	c.Flags().Bool("show-output", false, "print what the conversion tool wrote to stdout and stderr")
	return c
}

func runConversion(cmd *cobra.Command, operation string, req types.Request) error {
	ctx := contextOf(cmd)
	started := time.Now()
	o := newShim().Run(ctx, req)

	if show, _ := cmd.Flags().GetBool("show-output"); show && o.Output.Text != "" {
		fmt.Fprint(cmd.ErrOrStderr(), o.Output.Text)
	}
	recordOutcome(ctx, operation, started, req, o)

	if o.OK() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s)\n", req.InputPath, req.OutputPath, o.Duration.Round(time.Millisecond))
	}
	return report(o.Result)
}

// recordOutcome appends to the journal when one is configured. Journal
// problems are logged and never change the conversion's result.
func recordOutcome(ctx context.Context, operation string, started time.Time, req types.Request, o shim.Outcome) {
	if cfg.JournalPath == "" {
		return
	}
	store, err := journal.Open(cfg.JournalPath)
	if err != nil {
		log.Warn().Err(err).Msg("opening journal")
		return
	}
	defer store.Close()

	_, err = store.Record(ctx, journal.Entry{
		Operation:    operation,
		StartedAt:    started,
		Duration:     o.Duration,
		InputPath:    req.InputPath,
		OutputPath:   req.OutputPath,
		InputFormat:  req.InputFormat,
		OutputFormat: req.OutputFormat,
		Status:       o.Status,
		Message:      o.Message,
		ToolOutput:   o.Output.Text,
	})
	if err != nil {
		log.Warn().Err(err).Msg("recording conversion")
	}
}
