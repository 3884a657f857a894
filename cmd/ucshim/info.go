package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/shim"
	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the shim and build versions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ucshim %s (build %s)\n", shim.Version, version)
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported input and output formats",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input:  %s\n", shim.SupportedInputFormats)
		fmt.Fprintf(out, "output: %s\n", shim.SupportedOutputFormats)
	},
}

var testConnectionCmd = &cobra.Command{
	Use:   "test-connection",
	Short: "Check the interpreter and conversion CLI are reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res := newShim().TestConnection(contextOf(cmd))
		if res.OK() {
			fmt.Fprintln(cmd.OutOrStdout(), "connection ok")
		}
		return report(res)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info PATH",
	Short: "Show the size of a file as GetFileInfo reports it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, res := shim.FileInfo(args[0])
		if !res.OK() {
			return report(res)
		}
		st, err := os.Stat(args[0])
		if err != nil {
			return report(types.Errored("File not found: %s", args[0]))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", text, humanize.Bytes(uint64(st.Size())))
		return nil
	},
}

var commandCmd = &cobra.Command{
	Use:   "command INPUT OUTPUT",
	Short: "Print the command a conversion would run, without running it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, _ := cmd.Flags().GetString("to")
		c, err := newShim().BuildCommand(types.Request{InputPath: args[0], OutputPath: args[1], OutputFormat: to})
		if err != nil {
			return report(types.Errored("Exception: %v", err))
		}
		fmt.Fprintln(cmd.OutOrStdout(), c.String())
		return nil
	},
}

func init() {
	commandCmd.Flags().String("to", "", "output format (txt, md, html, json)")

	rootCmd.AddCommand(versionCmd, formatsCmd, testConnectionCmd, infoCmd, commandCmd)
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
