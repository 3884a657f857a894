package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/shim"
	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Run the same checks as the generated TestDLL routine",
	Long: `Selftest reports the version, the supported formats, and the result of a
connection test, then exits with the connection test's status.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		s := newShim()

		check := func(name string, ok bool, detail string) {
			mark := "ok"
			if !ok {
				mark = "FAIL"
			}
			fmt.Fprintf(out, "%-20s %-4s %s\n", name, mark, detail)
		}

		check("version", shim.Version != "", shim.Version)
		check("input formats", strings.Count(shim.SupportedInputFormats, ",") > 0, shim.SupportedInputFormats)
		check("output formats", strings.Count(shim.SupportedOutputFormats, ",") > 0, shim.SupportedOutputFormats)

		batch := s.ConvertBatch("", "", "", "")
		check("batch stub", batch.Status == types.StatusError, batch.Message)

		res := s.TestConnection(contextOf(cmd))
		detail := res.Message
		if res.OK() {
			detail = fmt.Sprintf("%s %s", s.Config().Interpreter, s.Config().EntryScript)
		}
		check("connection", res.OK(), detail)
		return report(res)
	},
}

func init() {
	rootCmd.AddCommand(selftestCmd)
}
