package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/hostgen"
)

var integrationCmd = &cobra.Command{
	Use:   "integration vb6|vfp9",
	Short: "Generate the VB6 or Visual FoxPro 9 declaration module",
	Long: `Integration writes the Declare statements, status constants, and a TestDLL
routine for the chosen host. Without -o the module is printed to stdout.
Use -o with a directory-less name like "-o ." to get the default file name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lang, err := hostgen.ParseLang(args[0])
		if err != nil {
			return err
		}
		opts := hostgen.Options{DLL: cfg.DLLName}

		out, _ := cmd.Flags().GetString("output")
		switch out {
		case "":
			return hostgen.Render(cmd.OutOrStdout(), lang, opts)
		case ".":
			out = lang.DefaultFileName()
		}
		if err := hostgen.WriteFile(out, lang, opts); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", out)
		return nil
	},
}

func init() {
	integrationCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")

	rootCmd.AddCommand(integrationCmd)
}
