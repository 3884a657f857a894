package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/journal"
	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List conversions recorded in the journal",
	Long: `History reads the journal configured with --journal, journal_path in
ucshim.yaml, or UCSHIM_JOURNAL_PATH. Use --json or --yaml for export.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.Int("limit", 20, "maximum entries to show (0 for all)")
	f.String("status", "", "only show entries with this status: success, failure, or error")
	f.Duration("since", 0, "only show entries newer than this, e.g. 24h")
	f.Bool("json", false, "print entries as JSON")
	f.Bool("yaml", false, "print entries as YAML")
	f.Bool("summary", false, "print totals by status instead of entries")

	rootCmd.AddCommand(historyCmd)
}

func parseStatus(s string) (types.Status, error) {
	for _, st := range []types.Status{types.StatusSuccess, types.StatusFailure, types.StatusError} {
		if strings.EqualFold(s, st.String()) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q (want success, failure, or error)", s)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if cfg.JournalPath == "" {
		return fmt.Errorf("no journal configured (set --journal or journal_path)")
	}
	f := cmd.Flags()
	asJSON, _ := f.GetBool("json")
	asYAML, _ := f.GetBool("yaml")
	if asJSON && asYAML {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}

	opts := journal.QueryOptions{}
	opts.Limit, _ = f.GetInt("limit")
	if raw, _ := f.GetString("status"); raw != "" {
		st, err := parseStatus(raw)
		if err != nil {
			return err
		}
		opts.Status = &st
	}
	if since, _ := f.GetDuration("since"); since > 0 {
		opts.Since = time.Now().Add(-since)
	}

	store, err := journal.Open(cfg.JournalPath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := contextOf(cmd)
	out := cmd.OutOrStdout()

	if summary, _ := f.GetBool("summary"); summary {
		sum, err := store.Summarize(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s conversions: %s succeeded, %s failed, %s errors, %s total\n",
			humanize.Comma(int64(sum.Total)), humanize.Comma(int64(sum.Success)),
			humanize.Comma(int64(sum.Failure)), humanize.Comma(int64(sum.Error)),
			sum.Duration.Round(time.Millisecond))
		return nil
	}

	entries, err := store.List(ctx, opts)
	if err != nil {
		return err
	}
	switch {
	case asJSON:
		return journal.WriteJSON(out, entries)
	case asYAML:
		return journal.WriteYAML(out, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No conversions recorded.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tOPERATION\tSTATUS\tTOOK\tINPUT\tOUTPUT\tMESSAGE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, humanize.Time(e.StartedAt), e.Operation, e.Status,
			e.Duration.Round(time.Millisecond), e.InputPath, e.OutputPath, e.Message)
	}
	return tw.Flush()
}
