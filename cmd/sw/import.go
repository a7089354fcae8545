package main

import (
	"errors"
	"fmt"

	"github.com/sitewatch/sitewatch/internal/report"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "import <extraction.json>...",
		Short: "Ingest extracted inspection reports",
		Long:  "Stores each extraction file as a new report. Files already ingested are skipped.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, configPath, args)
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func runImport(cmd *cobra.Command, configPath string, files []string) error {
	out := cmd.OutOrStdout()
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	var failed int
	for _, path := range files {
		ex, err := report.ReadExtraction(path)
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", path, err)
			failed++
			continue
		}
		rep, stats, err := report.Ingest(gormDB, ex)
		switch {
		case errors.Is(err, report.ErrDuplicate):
			fmt.Fprintf(out, "%s: skipped, already ingested\n", path)
			continue
		case err != nil:
			fmt.Fprintf(out, "%s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "%s: report #%d (%s) %d items, %d apartments, %d development, %d defects\n",
			path, rep.Seq, rep.ReportDate.Format(report.DateLayout),
			stats.Items, stats.Apartments, stats.Development, stats.Defects)
		if misses := stats.StatusMisses + stats.CategoryMisses; misses > 0 {
			fmt.Fprintf(out, "  %s %d unrecognized status labels, %d unrecognized categories\n",
				warnText("warning:"), stats.StatusMisses, stats.CategoryMisses)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}
