package main

import (
	"encoding/json"
	"fmt"

	"github.com/sitewatch/sitewatch/internal/progress"
	"github.com/sitewatch/sitewatch/internal/report"
	"github.com/spf13/cobra"
)

func newTimelineCmd() *cobra.Command {
	var (
		configPath  string
		apartment   string
		development bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show progress and defects report by report",
		Long:  "Replays the report history and prints the progress each report would have shown, with the defects it recorded.",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := scopeFromFlags(apartment, development)
			if err != nil {
				return err
			}
			return runTimeline(cmd, configPath, scope, asJSON)
		},
	}

	addConfigFlag(cmd, &configPath)
	addScopeFlags(cmd, &apartment, &development)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the timeline as JSON")
	return cmd
}

func runTimeline(cmd *cobra.Command, configPath string, scope progress.Scope, asJSON bool) error {
	out := cmd.OutOrStdout()
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	snaps, err := report.LoadSnapshots(gormDB, scope)
	if err != nil {
		return err
	}
	res := progress.NewEngine(settingsStore(configPath, cfg)).Timeline(snaps, scope)

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(out, "Timeline for %s\n", res.Scope)
	if len(res.Progress) == 0 {
		fmt.Fprintln(out, "No reports.")
		return nil
	}
	fmt.Fprintf(out, "%-4s %-10s %-24s %5s %7s %7s\n", "#", "DATE", "", "PROG", "ITEMS", "DEFECTS")
	for i, p := range res.Progress {
		fmt.Fprintf(out, "%-4d %-10s %s %s %7d %7s\n",
			p.Index+1, p.Date.Format("2006-01-02"), progressBar(p.OverallProgress),
			colorPercent(p.OverallProgress), p.ItemCount, colorIssues(res.Defects[i].Total))
	}
	return nil
}
