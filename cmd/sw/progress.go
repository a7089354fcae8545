package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sitewatch/sitewatch/internal/progress"
	"github.com/sitewatch/sitewatch/internal/report"
	"github.com/spf13/cobra"
)

func newProgressCmd() *cobra.Command {
	var (
		configPath  string
		apartment   string
		development bool
		items       bool
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show completion progress",
		Long:  "Shows the project's completion percentage with a per-category breakdown. Narrow the scope with --apartment or --development.",
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := scopeFromFlags(apartment, development)
			if err != nil {
				return err
			}
			return runProgress(cmd, configPath, scope, items, asJSON)
		},
	}

	addConfigFlag(cmd, &configPath)
	addScopeFlags(cmd, &apartment, &development)
	cmd.Flags().BoolVar(&items, "items", false, "list every item with its score")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func addScopeFlags(cmd *cobra.Command, apartment *string, development *bool) {
	cmd.Flags().StringVarP(apartment, "apartment", "a", "", "apartment number")
	cmd.Flags().BoolVarP(development, "development", "d", false, "site development items only")
	cmd.MarkFlagsMutuallyExclusive("apartment", "development")
}

func scopeFromFlags(apartment string, development bool) (progress.Scope, error) {
	switch {
	case apartment != "":
		return progress.ParseScope("apartment", apartment)
	case development:
		return progress.Development(), nil
	default:
		return progress.Project(), nil
	}
}

func runProgress(cmd *cobra.Command, configPath string, scope progress.Scope, items, asJSON bool) error {
	out := cmd.OutOrStdout()
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	if scope.Kind == progress.ScopeApartment {
		if _, err := report.GetApartment(gormDB, scope.Apartment); err != nil {
			return err
		}
	}
	snaps, err := report.LoadSnapshots(gormDB, scope)
	if err != nil {
		return err
	}
	engine := progress.NewEngine(settingsStore(configPath, cfg))
	rep := engine.Scope(snaps, scope)

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	printScopeReport(out, cfg.Project, rep, items)
	if scope.Kind == progress.ScopeProject {
		apts := engine.Apartments(snaps)
		if len(apts) > 0 {
			fmt.Fprintln(out, "\nApartments:")
			for _, a := range apts {
				fmt.Fprintf(out, "  %-8s %s %s  issues %s\n",
					a.Number, progressBar(a.OverallProgress), colorPercent(a.OverallProgress), colorIssues(a.TotalIssues))
			}
		}
	}
	return nil
}

func printScopeReport(out io.Writer, project string, rep progress.ScopeReport, items bool) {
	fmt.Fprintf(out, "%s (%s)\n", project, rep.Scope)
	if rep.ReportCount == 0 {
		fmt.Fprintln(out, "No reports.")
		return
	}
	fmt.Fprintf(out, "Overall: %s %s\n", progressBar(rep.OverallProgress), colorPercent(rep.OverallProgress))
	fmt.Fprintf(out, "Reports: %d, latest %s (%s)\n", rep.ReportCount, rep.LatestReportDate.Format("2006-01-02"), rep.LatestReportID)
	fmt.Fprintf(out, "Items: %d current, %d open issues\n\n", rep.ItemCount, rep.TotalIssues)

	fmt.Fprintf(out, "%-14s %6s %5s %6s %7s\n", "CATEGORY", "WEIGHT", "PROG", "ITEMS", "ISSUES")
	for _, c := range rep.Categories {
		note := ""
		if c.Graduated {
			note = " " + okText("graduated")
		}
		fmt.Fprintf(out, "%-14s %6g %s %6d %7s%s\n",
			c.Category, c.Weight, colorPercent(c.Progress), c.ItemCount, colorIssues(c.ActiveIssues), note)
	}

	if !items {
		return
	}
	for _, group := range []struct {
		title string
		items []progress.ItemProgress
	}{
		{"Defects", rep.Defects},
		{"In progress", rep.InProgress},
		{"Completed", rep.Completed},
	} {
		if len(group.items) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n%s (%d):\n", group.title, len(group.items))
		for _, it := range group.items {
			where := it.Apartment
			if where == "" {
				where = "dev"
			}
			fmt.Fprintf(out, "  %-6s %-13s %-40s %-12s %3.0f %s\n",
				where, it.Category, truncate(it.Description, 40), it.Effective, it.Score, it.Label)
		}
	}
}
