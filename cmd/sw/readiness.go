package main

import (
	"fmt"

	"github.com/sitewatch/sitewatch/internal/progress"
	"github.com/sitewatch/sitewatch/internal/report"
	"github.com/spf13/cobra"
)

func newReadinessCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "readiness",
		Short: "Show per-apartment handover readiness",
		Long:  "Counts each apartment's items as OK, defect or pending and prints a health score (OK share of all items).",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReadiness(cmd, configPath)
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func runReadiness(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	snaps, err := report.LoadSnapshots(gormDB, progress.Project())
	if err != nil {
		return err
	}
	rows := progress.Readiness(snaps)
	if len(rows) == 0 {
		fmt.Fprintln(out, "No apartments.")
		return nil
	}

	fmt.Fprintf(out, "%-10s %5s %7s %8s %6s %7s\n", "APARTMENT", "OK", "DEFECT", "PENDING", "TOTAL", "HEALTH")
	for _, r := range rows {
		health := fmt.Sprintf("%6.1f%%", r.HealthScore)
		switch {
		case r.HealthScore >= 80:
			health = okText(health)
		case r.HealthScore < 50:
			health = errText(health)
		}
		fmt.Fprintf(out, "%-10s %5d %7s %8d %6d %s\n", r.Apartment, r.OK, colorIssues(r.Defect), r.Pending, r.Total, health)
	}
	return nil
}
