package main

import (
	"fmt"

	"github.com/sitewatch/sitewatch/internal/report"
	"github.com/spf13/cobra"
)

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Bulk data-correction passes over stored work items",
	}

	cmd.AddCommand(newFixPartialCmd())
	return cmd
}

func newFixPartialCmd() *cobra.Command {
	var (
		configPath string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "partial",
		Short: "Demote completed items that mention partial work",
		Long:  "Finds COMPLETED and COMPLETED_OK items whose description or notes say the work was only partly done and sets them to IN_PROGRESS.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixPartial(cmd, configPath, dryRun)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list affected items without changing them")
	return cmd
}

func runFixPartial(cmd *cobra.Command, configPath string, dryRun bool) error {
	out := cmd.OutOrStdout()
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	fixes, err := report.CorrectPartialCompletions(gormDB, dryRun)
	if err != nil {
		return err
	}
	for _, f := range fixes {
		where := f.Apartment
		if where == "" {
			where = "dev"
		}
		fmt.Fprintf(out, "  %-6s %-40s %s -> %s\n", where, truncate(f.Description, 40), f.From, f.To)
	}
	verb := "Demoted"
	if dryRun {
		verb = "Would demote"
	}
	fmt.Fprintf(out, "%s %d items.\n", verb, len(fixes))
	return nil
}
