package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sitewatch/sitewatch/internal/config"
	"github.com/sitewatch/sitewatch/internal/models"
	"github.com/sitewatch/sitewatch/internal/settings"
	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and edit the progress configuration",
	}

	cmd.AddCommand(newSettingsShowCmd())
	cmd.AddCommand(newSettingsValidateCmd())
	cmd.AddCommand(newSettingsSetWeightCmd())
	cmd.AddCommand(newSettingsSetThresholdCmd())
	return cmd
}

func loadStore(configPath string) (*settings.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return settingsStore(configPath, cfg), nil
}

func newSettingsShowCmd() *cobra.Command {
	var (
		configPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective progress configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(configPath)
			if err != nil {
				return err
			}
			return runSettingsShow(cmd.OutOrStdout(), store, asJSON)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

func runSettingsShow(out io.Writer, store *settings.Store, asJSON bool) error {
	cfg := store.Load()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	}

	fmt.Fprintf(out, "Progress config: %s\n", store.Path())
	if cfg.UpdatedAt != nil {
		fmt.Fprintf(out, "Updated: %s\n", cfg.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Fprintln(out, "\nCategory weights:")
	for _, cat := range models.AllCategories {
		fmt.Fprintf(out, "  %-14s %g\n", cat, cfg.Weight(cat))
	}
	fmt.Fprintf(out, "  %-14s %g\n", "(default)", cfg.DefaultCategoryWeight)

	fmt.Fprintln(out, "\nThresholds:")
	for _, name := range settings.ThresholdNames {
		fmt.Fprintf(out, "  %-20s %g\n", name, cfg.Threshold(name))
	}
	fmt.Fprintf(out, "\nBaseline %g, max %g, defect penalty %g\n", cfg.BaselineProgress, cfg.MaxProgress, cfg.DefectPenalty)
	return nil
}

func newSettingsValidateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the progress configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(configPath)
			if err != nil {
				return err
			}
			res := settings.Validate(store.Load())
			printValidation(cmd.OutOrStdout(), res)
			if !res.Valid {
				return errors.New("progress config is invalid")
			}
			return nil
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func printValidation(out io.Writer, res settings.ValidationResult) {
	for _, e := range res.Errors {
		fmt.Fprintf(out, "%s %s\n", errText("error:"), e)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "%s %s\n", warnText("warning:"), w)
	}
	if res.Valid {
		fmt.Fprintf(out, "%s (%d warnings)\n", okText("valid"), len(res.Warnings))
	}
}

func newSettingsSetWeightCmd() *cobra.Command {
	var (
		configPath string
		rebalance  bool
	)

	cmd := &cobra.Command{
		Use:   "set-weight <CATEGORY> <weight>",
		Short: "Set a category weight",
		Long: `Sets the weight of one category. Weights must sum to 100, so either
edit several weights in turn or pass --rebalance to scale the other
categories proportionally.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := models.Category(strings.ToUpper(args[0]))
			if !cat.Valid() {
				return fmt.Errorf("unknown category %q", args[0])
			}
			w, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid weight %q: %w", args[1], err)
			}
			store, err := loadStore(configPath)
			if err != nil {
				return err
			}
			cfg := store.Load()
			setWeight(&cfg, cat, w, rebalance)
			return saveSettings(cmd.OutOrStdout(), store, cfg)
		},
	}

	addConfigFlag(cmd, &configPath)
	cmd.Flags().BoolVar(&rebalance, "rebalance", false, "scale other weights so the total stays 100")
	return cmd
}

// setWeight assigns w to cat. With rebalance the remaining weights are
// scaled to fill 100-w.
func setWeight(cfg *settings.Config, cat models.Category, w float64, rebalance bool) {
	if cfg.CategoryWeights == nil {
		cfg.CategoryWeights = map[models.Category]float64{}
	}
	cfg.CategoryWeights[cat] = w
	if !rebalance {
		return
	}
	var others float64
	for c, v := range cfg.CategoryWeights {
		if c != cat {
			others += v
		}
	}
	if others == 0 {
		return
	}
	factor := (100 - w) / others
	for c, v := range cfg.CategoryWeights {
		if c != cat {
			cfg.CategoryWeights[c] = v * factor
		}
	}
}

func newSettingsSetThresholdCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "set-threshold <NAME> <value>",
		Short: "Set a progress threshold",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.ToUpper(args[0])
			known := false
			for _, n := range settings.ThresholdNames {
				known = known || n == name
			}
			if !known {
				return fmt.Errorf("unknown threshold %q (known: %s)", args[0], strings.Join(settings.ThresholdNames, ", "))
			}
			v, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[1], err)
			}
			store, err := loadStore(configPath)
			if err != nil {
				return err
			}
			cfg := store.Load()
			cfg.ProgressThresholds[name] = v
			return saveSettings(cmd.OutOrStdout(), store, cfg)
		},
	}

	addConfigFlag(cmd, &configPath)
	return cmd
}

func saveSettings(out io.Writer, store *settings.Store, cfg settings.Config) error {
	res, err := store.Save(cfg)
	printValidation(out, res)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %s\n", store.Path())
	return nil
}
