package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/piwi3910/timbercalc/internal/export"
	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/piwi3910/timbercalc/internal/project"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// configKeys lists the settings accepted by "config set".
var configKeys = []string{"company", "output-dir", "format", "tax", "grades", "unspecified-grade"}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(a.cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s\n", a.configPath, data)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a setting (" + strings.Join(configKeys, ", ") + ")",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Env overrides must not be persisted, so start from the file.
			cfg, err := project.LoadAppConfig(a.configPath)
			if err != nil {
				return err
			}
			if err := applySetting(&cfg, args[0], args[1]); err != nil {
				return err
			}
			if err := project.SaveAppConfig(a.configPath, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", a.configPath)
			return nil
		},
	})
	return cmd
}

// applySetting changes one config value by its command line key.
func applySetting(cfg *model.AppConfig, key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.ToLower(key) {
	case "company":
		cfg.CompanyName = value
	case "output-dir":
		cfg.OutputDir = value
	case "format":
		f, err := export.ParseFormat(value)
		if err != nil {
			return err
		}
		cfg.ExportFormat = string(f)
	case "tax":
		d, err := decimal.NewFromString(value)
		if err != nil || d.IsNegative() {
			return fmt.Errorf("tax must be a non-negative number, got %q", value)
		}
		cfg.DefaultTaxPercent = d
	case "grades":
		var grades []string
		for _, g := range strings.Split(value, ",") {
			if g = strings.TrimSpace(g); g != "" {
				grades = append(grades, g)
			}
		}
		cfg.GradePriority = grades
		if grades == nil {
			cfg.GradePriority = []string{}
		}
	case "unspecified-grade":
		cfg.UnspecifiedGrade = value
	default:
		return fmt.Errorf("unknown setting %q (want one of %s)", key, strings.Join(configKeys, ", "))
	}
	cfg.Normalize()
	return nil
}
