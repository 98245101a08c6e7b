// TimberCalc: timber trade calculator for sawn wood, round logs and
// beading/patti, with landing price breakdowns and PDF/Excel summaries.
//
// Build:
//   go build -o timbercalc ./cmd/timbercalc
//
// Usage:
//   timbercalc calc round-log --customer "Sharma Traders"
//   timbercalc landing --cost 1000 --tax 18 --freight 100 --top 50
//   timbercalc import beading stock.xlsx --format xlsx

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/piwi3910/timbercalc/internal/project"
	"github.com/spf13/cobra"
)

// app carries the state shared by all subcommands.
type app struct {
	envFile    string
	configPath string
	cfg        model.AppConfig
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("timbercalc: ")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "timbercalc",
		Short:        "Timber volume, pricing and landing cost calculator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env", ".env", "environment file with TIMBERCALC_* overrides")
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $TIMBERCALC_CONFIG or ~/.timbercalc/config.json)")

	root.AddCommand(
		newCalcCmd(a),
		newLandingCmd(a),
		newImportCmd(a),
		newConfigCmd(a),
		newModulesCmd(),
	)
	return root
}

// load reads the environment file and the config, applying overrides.
func (a *app) load() error {
	if err := project.LoadEnv(a.envFile); err != nil {
		log.Printf("Could not read %s: %v", a.envFile, err)
	}
	if a.configPath == "" {
		a.configPath = project.ConfigPath()
	}
	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		return err
	}
	project.ApplyEnv(&cfg)
	a.cfg = cfg
	return nil
}

// recordExport remembers path in the recent exports list of the config file.
// Environment overrides are not written back. Failures are logged, not
// returned.
func (a *app) recordExport(path string) {
	a.cfg.AddRecentExport(path)

	cfg, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		log.Printf("Failed to read config: %v", err)
		return
	}
	cfg.AddRecentExport(path)
	if err := project.SaveAppConfig(a.configPath, cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
}

func newModulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List calculation modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, m := range model.Modules {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-14s %s\n", string(m), m.String(), m.Unit())
			}
			return nil
		},
	}
}
