package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/piwi3910/timbercalc/internal/engine"
	"github.com/piwi3910/timbercalc/internal/export"
	"github.com/piwi3910/timbercalc/internal/importer"
	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/piwi3910/timbercalc/internal/report"
	"github.com/spf13/cobra"
)

func newImportCmd(a *app) *cobra.Command {
	var (
		customer string
		format   string
		shareDir string
	)
	cmd := &cobra.Command{
		Use:   "import <module> <file>",
		Short: "Import entries from CSV or Excel and export a summary document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := model.ParseModule(args[0])
			if err != nil {
				return err
			}

			result := importer.ImportFile(args[1], module)
			for _, w := range result.Warnings {
				log.Printf("%s: %s", args[1], w)
			}
			for _, e := range result.Errors {
				log.Printf("%s: %s", args[1], e)
			}
			if len(result.Fields) == 0 {
				return fmt.Errorf("no entries imported from %s", args[1])
			}

			ws := engine.NewWorkspace(module)
			for _, f := range result.Fields {
				if _, err := ws.Submit(f); err != nil {
					return err
				}
			}

			exp := newExporter(a.cfg, shareDir)
			if format != "" {
				if exp.Format, err = export.ParseFormat(format); err != nil {
					return err
				}
			}

			opts := report.OptionsFromConfig(a.cfg)
			opts.ID = report.NewID()
			opts.CustomerName = customer
			opts.Date = time.Now()
			doc := report.Build(module, ws.Entries(), opts)
			fmt.Fprintln(cmd.OutOrStdout(), report.SummaryText(doc))

			if shareDir != "" {
				if err := exp.Share(context.Background(), doc); err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Shared to %s\n", shareDir)
					return nil
				}
			}
			path, err := exp.SaveLocal(doc)
			if err != nil {
				return err
			}
			a.recordExport(path)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&customer, "customer", "", "customer or product name printed on the document")
	cmd.Flags().StringVar(&format, "format", "", "pdf or xlsx (default from config)")
	cmd.Flags().StringVar(&shareDir, "share-dir", "", "share the document to this directory instead of saving it")
	return cmd
}
