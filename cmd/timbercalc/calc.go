package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/piwi3910/timbercalc/internal/engine"
	"github.com/piwi3910/timbercalc/internal/export"
	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/piwi3910/timbercalc/internal/ui"
	"github.com/spf13/cobra"
)

func newCalcCmd(a *app) *cobra.Command {
	var (
		customer string
		shareDir string
	)
	cmd := &cobra.Command{
		Use:   "calc <module>",
		Short: "Start an interactive calculation session",
		Long: "Start an interactive session for sawn-wood, round-log or beading.\n" +
			"Entries are typed as key=value pairs; /help lists the commands.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := model.ParseModule(args[0])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			session := ui.NewSession(engine.NewWorkspace(module), a.cfg, newExporter(a.cfg, shareDir),
				cmd.InOrStdin(), cmd.OutOrStdout())
			session.SetCustomer(customer)
			session.OnExport = a.recordExport
			return session.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&customer, "customer", "", "customer or product name printed on documents")
	cmd.Flags().StringVar(&shareDir, "share-dir", "", "directory documents are shared to")
	return cmd
}

// newExporter builds the exporter for cfg. Without a share directory,
// sharing is unsupported and documents are saved locally instead.
func newExporter(cfg model.AppConfig, shareDir string) *export.Exporter {
	var sharer export.Sharer
	if shareDir != "" {
		sharer = export.DirSharer{Dir: shareDir}
	}
	exp := export.NewExporter(cfg, sharer)
	exp.Logger = log.Default()
	return exp
}
