package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:           "trade-data",
		Short:         "Import trade spreadsheet exports into the supply-chain database",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.contractsFile, "contracts-file", "", "Pending-contracts CSV (two-file mode)")
	cmd.Flags().StringVar(&opts.shipmentsFile, "shipments-file", "", "Shipments CSV (two-file mode)")
	cmd.Flags().StringVar(&opts.legacyFile, "file", "", "Combined CSV (legacy single-file mode)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Preview without writing to the database")
	cmd.Flags().BoolVar(&opts.appendMode, "append", false, "Skip the clean-slate clear before importing")
	cmd.Flags().BoolVar(&opts.skipInvalid, "skip-invalid", false, "Skip records with validation errors instead of aborting")
	cmd.Flags().IntVar(&opts.preview, "preview", 0, "Dry-run preview size per aggregate class (default from env)")

	cmd.AddCommand(newMigrateCmd())
	return cmd
}

func Execute(ctx context.Context) {
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitCode(err))
	}
}
