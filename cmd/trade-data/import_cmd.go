package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Rafiklab24/loyal-supplychain/internal/importer/assemble"
	"github.com/Rafiklab24/loyal-supplychain/internal/importer/grouping"
	"github.com/Rafiklab24/loyal-supplychain/internal/importer/masterdata"
	"github.com/Rafiklab24/loyal-supplychain/internal/importer/model"
	"github.com/Rafiklab24/loyal-supplychain/internal/importer/persist"
	"github.com/Rafiklab24/loyal-supplychain/internal/importer/sheet"
	"github.com/Rafiklab24/loyal-supplychain/pkg/configuration"
)

type importOptions struct {
	contractsFile string
	shipmentsFile string
	legacyFile    string
	dryRun        bool
	appendMode    bool
	skipInvalid   bool
	preview       int
}

func runImport(ctx context.Context, opts importOptions) error {
	conf := configuration.Use()
	log := conf.Logger()

	twoFile := opts.contractsFile != "" || opts.shipmentsFile != ""
	switch {
	case opts.legacyFile == "" && !twoFile:
		return withCode(exitUsage, fmt.Errorf("either --file or --contracts-file/--shipments-file is required"))
	case opts.legacyFile != "" && twoFile:
		return withCode(exitUsage, fmt.Errorf("--file cannot be combined with --contracts-file/--shipments-file"))
	}

	run := model.NewImportRun(opts.dryRun)
	log.WithFields(logrus.Fields{
		"run":     run.ID,
		"dry_run": opts.dryRun,
	}).Info("starting import")

	if opts.legacyFile != "" {
		rows, err := readRows(opts.legacyFile, sheet.LayoutLegacy)
		if err != nil {
			return err
		}
		run.Shipments = grouping.GroupShipments(rows, grouping.NewKeySet())
	} else {
		if opts.contractsFile != "" {
			rows, err := readRows(opts.contractsFile, sheet.LayoutTwoFile)
			if err != nil {
				return err
			}
			run.PendingContracts = grouping.GroupContracts(rows, grouping.NewKeySet())
		}
		if opts.shipmentsFile != "" {
			rows, err := readRows(opts.shipmentsFile, sheet.LayoutTwoFile)
			if err != nil {
				return err
			}
			run.Shipments = grouping.GroupShipments(rows, grouping.NewKeySet())
		}
	}

	log.WithFields(logrus.Fields{
		"pending_contracts": len(run.PendingContracts),
		"shipments":         len(run.Shipments),
	}).Info("parsed input files")

	invalid := validateRun(run, log)

	if opts.dryRun {
		assemble.SynthesizeContracts(run)
		assemble.RecomputeTotals(run)

		limit := opts.preview
		if limit <= 0 {
			limit = conf.Import.PreviewLimit
		}
		reporter := &persist.DryRun{
			Out:          os.Stdout,
			Lookups:      loadLookupsReadOnly(ctx, log),
			PreviewLimit: limit,
		}
		_, err := reporter.Persist(ctx, run)
		return err
	}

	if invalid > 0 {
		if !opts.skipInvalid {
			return withCode(exitValidation, fmt.Errorf("%d records failed validation; rerun with --dry-run to inspect or --skip-invalid to drop them", invalid))
		}
		dropInvalid(run, log)
	}
	assemble.SynthesizeContracts(run)
	assemble.RecomputeTotals(run)

	pool, err := connectDB(ctx)
	if err != nil {
		return withCode(exitDB, err)
	}
	defer pool.Close()

	importer := &persist.TxImporter{
		DB:         pool,
		Log:        log,
		CleanSlate: !opts.appendMode,
	}
	stats, err := importer.Persist(ctx, run)
	if err != nil {
		return withCode(exitDBWrite, fmt.Errorf("import rolled back: %w", err))
	}
	printStats(os.Stdout, run, stats)
	return nil
}

func readRows(path string, layout sheet.Layout) ([]sheet.RawRow, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, withCode(exitUsage, fmt.Errorf("input file: %w", err))
	}
	rows, err := sheet.ReadFile(path, layout)
	if err != nil {
		return nil, withCode(exitValidation, fmt.Errorf("%s: %w", path, err))
	}
	return rows, nil
}

// validateRun logs every validation finding and returns how many
// aggregates carry blocking errors. Warnings never block.
func validateRun(run *model.ImportRun, log *logrus.Logger) int {
	invalid := 0
	for _, c := range run.PendingContracts {
		res := assemble.ValidateContract(c)
		logFindings(log, "contract", c.ContractNo, c.SourceRow, res.Errors, res.Warnings)
		if !res.IsValid {
			invalid++
		}
	}
	for _, s := range run.Shipments {
		res := assemble.ValidateShipment(s)
		logFindings(log, "shipment", s.SN, s.SourceRow, res.Errors, res.Warnings)
		if !res.IsValid {
			invalid++
		}
	}
	return invalid
}

func logFindings(log *logrus.Logger, kind, key string, line int, errs, warns []string) {
	entry := log.WithFields(logrus.Fields{"kind": kind, "record": key, "line": line})
	for _, e := range errs {
		entry.Error(e)
	}
	for _, w := range warns {
		entry.Warn(w)
	}
}

func dropInvalid(run *model.ImportRun, log *logrus.Logger) {
	keptContracts := run.PendingContracts[:0]
	for _, c := range run.PendingContracts {
		if assemble.ValidateContract(c).IsValid {
			keptContracts = append(keptContracts, c)
		} else {
			log.WithField("record", c.ContractNo).Warn("skipping invalid contract")
		}
	}
	run.PendingContracts = keptContracts

	keptShipments := run.Shipments[:0]
	for _, s := range run.Shipments {
		if assemble.ValidateShipment(s).IsValid {
			keptShipments = append(keptShipments, s)
		} else {
			log.WithField("record", s.SN).Warn("skipping invalid shipment")
		}
	}
	run.Shipments = keptShipments
}

// loadLookupsReadOnly seeds dry-run duplicate detection from the
// database when one is reachable; the preview still works without it.
func loadLookupsReadOnly(ctx context.Context, log *logrus.Logger) *masterdata.Lookups {
	pool, err := connectDB(ctx)
	if err != nil {
		log.WithError(err).Warn("database unreachable; dry-run will not detect existing master data")
		return masterdata.NewLookups()
	}
	defer pool.Close()

	lk, err := masterdata.Load(ctx, pool)
	if err != nil {
		log.WithError(err).Warn("loading lookups failed; dry-run will not detect existing master data")
		return masterdata.NewLookups()
	}
	return lk
}

func printStats(w io.Writer, run *model.ImportRun, stats *model.ImportStats) {
	fmt.Fprintf(w, "=== IMPORT COMMITTED (run %s in %s) ===\n",
		run.ID, time.Since(run.StartedAt).Round(time.Millisecond))
	fmt.Fprintf(w, "  ports created:        %d\n", stats.PortsCreated)
	fmt.Fprintf(w, "  companies created:    %d\n", stats.CompaniesCreated)
	fmt.Fprintf(w, "  contracts created:    %d\n", stats.ContractsCreated)
	fmt.Fprintf(w, "  contract lines:       %d\n", stats.ContractLines)
	fmt.Fprintf(w, "  shipments created:    %d\n", stats.ShipmentsCreated)
	fmt.Fprintf(w, "  shipment lines:       %d\n", stats.ShipmentLines)
	fmt.Fprintf(w, "  finance transactions: %d\n", stats.TransactionsCreated)
	fmt.Fprintf(w, "  customs cost rows:    %d\n", stats.CustomsCostsCreated)
}
