package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/Rafiklab24/loyal-supplychain/migrations"
	"github.com/Rafiklab24/loyal-supplychain/pkg/configuration"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply schema migrations for the import target database",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, args[0])
		},
	}
}

func runMigrate(cmd *cobra.Command, direction string) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return withCode(exitDB, err)
	}

	db, err := sql.Open("pgx", configuration.Use().Database.Opts)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("db connect failed: %w", err))
	}
	defer func() { _ = db.Close() }()

	ctx := cmd.Context()
	switch direction {
	case "up":
		return withCode(exitDB, goose.UpContext(ctx, db, "."))
	case "down":
		return withCode(exitDB, goose.DownContext(ctx, db, "."))
	case "status":
		return withCode(exitDB, goose.StatusContext(ctx, db, "."))
	default:
		return withCode(exitUsage, fmt.Errorf("unknown migrate direction: %s", direction))
	}
}
