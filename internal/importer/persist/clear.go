package persist

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// clearOrder lists the transactional tables in strict reverse-foreign-key
// order. Master data (ports, companies) is never cleared.
var clearOrder = []string{
	"finance.customs_clearing_costs",
	"finance.transactions",
	"logistics.shipment_documents",
	"logistics.shipment_financials",
	"logistics.shipment_logistics",
	"logistics.shipment_lines",
	"logistics.shipment_cargo",
	"logistics.shipment_parties",
	"logistics.shipments",
	"logistics.contract_lines",
	"logistics.contract_products",
	"logistics.contract_terms",
	"logistics.contract_shipping",
	"logistics.contract_parties",
	"logistics.contracts",
}

const pgUndefinedTable = "42P01"

// clearTransactionalData wipes prior import output inside the running
// transaction. Each DELETE runs under a savepoint so a missing table can
// be tolerated without poisoning the enclosing transaction; any other
// failure aborts the run.
func clearTransactionalData(ctx context.Context, tx pgx.Tx) error {
	for _, table := range clearOrder {
		sp, err := tx.Begin(ctx)
		if err != nil {
			return gerrors.Wrap(err, "savepoint")
		}
		if _, err := sp.Exec(ctx, "DELETE FROM "+table); err != nil {
			_ = sp.Rollback(ctx)
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable {
				continue
			}
			return gerrors.Wrapf(err, "clear %s", table)
		}
		if err := sp.Commit(ctx); err != nil {
			return gerrors.Wrapf(err, "clear %s", table)
		}
	}
	return nil
}
