// Package masterdata resolves free-text party and port names against the
// master tables, creating entities on the fly during a live import.
package masterdata

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/Rafiklab24/loyal-supplychain/internal/importer/normalize"
)

// Querier is the read surface shared by pgxpool.Pool and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Lookups holds the name→id maps for one import invocation, keyed by
// folded (lower-cased, trimmed) names. Loaded once per transaction and
// mutated in place as entities are created; passed by pointer through
// every resolver call, never package state.
type Lookups struct {
	Ports         map[string]int64
	ShippingLines map[string]int64
	Suppliers     map[string]int64
	Companies     map[string]int64 // every company regardless of role
	Contracts     map[string]int64 // contract number -> id
}

func NewLookups() *Lookups {
	return &Lookups{
		Ports:         make(map[string]int64),
		ShippingLines: make(map[string]int64),
		Suppliers:     make(map[string]int64),
		Companies:     make(map[string]int64),
		Contracts:     make(map[string]int64),
	}
}

// Load seeds the lookups from the database. Called once before the
// transaction and again after a clean-slate clear so stale contract ids
// are not reused.
func Load(ctx context.Context, db Querier) (*Lookups, error) {
	lk := NewLookups()

	rows, err := db.Query(ctx, `SELECT id, name FROM master_data.ports`)
	if err != nil {
		return nil, err
	}
	if err := scanNames(rows, func(id int64, name string) {
		lk.Ports[normalize.Fold(name)] = id
	}); err != nil {
		return nil, err
	}

	rows, err = db.Query(ctx, `SELECT id, name, is_supplier, is_shipping_line FROM master_data.companies`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var (
			id                     int64
			name                   string
			isSupplier, isShipping bool
		)
		if err := rows.Scan(&id, &name, &isSupplier, &isShipping); err != nil {
			rows.Close()
			return nil, err
		}
		key := normalize.Fold(name)
		lk.Companies[key] = id
		if isSupplier {
			lk.Suppliers[key] = id
		}
		if isShipping {
			lk.ShippingLines[key] = id
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = db.Query(ctx, `SELECT id, contract_no FROM logistics.contracts`)
	if err != nil {
		return nil, err
	}
	if err := scanNames(rows, func(id int64, no string) {
		lk.Contracts[normalize.Fold(no)] = id
	}); err != nil {
		return nil, err
	}

	return lk, nil
}

func scanNames(rows pgx.Rows, put func(id int64, name string)) error {
	defer rows.Close()
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		put(id, name)
	}
	return rows.Err()
}
