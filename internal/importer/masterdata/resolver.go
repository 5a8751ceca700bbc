package masterdata

import (
	"context"
	"sort"
	"strings"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/Rafiklab24/loyal-supplychain/internal/importer/model"
	"github.com/Rafiklab24/loyal-supplychain/internal/importer/normalize"
)

// Kind selects the master table and role flag an entity resolves against.
type Kind int

const (
	KindPort Kind = iota
	KindSupplier
	KindShippingLine
	KindCustomer
)

func (k Kind) String() string {
	switch k {
	case KindPort:
		return "port"
	case KindSupplier:
		return "supplier"
	case KindShippingLine:
		return "shipping_line"
	default:
		return "customer"
	}
}

// RowQuerier is the write surface the resolver needs; pgx.Tx satisfies it.
type RowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Match finds an existing entity for a name without touching the
// database: exact match on the folded name first, then a substring match
// in either direction over the existing keys (sorted, so the first match
// is deterministic). Pure with respect to the lookups.
func Match(kind Kind, name string, lk *Lookups) (int64, bool) {
	key := normalize.Fold(name)
	if key == "" {
		return 0, false
	}
	for _, m := range lookupMaps(kind, lk) {
		if id, ok := m[key]; ok {
			return id, true
		}
	}
	for _, m := range lookupMaps(kind, lk) {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if strings.Contains(k, key) || strings.Contains(key, k) {
				return m[k], true
			}
		}
	}
	return 0, false
}

// FindOrCreate resolves a name to a master-data id, inserting a new row
// when nothing matches. Empty names resolve to nil. Every creation is
// registered in the lookups (suppliers and shipping lines also under the
// generic company map) and counted in the stats.
func FindOrCreate(ctx context.Context, db RowQuerier, kind Kind, name string, lk *Lookups, stats *model.ImportStats) (*int64, error) {
	key := normalize.Fold(name)
	if key == "" {
		return nil, nil
	}
	if id, ok := Match(kind, name, lk); ok {
		return &id, nil
	}

	id, err := insertEntity(ctx, db, kind, strings.TrimSpace(name))
	if err != nil {
		return nil, gerrors.Wrapf(err, "create %s %q", kind, name)
	}

	switch kind {
	case KindPort:
		lk.Ports[key] = id
		stats.PortsCreated++
	case KindSupplier:
		lk.Suppliers[key] = id
		lk.Companies[key] = id
		stats.CompaniesCreated++
	case KindShippingLine:
		lk.ShippingLines[key] = id
		lk.Companies[key] = id
		stats.CompaniesCreated++
	case KindCustomer:
		lk.Companies[key] = id
		stats.CompaniesCreated++
	}
	return &id, nil
}

func lookupMaps(kind Kind, lk *Lookups) []map[string]int64 {
	switch kind {
	case KindPort:
		return []map[string]int64{lk.Ports}
	case KindSupplier:
		return []map[string]int64{lk.Suppliers, lk.Companies}
	case KindShippingLine:
		return []map[string]int64{lk.ShippingLines, lk.Companies}
	default:
		return []map[string]int64{lk.Companies}
	}
}

func insertEntity(ctx context.Context, db RowQuerier, kind Kind, name string) (int64, error) {
	var id int64
	if kind == KindPort {
		err := db.QueryRow(ctx,
			`INSERT INTO master_data.ports (name) VALUES ($1) RETURNING id`,
			name,
		).Scan(&id)
		return id, err
	}
	err := db.QueryRow(ctx,
		`INSERT INTO master_data.companies (name, is_supplier, is_shipping_line, is_customer)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		name, kind == KindSupplier, kind == KindShippingLine, kind == KindCustomer,
	).Scan(&id)
	return id, err
}
