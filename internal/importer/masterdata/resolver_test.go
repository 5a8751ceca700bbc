package masterdata

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafiklab24/loyal-supplychain/internal/importer/model"
)

// fakeDB hands out sequential ids for inserts and records the names it saw.
type fakeDB struct {
	nextID   int64
	inserted []string
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.nextID++
	f.inserted = append(f.inserted, args[0].(string))
	return fakeRow{id: f.nextID}
}

type fakeRow struct{ id int64 }

func (r fakeRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.id
	return nil
}

func seededLookups() *Lookups {
	lk := NewLookups()
	lk.Ports["jebel ali"] = 1
	lk.Ports["jeddah islamic port"] = 2
	lk.Suppliers["acme foods"] = 10
	lk.Companies["acme foods"] = 10
	lk.ShippingLines["msc"] = 20
	lk.Companies["msc"] = 20
	return lk
}

func TestMatch_ExactBeforeSubstring(t *testing.T) {
	lk := seededLookups()
	lk.Ports["jeddah"] = 3

	id, ok := Match(KindPort, "  Jeddah  ", lk)
	require.True(t, ok)
	assert.Equal(t, int64(3), id)
}

func TestMatch_SubstringBothDirections(t *testing.T) {
	lk := seededLookups()

	// Lookup key contains the query.
	id, ok := Match(KindPort, "Jeddah", lk)
	require.True(t, ok)
	assert.Equal(t, int64(2), id)

	// Query contains the lookup key.
	id, ok = Match(KindShippingLine, "MSC Mediterranean", lk)
	require.True(t, ok)
	assert.Equal(t, int64(20), id)
}

func TestMatch_Misses(t *testing.T) {
	lk := seededLookups()
	_, ok := Match(KindPort, "Rotterdam", lk)
	assert.False(t, ok)
	_, ok = Match(KindPort, "", lk)
	assert.False(t, ok)
}

func TestFindOrCreate_ExactMatchDoesNotCreate(t *testing.T) {
	db := &fakeDB{}
	lk := seededLookups()
	stats := &model.ImportStats{}

	id, err := FindOrCreate(context.Background(), db, KindSupplier, "ACME Foods", lk, stats)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, int64(10), *id)
	assert.Empty(t, db.inserted)
	assert.Zero(t, stats.CompaniesCreated)
}

func TestFindOrCreate_EmptyNameIsNil(t *testing.T) {
	db := &fakeDB{}
	id, err := FindOrCreate(context.Background(), db, KindPort, "   ", NewLookups(), &model.ImportStats{})
	require.NoError(t, err)
	assert.Nil(t, id)
	assert.Empty(t, db.inserted)
}

func TestFindOrCreate_CreatesAndRegisters(t *testing.T) {
	db := &fakeDB{}
	lk := seededLookups()
	stats := &model.ImportStats{}

	id, err := FindOrCreate(context.Background(), db, KindSupplier, "Delta Traders", lk, stats)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, []string{"Delta Traders"}, db.inserted)
	assert.Equal(t, 1, stats.CompaniesCreated)

	// Registered under both the supplier and the generic company map so a
	// later customer-side resolution finds it.
	assert.Equal(t, *id, lk.Suppliers["delta traders"])
	assert.Equal(t, *id, lk.Companies["delta traders"])

	// Second resolution of the same name hits the lookup, not the db.
	again, err := FindOrCreate(context.Background(), db, KindSupplier, "delta traders", lk, stats)
	require.NoError(t, err)
	assert.Equal(t, *id, *again)
	assert.Len(t, db.inserted, 1)
	assert.Equal(t, 1, stats.CompaniesCreated)
}

func TestFindOrCreate_PortCreation(t *testing.T) {
	db := &fakeDB{}
	lk := NewLookups()
	stats := &model.ImportStats{}

	id, err := FindOrCreate(context.Background(), db, KindPort, "Mundra", lk, stats)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, 1, stats.PortsCreated)
	assert.Zero(t, stats.CompaniesCreated)
	assert.Equal(t, *id, lk.Ports["mundra"])
}

func TestMatch_DeterministicAcrossRuns(t *testing.T) {
	lk := NewLookups()
	lk.Ports["port alpha east"] = 1
	lk.Ports["port alpha west"] = 2

	first, ok := Match(KindPort, "port alpha", lk)
	require.True(t, ok)
	for i := 0; i < 10; i++ {
		got, ok := Match(KindPort, "port alpha", lk)
		require.True(t, ok)
		assert.Equal(t, first, got)
	}
	// Sorted key order makes the winner the lexicographically first key.
	assert.Equal(t, int64(1), first)
}
