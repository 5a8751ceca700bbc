package persist

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rafiklab24/loyal-supplychain/internal/importer/masterdata"
	"github.com/Rafiklab24/loyal-supplychain/internal/importer/model"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func previewRun() *model.ImportRun {
	run := model.NewImportRun(true)
	paid := 3000000.0
	customs := mustDate("2025-03-20")
	run.PendingContracts = []*model.ParsedContract{
		{ContractNo: "CT-1", Status: model.StatusPending, Supplier: "Acme Foods", POL: "Mumbai", POD: "Jeddah",
			Lines: []model.ProductLine{{Product: "Rice"}}},
	}
	run.AutoContracts = []*model.ParsedContract{
		{ContractNo: "CT-7", Status: model.StatusActive, Supplier: "Delta Traders",
			Lines: []model.ProductLine{{Product: "Sugar"}}, ShipmentSNs: []string{"BL-2"}},
	}
	run.Shipments = []*model.ParsedShipment{
		{SN: "BL-1", ContractNo: "CT-1", Status: model.StatusSailed, Supplier: "Acme Foods",
			ShippingLine: "MSC", POL: "Mumbai", POD: "Jeddah",
			Lines:        []model.ProductLine{{Product: "Rice", ContainerCount: intp(100)}},
			PaidValueUSD: &paid, CustomsClearanceDate: &customs, TotalValueUSD: floatp(6200000)},
		{SN: "BL-2", ContractNo: "CT-7", Status: model.StatusArrived, Supplier: "Delta Traders",
			POL:   "Mundra",
			Lines: []model.ProductLine{{Product: "Sugar", ContainerCount: intp(50)}},
		},
	}
	return run
}

func TestDryRun_Counts(t *testing.T) {
	var buf bytes.Buffer
	lk := masterdata.NewLookups()
	lk.Suppliers["acme foods"] = 10
	lk.Companies["acme foods"] = 10
	lk.Ports["mumbai"] = 1

	d := &DryRun{Out: &buf, Lookups: lk, PreviewLimit: 5}
	stats, err := d.Persist(context.Background(), previewRun())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.ContractsCreated)
	assert.Equal(t, 2, stats.ContractLines)
	assert.Equal(t, 2, stats.ShipmentsCreated)
	assert.Equal(t, 2, stats.ShipmentLines)
	assert.Equal(t, 1, stats.TransactionsCreated)
	assert.Equal(t, 1, stats.CustomsCostsCreated)

	// Jeddah and Mundra are new; Mumbai exists. Delta Traders and MSC are
	// new; Acme Foods exists.
	assert.Equal(t, 2, stats.PortsCreated)
	assert.Equal(t, 2, stats.CompaniesCreated)

	out := buf.String()
	assert.Contains(t, out, "DRY RUN")
	assert.Contains(t, out, "BL-1 [sailed] Mumbai -> Jeddah")
	assert.Contains(t, out, "CT-7 [active]")
	assert.Contains(t, out, "new ports:            2")
	assert.Contains(t, out, "new companies:        2")
}

func TestDryRun_PreviewIsBounded(t *testing.T) {
	run := model.NewImportRun(true)
	for i := 0; i < 10; i++ {
		run.Shipments = append(run.Shipments, &model.ParsedShipment{
			SN: "BL-" + strings.Repeat("x", i+1), Status: model.StatusSailed,
		})
	}

	var buf bytes.Buffer
	d := &DryRun{Out: &buf, PreviewLimit: 3}
	stats, err := d.Persist(context.Background(), run)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.ShipmentsCreated)
	assert.Equal(t, 3, strings.Count(buf.String(), "[sailed]"))
}

func TestDryRun_NilLookupsStillWorks(t *testing.T) {
	var buf bytes.Buffer
	d := &DryRun{Out: &buf}
	stats, err := d.Persist(context.Background(), previewRun())
	require.NoError(t, err)
	// Nothing exists, so every name counts as new.
	assert.Equal(t, 3, stats.PortsCreated)
	assert.Equal(t, 3, stats.CompaniesCreated)
}

func TestDryRun_FlagsSimilarNames(t *testing.T) {
	var buf bytes.Buffer
	lk := masterdata.NewLookups()
	lk.Ports["rotterdam"] = 1

	run := model.NewImportRun(true)
	run.Shipments = []*model.ParsedShipment{
		{SN: "BL-1", Status: model.StatusSailed, POL: "Roterdam"}, // typo
	}

	d := &DryRun{Out: &buf, Lookups: lk}
	_, err := d.Persist(context.Background(), run)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `resembles existing "rotterdam"`)
}
