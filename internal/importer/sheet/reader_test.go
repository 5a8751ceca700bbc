package sheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleRow = `1;Acme Foods;CT-100;INV-55;أبحر;Rice 25kg bags;500;12500;620;6200000;3000000;3200000;Mumbai;Jeddah;2025/03/10;14;2025/03/20;;docs ok;MSC;Vessel X;BL-777;2025/02/01;2025-03-01;2025/03/15;Al Noor Trading;Jeddah Warehouse;none`

// 29 header cells for the two-file layout, on one physical line.
func twoFileHeader() string {
	cells := make([]string, LayoutTwoFile.Columns())
	cells[0] = "رقم"
	cells[1] = "Supplier"
	cells[2] = "Contract No"
	return strings.Join(cells, ";")
}

func TestParse_ExampleRowTwoFile(t *testing.T) {
	content := "\uFEFF" + "Shipments;;;\n" + twoFileHeader() + "\n" + exampleRow + "\n"

	rows, err := Parse(content, LayoutTwoFile)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	r := rows[0]
	assert.Equal(t, "1", r.RowNo)
	assert.Equal(t, "Acme Foods", r.Supplier)
	assert.Equal(t, "CT-100", r.ContractNo)
	assert.Equal(t, "INV-55", r.InvoiceNo)
	assert.Equal(t, "أبحر", r.StatusWord)
	assert.Equal(t, "Rice 25kg bags", r.Product)
	assert.Equal(t, "500", r.ContainerCount)
	assert.Equal(t, "12500", r.PricePerTon)
	assert.Equal(t, "620", r.WeightTon)
	assert.Equal(t, "6200000", r.TotalValue)
	assert.Equal(t, "3000000", r.PaidValue)
	assert.Equal(t, "3200000", r.BalanceValue)
	assert.Equal(t, "Mumbai", r.POL)
	assert.Equal(t, "Jeddah", r.POD)
	assert.Equal(t, "2025/03/10", r.ETA)
	assert.Equal(t, "14", r.FreeTimeDays)
	assert.Equal(t, "2025/03/20", r.CustomsClearanceDate)
	assert.Equal(t, "", r.DelayStatus)
	assert.Equal(t, "docs ok", r.DocsStatus)
	assert.Equal(t, "MSC", r.ShippingLine)
	assert.Equal(t, "Vessel X", r.Vessel)
	assert.Equal(t, "BL-777", r.BLNo)
	assert.Equal(t, "2025/02/01", r.DepositDate)
	assert.Equal(t, "2025-03-01", r.ShipDate)
	assert.Equal(t, "2025/03/15", r.BLDate)
	assert.Equal(t, "Al Noor Trading", r.FinalBeneficiary)
	assert.Equal(t, "Jeddah Warehouse", r.FinalDestination)
	assert.Equal(t, "none", r.Notes)
}

func TestParse_LegacyTrailingSupplier(t *testing.T) {
	cells := make([]string, LayoutLegacy.Columns())
	cells[0] = "1"
	cells[1] = "CT-200"
	cells[3] = "تم الشحن"
	cells[4] = "Sugar"
	cells[27] = "Delta Traders"
	header := "S/N;" + strings.Join(make([]string, LayoutLegacy.Columns()-1), ";")
	content := header + "\n" + strings.Join(cells, ";") + "\n"

	rows, err := Parse(content, LayoutLegacy)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "CT-200", rows[0].ContractNo)
	assert.Equal(t, "Delta Traders", rows[0].Supplier)
}

func TestParse_WrappedHeader(t *testing.T) {
	// Header block split across two physical lines by an embedded
	// newline inside a cell.
	first := "رقم;Supplier;Contract"
	second := "No;" + strings.Join(make([]string, LayoutTwoFile.Columns()-3), ";")
	content := first + "\n" + second + "\n" + exampleRow + "\n"

	rows, err := Parse(content, LayoutTwoFile)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "BL-777", rows[0].BLNo)
}

func TestParse_BlankAndDashRowsSkipped(t *testing.T) {
	blank := strings.Join(make([]string, LayoutTwoFile.Columns()), ";")
	dashes := strings.Repeat("-;", LayoutTwoFile.Columns()-1) + "$ -"
	content := twoFileHeader() + "\n" + blank + "\n" + dashes + "\n" + exampleRow + "\n"

	rows, err := Parse(content, LayoutTwoFile)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestParse_NoHeaderIsError(t *testing.T) {
	_, err := Parse("just;some;random;data\n", LayoutTwoFile)
	require.Error(t, err)
}

func TestParse_ShortRowPadded(t *testing.T) {
	content := twoFileHeader() + "\n" + "1;Acme;CT-1;;تعاقد;Rice" + "\n"
	rows, err := Parse(content, LayoutTwoFile)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Rice", rows[0].Product)
	assert.Equal(t, "", rows[0].Notes)
}
