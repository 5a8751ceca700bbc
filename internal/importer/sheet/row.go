package sheet

import "strings"

// Layout selects the positional column order of a file.
//
// LayoutLegacy is the original single-file export: 28 columns with the
// supplier in the trailing slot. LayoutTwoFile is the newer two-file
// export: the supplier column was inserted at position 2 and the old
// trailing slot kept (29 columns); when column 2 is blank the trailing
// slot still wins as a fallback.
type Layout int

const (
	LayoutLegacy Layout = iota
	LayoutTwoFile
)

func (l Layout) Columns() int {
	if l == LayoutTwoFile {
		return 29
	}
	return 28
}

// RawRow is one data record mapped onto named fields. Everything is
// untyped text; emptiness is significant because it drives the row
// classifier.
type RawRow struct {
	Line int // physical line number in the file, 1-based

	RowNo                string
	Supplier             string
	ContractNo           string
	InvoiceNo            string
	StatusWord           string
	Product              string
	ContainerCount       string
	PricePerTon          string
	WeightTon            string
	TotalValue           string
	PaidValue            string
	BalanceValue         string
	POL                  string
	POD                  string
	ETA                  string
	FreeTimeDays         string
	CustomsClearanceDate string
	DelayStatus          string
	DocsStatus           string
	ShippingLine         string
	Vessel               string
	BLNo                 string
	DepositDate          string
	ShipDate             string
	BLDate               string
	FinalBeneficiary     string
	FinalDestination     string
	Notes                string
}

// mapFields binds tokenized cells onto a RawRow. Short rows are padded;
// extra cells beyond the layout are ignored.
func mapFields(layout Layout, cells []string, line int) RawRow {
	padded := make([]string, layout.Columns())
	for i := range padded {
		if i < len(cells) {
			padded[i] = strings.TrimSpace(cells[i])
		}
	}

	var r RawRow
	r.Line = line

	i := 0
	next := func() string {
		v := padded[i]
		i++
		return v
	}

	r.RowNo = next()
	if layout == LayoutTwoFile {
		r.Supplier = next()
	}
	r.ContractNo = next()
	r.InvoiceNo = next()
	r.StatusWord = next()
	r.Product = next()
	r.ContainerCount = next()
	r.PricePerTon = next()
	r.WeightTon = next()
	r.TotalValue = next()
	r.PaidValue = next()
	r.BalanceValue = next()
	r.POL = next()
	r.POD = next()
	r.ETA = next()
	r.FreeTimeDays = next()
	r.CustomsClearanceDate = next()
	r.DelayStatus = next()
	r.DocsStatus = next()
	r.ShippingLine = next()
	r.Vessel = next()
	r.BLNo = next()
	r.DepositDate = next()
	r.ShipDate = next()
	r.BLDate = next()
	r.FinalBeneficiary = next()
	r.FinalDestination = next()
	r.Notes = next()

	trailing := next() // legacy supplier slot
	if r.Supplier == "" {
		r.Supplier = trailing
	}
	return r
}

// IsBlank reports whether the row carries no data at all: every cell
// empty, a bare dash, or the "$ -" bookkeeping zero.
func (r *RawRow) IsBlank() bool {
	for _, v := range r.cells() {
		switch strings.TrimSpace(strings.ReplaceAll(v, "$", "")) {
		case "", "-":
		default:
			return false
		}
	}
	return true
}

func (r *RawRow) cells() []string {
	return []string{
		r.RowNo, r.Supplier, r.ContractNo, r.InvoiceNo, r.StatusWord,
		r.Product, r.ContainerCount, r.PricePerTon, r.WeightTon,
		r.TotalValue, r.PaidValue, r.BalanceValue, r.POL, r.POD, r.ETA,
		r.FreeTimeDays, r.CustomsClearanceDate, r.DelayStatus, r.DocsStatus,
		r.ShippingLine, r.Vessel, r.BLNo, r.DepositDate, r.ShipDate,
		r.BLDate, r.FinalBeneficiary, r.FinalDestination, r.Notes,
	}
}
