// Package grouping reconstructs shipment and contract aggregates from
// the ordered raw rows of one export file. A row either starts a new
// aggregate, continues the open one with another product line, or is
// dropped when it signals neither.
package grouping

import "github.com/Rafiklab24/loyal-supplychain/internal/importer/sheet"

type signal int

const (
	signalNone signal = iota
	signalNewRecord
	signalContinuation
)

// classifyShipmentRow is the single decision point for the shipments
// file. A new record carries a status word, or a port of loading paired
// with either an ETA or a total value. A continuation carries only a
// product description: no status, no port of loading.
//
// A row matching neither rule is deliberately unclassified; the
// aggregator drops it. That includes the ambiguous shape of a product
// row that also carries a port of loading without ETA or total.
func classifyShipmentRow(r *sheet.RawRow) signal {
	switch {
	case r.StatusWord != "":
		return signalNewRecord
	case r.POL != "" && r.ETA != "":
		return signalNewRecord
	case r.POL != "" && r.TotalValue != "":
		return signalNewRecord
	case r.Product != "" && r.StatusWord == "" && r.POL == "":
		return signalContinuation
	default:
		return signalNone
	}
}

// classifyContractRow is the pending-contracts variant: a supplier name
// paired with a port of loading or a total value starts a record; a
// bare product description continues one.
func classifyContractRow(r *sheet.RawRow) signal {
	switch {
	case r.Supplier != "" && (r.POL != "" || r.TotalValue != ""):
		return signalNewRecord
	case r.Product != "" && r.Supplier == "":
		return signalContinuation
	default:
		return signalNone
	}
}
