package grouping

import (
	"time"

	"github.com/Rafiklab24/loyal-supplychain/internal/importer/model"
	"github.com/Rafiklab24/loyal-supplychain/internal/importer/normalize"
	"github.com/Rafiklab24/loyal-supplychain/internal/importer/sheet"
)

// noteSeparator joins free-text notes with the delay-status annotation.
const noteSeparator = " | "

type groupState int

const (
	awaitingRecord groupState = iota
	accumulatingLines
)

// GroupShipments walks the ordered rows of a shipments file and emits
// fully normalized shipment aggregates. Deterministic: the same row
// sequence always yields the same aggregates, keys included.
func GroupShipments(rows []sheet.RawRow, keys *KeySet) []*model.ParsedShipment {
	var (
		out   []*model.ParsedShipment
		open  *model.ParsedShipment
		state = awaitingRecord
	)
	for i := range rows {
		r := &rows[i]
		switch classifyShipmentRow(r) {
		case signalNewRecord:
			if open != nil {
				out = append(out, open)
			}
			open = newShipment(r, keys)
			state = accumulatingLines
		case signalContinuation:
			if state == accumulatingLines {
				appendShipmentLine(open, r)
			}
			// No open aggregate: nothing to attach the line to.
		case signalNone:
			// Dropped by policy.
		}
	}
	if open != nil {
		out = append(out, open)
	}
	return out
}

// GroupContracts is the pending-contracts-file counterpart.
func GroupContracts(rows []sheet.RawRow, keys *KeySet) []*model.ParsedContract {
	var (
		out   []*model.ParsedContract
		open  *model.ParsedContract
		state = awaitingRecord
	)
	for i := range rows {
		r := &rows[i]
		switch classifyContractRow(r) {
		case signalNewRecord:
			if open != nil {
				out = append(out, open)
			}
			open = newContract(r, keys)
			state = accumulatingLines
		case signalContinuation:
			if state == accumulatingLines {
				appendContractLine(open, r)
			}
		case signalNone:
		}
	}
	if open != nil {
		out = append(out, open)
	}
	return out
}

func newShipment(r *sheet.RawRow, keys *KeySet) *model.ParsedShipment {
	s := &model.ParsedShipment{
		SN:               keys.Claim([]string{r.BLNo, r.ContractNo, r.InvoiceNo}, r.ContractNo, "SHP"),
		ContractNo:       r.ContractNo,
		InvoiceNo:        r.InvoiceNo,
		Status:           normalize.MapStatus(r.StatusWord),
		Supplier:         r.Supplier,
		ShippingLine:     r.ShippingLine,
		FinalBeneficiary: r.FinalBeneficiary,
		POL:              r.POL,
		POD:              r.POD,
		FinalDestination: r.FinalDestination,
		Vessel:           r.Vessel,
		BLNo:             r.BLNo,
		DocsStatus:       r.DocsStatus,
		Notes:            combineNotes(r.Notes, r.DelayStatus),
		FreeTimeDays:     normalize.ParseInteger(r.FreeTimeDays),
		PricePerTonUSD:   normalize.ParseCurrency(r.PricePerTon),
		TotalValueUSD:    normalize.ParseCurrency(r.TotalValue),
		PaidValueUSD:     normalize.ParseCurrency(r.PaidValue),
		BalanceValueUSD:  normalize.ParseCurrency(r.BalanceValue),
		SourceRow:        r.Line,
	}
	s.ETA = parseDateField(r.ETA, "eta", &s.BadDates)
	s.CustomsClearanceDate = parseDateField(r.CustomsClearanceDate, "customs_clearance_date", &s.BadDates)
	s.DepositDate = parseDateField(r.DepositDate, "deposit_date", &s.BadDates)
	s.ShipDate = parseDateField(r.ShipDate, "ship_date", &s.BadDates)
	s.BLDate = parseDateField(r.BLDate, "bl_date", &s.BadDates)

	if r.Product != "" {
		appendShipmentLine(s, r)
	}
	return s
}

func newContract(r *sheet.RawRow, keys *KeySet) *model.ParsedContract {
	c := &model.ParsedContract{
		ContractNo:       keys.Claim([]string{r.ContractNo, r.InvoiceNo}, r.InvoiceNo, "CT"),
		InvoiceNo:        r.InvoiceNo,
		Status:           model.StatusPending,
		Supplier:         r.Supplier,
		POL:              r.POL,
		POD:              r.POD,
		FinalDestination: r.FinalDestination,
		Notes:            combineNotes(r.Notes, r.DelayStatus),
		PricePerTonUSD:   normalize.ParseCurrency(r.PricePerTon),
		TotalValueUSD:    normalize.ParseCurrency(r.TotalValue),
		PaidValueUSD:     normalize.ParseCurrency(r.PaidValue),
		BalanceValueUSD:  normalize.ParseCurrency(r.BalanceValue),
		SourceRow:        r.Line,
	}
	c.ETA = parseDateField(r.ETA, "eta", &c.BadDates)

	if r.Product != "" {
		appendContractLine(c, r)
	}
	return c
}

func appendShipmentLine(s *model.ParsedShipment, r *sheet.RawRow) {
	line := productLine(r)
	s.Lines = append(s.Lines, line)
	if line.ContainerCount != nil {
		s.TotalContainers += *line.ContainerCount
	}
	if line.WeightTon != nil {
		s.TotalWeightTon += *line.WeightTon
	}
}

func appendContractLine(c *model.ParsedContract, r *sheet.RawRow) {
	line := productLine(r)
	c.Lines = append(c.Lines, line)
	if line.ContainerCount != nil {
		c.TotalContainers += *line.ContainerCount
	}
	if line.WeightTon != nil {
		c.TotalWeightTon += *line.WeightTon
	}
}

func productLine(r *sheet.RawRow) model.ProductLine {
	return model.ProductLine{
		Product:        r.Product,
		WeightTon:      normalize.ParseWeight(r.WeightTon),
		PricePerTon:    normalize.ParseCurrency(r.PricePerTon),
		ContainerCount: normalize.ParseInteger(r.ContainerCount),
	}
}

func parseDateField(raw, name string, bad *[]string) *time.Time {
	if raw == "" {
		return nil
	}
	t := normalize.ParseDate(raw)
	if t == nil {
		*bad = append(*bad, name)
	}
	return t
}

func combineNotes(notes, delay string) string {
	switch {
	case notes != "" && delay != "":
		return notes + noteSeparator + delay
	case delay != "":
		return delay
	default:
		return notes
	}
}
