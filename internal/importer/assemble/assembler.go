// Package assemble turns grouped aggregates into insert-ready form:
// totals recomputed from product lines, and contracts synthesized for
// shipments that reference no pending contract.
package assemble

import (
	"github.com/Rafiklab24/loyal-supplychain/internal/importer/model"
	"github.com/Rafiklab24/loyal-supplychain/internal/importer/normalize"
)

// RecomputeTotals re-derives container and weight totals from the product
// lines. Grouping accumulates them already; this guards the invariant
// against any later mutation of the lines.
func RecomputeTotals(run *model.ImportRun) {
	for _, s := range run.Shipments {
		s.TotalContainers, s.TotalWeightTon = sumLines(s.Lines)
	}
	for _, c := range run.PendingContracts {
		c.TotalContainers, c.TotalWeightTon = sumLines(c.Lines)
	}
	for _, c := range run.AutoContracts {
		c.TotalContainers, c.TotalWeightTon = sumLines(c.Lines)
	}
}

// SynthesizeContracts creates an active contract for every shipment whose
// contract number matches no pending contract: the goods are already
// moving, so the agreement evidently exists. Shipments sharing a contract
// number share one synthesized contract. The result is stored on the run
// and returned.
func SynthesizeContracts(run *model.ImportRun) []*model.ParsedContract {
	pending := make(map[string]struct{}, len(run.PendingContracts))
	for _, c := range run.PendingContracts {
		pending[normalize.Fold(c.ContractNo)] = struct{}{}
	}

	byNo := make(map[string]*model.ParsedContract)
	var out []*model.ParsedContract
	for _, s := range run.Shipments {
		contractNo := s.ContractNo
		if contractNo == "" {
			contractNo = s.SN
		}
		key := normalize.Fold(contractNo)
		if _, ok := pending[key]; ok {
			continue
		}

		c, ok := byNo[key]
		if !ok {
			c = &model.ParsedContract{
				ContractNo:       contractNo,
				InvoiceNo:        s.InvoiceNo,
				Status:           model.StatusActive,
				Supplier:         s.Supplier,
				POL:              s.POL,
				POD:              s.POD,
				FinalDestination: s.FinalDestination,
				ETA:              s.ETA,
				PricePerTonUSD:   s.PricePerTonUSD,
				TotalValueUSD:    s.TotalValueUSD,
				PaidValueUSD:     s.PaidValueUSD,
				BalanceValueUSD:  s.BalanceValueUSD,
				SourceRow:        s.SourceRow,
			}
			byNo[key] = c
			out = append(out, c)
		}
		c.Lines = append(c.Lines, s.Lines...)
		c.TotalContainers += s.TotalContainers
		c.TotalWeightTon += s.TotalWeightTon
		c.ShipmentSNs = append(c.ShipmentSNs, s.SN)
	}

	run.AutoContracts = out
	return out
}

func sumLines(lines []model.ProductLine) (containers int, weight float64) {
	for _, l := range lines {
		if l.ContainerCount != nil {
			containers += *l.ContainerCount
		}
		if l.WeightTon != nil {
			weight += *l.WeightTon
		}
	}
	return containers, weight
}
