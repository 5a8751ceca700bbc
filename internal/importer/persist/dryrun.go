package persist

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/Rafiklab24/loyal-supplychain/internal/importer/masterdata"
	"github.com/Rafiklab24/loyal-supplychain/internal/importer/model"
	"github.com/Rafiklab24/loyal-supplychain/internal/importer/normalize"
)

// DryRun renders a preview of the run without touching the database. The
// lookups may be seeded from a read-only connection for duplicate
// detection, or left empty when no database is reachable.
type DryRun struct {
	Out          io.Writer
	Lookups      *masterdata.Lookups
	PreviewLimit int
}

func (d *DryRun) Persist(_ context.Context, run *model.ImportRun) (*model.ImportStats, error) {
	lk := d.Lookups
	if lk == nil {
		lk = masterdata.NewLookups()
	}
	limit := d.PreviewLimit
	if limit <= 0 {
		limit = 5
	}

	fmt.Fprintf(d.Out, "=== DRY RUN %s ===\n", run.ID)

	fmt.Fprintf(d.Out, "\n--- Pending contracts (%d, showing up to %d) ---\n", len(run.PendingContracts), limit)
	for i, c := range run.PendingContracts {
		if i >= limit {
			break
		}
		d.printContract(c)
	}

	fmt.Fprintf(d.Out, "\n--- Contracts derived from shipments (%d, showing up to %d) ---\n", len(run.AutoContracts), limit)
	for i, c := range run.AutoContracts {
		if i >= limit {
			break
		}
		d.printContract(c)
	}

	fmt.Fprintf(d.Out, "\n--- Shipments (%d, showing up to %d) ---\n", len(run.Shipments), limit)
	for i, s := range run.Shipments {
		if i >= limit {
			break
		}
		d.printShipment(s)
	}

	stats := d.summarize(run, lk)
	return stats, nil
}

func (d *DryRun) printContract(c *model.ParsedContract) {
	fmt.Fprintf(d.Out, "  %s [%s] supplier=%q lines=%d containers=%d weight=%.2ft",
		c.ContractNo, c.Status, c.Supplier, len(c.Lines), c.TotalContainers, c.TotalWeightTon)
	if c.TotalValueUSD != nil {
		fmt.Fprintf(d.Out, " total=%s", normalize.FormatCurrency(*c.TotalValueUSD))
	}
	if len(c.ShipmentSNs) > 0 {
		fmt.Fprintf(d.Out, " shipments=%v", c.ShipmentSNs)
	}
	fmt.Fprintln(d.Out)
}

func (d *DryRun) printShipment(s *model.ParsedShipment) {
	fmt.Fprintf(d.Out, "  %s [%s] %s -> %s lines=%d containers=%d weight=%.2ft",
		s.SN, s.Status, orDash(s.POL), orDash(s.POD), len(s.Lines), s.TotalContainers, s.TotalWeightTon)
	if s.ETA != nil {
		fmt.Fprintf(d.Out, " eta=%s", normalize.FormatDate(*s.ETA))
	}
	if s.TotalValueUSD != nil {
		fmt.Fprintf(d.Out, " total=%s", normalize.FormatCurrency(*s.TotalValueUSD))
	}
	fmt.Fprintln(d.Out)
}

// summarize counts what a live run would create, resolving names against
// the read-only lookups. New names that closely resemble an existing key
// are flagged so a typo does not silently fork master data.
func (d *DryRun) summarize(run *model.ImportRun, lk *masterdata.Lookups) *model.ImportStats {
	stats := &model.ImportStats{}

	newPorts := newNameSet()
	newCompanies := newNameSet()

	countParty := func(kind masterdata.Kind, name string, set *nameSet) {
		if normalize.Fold(name) == "" {
			return
		}
		if _, ok := masterdata.Match(kind, name, lk); !ok {
			set.add(name)
		}
	}

	for _, c := range run.PendingContracts {
		stats.ContractsCreated++
		stats.ContractLines += len(c.Lines)
		countParty(masterdata.KindSupplier, c.Supplier, newCompanies)
		countParty(masterdata.KindPort, c.POL, newPorts)
		countParty(masterdata.KindPort, c.POD, newPorts)
	}
	for _, c := range run.AutoContracts {
		stats.ContractsCreated++
		stats.ContractLines += len(c.Lines)
		countParty(masterdata.KindSupplier, c.Supplier, newCompanies)
		countParty(masterdata.KindPort, c.POL, newPorts)
		countParty(masterdata.KindPort, c.POD, newPorts)
	}
	for _, s := range run.Shipments {
		stats.ShipmentsCreated++
		stats.ShipmentLines += len(s.Lines)
		countParty(masterdata.KindSupplier, s.Supplier, newCompanies)
		countParty(masterdata.KindShippingLine, s.ShippingLine, newCompanies)
		countParty(masterdata.KindCustomer, s.FinalBeneficiary, newCompanies)
		countParty(masterdata.KindPort, s.POL, newPorts)
		countParty(masterdata.KindPort, s.POD, newPorts)
		if s.PaidValueUSD != nil && *s.PaidValueUSD > 0 {
			stats.TransactionsCreated++
		}
		if s.CustomsClearanceDate != nil {
			stats.CustomsCostsCreated++
		}
	}
	stats.PortsCreated = newPorts.len()
	stats.CompaniesCreated = newCompanies.len()

	fmt.Fprintf(d.Out, "\n--- Would create ---\n")
	fmt.Fprintf(d.Out, "  contracts:            %d (%d pending, %d derived)\n",
		stats.ContractsCreated, len(run.PendingContracts), len(run.AutoContracts))
	fmt.Fprintf(d.Out, "  contract lines:       %d\n", stats.ContractLines)
	fmt.Fprintf(d.Out, "  shipments:            %d\n", stats.ShipmentsCreated)
	fmt.Fprintf(d.Out, "  shipment lines:       %d\n", stats.ShipmentLines)
	fmt.Fprintf(d.Out, "  finance transactions: %d\n", stats.TransactionsCreated)
	fmt.Fprintf(d.Out, "  customs cost rows:    %d\n", stats.CustomsCostsCreated)
	fmt.Fprintf(d.Out, "  new ports:            %d\n", stats.PortsCreated)
	fmt.Fprintf(d.Out, "  new companies:        %d\n", stats.CompaniesCreated)

	d.printSimilar(newPorts, lk.Ports, "port")
	d.printSimilar(newCompanies, lk.Companies, "company")
	return stats
}

// printSimilar warns about new names fuzzily close to an existing key.
func (d *DryRun) printSimilar(created *nameSet, existing map[string]int64, kind string) {
	keys := make([]string, 0, len(existing))
	for k := range existing {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, name := range created.names() {
		matches := fuzzy.RankFindNormalizedFold(normalize.Fold(name), keys)
		if len(matches) == 0 {
			continue
		}
		sort.Sort(matches)
		fmt.Fprintf(d.Out, "  note: new %s %q resembles existing %q\n", kind, name, matches[0].Target)
	}
}

// nameSet de-duplicates by folded name while keeping first-seen display
// names in input order.
type nameSet struct {
	seen  map[string]struct{}
	order []string
}

func newNameSet() *nameSet {
	return &nameSet{seen: make(map[string]struct{})}
}

func (n *nameSet) add(name string) {
	key := normalize.Fold(name)
	if _, ok := n.seen[key]; ok {
		return
	}
	n.seen[key] = struct{}{}
	n.order = append(n.order, name)
}

func (n *nameSet) len() int { return len(n.order) }

func (n *nameSet) names() []string { return n.order }

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
