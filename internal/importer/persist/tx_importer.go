package persist

import (
	"context"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/Rafiklab24/loyal-supplychain/internal/importer/masterdata"
	"github.com/Rafiklab24/loyal-supplychain/internal/importer/model"
	"github.com/Rafiklab24/loyal-supplychain/internal/importer/normalize"
)

// DB is what the live importer needs from pgxpool.Pool.
type DB interface {
	masterdata.Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// TxImporter persists a run inside one database transaction: contracts
// first, then shipments referencing them, then dependent finance and
// customs rows. Any insert failure rolls everything back; there is no
// per-record partial commit.
type TxImporter struct {
	DB  DB
	Log *logrus.Logger

	// CleanSlate deletes all prior transactional rows before inserting.
	CleanSlate bool
}

func (imp *TxImporter) Persist(ctx context.Context, run *model.ImportRun) (*model.ImportStats, error) {
	stats := &model.ImportStats{}

	tx, err := imp.DB.Begin(ctx)
	if err != nil {
		return nil, gerrors.Wrap(err, "begin tx")
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if imp.CleanSlate {
		imp.Log.Info("clearing prior transactional data")
		if err := clearTransactionalData(ctx, tx); err != nil {
			return nil, err
		}
	}

	// Loaded after the clear so stale contract ids are not reused.
	lk, err := masterdata.Load(ctx, tx)
	if err != nil {
		return nil, gerrors.Wrap(err, "load lookups")
	}

	imp.Log.WithField("count", len(run.PendingContracts)).Info("importing pending contracts")
	for _, c := range run.PendingContracts {
		if err := imp.insertContract(ctx, tx, c, lk, stats); err != nil {
			return nil, gerrors.Wrapf(err, "contract %s", c.ContractNo)
		}
	}

	imp.Log.WithField("count", len(run.AutoContracts)).Info("importing contracts derived from shipments")
	for _, c := range run.AutoContracts {
		if err := imp.insertContract(ctx, tx, c, lk, stats); err != nil {
			return nil, gerrors.Wrapf(err, "contract %s", c.ContractNo)
		}
	}

	imp.Log.WithField("count", len(run.Shipments)).Info("importing shipments")
	shipmentIDs := make(map[string]int64, len(run.Shipments))
	for _, s := range run.Shipments {
		id, err := imp.insertShipment(ctx, tx, s, lk, stats)
		if err != nil {
			return nil, gerrors.Wrapf(err, "shipment %s", s.SN)
		}
		shipmentIDs[s.SN] = id
	}

	imp.Log.Info("importing finance and customs records")
	for _, s := range run.Shipments {
		if err := imp.insertFinance(ctx, tx, s, shipmentIDs[s.SN], stats); err != nil {
			return nil, gerrors.Wrapf(err, "finance for shipment %s", s.SN)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, gerrors.Wrap(err, "commit tx")
	}
	return stats, nil
}

func (imp *TxImporter) insertContract(ctx context.Context, tx pgx.Tx, c *model.ParsedContract, lk *masterdata.Lookups, stats *model.ImportStats) error {
	supplierID, err := masterdata.FindOrCreate(ctx, tx, masterdata.KindSupplier, c.Supplier, lk, stats)
	if err != nil {
		return err
	}
	polID, err := masterdata.FindOrCreate(ctx, tx, masterdata.KindPort, c.POL, lk, stats)
	if err != nil {
		return err
	}
	podID, err := masterdata.FindOrCreate(ctx, tx, masterdata.KindPort, c.POD, lk, stats)
	if err != nil {
		return err
	}

	var id int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO logistics.contracts (contract_no, invoice_no, status, notes, source_row)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		c.ContractNo, nilIfEmpty(c.InvoiceNo), string(c.Status), nilIfEmpty(c.Notes), c.SourceRow,
	).Scan(&id); err != nil {
		return gerrors.Wrap(err, "insert contracts")
	}
	lk.Contracts[normalize.Fold(c.ContractNo)] = id
	stats.ContractsCreated++

	if supplierID != nil {
		if _, err := tx.Exec(ctx,
			`INSERT INTO logistics.contract_parties (contract_id, company_id, role) VALUES ($1, $2, 'supplier')`,
			id, *supplierID,
		); err != nil {
			return gerrors.Wrap(err, "insert contract_parties")
		}
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO logistics.contract_shipping (contract_id, pol_port_id, pod_port_id, final_destination, eta)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, polID, podID, nilIfEmpty(c.FinalDestination), c.ETA,
	); err != nil {
		return gerrors.Wrap(err, "insert contract_shipping")
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO logistics.contract_terms
		   (contract_id, price_per_ton_usd, total_value_usd, paid_value_usd, balance_value_usd,
		    total_containers, total_weight_ton)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, c.PricePerTonUSD, c.TotalValueUSD, c.PaidValueUSD, c.BalanceValueUSD,
		c.TotalContainers, c.TotalWeightTon,
	); err != nil {
		return gerrors.Wrap(err, "insert contract_terms")
	}

	for _, l := range c.Lines {
		if _, err := tx.Exec(ctx,
			`INSERT INTO logistics.contract_lines (contract_id, product, weight_ton, price_per_ton, container_count)
			 VALUES ($1, $2, $3, $4, $5)`,
			id, l.Product, l.WeightTon, l.PricePerTon, l.ContainerCount,
		); err != nil {
			return gerrors.Wrap(err, "insert contract_lines")
		}
		stats.ContractLines++
	}
	if err := imp.insertContractProducts(ctx, tx, id, c); err != nil {
		return err
	}

	imp.Log.WithFields(logrus.Fields{
		"contract_no": c.ContractNo,
		"status":      c.Status,
		"lines":       len(c.Lines),
	}).Info("contract imported")
	return nil
}

// insertContractProducts stores one summary row per distinct product name.
func (imp *TxImporter) insertContractProducts(ctx context.Context, tx pgx.Tx, contractID int64, c *model.ParsedContract) error {
	type productSum struct {
		weight float64
		count  int
	}
	sums := make(map[string]*productSum)
	var order []string
	for _, l := range c.Lines {
		key := normalize.Fold(l.Product)
		if key == "" {
			continue
		}
		ps, ok := sums[key]
		if !ok {
			ps = &productSum{}
			sums[key] = ps
			order = append(order, key)
		}
		if l.WeightTon != nil {
			ps.weight += *l.WeightTon
		}
		ps.count++
	}
	for _, key := range order {
		ps := sums[key]
		if _, err := tx.Exec(ctx,
			`INSERT INTO logistics.contract_products (contract_id, product, total_weight_ton, line_count)
			 VALUES ($1, $2, $3, $4)`,
			contractID, key, ps.weight, ps.count,
		); err != nil {
			return gerrors.Wrap(err, "insert contract_products")
		}
	}
	return nil
}

func (imp *TxImporter) insertShipment(ctx context.Context, tx pgx.Tx, s *model.ParsedShipment, lk *masterdata.Lookups, stats *model.ImportStats) (int64, error) {
	supplierID, err := masterdata.FindOrCreate(ctx, tx, masterdata.KindSupplier, s.Supplier, lk, stats)
	if err != nil {
		return 0, err
	}
	lineID, err := masterdata.FindOrCreate(ctx, tx, masterdata.KindShippingLine, s.ShippingLine, lk, stats)
	if err != nil {
		return 0, err
	}
	beneficiaryID, err := masterdata.FindOrCreate(ctx, tx, masterdata.KindCustomer, s.FinalBeneficiary, lk, stats)
	if err != nil {
		return 0, err
	}
	polID, err := masterdata.FindOrCreate(ctx, tx, masterdata.KindPort, s.POL, lk, stats)
	if err != nil {
		return 0, err
	}
	podID, err := masterdata.FindOrCreate(ctx, tx, masterdata.KindPort, s.POD, lk, stats)
	if err != nil {
		return 0, err
	}

	contractID := resolveContractID(s, lk)

	var id int64
	if err := tx.QueryRow(ctx,
		`INSERT INTO logistics.shipments (sn, contract_id, status, notes, source_row)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		s.SN, contractID, string(s.Status), nilIfEmpty(s.Notes), s.SourceRow,
	).Scan(&id); err != nil {
		return 0, gerrors.Wrap(err, "insert shipments")
	}
	stats.ShipmentsCreated++

	parties := []struct {
		companyID *int64
		role      string
	}{
		{supplierID, "supplier"},
		{lineID, "shipping_line"},
		{beneficiaryID, "final_beneficiary"},
	}
	for _, p := range parties {
		if p.companyID == nil {
			continue
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO logistics.shipment_parties (shipment_id, company_id, role) VALUES ($1, $2, $3)`,
			id, *p.companyID, p.role,
		); err != nil {
			return 0, gerrors.Wrap(err, "insert shipment_parties")
		}
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO logistics.shipment_cargo (shipment_id, total_containers, total_weight_ton)
		 VALUES ($1, $2, $3)`,
		id, s.TotalContainers, s.TotalWeightTon,
	); err != nil {
		return 0, gerrors.Wrap(err, "insert shipment_cargo")
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO logistics.shipment_logistics
		   (shipment_id, pol_port_id, pod_port_id, final_destination, vessel, eta, free_time_days, ship_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, polID, podID, nilIfEmpty(s.FinalDestination), nilIfEmpty(s.Vessel), s.ETA, s.FreeTimeDays, s.ShipDate,
	); err != nil {
		return 0, gerrors.Wrap(err, "insert shipment_logistics")
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO logistics.shipment_financials
		   (shipment_id, price_per_ton_usd, total_value_usd, paid_value_usd, balance_value_usd)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, s.PricePerTonUSD, s.TotalValueUSD, s.PaidValueUSD, s.BalanceValueUSD,
	); err != nil {
		return 0, gerrors.Wrap(err, "insert shipment_financials")
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO logistics.shipment_documents
		   (shipment_id, bl_no, bl_date, deposit_date, docs_status, customs_clearance_date)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, nilIfEmpty(s.BLNo), s.BLDate, s.DepositDate, nilIfEmpty(s.DocsStatus), s.CustomsClearanceDate,
	); err != nil {
		return 0, gerrors.Wrap(err, "insert shipment_documents")
	}

	for _, l := range s.Lines {
		if _, err := tx.Exec(ctx,
			`INSERT INTO logistics.shipment_lines (shipment_id, product, weight_ton, price_per_ton, container_count)
			 VALUES ($1, $2, $3, $4, $5)`,
			id, l.Product, l.WeightTon, l.PricePerTon, l.ContainerCount,
		); err != nil {
			return 0, gerrors.Wrap(err, "insert shipment_lines")
		}
		stats.ShipmentLines++
	}

	imp.Log.WithFields(logrus.Fields{
		"sn":     s.SN,
		"status": s.Status,
		"lines":  len(s.Lines),
	}).Info("shipment imported")
	return id, nil
}

func (imp *TxImporter) insertFinance(ctx context.Context, tx pgx.Tx, s *model.ParsedShipment, shipmentID int64, stats *model.ImportStats) error {
	if s.PaidValueUSD != nil && *s.PaidValueUSD > 0 {
		if _, err := tx.Exec(ctx,
			`INSERT INTO finance.transactions (shipment_id, tx_type, amount_usd, occurred_on)
			 VALUES ($1, 'payment', $2, $3)`,
			shipmentID, *s.PaidValueUSD, s.DepositDate,
		); err != nil {
			return gerrors.Wrap(err, "insert finance.transactions")
		}
		stats.TransactionsCreated++
	}
	if s.CustomsClearanceDate != nil {
		if _, err := tx.Exec(ctx,
			`INSERT INTO finance.customs_clearing_costs (shipment_id, clearance_date, amount_usd)
			 VALUES ($1, $2, NULL)`,
			shipmentID, *s.CustomsClearanceDate,
		); err != nil {
			return gerrors.Wrap(err, "insert finance.customs_clearing_costs")
		}
		stats.CustomsCostsCreated++
	}
	return nil
}

// resolveContractID maps a shipment's soft contract reference to the id
// registered while inserting contracts (pending or synthesized).
func resolveContractID(s *model.ParsedShipment, lk *masterdata.Lookups) *int64 {
	for _, key := range []string{s.ContractNo, s.SN} {
		if key == "" {
			continue
		}
		if id, ok := lk.Contracts[normalize.Fold(key)]; ok {
			return &id
		}
	}
	return nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
