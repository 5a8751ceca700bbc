// Package model holds the in-memory aggregates built by the import
// pipeline. Instances live for the duration of a single run: they are
// created during row grouping, normalized at construction, and consumed
// by the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Status is the canonical shipment/contract lifecycle status. Raw
// spreadsheet status words (Arabic) are mapped onto it by the normalize
// package.
type Status string

const (
	StatusPlanning  Status = "planning"
	StatusConfirmed Status = "confirmed"
	StatusLoading   Status = "loading"
	StatusSailed    Status = "sailed"
	StatusArrived   Status = "arrived"
	StatusCleared   Status = "cleared"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"

	// Contract-only statuses.
	StatusPending Status = "pending"
	StatusActive  Status = "active"
)

// ProductLine is one cargo position within a shipment or contract. Owned
// exclusively by its aggregate; never shared.
type ProductLine struct {
	Product        string
	WeightTon      *float64
	PricePerTon    *float64
	ContainerCount *int
}

// ParsedShipment is the aggregate root for one physical movement of goods.
// Party and port fields are soft string references resolved against master
// data at insert time.
type ParsedShipment struct {
	SN         string
	ContractNo string
	InvoiceNo  string
	Status     Status

	Supplier         string
	ShippingLine     string
	FinalBeneficiary string

	POL              string
	POD              string
	FinalDestination string
	Vessel           string
	BLNo             string

	ETA                  *time.Time
	CustomsClearanceDate *time.Time
	DepositDate          *time.Time
	ShipDate             *time.Time
	BLDate               *time.Time
	FreeTimeDays         *int

	PricePerTonUSD  *float64
	TotalValueUSD   *float64
	PaidValueUSD    *float64
	BalanceValueUSD *float64

	TotalContainers int
	TotalWeightTon  float64
	Lines           []ProductLine

	DocsStatus string
	Notes      string

	// BadDates lists the names of date fields whose raw cell was non-empty
	// but did not match any supported format. The validator turns these
	// into errors.
	BadDates []string

	SourceRow int
}

// ParsedContract is the aggregate root for a commercial agreement: either
// declared in the pending-contracts file (StatusPending) or synthesized
// from a shipment that has no matching pending contract (StatusActive).
type ParsedContract struct {
	ContractNo string
	InvoiceNo  string
	Status     Status

	Supplier         string
	POL              string
	POD              string
	FinalDestination string

	ETA *time.Time

	PricePerTonUSD  *float64
	TotalValueUSD   *float64
	PaidValueUSD    *float64
	BalanceValueUSD *float64

	TotalContainers int
	TotalWeightTon  float64
	Lines           []ProductLine

	Notes string

	// ShipmentSNs carries back-references to the shipments this contract
	// was synthesized from. Empty for pending contracts.
	ShipmentSNs []string

	BadDates []string

	SourceRow int
}

// ImportRun bundles everything parsed from one CLI invocation.
type ImportRun struct {
	ID        uuid.UUID
	StartedAt time.Time
	DryRun    bool

	PendingContracts []*ParsedContract
	AutoContracts    []*ParsedContract
	Shipments        []*ParsedShipment
}

func NewImportRun(dryRun bool) *ImportRun {
	return &ImportRun{
		ID:        uuid.New(),
		StartedAt: time.Now().UTC(),
		DryRun:    dryRun,
	}
}

// ImportStats is the mutable counter bag threaded through the whole run
// and printed at the end. Not persisted.
type ImportStats struct {
	PortsCreated        int
	CompaniesCreated    int
	ContractsCreated    int
	ContractLines       int
	ShipmentsCreated    int
	ShipmentLines       int
	TransactionsCreated int
	CustomsCostsCreated int
}
