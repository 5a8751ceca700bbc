// Package persist is the persistence boundary of the import pipeline:
// one transactional implementation for live runs and one write-free
// implementation for dry runs, behind a common interface.
package persist

import (
	"context"

	"github.com/Rafiklab24/loyal-supplychain/internal/importer/model"
)

// Persister consumes a fully parsed run. Parsing, grouping and
// validation happen upstream; implementations only differ in what
// happens at the database boundary.
type Persister interface {
	Persist(ctx context.Context, run *model.ImportRun) (*model.ImportStats, error)
}
