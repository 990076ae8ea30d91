// README: Catalog store contract shared by the Firestore, Postgres and memory backends.
package catalog

import (
	"context"

	"github.com/rotisserie/eris"
)

// Collections read by the offering engine.
const (
	CollectionCompanies     = "rental_companies"
	CollectionStations      = "rental_stations"
	CollectionProviders     = "private_providers"
	CollectionPrograms      = "programs"
	CollectionParticipants  = "program_participants"
	CollectionVehicleModels = "vehicle_models"
	CollectionAgents        = "agents"
)

// MaxBatchSize is the largest id list a single GetByIDs call may carry.
const MaxBatchSize = 10

var ErrBatchTooLarge = eris.New("catalog: id batch exceeds 10")

// Store is the read-only document catalog. Implementations must not
// reorder or filter beyond what each method states.
type Store interface {
	// ListAll scans a whole collection.
	ListAll(ctx context.Context, collection string) ([]Record, error)
	// GetByIDs looks up at most MaxBatchSize ids. Missing ids are skipped.
	GetByIDs(ctx context.Context, collection string, ids []string) ([]Record, error)
	// ListWhere scans records whose field equals value.
	ListWhere(ctx context.Context, collection, field string, value any) ([]Record, error)
}

func checkBatch(ids []string) error {
	if len(ids) > MaxBatchSize {
		return eris.Wrapf(ErrBatchTooLarge, "got %d ids", len(ids))
	}
	return nil
}
