// README: Catalog store backed by Cloud Firestore.
package catalog

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/rotisserie/eris"
)

// FirestoreStore reads catalog collections with the Firestore client the
// Firebase app hands out.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) ListAll(ctx context.Context, collection string) ([]Record, error) {
	docs, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: list %s", collection)
	}
	return snapshotsToRecords(docs), nil
}

// GetByIDs issues a single batched get for up to MaxBatchSize documents.
func (s *FirestoreStore) GetByIDs(ctx context.Context, collection string, ids []string) ([]Record, error) {
	if err := checkBatch(ids); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	col := s.client.Collection(collection)
	refs := make([]*firestore.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = col.Doc(id)
	}
	docs, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: get %d ids from %s", len(ids), collection)
	}
	return snapshotsToRecords(docs), nil
}

func (s *FirestoreStore) ListWhere(ctx context.Context, collection, field string, value any) ([]Record, error) {
	docs, err := s.client.Collection(collection).Where(field, "==", value).Documents(ctx).GetAll()
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: list %s where %s", collection, field)
	}
	return snapshotsToRecords(docs), nil
}

func snapshotsToRecords(docs []*firestore.DocumentSnapshot) []Record {
	out := make([]Record, 0, len(docs))
	for _, d := range docs {
		if d == nil || !d.Exists() {
			continue
		}
		out = append(out, Record{ID: d.Ref.ID, Data: d.Data()})
	}
	return out
}
