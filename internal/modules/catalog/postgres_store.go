// README: Catalog store backed by a PostgreSQL jsonb document table.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the store needs; pgxmock satisfies it.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore keeps every collection in one table:
//
//	CREATE TABLE catalog_records (
//	    collection TEXT  NOT NULL,
//	    id         TEXT  NOT NULL,
//	    data       JSONB NOT NULL,
//	    PRIMARY KEY (collection, id)
//	);
type PostgresStore struct {
	db Pool
}

func NewPostgresStore(db Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	listAllSQL   = `SELECT id, data FROM catalog_records WHERE collection = $1 ORDER BY id`
	getByIDsSQL  = `SELECT id, data FROM catalog_records WHERE collection = $1 AND id = ANY($2) ORDER BY id`
	listWhereSQL = `SELECT id, data FROM catalog_records WHERE collection = $1 AND data->>$2 = $3 ORDER BY id`
)

func (s *PostgresStore) ListAll(ctx context.Context, collection string) ([]Record, error) {
	rows, err := s.db.Query(ctx, listAllSQL, collection)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: list %s", collection)
	}
	return scanRecords(rows, collection)
}

func (s *PostgresStore) GetByIDs(ctx context.Context, collection string, ids []string) ([]Record, error) {
	if err := checkBatch(ids); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.db.Query(ctx, getByIDsSQL, collection, ids)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: get %d ids from %s", len(ids), collection)
	}
	return scanRecords(rows, collection)
}

// ListWhere compares against the text form of the jsonb member, so value
// is rendered with fmt.Sprint (true, 42, "joined").
func (s *PostgresStore) ListWhere(ctx context.Context, collection, field string, value any) ([]Record, error) {
	rows, err := s.db.Query(ctx, listWhereSQL, collection, field, fmt.Sprint(value))
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: list %s where %s", collection, field)
	}
	return scanRecords(rows, collection)
}

func scanRecords(rows pgx.Rows, collection string) ([]Record, error) {
	defer rows.Close()
	var out []Record
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, eris.Wrapf(err, "catalog: scan %s row", collection)
		}
		data, err := decodeJSON(raw)
		if err != nil {
			return nil, eris.Wrapf(err, "catalog: decode %s/%s", collection, id)
		}
		out = append(out, Record{ID: id, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(err, "catalog: iterate %s rows", collection)
	}
	return out, nil
}

func decodeJSON(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}
