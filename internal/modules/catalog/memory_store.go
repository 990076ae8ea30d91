// README: In-memory catalog store used by the memory driver and by tests.
package catalog

import (
	"context"
	"fmt"
	"maps"
	"sync"
)

// Call describes one store invocation, recorded for inspection and used to
// inject failures.
type Call struct {
	Op         string
	Collection string
	IDs        []string
}

const (
	OpListAll   = "list_all"
	OpGetByIDs  = "get_by_ids"
	OpListWhere = "list_where"
)

// MemoryStore keeps collections in insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string][]Record
	calls []Call

	// Fail, when set, is consulted before every call; a non-nil error is
	// returned in place of the result.
	Fail func(Call) error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]Record)}
}

// Put appends or replaces a record by id.
func (m *MemoryStore) Put(collection string, r Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	recs := m.data[collection]
	for i := range recs {
		if recs[i].ID == r.ID {
			recs[i] = r
			return
		}
	}
	m.data[collection] = append(recs, r)
}

// Calls returns a copy of every call seen so far.
func (m *MemoryStore) Calls() []Call {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *MemoryStore) record(c Call) error {
	m.mu.Lock()
	m.calls = append(m.calls, c)
	fail := m.Fail
	m.mu.Unlock()
	if fail != nil {
		return fail(c)
	}
	return nil
}

func (m *MemoryStore) ListAll(ctx context.Context, collection string) ([]Record, error) {
	if err := m.record(Call{Op: OpListAll, Collection: collection}); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0, len(m.data[collection]))
	for _, r := range m.data[collection] {
		out = append(out, clone(r))
	}
	return out, nil
}

func (m *MemoryStore) GetByIDs(ctx context.Context, collection string, ids []string) ([]Record, error) {
	if err := checkBatch(ids); err != nil {
		return nil, err
	}
	if err := m.record(Call{Op: OpGetByIDs, Collection: collection, IDs: append([]string(nil), ids...)}); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Record
	for _, r := range m.data[collection] {
		if _, ok := want[r.ID]; ok {
			out = append(out, clone(r))
		}
	}
	return out, nil
}

func (m *MemoryStore) ListWhere(ctx context.Context, collection, field string, value any) ([]Record, error) {
	if err := m.record(Call{Op: OpListWhere, Collection: collection}); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Record
	for _, r := range m.data[collection] {
		if equalValues(r.Raw(field), value) {
			out = append(out, clone(r))
		}
	}
	return out, nil
}

func clone(r Record) Record {
	return Record{ID: r.ID, Data: maps.Clone(r.Data)}
}

func equalValues(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}
