// README: Chunked fan-out/fan-in over Store.GetByIDs.
package catalog

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rentalpromo/internal/observability"
)

const defaultBatchConcurrency = 4

// BatchOptions tunes GetByIDsChunked.
type BatchOptions struct {
	Size        int
	Concurrency int
}

func (o BatchOptions) normalized() BatchOptions {
	if o.Size <= 0 || o.Size > MaxBatchSize {
		o.Size = MaxBatchSize
	}
	if o.Concurrency <= 0 {
		o.Concurrency = defaultBatchConcurrency
	}
	return o
}

// BatchReport counts what happened during a chunked lookup.
type BatchReport struct {
	Batches int
	Failed  int
}

// Chunk splits ids (deduplicated, order kept) into groups of at most size.
func Chunk(ids []string, size int) [][]string {
	if size <= 0 || size > MaxBatchSize {
		size = MaxBatchSize
	}
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	var chunks [][]string
	for start := 0; start < len(unique); start += size {
		end := min(start+size, len(unique))
		chunks = append(chunks, unique[start:end])
	}
	return chunks
}

// GetByIDsChunked issues one GetByIDs call per chunk, concurrently, and
// merges the results in chunk order. A failing chunk contributes zero
// records; the lookup itself never fails.
func GetByIDsChunked(ctx context.Context, s Store, collection string, ids []string, opts BatchOptions) ([]Record, BatchReport) {
	opts = opts.normalized()
	chunks := Chunk(ids, opts.Size)
	report := BatchReport{Batches: len(chunks)}
	if len(chunks) == 0 {
		return nil, report
	}

	results := make([][]Record, len(chunks))
	failed := make([]bool, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			observability.CatalogBatchesTotal.WithLabelValues(collection).Inc()
			recs, err := s.GetByIDs(gctx, collection, chunk)
			if err != nil {
				failed[i] = true
				observability.CatalogBatchFailuresTotal.WithLabelValues(collection).Inc()
				zap.L().Warn("catalog batch omitted",
					zap.String("collection", collection),
					zap.Int("ids", len(chunk)),
					zap.Error(err),
				)
				return nil
			}
			results[i] = recs
			return nil
		})
	}
	_ = g.Wait()

	var merged []Record
	for i := range results {
		if failed[i] {
			report.Failed++
		}
		merged = append(merged, results[i]...)
	}
	return merged, report
}

// Index maps records by id; later records win.
func Index(recs []Record) map[string]Record {
	out := make(map[string]Record, len(recs))
	for _, r := range recs {
		out[r.ID] = r
	}
	return out
}
