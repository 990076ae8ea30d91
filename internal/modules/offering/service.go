// README: Offering service: catalog aggregation for both modes plus ranking.
package offering

import (
	"context"
	"time"

	"go.uber.org/zap"

	"rentalpromo/internal/config"
	"rentalpromo/internal/modules/catalog"
	"rentalpromo/internal/modules/geo"
	"rentalpromo/internal/modules/pricing"
	"rentalpromo/internal/modules/promotion"
	"rentalpromo/internal/modules/servicepoint"
	"rentalpromo/internal/observability"
	"rentalpromo/internal/types"
)

// ParticipationJoined is the participant status that counts as joined.
const ParticipationJoined = "joined"

type Service struct {
	store catalog.Store
	cfg   config.CatalogConfig
	now   func() time.Time
}

func NewService(store catalog.Store, cfg config.CatalogConfig) *Service {
	return &Service{store: store, cfg: cfg, now: time.Now}
}

// WithClock replaces the time source used for program windows.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) batchOptions() catalog.BatchOptions {
	return catalog.BatchOptions{Size: s.cfg.BatchSize, Concurrency: s.cfg.BatchConcurrency}
}

// ResolveOfferings runs one mode end to end. It never returns an error:
// failures shrink the result and set Unavailable or Partial.
func (s *Service) ResolveOfferings(ctx context.Context, mode Mode, position geo.Position, f Filters) Result {
	start := time.Now()
	var res Result
	switch mode {
	case ModeJoined:
		res = s.resolveJoined(ctx, f)
	default:
		mode = ModeNearby
		res = s.resolveNearby(ctx, position, f)
	}
	if res.Rows == nil {
		res.Rows = []Row{}
	}

	observability.ResolveDuration.WithLabelValues(string(mode)).Observe(time.Since(start).Seconds())
	observability.OfferingsReturned.WithLabelValues(string(mode)).Observe(float64(len(res.Rows)))
	if res.Unavailable {
		observability.CatalogUnavailableTotal.WithLabelValues(string(mode)).Inc()
	}
	return res
}

func (s *Service) unavailable(mode Mode, stage string, err error) Result {
	zap.L().Error("catalog unavailable",
		zap.String("mode", string(mode)),
		zap.String("stage", stage),
		zap.Error(err),
	)
	return Result{Unavailable: true}
}

func (s *Service) resolveNearby(ctx context.Context, position geo.Position, f Filters) Result {
	now := s.now()

	type programsResult struct {
		programs []promotion.Program
		err      error
	}
	programsCh := make(chan programsResult, 1)
	go func() {
		programs, err := promotion.LoadActive(ctx, s.store, now)
		programsCh <- programsResult{programs, err}
	}()

	snap, err := servicepoint.Load(ctx, s.store)
	pr := <-programsCh
	if err != nil {
		return s.unavailable(ModeNearby, "service_points", err)
	}

	var res Result
	if pr.err != nil {
		zap.L().Warn("programs unavailable; promotions omitted", zap.Error(pr.err))
		res.Partial = true
	}

	opts := servicepoint.Options{RestrictToActive: s.cfg.RestrictToActive}
	if len(f.Owners) > 0 {
		opts.AllowOwners = make(map[string]bool, len(f.Owners))
		for _, id := range f.Owners {
			opts.AllowOwners[id] = true
		}
	}
	points := servicepoint.Normalize(snap, opts)

	rows := make([]Row, 0, len(points))
	for i := range points {
		sp := &points[i]
		rows = append(rows, Row{
			ServicePointID:   sp.ID,
			ServicePoint:     sp,
			BasePricePerDay:  types.Unknown[float64](),
			FinalPricePerDay: types.Unknown[float64](),
			DistanceKm:       geo.DistanceKm(position, sp.Position),
			HasPromotion:     promotion.AnyApplies(pr.programs, *sp, now),
		})
	}

	SortNearby(rows)
	rows = Filter(rows, f)
	res.Total = len(rows)
	res.Rows = Page(rows, f.Offset, f.Limit)
	return res
}

func (s *Service) resolveJoined(ctx context.Context, f Filters) Result {
	if f.AgentID == "" {
		return Result{}
	}
	now := s.now()

	participants, err := s.store.ListWhere(ctx, catalog.CollectionParticipants, "agentId", f.AgentID)
	if err != nil {
		return s.unavailable(ModeJoined, "participants", err)
	}
	var programIDs []string
	for _, p := range participants {
		if p.String("status") != ParticipationJoined {
			continue
		}
		if id := p.String("programId"); id != "" {
			programIDs = append(programIDs, id)
		}
	}

	var res Result
	programRecs, report := catalog.GetByIDsChunked(ctx, s.store, catalog.CollectionPrograms, programIDs, s.batchOptions())
	res.Partial = report.Failed > 0
	programs := promotion.Usable(programRecs, now)

	var modelIDs []string
	for _, p := range programs {
		for _, d := range p.ModelDiscounts {
			modelIDs = append(modelIDs, d.ModelID)
		}
	}
	modelRecs, report := catalog.GetByIDsChunked(ctx, s.store, catalog.CollectionVehicleModels, modelIDs, s.batchOptions())
	res.Partial = res.Partial || report.Failed > 0
	models := catalog.Index(modelRecs)

	var rows []Row
	for _, p := range programs {
		for _, d := range p.ModelDiscounts {
			rec, ok := models[d.ModelID]
			if !ok {
				continue
			}
			m := catalog.DecodeVehicleModel(rec)
			rule := d.Rule
			rows = append(rows, Row{
				ProgramID:        p.ID,
				ProgramName:      p.Name,
				Model:            &m,
				BasePricePerDay:  m.PricePerDay,
				FinalPricePerDay: pricing.Price(m.PricePerDay, &rule),
				DistanceKm:       types.Unknown[float64](),
			})
		}
	}

	if res.Partial {
		zap.L().Warn("joined offerings are partial",
			zap.String("agent_id", f.AgentID),
			zap.Int("programs", len(programs)),
			zap.Int("rows", len(rows)),
		)
	}

	SortJoined(rows)
	rows = Filter(rows, Filters{Query: f.Query})
	res.Total = len(rows)
	res.Rows = Page(rows, f.Offset, f.Limit)
	return res
}
