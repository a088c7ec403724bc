package service

import (
	"context"
	"sync"
	"time"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/repository"
)

type fakeCompetitorRepo struct {
	mu          sync.Mutex
	competitors map[uint]domain.Competitor
	nextID      uint
}

func newFakeCompetitorRepo() *fakeCompetitorRepo {
	return &fakeCompetitorRepo{competitors: make(map[uint]domain.Competitor)}
}

func (f *fakeCompetitorRepo) Create(_ context.Context, competitor domain.Competitor) (domain.Competitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	competitor.ID = f.nextID
	f.competitors[competitor.ID] = competitor
	return competitor, nil
}

func (f *fakeCompetitorRepo) FindByID(_ context.Context, id uint) (domain.Competitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.competitors[id]
	if !ok {
		return domain.Competitor{}, repository.ErrCompetitorNotFound
	}
	return c, nil
}

func (f *fakeCompetitorRepo) FindByIDs(_ context.Context, ids []uint) ([]domain.Competitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Competitor
	for _, id := range ids {
		if c, ok := f.competitors[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCompetitorRepo) FindAll(_ context.Context, onlyActive bool) ([]domain.Competitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Competitor
	for id := uint(1); id <= f.nextID; id++ {
		c, ok := f.competitors[id]
		if !ok {
			continue
		}
		if onlyActive && !c.Active {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCompetitorRepo) Update(_ context.Context, competitor domain.Competitor) (domain.Competitor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.competitors[competitor.ID] = competitor
	return competitor, nil
}

func (f *fakeCompetitorRepo) Deactivate(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.competitors[id]
	if !ok {
		return repository.ErrCompetitorNotFound
	}
	c.Active = false
	f.competitors[id] = c
	return nil
}

type fakeCategoryRepo struct {
	categories map[uint]domain.Category
}

func newFakeCategoryRepo(categories ...domain.Category) *fakeCategoryRepo {
	f := &fakeCategoryRepo{categories: make(map[uint]domain.Category)}
	for _, c := range categories {
		f.categories[c.ID] = c
	}
	return f
}

func (f *fakeCategoryRepo) Create(_ context.Context, category domain.Category) (domain.Category, error) {
	if category.ID == 0 {
		category.ID = uint(len(f.categories) + 1)
	}
	f.categories[category.ID] = category
	return category, nil
}

func (f *fakeCategoryRepo) FindByID(_ context.Context, id uint) (domain.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return domain.Category{}, repository.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeCategoryRepo) FindAll(_ context.Context, _ bool) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category domain.Category) (domain.Category, error) {
	f.categories[category.ID] = category
	return category, nil
}

type runConfigKey struct {
	eventID    uint
	categoryID uint
}

type fakeEventRepo struct {
	events     map[uint]domain.Event
	runConfigs map[runConfigKey]domain.RunConfig
	nextID     uint
}

func newFakeEventRepo(events ...domain.Event) *fakeEventRepo {
	f := &fakeEventRepo{
		events:     make(map[uint]domain.Event),
		runConfigs: make(map[runConfigKey]domain.RunConfig),
	}
	for _, e := range events {
		f.events[e.ID] = e
		if e.ID > f.nextID {
			f.nextID = e.ID
		}
	}
	return f
}

func (f *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	f.nextID++
	event.ID = f.nextID
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	return e, nil
}

func (f *fakeEventRepo) FindAll(_ context.Context) ([]domain.Event, error) {
	var out []domain.Event
	for id := uint(1); id <= f.nextID; id++ {
		if e, ok := f.events[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) FindActiveFrom(_ context.Context, from time.Time) ([]domain.Event, error) {
	var out []domain.Event
	for id := uint(1); id <= f.nextID; id++ {
		e, ok := f.events[id]
		if !ok {
			continue
		}
		if e.Active && !e.Date.Before(from) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventRepo) UpsertRunConfig(_ context.Context, conf domain.RunConfig) (domain.RunConfig, error) {
	f.runConfigs[runConfigKey{conf.EventID, conf.CategoryID}] = conf
	return conf, nil
}

func (f *fakeEventRepo) FindRunConfig(_ context.Context, eventID, categoryID uint) (domain.RunConfig, error) {
	conf, ok := f.runConfigs[runConfigKey{eventID, categoryID}]
	if !ok {
		return domain.RunConfig{}, repository.ErrRunConfigNotFound
	}
	return conf, nil
}

type quotaKey struct {
	competitorID uint
	eventID      uint
	categoryID   uint
}

type fakeQuotaRepo struct {
	mu     sync.Mutex
	quotas map[quotaKey]*domain.ParticipationQuota
	nextID uint

	// exhaustOnRegister makes RegisterRun fail for this competitor as if a
	// concurrent registration took the last slot after the state check.
	exhaustOnRegister uint
}

func newFakeQuotaRepo() *fakeQuotaRepo {
	return &fakeQuotaRepo{quotas: make(map[quotaKey]*domain.ParticipationQuota)}
}

func (f *fakeQuotaRepo) Create(_ context.Context, quota domain.ParticipationQuota) (domain.ParticipationQuota, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := quotaKey{quota.CompetitorID, quota.EventID, quota.CategoryID}
	if _, ok := f.quotas[key]; ok {
		return domain.ParticipationQuota{}, repository.ErrQuotaExists
	}

	f.nextID++
	quota.ID = f.nextID
	f.quotas[key] = &quota
	return quota, nil
}

func (f *fakeQuotaRepo) FindByID(_ context.Context, id uint) (domain.ParticipationQuota, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, q := range f.quotas {
		if q.ID == id {
			return *q, nil
		}
	}
	return domain.ParticipationQuota{}, repository.ErrQuotaNotFound
}

func (f *fakeQuotaRepo) FindByKey(_ context.Context, competitorID, eventID, categoryID uint) (domain.ParticipationQuota, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	q, ok := f.quotas[quotaKey{competitorID, eventID, categoryID}]
	if !ok {
		return domain.ParticipationQuota{}, repository.ErrQuotaNotFound
	}
	return *q, nil
}

func (f *fakeQuotaRepo) FindByEvent(_ context.Context, eventID uint) ([]domain.ParticipationQuota, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.ParticipationQuota
	for key, q := range f.quotas {
		if key.eventID == eventID {
			out = append(out, *q)
		}
	}
	return out, nil
}

func (f *fakeQuotaRepo) RegisterRun(_ context.Context, competitorID, eventID, categoryID uint) (domain.ParticipationQuota, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	q, ok := f.quotas[quotaKey{competitorID, eventID, categoryID}]
	if !ok {
		return domain.ParticipationQuota{}, repository.ErrQuotaNotFound
	}
	if !q.MayCompete {
		return domain.ParticipationQuota{}, repository.ErrQuotaBlocked
	}
	if q.RunsExecuted >= q.MaxRuns || competitorID == f.exhaustOnRegister {
		return domain.ParticipationQuota{}, repository.ErrQuotaExhausted
	}

	q.RunsExecuted++
	return *q, nil
}

func (f *fakeQuotaRepo) ReleaseRun(_ context.Context, competitorID, eventID, categoryID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	q, ok := f.quotas[quotaKey{competitorID, eventID, categoryID}]
	if !ok || q.RunsExecuted == 0 {
		return repository.ErrQuotaNotFound
	}

	q.RunsExecuted--
	return nil
}

func (f *fakeQuotaRepo) SetBlocked(_ context.Context, id uint, blocked bool, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, q := range f.quotas {
		if q.ID == id {
			q.MayCompete = !blocked
			q.BlockReason = reason
			return nil
		}
	}
	return repository.ErrQuotaNotFound
}

func (f *fakeQuotaRepo) ExistingKeys(_ context.Context, eventID, categoryID uint, competitorIDs []uint) (map[uint]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing := make(map[uint]bool)
	for _, competitorID := range competitorIDs {
		if _, ok := f.quotas[quotaKey{competitorID, eventID, categoryID}]; ok {
			existing[competitorID] = true
		}
	}
	return existing, nil
}

type fakeTrioRepo struct {
	trios  map[uint]domain.Trio
	nextID uint
}

func newFakeTrioRepo(trios ...domain.Trio) *fakeTrioRepo {
	f := &fakeTrioRepo{trios: make(map[uint]domain.Trio)}
	for _, t := range trios {
		f.trios[t.ID] = t
		if t.ID > f.nextID {
			f.nextID = t.ID
		}
	}
	return f
}

func (f *fakeTrioRepo) Create(_ context.Context, trio domain.Trio) (domain.Trio, error) {
	f.nextID++
	trio.ID = f.nextID
	trio.Number = len(f.trios) + 1
	f.trios[trio.ID] = trio
	return trio, nil
}

func (f *fakeTrioRepo) CreateBatch(ctx context.Context, trios []domain.Trio) ([]domain.Trio, error) {
	out := make([]domain.Trio, 0, len(trios))
	for _, t := range trios {
		created, _ := f.Create(ctx, t)
		out = append(out, created)
	}
	return out, nil
}

func (f *fakeTrioRepo) FindByID(_ context.Context, id uint) (domain.Trio, error) {
	t, ok := f.trios[id]
	if !ok {
		return domain.Trio{}, repository.ErrTrioNotFound
	}
	return t, nil
}

func (f *fakeTrioRepo) FindByEventAndCategory(_ context.Context, eventID, categoryID uint) ([]domain.Trio, error) {
	var out []domain.Trio
	for id := uint(1); id <= f.nextID; id++ {
		t, ok := f.trios[id]
		if !ok {
			continue
		}
		if t.EventID == eventID && t.CategoryID == categoryID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTrioRepo) UpdateStatus(_ context.Context, id uint, status domain.TrioStatus) error {
	t, ok := f.trios[id]
	if !ok {
		return repository.ErrTrioNotFound
	}
	t.Status = status
	f.trios[id] = t
	return nil
}

func (f *fakeTrioRepo) CountMemberships(_ context.Context, eventID, categoryID uint, competitorIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int)
	for _, t := range f.trios {
		if t.EventID != eventID || t.CategoryID != categoryID {
			continue
		}
		for _, m := range t.Members {
			counts[m.CompetitorID]++
		}
	}
	return counts, nil
}

type fakeResultRepo struct {
	results map[uint]domain.RunResult
	nextID  uint
}

func newFakeResultRepo(results ...domain.RunResult) *fakeResultRepo {
	f := &fakeResultRepo{results: make(map[uint]domain.RunResult)}
	for _, r := range results {
		f.results[r.ID] = r
		if r.ID > f.nextID {
			f.nextID = r.ID
		}
	}
	return f
}

func (f *fakeResultRepo) Create(_ context.Context, result domain.RunResult) (domain.RunResult, error) {
	for _, r := range f.results {
		if r.TrioID == result.TrioID {
			return domain.RunResult{}, repository.ErrResultExists
		}
	}

	f.nextID++
	result.ID = f.nextID
	f.results[result.ID] = result
	return result, nil
}

func (f *fakeResultRepo) FindByID(_ context.Context, id uint) (domain.RunResult, error) {
	r, ok := f.results[id]
	if !ok {
		return domain.RunResult{}, repository.ErrResultNotFound
	}
	return r, nil
}

func (f *fakeResultRepo) FindByEventAndCategory(_ context.Context, eventID, categoryID uint) ([]domain.RunResult, error) {
	var out []domain.RunResult
	for id := uint(1); id <= f.nextID; id++ {
		r, ok := f.results[id]
		if !ok {
			continue
		}
		if r.EventID == eventID && r.CategoryID == categoryID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeResultRepo) AppendAttempt(_ context.Context, resultID uint, attemptTime *float64, average *float64, status domain.TrioStatus) (domain.RunResult, error) {
	r, ok := f.results[resultID]
	if !ok {
		return domain.RunResult{}, repository.ErrResultNotFound
	}

	r.Attempts = append(r.Attempts, attemptTime)
	r.AverageTime = average
	r.Status = status
	f.results[resultID] = r
	return r, nil
}

func (f *fakeResultRepo) ApplyPlacements(_ context.Context, updates []repository.PlacementUpdate) error {
	for _, u := range updates {
		r, ok := f.results[u.ResultID]
		if !ok {
			return repository.ErrResultNotFound
		}
		r.Placement = u.Placement
		r.AverageTime = u.AverageTime
		f.results[u.ResultID] = r
	}
	return nil
}

func (f *fakeResultRepo) UpdatePrize(_ context.Context, id uint, prizeValue float64) error {
	r, ok := f.results[id]
	if !ok {
		return repository.ErrResultNotFound
	}
	r.PrizeValue = prizeValue
	f.results[id] = r
	return nil
}
