package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lctp-br/lctp-api/internal/domain"
)

func futureEvent(id uint) domain.Event {
	return domain.Event{
		ID:     id,
		Name:   "Etapa",
		Date:   time.Now().AddDate(0, 1, int(id)),
		Active: true,
	}
}

func TestQuotaServiceRegisterRunCountsDown(t *testing.T) {
	quotaRepo := newFakeQuotaRepo()
	eventRepo := newFakeEventRepo(futureEvent(1))
	competitorRepo := newFakeCompetitorRepo()

	competitor, err := competitorRepo.Create(context.Background(), domain.Competitor{Name: "A", Handicap: 3, Sex: "M", Active: true})
	require.NoError(t, err)

	s := NewQuotaService(quotaRepo, eventRepo, competitorRepo)

	_, err = eventRepo.UpsertRunConfig(context.Background(), domain.RunConfig{
		EventID:              1,
		CategoryID:           7,
		MaxRunsPerTrio:       3,
		MaxRunsPerCompetitor: 2,
	})
	require.NoError(t, err)

	quota, err := s.Create(context.Background(), competitor.ID, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, quota.MaxRuns)
	assert.Equal(t, 2, quota.RunsRemaining())
	assert.Equal(t, domain.QuotaActive, quota.State())

	quota, err = s.RegisterRun(context.Background(), competitor.ID, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, quota.RunsRemaining())

	quota, err = s.RegisterRun(context.Background(), competitor.ID, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, quota.RunsRemaining())
	assert.Equal(t, domain.QuotaExhausted, quota.State())

	_, err = s.RegisterRun(context.Background(), competitor.ID, 1, 7)
	assert.ErrorIs(t, err, ErrQuotaExhausted)
}

func TestQuotaServiceCreateDefaultsMaxRuns(t *testing.T) {
	quotaRepo := newFakeQuotaRepo()
	eventRepo := newFakeEventRepo(futureEvent(1))
	competitorRepo := newFakeCompetitorRepo()

	competitor, err := competitorRepo.Create(context.Background(), domain.Competitor{Name: "A", Handicap: 3, Sex: "M", Active: true})
	require.NoError(t, err)

	s := NewQuotaService(quotaRepo, eventRepo, competitorRepo)

	quota, err := s.Create(context.Background(), competitor.ID, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxRuns, quota.MaxRuns, "no run config means the default cap")
}

func TestQuotaServiceBlockAndUnblock(t *testing.T) {
	quotaRepo := newFakeQuotaRepo()
	eventRepo := newFakeEventRepo(futureEvent(1))
	competitorRepo := newFakeCompetitorRepo()

	competitor, err := competitorRepo.Create(context.Background(), domain.Competitor{Name: "A", Handicap: 3, Sex: "M", Active: true})
	require.NoError(t, err)

	s := NewQuotaService(quotaRepo, eventRepo, competitorRepo)

	quota, err := s.Create(context.Background(), competitor.ID, 1, 7)
	require.NoError(t, err)

	require.NoError(t, s.Block(context.Background(), quota.ID, "outstanding entry fee"))

	_, err = s.RegisterRun(context.Background(), competitor.ID, 1, 7)
	assert.ErrorIs(t, err, ErrQuotaBlocked)

	blocked, err := s.FindByID(context.Background(), quota.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.QuotaBlocked, blocked.State())
	assert.Equal(t, "outstanding entry fee", blocked.BlockReason)

	require.NoError(t, s.Unblock(context.Background(), quota.ID))

	_, err = s.RegisterRun(context.Background(), competitor.ID, 1, 7)
	assert.NoError(t, err)
}

func TestQuotaServiceAutoProvision(t *testing.T) {
	quotaRepo := newFakeQuotaRepo()
	eventRepo := newFakeEventRepo(futureEvent(1), futureEvent(2))
	competitorRepo := newFakeCompetitorRepo()

	categoryID := uint(7)
	var ids []uint
	for _, name := range []string{"A", "B", "C"} {
		c, err := competitorRepo.Create(context.Background(), domain.Competitor{Name: name, Handicap: 3, Sex: "M", CategoryID: &categoryID, Active: true})
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	s := NewQuotaService(quotaRepo, eventRepo, competitorRepo)

	created, err := s.AutoProvision(context.Background(), ids)
	require.NoError(t, err)
	assert.Equal(t, 6, created, "three competitors across two upcoming events")

	quota, err := quotaRepo.FindByKey(context.Background(), ids[0], 1, categoryID)
	require.NoError(t, err)
	assert.Equal(t, categoryID, quota.CategoryID, "the quota lands in the competitor's assigned category")

	created, err = s.AutoProvision(context.Background(), ids)
	require.NoError(t, err)
	assert.Zero(t, created, "re-running provisions nothing new")
}

func TestQuotaServiceAutoProvisionGroupsByAssignedCategory(t *testing.T) {
	quotaRepo := newFakeQuotaRepo()
	eventRepo := newFakeEventRepo(futureEvent(1))
	competitorRepo := newFakeCompetitorRepo()

	kids, aberta := uint(2), uint(7)
	a, err := competitorRepo.Create(context.Background(), domain.Competitor{Name: "A", Handicap: 1, Sex: "M", CategoryID: &kids, Active: true})
	require.NoError(t, err)
	b, err := competitorRepo.Create(context.Background(), domain.Competitor{Name: "B", Handicap: 5, Sex: "M", CategoryID: &aberta, Active: true})
	require.NoError(t, err)

	s := NewQuotaService(quotaRepo, eventRepo, competitorRepo)

	created, err := s.AutoProvision(context.Background(), []uint{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	quota, err := quotaRepo.FindByKey(context.Background(), a.ID, 1, kids)
	require.NoError(t, err)
	assert.Equal(t, kids, quota.CategoryID)

	quota, err = quotaRepo.FindByKey(context.Background(), b.ID, 1, aberta)
	require.NoError(t, err)
	assert.Equal(t, aberta, quota.CategoryID)
}

func TestQuotaServiceAutoProvisionSkipsUnassignedCompetitors(t *testing.T) {
	quotaRepo := newFakeQuotaRepo()
	eventRepo := newFakeEventRepo(futureEvent(1))
	competitorRepo := newFakeCompetitorRepo()

	categoryID := uint(7)
	assigned, err := competitorRepo.Create(context.Background(), domain.Competitor{Name: "A", Handicap: 3, Sex: "M", CategoryID: &categoryID, Active: true})
	require.NoError(t, err)
	unassigned, err := competitorRepo.Create(context.Background(), domain.Competitor{Name: "B", Handicap: 3, Sex: "M", Active: true})
	require.NoError(t, err)

	s := NewQuotaService(quotaRepo, eventRepo, competitorRepo)

	created, err := s.AutoProvision(context.Background(), []uint{assigned.ID, unassigned.ID})
	require.NoError(t, err, "a competitor without a category is skipped, not an error")
	assert.Equal(t, 1, created)

	_, err = quotaRepo.FindByKey(context.Background(), unassigned.ID, 1, categoryID)
	assert.ErrorIs(t, err, ErrQuotaNotFound)

	created, err = s.AutoProvision(context.Background(), []uint{unassigned.ID})
	require.NoError(t, err)
	assert.Zero(t, created, "only unassigned competitors make the call a no-op")
}

func TestQuotaServiceAutoProvisionSkipsPastEvents(t *testing.T) {
	past := domain.Event{ID: 1, Name: "Etapa passada", Date: time.Now().AddDate(0, -1, 0), Active: true}
	quotaRepo := newFakeQuotaRepo()
	eventRepo := newFakeEventRepo(past)
	competitorRepo := newFakeCompetitorRepo()

	categoryID := uint(7)
	c, err := competitorRepo.Create(context.Background(), domain.Competitor{Name: "A", Handicap: 3, Sex: "M", CategoryID: &categoryID, Active: true})
	require.NoError(t, err)

	s := NewQuotaService(quotaRepo, eventRepo, competitorRepo)

	created, err := s.AutoProvision(context.Background(), []uint{c.ID})
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestQuotaServiceAutoProvisionEmptyInput(t *testing.T) {
	s := NewQuotaService(newFakeQuotaRepo(), newFakeEventRepo(futureEvent(1)), newFakeCompetitorRepo())

	created, err := s.AutoProvision(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, created)
}
