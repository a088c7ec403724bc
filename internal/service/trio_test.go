package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/rules"
)

func newTrioFixture(t *testing.T, categoryType domain.CategoryType) (*TrioService, *fakeCompetitorRepo, *fakeTrioRepo) {
	t.Helper()

	trioRepo := newFakeTrioRepo()
	competitorRepo := newFakeCompetitorRepo()
	categoryRepo := newFakeCategoryRepo(domain.Category{ID: 7, Name: string(categoryType), Type: categoryType, Active: true})
	eventRepo := newFakeEventRepo(domain.Event{ID: 1, Name: "Etapa", Date: time.Now().AddDate(0, 1, 0), Active: true})

	s := NewTrioService(trioRepo, competitorRepo, categoryRepo, eventRepo, rules.NewValidator(rules.DefaultRuleBook()))
	s.shuffle = func(n int, swap func(i, j int)) {}

	return s, competitorRepo, trioRepo
}

func addCompetitor(t *testing.T, repo *fakeCompetitorRepo, handicap int, sex string) uint {
	t.Helper()

	c, err := repo.Create(context.Background(), domain.Competitor{
		Name:      "competitor",
		BirthDate: time.Now().AddDate(-25, 0, -1),
		Handicap:  handicap,
		Sex:       sex,
		Active:    true,
	})
	require.NoError(t, err)
	return c.ID
}

func TestTrioServiceValidateDryRun(t *testing.T) {
	s, competitorRepo, trioRepo := newTrioFixture(t, domain.CategorySoma11)

	a := addCompetitor(t, competitorRepo, 4, "M")
	b := addCompetitor(t, competitorRepo, 4, "M")
	c := addCompetitor(t, competitorRepo, 4, "F")

	verdict, err := s.Validate(context.Background(), 1, 7, [3]uint{a, b, c})
	require.NoError(t, err)
	assert.False(t, verdict.Eligible)
	assert.Contains(t, verdict.Reason, "combined handicap")

	trios, err := trioRepo.FindByEventAndCategory(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Empty(t, trios, "validation never persists")
}

func TestTrioServiceCreate(t *testing.T) {
	s, competitorRepo, _ := newTrioFixture(t, domain.CategorySoma11)

	a := addCompetitor(t, competitorRepo, 4, "M")
	b := addCompetitor(t, competitorRepo, 4, "M")
	c := addCompetitor(t, competitorRepo, 3, "F")

	trio, err := s.Create(context.Background(), 1, 7, [3]uint{a, b, c})
	require.NoError(t, err)
	assert.Equal(t, 1, trio.Number)
	assert.Equal(t, 11, trio.TotalHandicap)
	assert.Equal(t, domain.TrioActive, trio.Status)
	assert.Len(t, trio.Members, 3)
	assert.False(t, trio.Drawn)
}

func TestTrioServiceCreateRejectsIneligible(t *testing.T) {
	s, competitorRepo, _ := newTrioFixture(t, domain.CategorySoma11)

	a := addCompetitor(t, competitorRepo, 4, "M")
	b := addCompetitor(t, competitorRepo, 4, "M")
	c := addCompetitor(t, competitorRepo, 4, "F")

	_, err := s.Create(context.Background(), 1, 7, [3]uint{a, b, c})
	assert.ErrorIs(t, err, ErrTrioNotEligible)
}

func TestTrioServiceCreateUnknownCompetitor(t *testing.T) {
	s, competitorRepo, _ := newTrioFixture(t, domain.CategoryAberta)

	a := addCompetitor(t, competitorRepo, 4, "M")
	b := addCompetitor(t, competitorRepo, 4, "M")

	_, err := s.Create(context.Background(), 1, 7, [3]uint{a, b, 999})
	assert.ErrorIs(t, err, ErrCompetitorNotFound)
}

func TestTrioServiceDraw(t *testing.T) {
	s, competitorRepo, _ := newTrioFixture(t, domain.CategoryFeminina)

	for i := 0; i < 6; i++ {
		addCompetitor(t, competitorRepo, 3, "F")
	}

	trios, err := s.Draw(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, trios, 2)
	assert.True(t, trios[0].Drawn)
	assert.Equal(t, 1, trios[0].Number)
	assert.Equal(t, 2, trios[1].Number)
}

func TestTrioServiceDrawSkipsAlreadyEntered(t *testing.T) {
	s, competitorRepo, _ := newTrioFixture(t, domain.CategoryFeminina)

	var ids []uint
	for i := 0; i < 6; i++ {
		ids = append(ids, addCompetitor(t, competitorRepo, 3, "F"))
	}

	_, err := s.Create(context.Background(), 1, 7, [3]uint{ids[0], ids[1], ids[2]})
	require.NoError(t, err)

	trios, err := s.Draw(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, trios, 1, "only the three not yet entered get drawn")

	for _, m := range trios[0].Members {
		assert.Contains(t, []uint{ids[3], ids[4], ids[5]}, m.CompetitorID)
	}
}

func TestTrioServiceDrawRejectsUnsupportedCategory(t *testing.T) {
	s, competitorRepo, _ := newTrioFixture(t, domain.CategoryAberta)

	for i := 0; i < 6; i++ {
		addCompetitor(t, competitorRepo, 3, "M")
	}

	_, err := s.Draw(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrDrawNotSupported)
}

func TestTrioServiceDrawNotEnoughCompetitors(t *testing.T) {
	s, competitorRepo, _ := newTrioFixture(t, domain.CategoryFeminina)

	addCompetitor(t, competitorRepo, 3, "F")
	addCompetitor(t, competitorRepo, 3, "F")

	_, err := s.Draw(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrNotEnoughCompetitors)
}

func TestTrioServiceDrawCapsPool(t *testing.T) {
	s, competitorRepo, _ := newTrioFixture(t, domain.CategoryFeminina)

	for i := 0; i < 12; i++ {
		addCompetitor(t, competitorRepo, 3, "F")
	}

	trios, err := s.Draw(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, trios, 3, "pool is capped at nine entrants")
}
