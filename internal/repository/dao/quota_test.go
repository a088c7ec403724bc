package dao

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("dockertest.NewPool -> %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=lctp",
			"POSTGRES_PASSWORD=lctp",
			"POSTGRES_DB=lctp_test",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		log.Fatalf("pool.RunWithOptions -> %v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%v user=lctp password=lctp dbname=lctp_test sslmode=disable",
		resource.GetPort("5432/tcp"))

	pool.MaxWait = 60 * time.Second
	if err = pool.Retry(func() error {
		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}

		sqlDB, err := testDB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("pool.Retry -> %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("InitTables -> %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("pool.Purge -> %v", err)
	}

	os.Exit(code)
}

func seedQuota(t *testing.T, maxRuns int, mayCompete bool) ParticipationQuota {
	t.Helper()

	competitor, err := NewCompetitorDAO(testDB).Insert(context.Background(), Competitor{
		Name:      "Quota Holder",
		BirthDate: time.Date(1995, 3, 10, 0, 0, 0, 0, time.UTC),
		Handicap:  4,
		Sex:       "M",
		Active:    true,
	})
	require.NoError(t, err)

	event, err := NewEventDAO(testDB).Insert(context.Background(), Event{
		Name: "Quota Event",
		Date: time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	category, err := NewCategoryDAO(testDB).Insert(context.Background(), Category{
		Name:   fmt.Sprintf("quota-category-%d", time.Now().UnixNano()),
		Type:   "aberta",
		Active: true,
	})
	require.NoError(t, err)

	quota, err := NewQuotaDAO(testDB).Insert(context.Background(), ParticipationQuota{
		CompetitorID: competitor.ID,
		EventID:      event.ID,
		CategoryID:   category.ID,
		MaxRuns:      maxRuns,
		MayCompete:   mayCompete,
	})
	require.NoError(t, err)

	return quota
}

func TestQuotaDAORegisterRunCountsDown(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	d := NewQuotaDAO(testDB)
	quota := seedQuota(t, 2, true)

	updated, err := d.RegisterRun(context.Background(), quota.CompetitorID, quota.EventID, quota.CategoryID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.RunsExecuted)

	updated, err = d.RegisterRun(context.Background(), quota.CompetitorID, quota.EventID, quota.CategoryID)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.RunsExecuted)

	_, err = d.RegisterRun(context.Background(), quota.CompetitorID, quota.EventID, quota.CategoryID)
	assert.ErrorIs(t, err, ErrQuotaExhausted)
}

func TestQuotaDAORegisterRunBlocked(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	d := NewQuotaDAO(testDB)
	quota := seedQuota(t, 5, true)

	require.NoError(t, d.SetBlocked(context.Background(), quota.ID, true, "outstanding entry fee"))

	_, err := d.RegisterRun(context.Background(), quota.CompetitorID, quota.EventID, quota.CategoryID)
	assert.ErrorIs(t, err, ErrQuotaBlocked)

	require.NoError(t, d.SetBlocked(context.Background(), quota.ID, false, ""))

	updated, err := d.RegisterRun(context.Background(), quota.CompetitorID, quota.EventID, quota.CategoryID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.RunsExecuted)
}

func TestQuotaDAORegisterRunConcurrent(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	d := NewQuotaDAO(testDB)
	quota := seedQuota(t, 5, true)

	const attempts = 20

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = d.RegisterRun(context.Background(), quota.CompetitorID, quota.EventID, quota.CategoryID)
		}(i)
	}
	wg.Wait()

	granted := 0
	for _, err := range errs {
		if err == nil {
			granted++
			continue
		}
		assert.True(t, errors.Is(err, ErrQuotaExhausted), "unexpected error: %v", err)
	}
	assert.Equal(t, 5, granted, "exactly max_runs registrations may succeed")

	final, err := d.FindByID(context.Background(), quota.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, final.RunsExecuted)
}

func TestQuotaDAOReleaseRunGivesBackOne(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	d := NewQuotaDAO(testDB)
	quota := seedQuota(t, 2, true)

	_, err := d.RegisterRun(context.Background(), quota.CompetitorID, quota.EventID, quota.CategoryID)
	require.NoError(t, err)

	require.NoError(t, d.ReleaseRun(context.Background(), quota.CompetitorID, quota.EventID, quota.CategoryID))

	final, err := d.FindByID(context.Background(), quota.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, final.RunsExecuted)

	err = d.ReleaseRun(context.Background(), quota.CompetitorID, quota.EventID, quota.CategoryID)
	assert.ErrorIs(t, err, ErrQuotaNotFound, "a quota with nothing consumed has nothing to release")
}

func TestQuotaDAOInsertDuplicate(t *testing.T) {
	if testing.Short() {
		t.Skip("requires docker")
	}

	d := NewQuotaDAO(testDB)
	quota := seedQuota(t, 5, true)

	_, err := d.Insert(context.Background(), ParticipationQuota{
		CompetitorID: quota.CompetitorID,
		EventID:      quota.EventID,
		CategoryID:   quota.CategoryID,
		MaxRuns:      5,
		MayCompete:   true,
	})
	assert.ErrorIs(t, err, ErrQuotaExists)
}
