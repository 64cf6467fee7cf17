package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/RMahshie/loggraph/internal/repository"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgContainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const schema = `
	CREATE TABLE analysis_results (
		id UUID PRIMARY KEY,
		analysis_id UUID NOT NULL UNIQUE,
		frequency_data JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// setupDatabase starts PostgreSQL and creates the results table
func setupDatabase(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()

	container, err := pgContainer.Run(ctx,
		"postgres:15-alpine",
		pgContainer.WithDatabase("loggraph_test"),
		pgContainer.WithUsername("testuser"),
		pgContainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	dbURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.ExecContext(ctx, schema)
	require.NoError(t, err)

	return db
}

func TestGetFrequencyData_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupDatabase(t)
	repo := NewPostgresResultsRepository(db)
	ctx := context.Background()

	analysisID := uuid.New()
	_, err := db.ExecContext(ctx,
		`INSERT INTO analysis_results (id, analysis_id, frequency_data) VALUES ($1, $2, $3)`,
		uuid.New(), analysisID,
		`[{"frequency": 20, "magnitude": -10}, {"frequency": 1000, "magnitude": 0}, {"frequency": 19865, "magnitude": 3}]`)
	require.NoError(t, err)

	points, err := repo.GetFrequencyData(ctx, analysisID)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, 20.0, points[0].Frequency)
	assert.Equal(t, -10.0, points[0].Magnitude)
	assert.Equal(t, 19865.0, points[2].Frequency)

	t.Run("missing analysis", func(t *testing.T) {
		_, err := repo.GetFrequencyData(ctx, uuid.New())
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("malformed frequency data", func(t *testing.T) {
		broken := uuid.New()
		_, err := db.ExecContext(ctx,
			`INSERT INTO analysis_results (id, analysis_id, frequency_data) VALUES ($1, $2, $3)`,
			uuid.New(), broken, `{"frequency": 20}`)
		require.NoError(t, err)

		_, err = repo.GetFrequencyData(ctx, broken)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrNotFound)
	})
}
