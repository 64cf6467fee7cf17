package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/RMahshie/loggraph/internal/repository"
	"github.com/RMahshie/loggraph/pkg/models"
	"github.com/google/uuid"
)

// PostgresResultsRepository implements ResultsRepository for PostgreSQL
type PostgresResultsRepository struct {
	db *sql.DB
}

// NewPostgresResultsRepository creates a new PostgreSQL results repository
func NewPostgresResultsRepository(db *sql.DB) repository.ResultsRepository {
	return &PostgresResultsRepository{db: db}
}

// GetFrequencyData retrieves the frequency response of an analysis
func (r *PostgresResultsRepository) GetFrequencyData(ctx context.Context, analysisID uuid.UUID) ([]models.FrequencyPoint, error) {
	query := `
		SELECT frequency_data
		FROM analysis_results
		WHERE analysis_id = $1`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, analysisID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, analysisID)
	}
	if err != nil {
		return nil, err
	}

	var points []models.FrequencyPoint
	if err := json.Unmarshal(raw, &points); err != nil {
		return nil, fmt.Errorf("failed to unmarshal frequency data: %w", err)
	}

	return points, nil
}
