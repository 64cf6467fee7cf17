package repository

import (
	"context"
	"errors"

	"github.com/RMahshie/loggraph/pkg/models"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no results exist for an analysis
var ErrNotFound = errors.New("analysis results not found")

// ResultsRepository reads the frequency response stored for an analysis
type ResultsRepository interface {
	GetFrequencyData(ctx context.Context, analysisID uuid.UUID) ([]models.FrequencyPoint, error)
}
