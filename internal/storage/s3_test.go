package storage

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	minioCreds "github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

func TestDecodeSamples(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantFreqs []float64
		wantGains []float64
		wantErr   bool
	}{
		{
			name:      "analysis export",
			doc:       `{"frequency_data": [{"frequency": 20, "magnitude": -10}, {"frequency": 100, "magnitude": -2}]}`,
			wantFreqs: []float64{20, 100},
			wantGains: []float64{-10, -2},
		},
		{
			name:      "parallel arrays",
			doc:       `{"frequencies": [1000, 2000], "gains": [6, 3]}`,
			wantFreqs: []float64{1000, 2000},
			wantGains: []float64{6, 3},
		},
		{
			name:      "empty arrays",
			doc:       `{"frequencies": [], "gains": []}`,
			wantFreqs: []float64{},
			wantGains: []float64{},
		},
		{
			name:    "mismatched arrays",
			doc:     `{"frequencies": [1000, 2000], "gains": [6]}`,
			wantErr: true,
		},
		{
			name:    "both layouts",
			doc:     `{"frequency_data": [], "frequencies": [1000], "gains": [6]}`,
			wantErr: true,
		},
		{
			name:    "no samples",
			doc:     `{"rt60": 0.4}`,
			wantErr: true,
		},
		{
			name:    "not json",
			doc:     `20,-10`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			freqs, gains, err := decodeSamples([]byte(tt.doc))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedSamples)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFreqs, freqs)
			assert.Equal(t, tt.wantGains, gains)
		})
	}
}

func TestNewS3Service_RequiresBucket(t *testing.T) {
	_, err := NewS3Service(S3Config{Endpoint: "localhost:9000"})
	assert.Error(t, err)
}

func TestLoadSamples_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := tcminio.Run(ctx,
		"minio/minio:RELEASE.2024-10-29T16-01-48Z",
		tcminio.WithUsername("minioadmin"),
		tcminio.WithPassword("minioadmin"),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()))
	})

	endpoint, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	// Seed the bucket with a sample document
	bucket := "loggraph-test-" + uuid.New().String()[:8]
	seed, err := minio.New(endpoint, &minio.Options{
		Creds: minioCreds.NewStaticV4("minioadmin", "minioadmin", ""),
	})
	require.NoError(t, err)
	require.NoError(t, seed.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))

	doc := []byte(`{"frequencies": [20, 1000, 19865], "gains": [-10, 6, 3]}`)
	_, err = seed.PutObject(ctx, bucket, "curves/demo.json", bytes.NewReader(doc), int64(len(doc)),
		minio.PutObjectOptions{ContentType: "application/json"})
	require.NoError(t, err)

	store, err := NewS3Service(S3Config{
		Bucket:    bucket,
		Endpoint:  endpoint,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)

	freqs, gains, err := store.LoadSamples(ctx, "curves/demo.json")
	require.NoError(t, err)
	assert.Equal(t, []float64{20, 1000, 19865}, freqs)
	assert.Equal(t, []float64{-10, 6, 3}, gains)

	_, _, err = store.LoadSamples(ctx, "curves/missing.json")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}
