package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/loggraph/pkg/models"
)

var (
	// ErrObjectNotFound is returned when the bucket has no object under the key
	ErrObjectNotFound = errors.New("sample object not found")
	// ErrMalformedSamples is returned for a document that holds no usable samples
	ErrMalformedSamples = errors.New("malformed sample document")
)

// maxDocumentSize bounds how much of an object is read
const maxDocumentSize = 8 << 20

// SampleStore loads chart samples stored as JSON documents
type SampleStore interface {
	LoadSamples(ctx context.Context, key string) (frequencies, gains []float64, err error)
}

type s3Service struct {
	client *s3.Client
	bucket string
}

// S3Config holds configuration for S3 service
type S3Config struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3Service creates a sample store backed by S3 or MinIO
func NewS3Service(cfg S3Config) (SampleStore, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}

	var opts []func(*config.LoadOptions) error
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	var client *s3.Client

	if cfg.Endpoint != "" {
		// MinIO configuration
		awsCfg, err := config.LoadDefaultConfig(context.Background(),
			append(opts, config.WithRegion("us-east-1"))..., // MinIO doesn't care about region
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		endpoint := cfg.Endpoint
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "http://" + endpoint
		}

		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = &endpoint
			o.UsePathStyle = true // MinIO requires path-style URLs
		})
	} else {
		// AWS S3 configuration
		awsCfg, err := config.LoadDefaultConfig(context.Background(),
			append(opts, config.WithRegion(cfg.Region))...,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}

		client = s3.NewFromConfig(awsCfg)
	}

	return &s3Service{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// LoadSamples downloads and decodes the sample document stored under key
func (s *s3Service) LoadSamples(ctx context.Context, key string) ([]float64, []float64, error) {
	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}
		return nil, nil, fmt.Errorf("failed to download samples: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(io.LimitReader(result.Body, maxDocumentSize))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read samples: %w", err)
	}

	freqs, gains, err := decodeSamples(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", key, err)
	}

	log.Debug().Str("bucket", s.bucket).Str("key", key).Int("samples", len(freqs)).Msg("Samples loaded")
	return freqs, gains, nil
}

// sampleDocument accepts the analysis export layout and the plain array layout
type sampleDocument struct {
	FrequencyData []models.FrequencyPoint `json:"frequency_data"`
	Frequencies   []float64               `json:"frequencies"`
	Gains         []float64               `json:"gains"`
}

func decodeSamples(data []byte) ([]float64, []float64, error) {
	var doc sampleDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedSamples, err)
	}

	switch {
	case doc.FrequencyData != nil && (doc.Frequencies != nil || doc.Gains != nil):
		return nil, nil, fmt.Errorf("%w: both frequency_data and frequencies/gains present", ErrMalformedSamples)
	case doc.FrequencyData != nil:
		freqs, gains := models.SplitPoints(doc.FrequencyData)
		return freqs, gains, nil
	case doc.Frequencies != nil || doc.Gains != nil:
		if len(doc.Frequencies) != len(doc.Gains) {
			return nil, nil, fmt.Errorf("%w: %d frequencies but %d gains", ErrMalformedSamples, len(doc.Frequencies), len(doc.Gains))
		}
		return doc.Frequencies, doc.Gains, nil
	}
	return nil, nil, fmt.Errorf("%w: no samples", ErrMalformedSamples)
}
