package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	AWS      AWSConfig
	Chart    ChartConfig
}

// DatabaseConfig holds database configuration. An empty URL disables
// charting of stored analyses.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// AWSConfig holds AWS/S3 configuration. An empty bucket disables charting
// of stored sample documents.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string
}

// ChartConfig holds layout and rendering defaults
type ChartConfig struct {
	Width         int
	Height        int
	ShowLabels    bool
	StrokeWidth   float64
	FontSize      float64
	EQPoints      int
	LayoutTimeout time.Duration
}

// SetDefaults registers default values for every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("CHART_WIDTH", 1080)
	v.SetDefault("CHART_HEIGHT", 720)
	v.SetDefault("CHART_SHOW_LABELS", true)
	v.SetDefault("CHART_STROKE_WIDTH", 3.0)
	v.SetDefault("CHART_FONT_SIZE", 12.0)
	v.SetDefault("CHART_EQ_POINTS", 128)
	v.SetDefault("LAYOUT_TIMEOUT", "5s")
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom loads configuration through the given viper instance
func LoadFrom(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	// Read from .env files based on environment
	env := v.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}

	v.SetConfigName(".env." + env)
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// The file is optional
	_ = v.ReadInConfig()

	// Environment variables override .env file values
	v.AutomaticEnv()

	for _, key := range []string{
		"DATABASE_URL", "PORT", "ENVIRONMENT", "ALLOWED_ORIGINS",
		"AWS_REGION", "AWS_ACCESS_KEY_ID", "AWS_SECRET_ACCESS_KEY", "S3_BUCKET", "S3_ENDPOINT",
		"CHART_WIDTH", "CHART_HEIGHT", "CHART_SHOW_LABELS", "CHART_STROKE_WIDTH", "CHART_FONT_SIZE",
		"CHART_EQ_POINTS", "LAYOUT_TIMEOUT",
	} {
		_ = v.BindEnv(key)
	}

	var config Config
	config.Database.URL = v.GetString("DATABASE_URL")
	config.Server.Port = v.GetString("PORT")
	config.Server.Env = v.GetString("ENVIRONMENT")
	config.Server.AllowedOrigins = splitList(v.GetString("ALLOWED_ORIGINS"))
	config.AWS.Region = v.GetString("AWS_REGION")
	config.AWS.AccessKeyID = v.GetString("AWS_ACCESS_KEY_ID")
	config.AWS.SecretAccessKey = v.GetString("AWS_SECRET_ACCESS_KEY")
	config.AWS.S3Bucket = v.GetString("S3_BUCKET")
	config.AWS.S3Endpoint = v.GetString("S3_ENDPOINT")
	config.Chart.Width = v.GetInt("CHART_WIDTH")
	config.Chart.Height = v.GetInt("CHART_HEIGHT")
	config.Chart.ShowLabels = v.GetBool("CHART_SHOW_LABELS")
	config.Chart.StrokeWidth = v.GetFloat64("CHART_STROKE_WIDTH")
	config.Chart.FontSize = v.GetFloat64("CHART_FONT_SIZE")
	config.Chart.EQPoints = v.GetInt("CHART_EQ_POINTS")
	config.Chart.LayoutTimeout = v.GetDuration("LAYOUT_TIMEOUT")

	log.Debug().
		Strs("allowed_origins", config.Server.AllowedOrigins).
		Bool("database", config.Database.URL != "").
		Bool("bucket", config.AWS.S3Bucket != "").
		Msg("Configuration loaded")

	return &config, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
