// Command loggraph-term draws a frequency response chart in the terminal.
// The chart is laid out again whenever the terminal is resized.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RMahshie/loggraph/internal/chart"
	"github.com/RMahshie/loggraph/internal/config"
	"github.com/RMahshie/loggraph/internal/eq"
	"github.com/RMahshie/loggraph/internal/render"
	"github.com/RMahshie/loggraph/internal/repository"
	"github.com/RMahshie/loggraph/internal/repository/postgres"
	"github.com/RMahshie/loggraph/internal/service"
	"github.com/RMahshie/loggraph/internal/storage"
	"github.com/RMahshie/loggraph/pkg/models"
)

func main() {
	flags := pflag.NewFlagSet("loggraph-term", pflag.ExitOnError)
	flags.String("eq", "", "chart an EQ target, e.g. low_shelf:100:3,peak:1000:-6:2")
	flags.String("analysis", "", "chart the stored results of an analysis (needs DATABASE_URL)")
	flags.String("object", "", "chart a sample document from the bucket (needs S3_BUCKET)")
	flags.Float64Slice("freqs", nil, "inline sample frequencies in Hz")
	flags.Float64Slice("gains", nil, "inline sample gains in dB")
	flags.Bool("labels", true, "draw axis labels")
	flags.String("log", "", "write logs to this file")
	_ = flags.Parse(os.Args[1:])

	v := viper.GetViper()
	_ = v.BindPFlags(flags)

	if err := run(v, flags); err != nil {
		fmt.Fprintln(os.Stderr, "loggraph-term:", err)
		os.Exit(1)
	}
}

func run(v *viper.Viper, flags *pflag.FlagSet) error {
	// The screen owns stdout, so logs go to a file or nowhere
	log.Logger = zerolog.Nop()
	if path := v.GetString("log"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	}

	cfg, err := config.LoadFrom(v)
	if err != nil {
		return err
	}

	source, err := sourceFromFlags(v, flags)
	if err != nil {
		return err
	}

	charts, cleanup, err := newChartService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	labels := v.GetBool("labels")
	return newViewer(screen, charts, service.ChartRequest{Source: source, ShowLabels: &labels}).loop()
}

// viewer keeps one chart on a screen
type viewer struct {
	screen   tcell.Screen
	charts   service.ChartService
	req      service.ChartRequest
	renderer *render.TerminalRenderer
}

func newViewer(screen tcell.Screen, charts service.ChartService, req service.ChartRequest) *viewer {
	return &viewer{
		screen:   screen,
		charts:   charts,
		req:      req,
		renderer: &render.TerminalRenderer{Style: render.DefaultStyle()},
	}
}

func (v *viewer) loop() error {
	for {
		quit, err := v.handle(v.screen.PollEvent())
		if quit || err != nil {
			return err
		}
	}
}

// handle reacts to one event and reports whether the viewer should exit
func (v *viewer) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case nil:
		// The screen was finalized
		return true, nil
	case *tcell.EventResize:
		v.screen.Sync()
		return false, v.draw(context.Background())
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return true, nil
		}
	}
	return false, nil
}

// draw lays the chart out for the current screen size, one cell per pixel
func (v *viewer) draw(ctx context.Context) error {
	req := v.req
	req.Width, req.Height = v.screen.Size()

	g, err := v.charts.Layout(ctx, req)
	if err != nil {
		return err
	}

	v.screen.Clear()
	v.renderer.Draw(v.screen, g)
	v.screen.Show()

	log.Debug().Int("width", req.Width).Int("height", req.Height).Msg("Chart redrawn")
	return nil
}

// sourceFromFlags picks the sample source; with no source flag the demo set is shown.
func sourceFromFlags(v *viper.Viper, flags *pflag.FlagSet) (service.Source, error) {
	var src service.Source

	if bandList := v.GetString("eq"); bandList != "" {
		bands, err := eq.ParseBands(bandList)
		if err != nil {
			return src, err
		}
		src.EQ = &models.EQTarget{Bands: bands}
	}
	src.AnalysisID = v.GetString("analysis")
	src.ObjectKey = v.GetString("object")
	if flags.Changed("freqs") || flags.Changed("gains") {
		src.Frequencies, _ = flags.GetFloat64Slice("freqs")
		src.Gains, _ = flags.GetFloat64Slice("gains")
	}

	if src.EQ == nil && src.AnalysisID == "" && src.ObjectKey == "" && src.Frequencies == nil && src.Gains == nil {
		src.Demo = true
	}
	return src, nil
}

func newChartService(cfg *config.Config) (service.ChartService, func(), error) {
	cleanup := func() {}

	var results repository.ResultsRepository
	if cfg.Database.URL != "" {
		db, err := sql.Open("postgres", cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		results = postgres.NewPostgresResultsRepository(db)
		cleanup = func() { db.Close() }
	}

	var store storage.SampleStore
	if cfg.AWS.S3Bucket != "" {
		var err error
		store, err = storage.NewS3Service(storage.S3Config{
			Bucket:    cfg.AWS.S3Bucket,
			Endpoint:  cfg.AWS.S3Endpoint,
			Region:    cfg.AWS.Region,
			AccessKey: cfg.AWS.AccessKeyID,
			SecretKey: cfg.AWS.SecretAccessKey,
		})
		if err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	engine, err := chart.NewEngine(chart.DefaultDomain())
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return service.NewChartService(engine, results, store, cfg.Chart), cleanup, nil
}
