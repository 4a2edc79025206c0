package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"hikelog/lib/environment"
	"hikelog/lib/logging"
	"hikelog/lib/storage"
	"hikelog/lib/tracing"
	"hikelog/lib/trails"
)

var (
	trailsDir    = flag.String("trails", "", "directory of .gpx and .fit files (default $TRAILS_DIR)")
	datasetFile  = flag.String("out", "", "dataset output path (default $DATASET_FILE)")
	geoJSONFile  = flag.String("geojson", "", "GeoJSON output path (default $GEOJSON_FILE)")
	parksFile    = flag.String("parks", "", "park lookup YAML (default $PARKS_FILE)")
	trackPolicy  = flag.String("tracks", "", "multi-track handling: first or merge (default $TRACK_POLICY)")
	downsample   = flag.String("downsample", "", "path reduction: stride or simplify (default $DOWNSAMPLE)")
	sampleTarget = flag.Int("samples", 0, "target points per path (default $SAMPLE_TARGET)")
	noPublish    = flag.Bool("no-publish", false, "skip uploading even when PUBLISH_BUCKET is set")
	quiet        = flag.Bool("quiet", false, "hide the progress bar")
)

type publisher interface {
	PublishFile(ctx context.Context, name, filePath, contentType string) (*storage.FileItem, error)
}

type config struct {
	TrailsDir   string
	DatasetFile string
	GeoJSONFile string
	Options     trails.Options
	Publisher   publisher
	Progress    io.Writer
}

func main() {
	flag.Parse()

	logging.Logger = logging.NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logging.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env, err := environment.NewEnvironmentService()
	if err != nil {
		slog.Error("Failed to load environment", "error", err)
		os.Exit(1)
	}

	if err := tracing.InitTracing(ctx, "gentrails", env); err != nil {
		slog.Warn("Tracing disabled", "error", err)
	}
	defer tracing.Teardown(context.Background())

	cfg, err := configFromFlags(ctx, env)
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(2)
	}

	if err := run(ctx, cfg, os.Stdout); err != nil {
		slog.Error("Failed to generate trail dataset", "error", err)
		os.Exit(1)
	}
}

func configFromFlags(ctx context.Context, env *environment.EnvironmentService) (config, error) {
	cfg := config{
		TrailsDir:   pick(*trailsDir, env.GetTrailsDir()),
		DatasetFile: pick(*datasetFile, env.GetDatasetFile()),
		GeoJSONFile: pick(*geoJSONFile, env.GetGeoJSONFile()),
		Progress:    os.Stderr,
	}
	if *quiet {
		cfg.Progress = io.Discard
	}

	policy, err := trails.ParseTrackPolicy(pick(*trackPolicy, env.GetTrackPolicy()))
	if err != nil {
		return cfg, err
	}
	mode, err := trails.ParseDownsampleMode(pick(*downsample, env.GetDownsample()))
	if err != nil {
		return cfg, err
	}
	target := env.GetSampleTarget()
	if *sampleTarget > 0 {
		target = *sampleTarget
	}

	lookup, err := trails.LoadParkLookup(pick(*parksFile, env.GetParksFile()))
	if err != nil {
		return cfg, err
	}

	cfg.Options = trails.Options{
		Lookup:       lookup,
		TrackPolicy:  policy,
		Downsample:   mode,
		SampleTarget: target,
	}

	if !*noPublish {
		svc, err := storage.NewStorageService(ctx, env)
		switch {
		case errors.Is(err, storage.ErrNoBucket):
		case err != nil:
			return cfg, err
		default:
			cfg.Publisher = svc
		}
	}

	return cfg, nil
}

func pick(flagValue, envValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return envValue
}

// run ingests the trails directory, writes both outputs, and publishes them when a
// publisher is configured. Per-file problems are reported in the summary, not returned.
func run(ctx context.Context, cfg config, out io.Writer) error {
	files, err := trails.ListTrackFiles(cfg.TrailsDir)
	if err != nil {
		return err
	}

	bar := newProgressBar(len(files), cfg.Progress)
	opts := cfg.Options
	opts.OnFile = func(string) {
		_ = bar.Add(1)
	}

	list, report, err := trails.Ingest(ctx, cfg.TrailsDir, opts)
	_ = bar.Finish()
	if err != nil {
		return err
	}

	if err := trails.WriteDataset(cfg.DatasetFile, list); err != nil {
		return err
	}
	if cfg.GeoJSONFile != "" {
		if err := trails.WriteGeoJSON(cfg.GeoJSONFile, list); err != nil {
			return err
		}
	}

	printSummary(out, cfg, report)

	if cfg.Publisher == nil {
		return nil
	}
	if _, err := cfg.Publisher.PublishFile(ctx, "trails.json", cfg.DatasetFile, "application/json"); err != nil {
		return fmt.Errorf("publish dataset: %w", err)
	}
	if cfg.GeoJSONFile != "" {
		if _, err := cfg.Publisher.PublishFile(ctx, "trails.geojson", cfg.GeoJSONFile, "application/geo+json"); err != nil {
			return fmt.Errorf("publish geojson: %w", err)
		}
	}
	fmt.Fprintln(out, "Published dataset")
	return nil
}

func printSummary(out io.Writer, cfg config, report trails.IngestReport) {
	fmt.Fprintf(out, "\nWrote %d trails to %s\n", report.Parsed, cfg.DatasetFile)
	if len(report.Skipped) > 0 {
		fmt.Fprintf(out, "Skipped %d files:\n", len(report.Skipped))
		for _, s := range report.Skipped {
			fmt.Fprintf(out, "  %s: %s\n", s.File, s.Reason)
		}
	}
	if len(report.Unmapped) > 0 {
		fmt.Fprintf(out, "No park mapping for %d files:\n", len(report.Unmapped))
		for _, f := range report.Unmapped {
			fmt.Fprintf(out, "  %s\n", f)
		}
	}
}
