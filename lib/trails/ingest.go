package trails

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"go.opentelemetry.io/otel/attribute"

	"hikelog/lib/tracing"
	"hikelog/lib/tracks"
)

type SkippedFile struct {
	File   string
	Reason string
}

type IngestReport struct {
	Parsed   int
	Skipped  []SkippedFile
	Unmapped []string
}

// Ingest builds a trail for every track file in dir. A bad file is skipped and reported;
// only an unreadable directory fails the whole run.
func Ingest(ctx context.Context, dir string, opts Options) ([]Trail, IngestReport, error) {
	ctx, span := tracing.Tracer.Start(ctx, "trails.Ingest")
	defer span.End()

	var report IngestReport

	files, err := ListTrackFiles(dir)
	if err != nil {
		return nil, report, err
	}

	slog.InfoContext(ctx, "Ingesting track files", "dir", dir, "files", len(files))

	trails := make([]Trail, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}

		trail, err := ingestFile(ctx, filepath.Join(dir, file), opts)
		if opts.OnFile != nil {
			opts.OnFile(file)
		}
		if err != nil {
			slog.WarnContext(ctx, "Skipping track file", "file", file, "error", err)
			report.Skipped = append(report.Skipped, SkippedFile{File: file, Reason: err.Error()})
			continue
		}

		if trail.Park == UnknownPark {
			slog.InfoContext(ctx, "Track file has no park mapping", "file", file)
			report.Unmapped = append(report.Unmapped, file)
		}

		report.Parsed++
		trails = append(trails, trail)
	}

	SortTrails(trails)

	span.SetAttributes(
		attribute.Int("trails.parsed", report.Parsed),
		attribute.Int("trails.skipped", len(report.Skipped)),
	)
	slog.InfoContext(ctx, "Ingested track files", "parsed", report.Parsed, "skipped", len(report.Skipped))

	return trails, report, nil
}

// ListTrackFiles returns the names of the .gpx and .fit files in dir, in name order.
func ListTrackFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read trails dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && tracks.IsTrackFile(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

func ingestFile(ctx context.Context, path string, opts Options) (Trail, error) {
	parsed, err := readTracks(ctx, path)
	if err != nil {
		return Trail{}, err
	}
	if len(parsed) > 1 && opts.TrackPolicy == FirstTrack {
		slog.WarnContext(ctx, "Ignoring extra tracks", "file", filepath.Base(path), "tracks", len(parsed))
	}
	return BuildTrail(filepath.Base(path), parsed, opts)
}

// ParseTrailFile builds the full-resolution record for a single file.
func ParseTrailFile(ctx context.Context, path string, lookup ParkLookup) (Trail, error) {
	ctx, span := tracing.Tracer.Start(ctx, "trails.ParseTrailFile")
	defer span.End()

	parsed, err := readTracks(ctx, path)
	if err != nil {
		return Trail{}, err
	}
	return BuildFullTrail(filepath.Base(path), parsed, Options{Lookup: lookup})
}

func readTracks(ctx context.Context, path string) ([]tracks.Track, error) {
	_, span := tracing.Tracer.Start(ctx, "trails.readTracks")
	defer span.End()
	span.SetAttributes(attribute.String("file", filepath.Base(path)))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read track file: %w", err)
	}
	return tracks.Parse(path, data)
}

// SortTrails orders by park, then trail name.
func SortTrails(trails []Trail) {
	sort.SliceStable(trails, func(i, j int) bool {
		if trails[i].Park != trails[j].Park {
			return trails[i].Park < trails[j].Park
		}
		return trails[i].Trail < trails[j].Trail
	})
}
