package lib

import (
	"context"
	"log/slog"
	"os"

	"hikelog/lib/dataset"
	"hikelog/lib/environment"
	"hikelog/lib/logging"
	"hikelog/lib/seasons"
	"hikelog/lib/tracing"
	"hikelog/lib/trails"
)

type App struct {
	Environment *environment.EnvironmentService
	Dataset     *dataset.DatasetService
	Parks       trails.ParkLookup
	Season      seasons.Season
}

// Single place services are instantiated, and environment variables are read and passed to the services.
// Gives a birds eye view of module dependencies, both internal and external.
func NewApp(ctx context.Context) (*App, error) {
	logging.Logger = logging.NewLogger(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logging.Logger)

	env, err := environment.NewEnvironmentService()
	if err != nil {
		return nil, err
	}

	if err := tracing.InitTracing(ctx, "hikelog", env); err != nil {
		slog.Warn("Tracing disabled", "error", err)
	}

	parks, err := trails.LoadParkLookup(env.GetParksFile())
	if err != nil {
		return nil, err
	}

	season, err := seasons.Load(env.GetSeasonFile())
	if err != nil {
		return nil, err
	}

	return &App{
		Environment: env,
		Dataset:     dataset.NewDatasetService(env.GetDatasetFile()),
		Parks:       parks,
		Season:      season,
	}, nil
}

func (a *App) TearDown(ctx context.Context) {
	tracing.Teardown(ctx)
}
