package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"hikelog/lib/tracing"
	"hikelog/lib/trails"
)

var (
	ErrLoading   = errors.New("trail data is still loading, please try again later")
	ErrNotLoaded = errors.New("trail data failed to load")
)

type snapshot struct {
	trails  []trails.Trail
	version string
}

// DatasetService serves the generated trail dataset. The first load happens in the
// background; readers block on it for at most readyTimeout.
type DatasetService struct {
	path         string
	readyTimeout time.Duration

	cache    atomic.Value
	ready    chan struct{}
	isLoaded atomic.Bool
	reloadMu sync.Mutex
}

func NewDatasetService(path string) *DatasetService {
	ds := &DatasetService{
		path:         path,
		readyTimeout: 5 * time.Second,
		ready:        make(chan struct{}),
	}
	go ds.initialLoad()
	return ds
}

func (ds *DatasetService) initialLoad() {
	defer close(ds.ready)

	if _, err := ds.Reload(context.Background()); err != nil {
		slog.Error("Failed to load trail dataset", "path", ds.path, "error", err)
	}
}

// GetTrails returns the last loaded dataset. Callers must not modify the slice.
func (ds *DatasetService) GetTrails() ([]trails.Trail, error) {
	if !ds.isLoaded.Load() {
		select {
		case <-ds.ready:
		case <-time.After(ds.readyTimeout):
			return nil, ErrLoading
		}
	}

	if !ds.isLoaded.Load() {
		return nil, ErrNotLoaded
	}

	return ds.cache.Load().(snapshot).trails, nil
}

// Version identifies the content of the last successful load, or is empty before one.
func (ds *DatasetService) Version() string {
	snap, ok := ds.cache.Load().(snapshot)
	if !ok {
		return ""
	}
	return snap.version
}

// Reload re-reads the dataset file and reports whether its content changed. On error the
// previous dataset stays in place.
func (ds *DatasetService) Reload(ctx context.Context) (bool, error) {
	ctx, span := tracing.Tracer.Start(ctx, "dataset.Load")
	defer span.End()

	ds.reloadMu.Lock()
	defer ds.reloadMu.Unlock()

	data, err := os.ReadFile(ds.path)
	if err != nil {
		return false, fmt.Errorf("read dataset: %w", err)
	}

	version := hashContent(data)
	if ds.isLoaded.Load() && version == ds.Version() {
		return false, nil
	}

	list, err := trails.ParseDataset(data)
	if err != nil {
		return false, err
	}

	ds.cache.Store(snapshot{trails: list, version: version})
	ds.isLoaded.Store(true)

	span.SetAttributes(attribute.Int("dataset.trails", len(list)), attribute.String("dataset.version", version))
	slog.InfoContext(ctx, "Loaded trail dataset", "trails", len(list), "version", version)

	return true, nil
}

func hashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:6])
}
