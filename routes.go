package main

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hikelog/lib"
	"hikelog/lib/environment"
	"hikelog/lib/metrics"
	"hikelog/lib/tracing"
	"hikelog/lib/tracks"
	"hikelog/lib/trails"
	"hikelog/pages"
)

type statsResponse struct {
	Stats        metrics.AggregatedStats `json:"stats"`
	Achievements []metrics.Achievement   `json:"achievements"`
}

func NewRouter(app *lib.App, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer, tracing.NewOpenTelemetryMiddleware(logger))

	fileServer := http.FileServer(http.Dir("./static"))
	static := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.Environment.GetEnv() == environment.Local {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}
		fileServer.ServeHTTP(w, r)
	})
	r.Handle("/static/*", http.StripPrefix("/static/", static))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/outdoor", http.StatusFound)
	})

	r.Get("/outdoor", func(w http.ResponseWriter, r *http.Request) {
		pages.Outdoor(r.Context(), app).Render(w)
	})

	r.Get("/outdoor/trails", func(w http.ResponseWriter, r *http.Request) {
		filters := pages.FiltersFromQuery(r.URL.Query())

		if r.Header.Get("HX-Request") != "true" {
			pages.TrailsPage(r.Context(), app, filters).Render(w)
			return
		}

		list, err := app.Dataset.GetTrails()
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to get trails", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			pages.Error(r.Context(), err).Render(w)
			return
		}
		pages.TrailList(metrics.FilterTrails(list, filters)).Render(w)
	})

	r.Get("/outdoor/map", func(w http.ResponseWriter, r *http.Request) {
		pages.MapPage(r.Context(), app).Render(w)
	})

	r.Get("/outdoor/trails/{file}", func(w http.ResponseWriter, r *http.Request) {
		file := chi.URLParam(r, "file")

		list, err := app.Dataset.GetTrails()
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			pages.Error(r.Context(), err).Render(w)
			return
		}

		var found *trails.Trail
		for i := range list {
			if list[i].GPXFile == file {
				found = &list[i]
				break
			}
		}
		if found == nil {
			w.WriteHeader(http.StatusNotFound)
			pages.Error(r.Context(), errTrailNotFound).Render(w)
			return
		}

		trail := *found
		if full, err := parseTrailFile(r, app, file); err == nil {
			trail.ElevationProfile = full.ElevationProfile
		} else {
			slog.WarnContext(r.Context(), "No elevation profile for trail", "file", file, "error", err)
		}

		pages.Trail(r.Context(), trail).Render(w)
	})

	r.Get("/api/trails", func(w http.ResponseWriter, r *http.Request) {
		list, err := app.Dataset.GetTrails()
		if err != nil {
			writeError(w, r, http.StatusServiceUnavailable, err)
			return
		}
		writeJSON(w, r, http.StatusOK, list)
	})

	r.Get("/api/trails.geojson", func(w http.ResponseWriter, r *http.Request) {
		list, err := app.Dataset.GetTrails()
		if err != nil {
			writeError(w, r, http.StatusServiceUnavailable, err)
			return
		}
		data, err := trails.FeatureCollection(list).MarshalJSON()
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write(data)
	})

	r.Get("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		list, err := app.Dataset.GetTrails()
		if err != nil {
			writeError(w, r, http.StatusServiceUnavailable, err)
			return
		}
		stats := metrics.CalculateAggregatedStats(list)
		writeJSON(w, r, http.StatusOK, statsResponse{
			Stats:        stats,
			Achievements: metrics.GenerateAchievements(list, stats),
		})
	})

	r.Get("/api/trails/{file}/profile", func(w http.ResponseWriter, r *http.Request) {
		trail, err := parseTrailFile(r, app, chi.URLParam(r, "file"))
		switch {
		case errors.Is(err, errTrailNotFound) || errors.Is(err, fs.ErrNotExist):
			writeError(w, r, http.StatusNotFound, errTrailNotFound)
		case err != nil:
			writeError(w, r, http.StatusUnprocessableEntity, err)
		default:
			writeJSON(w, r, http.StatusOK, trail)
		}
	})

	return r
}

type apiError struct {
	Error string `json:"error"`
}

var errTrailNotFound = errors.New("trail not found")

// parseTrailFile only accepts bare track file names inside the trails directory.
func parseTrailFile(r *http.Request, app *lib.App, file string) (trails.Trail, error) {
	if file != filepath.Base(file) || !tracks.IsTrackFile(file) {
		return trails.Trail{}, errTrailNotFound
	}
	path := filepath.Join(app.Environment.GetTrailsDir(), file)
	return trails.ParseTrailFile(r.Context(), path, app.Parks)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	slog.WarnContext(r.Context(), "Request failed", "status", status, "error", err)
	writeJSON(w, r, status, apiError{Error: err.Error()})
}
