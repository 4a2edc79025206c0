package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"hikelog/lib/dataset"
)

const (
	reloadInterval = 5 * time.Second
	pushInterval   = 2 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// versionWsHandler sends the dataset version on connect and again whenever it changes, so
// open pages can refresh after a new dataset is generated.
func versionWsHandler(ds *dataset.DatasetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("Failed to upgrade websocket", "error", err)
			return
		}
		defer conn.Close()

		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		sent := ds.Version()
		if err := conn.WriteMessage(websocket.TextMessage, []byte(sent)); err != nil {
			return
		}

		ticker := time.NewTicker(pushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-closed:
				return
			case <-r.Context().Done():
				return
			case <-ticker.C:
				current := ds.Version()
				if current == sent {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, []byte(current)); err != nil {
					return
				}
				sent = current
			}
		}
	}
}

func InitDatasetReload(ctx context.Context, r chi.Router, ds *dataset.DatasetService) {
	r.Get("/ws", versionWsHandler(ds))

	go func() {
		ticker := time.NewTicker(reloadInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				changed, err := ds.Reload(ctx)
				if err != nil {
					slog.WarnContext(ctx, "Failed to reload trail dataset", "error", err)
					continue
				}
				if changed {
					slog.InfoContext(ctx, "Trail dataset changed", "version", ds.Version())
				}
			}
		}
	}()
}
