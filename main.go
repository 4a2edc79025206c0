package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hikelog/lib"
	"hikelog/lib/environment"
	"hikelog/lib/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := lib.NewApp(ctx)
	if err != nil {
		slog.Error("Failed to create app", "error", err)
		os.Exit(1)
	}
	defer app.TearDown(context.Background())

	r := NewRouter(app, logging.Logger)
	InitDatasetReload(ctx, r, app.Dataset)

	host := "0.0.0.0"
	if app.Environment.GetEnv() == environment.Local {
		host = "localhost"
	}
	addr := host + ":" + app.Environment.GetPort()

	server := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info(fmt.Sprintf("Starting server on %s", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server stopped", "error", err)
	}
}
