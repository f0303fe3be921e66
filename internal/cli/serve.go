package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/yumyai/hitview/logger"
	"github.com/yumyai/hitview/pkg/handler"
	"github.com/yumyai/hitview/pkg/middle"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// NewServer wires the handlers and middleware for app.
func NewServer(app *App) *http.Server {
	dbctx := &handler.DBContext{
		Store:      app.Store,
		Pipeline:   app.Pipeline,
		ImportJobs: handler.NewImportJobManager(),
	}

	mux := handler.NewRouter(dbctx)

	return &http.Server{
		Addr: app.Config.Addr,
		Handler: middle.Chain(mux,
			middle.RequestIDMiddleware(logger.L()),
			middle.LoggingMiddleware(logger.L()),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Serve runs the HTTP server until ctx is cancelled.
func Serve(ctx context.Context, app *App) error {
	srv := NewServer(app)

	errc := make(chan error, 1)
	go func() {
		logger.Info("Server starting", zap.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
