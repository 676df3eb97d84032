package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"github.com/phrazzld/mjolnir/internal/api"
	apiMiddleware "github.com/phrazzld/mjolnir/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Responses are gzip-compressed for clients that accept it.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)

	artistHandler := api.NewArtistHandler(app.artistService, app.logger)

	r.Get("/", artistHandler.Hello)
	r.Get("/top-songs/{"+api.ArtistIDParam+"}", artistHandler.GetTopSongs)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return gzhttp.GzipHandler(r)
}
