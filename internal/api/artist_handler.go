package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/mjolnir/internal/api/shared"
	"github.com/phrazzld/mjolnir/internal/domain"
	"github.com/phrazzld/mjolnir/internal/platform/logger"
	"github.com/phrazzld/mjolnir/internal/service"
)

// ArtistIDParam is the chi URL parameter holding the artist id.
const ArtistIDParam = "artist_id"

// CacheQueryParam toggles cache use for a lookup.
const CacheQueryParam = "cache"

// ArtistHandler handles artist-related HTTP requests
type ArtistHandler struct {
	artistService service.ArtistService
	logger        *slog.Logger
}

// NewArtistHandler creates a new ArtistHandler
func NewArtistHandler(artistService service.ArtistService, logger *slog.Logger) *ArtistHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArtistHandler{
		artistService: artistService,
		logger:        logger.With("component", "artist_handler"),
	}
}

// Hello handles GET / requests
func (h *ArtistHandler) Hello(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithEnvelope(w, r, http.StatusOK,
		shared.NewEnvelope(true, domain.CodeSuccess, shared.MessageHello, nil))
}

// GetTopSongs handles GET /top-songs/{artist_id}?cache= requests
func (h *ArtistHandler) GetTopSongs(w http.ResponseWriter, r *http.Request) {
	defer h.recoverPanic(w, r)

	rawCache, cachePresent := "", false
	if values, ok := r.URL.Query()[CacheQueryParam]; ok {
		cachePresent = true
		if len(values) > 0 {
			rawCache = values[0]
		}
	}

	req, err := domain.NewArtistRequest(chi.URLParam(r, ArtistIDParam), rawCache, cachePresent)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	songs, err := h.artistService.GetTopSongs(r.Context(), req)
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	outcome := OutcomeFor(domain.KindNone)
	shared.RespondWithEnvelope(w, r, outcome.Status, outcome.Envelope(songs))
}

// recoverPanic converts a panic in the lookup pipeline into the
// unclassified envelope.
func (h *ArtistHandler) recoverPanic(w http.ResponseWriter, r *http.Request) {
	rec := recover()
	if rec == nil {
		return
	}
	if rec == http.ErrAbortHandler {
		panic(rec)
	}

	logger.FromContextOrDefault(r.Context(), h.logger).ErrorContext(r.Context(),
		"panic in artist handler",
		"panic", fmt.Sprint(rec),
		"stack", string(debug.Stack()))

	respondWithError(w, r, fmt.Errorf("panic: %v", rec))
}
