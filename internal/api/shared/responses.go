package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/mjolnir/internal/domain"
	"github.com/phrazzld/mjolnir/internal/platform/logger"
	"github.com/phrazzld/mjolnir/internal/redact"
)

// RespondWithJSON writes a JSON response with the given status code and data.
// Data that cannot be encoded is replaced by the unexpected-error envelope
// with status 500.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		logger.FromContextOrDefault(r.Context(), nil).ErrorContext(r.Context(),
			"failed to encode JSON response",
			"error", err,
			"trace_id", GetTraceID(r.Context()))

		status = http.StatusInternalServerError
		// the fallback envelope contains only strings and numbers
		body, _ = json.Marshal(unexpectedEnvelope())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body = append(body, '\n')
	if _, err := w.Write(body); err != nil {
		logger.FromContextOrDefault(r.Context(), nil).DebugContext(r.Context(),
			"failed to write response body", "error", err)
	}
}

// RespondWithErrorAndLog logs err at ERROR level and writes env. The raw
// error never reaches the client; the log carries its redacted text along
// with the trace ID, path, method and internal code.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	env Envelope,
	err error,
) {
	ctx := r.Context()

	attrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(ctx)),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.Int("internal_code", int(env.Code)),
		slog.String("internal_code_name", env.Code.String()),
		slog.String("user_message", env.Message),
	}
	if err != nil {
		attrs = append(attrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)),
			slog.String("error_kind", domain.KindOf(err).String()))
	}

	logger.FromContextOrDefault(ctx, nil).LogAttrs(ctx, slog.LevelError, "API error response", attrs...)

	RespondWithEnvelope(w, r, status, env)
}
