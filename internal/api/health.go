package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tenx-cards/internal/platform/logger"
)

// Health responds 200 "OK".
func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		logger.FromContext(r.Context()).Error("failed to write health check response",
			slog.String("error", err.Error()))
	}
}
