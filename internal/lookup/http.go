package lookup

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sha1n/mcp-docs-lookup/internal/docsource"
)

// EmbedPath is the path the HTTP lookup endpoint is served on.
const EmbedPath = "/embed"

type errorResponse struct {
	Error string `json:"error"`
}

// NewEmbedHandler serves GET /embed?q=<query>&src=<selector>&includePrivate=<bool>
// and responds with the rendered result as JSON.
func NewEmbedHandler(service *Service) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
			return
		}

		params := r.URL.Query()
		req := Request{
			Query:  params.Get("q"),
			Source: params.Get("src"),
		}

		if raw := params.Get("includePrivate"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: "includePrivate must be a boolean"})
				return
			}
			req.IncludePrivate = &v
		}

		result, err := service.Lookup(r.Context(), req)
		if err != nil {
			status := statusFor(err)
			if status == http.StatusInternalServerError {
				slog.ErrorContext(r.Context(), "Lookup failed", "query", req.Query, "source", req.Source, "error", err)
			}
			writeJSON(w, status, errorResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, result)
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, docsource.ErrInvalidSource):
		return http.StatusBadRequest
	case errors.Is(err, docsource.ErrSourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to write response", "error", err)
	}
}
