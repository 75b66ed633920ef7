package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/nugraph/nugraph/pkg/buildinfo"
	"github.com/nugraph/nugraph/pkg/errors"
	pkgio "github.com/nugraph/nugraph/pkg/io"
	"github.com/nugraph/nugraph/pkg/pipeline"
)

// requestIDKey is the context key for the per-request resolution id.
const requestIDKey ctxKey = 1

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolution API over HTTP",
		Long: `Serve the resolution API over HTTP.

Endpoints:
  GET  /healthz          liveness probe
  POST /api/v1/resolve   resolve a dependency graph

The resolve endpoint accepts a JSON body with package, version, mode, repo,
and refresh fields, and returns the exported graph document together with a
request id and the resolution duration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe starts the HTTP server and shuts it down when ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           c.apiHandler(runner, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	c.Logger.Info("server listening", "addr", addr)
	printInfo("Serving API on %s", StyleLink.Render(addr))

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// apiHandler builds the chi router for the resolution API.
func (c *CLI) apiHandler(runner *pipeline.Runner, cfg *config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(c.requestLogger)

	r.Get("/healthz", handleHealth)
	r.Post("/api/v1/resolve", c.handleResolve(runner, cfg))

	return r
}

// requestLogger assigns each request a uuid and logs it on completion.
func (c *CLI) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		w.Header().Set("X-Request-ID", id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		c.Logger.Info("request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

// requestIDFromContext returns the request id assigned by requestLogger.
func requestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// handleHealth reports liveness and the build version.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// resolveRequest is the POST /api/v1/resolve body.
type resolveRequest struct {
	Package string `json:"package"`
	Version string `json:"version,omitempty"`
	Repo    string `json:"repo,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
}

// resolveResponse wraps the exported graph document with request metadata.
type resolveResponse struct {
	RequestID  string          `json:"request_id"`
	DurationMS int64           `json:"duration_ms"`
	Graph      json.RawMessage `json:"graph"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	RequestID string   `json:"request_id"`
	Error     apiError `json:"error"`
}

// apiError carries the taxonomy code and message of a failed request.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// handleResolve runs one independent resolution per request.
func (c *CLI) handleResolve(runner *pipeline.Runner, cfg *config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resolveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decoding request body"))
			return
		}

		mode := pipeline.ModeOnline
		if req.Mode != "" {
			parsed, err := pipeline.ParseMode(req.Mode)
			if err != nil {
				writeError(w, r, err)
				return
			}
			mode = parsed
		}

		result, err := runner.Resolve(r.Context(), pipeline.Options{
			Package:  req.Package,
			Version:  req.Version,
			Repo:     req.Repo,
			Mode:     mode,
			Refresh:  req.Refresh,
			CacheTTL: cfg.Cache.ttl(),
			Logger:   c.Logger,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}

		var buf bytes.Buffer
		if err := pkgio.WriteJSON(result, &buf); err != nil {
			writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encoding graph"))
			return
		}

		writeJSON(w, http.StatusOK, resolveResponse{
			RequestID:  requestIDFromContext(r.Context()),
			DurationMS: result.Stats.ResolveTime.Milliseconds(),
			Graph:      json.RawMessage(buf.Bytes()),
		})
	}
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err's taxonomy code onto an HTTP status and writes the
// error envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusForCode(code), errorResponse{
		RequestID: requestIDFromContext(r.Context()),
		Error: apiError{
			Code:    string(code),
			Message: errors.UserMessage(err),
		},
	})
}

// statusForCode maps error taxonomy codes onto HTTP statuses.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPackage, errors.ErrCodeInvalidVersion,
		errors.ErrCodeInvalidMode, errors.ErrCodeInvalidRepo, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodePackageNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeMalformedRepository, errors.ErrCodeMalformedDocument:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
