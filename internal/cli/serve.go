package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/buildinfo"
	"github.com/matzehuels/stackbar/pkg/cache"
	"github.com/matzehuels/stackbar/pkg/chart/config"
	"github.com/matzehuels/stackbar/pkg/chart/sink"
	"github.com/matzehuels/stackbar/pkg/dataset"
	sberrors "github.com/matzehuels/stackbar/pkg/errors"
	"github.com/matzehuels/stackbar/pkg/observability"
	"github.com/matzehuels/stackbar/pkg/pipeline"
)

const (
	defaultAddr      = ":8080"
	defaultMaxBody   = 1 << 20
	shutdownTimeout  = 10 * time.Second
	readHeaderLimit  = 5 * time.Second
	messagesHeader   = "X-Stackbar-Messages"
	defaultFormatReq = pipeline.FormatSVG
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr        string
	redisURL    string
	cachePrefix string
	noCache     bool
	maxBody     int64
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:        defaultAddr,
		cachePrefix: defaultCachePrefix,
		maxBody:     defaultMaxBody,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve chart rendering over HTTP",
		Long: `Serve starts an HTTP server:

  POST /render          render a chart (JSON request body)
  GET  /config/default  the stock chart configuration
  GET  /version         build version, commit and date
  GET  /metrics         Prometheus metrics
  GET  /healthz         liveness check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisURL, "redis", "", "Redis URL for the shared artifact cache (redis://host:6379/0)")
	cmd.Flags().StringVar(&opts.cachePrefix, "cache-prefix", opts.cachePrefix, "cache key prefix")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", opts.maxBody, "maximum request body size in bytes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	cc, err := serverCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(cc, cache.NewScopedKeyer(nil, opts.cachePrefix), c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           newServer(runner, c.Logger, opts.maxBody).routes(),
		ReadHeaderTimeout: readHeaderLimit,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	c.printSuccess("Listening on %s", StyleLink.Render("http://"+displayAddr(opts.addr)))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func serverCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisURL != "" {
		return cache.NewRedisCache(ctx, opts.redisURL)
	}
	return newCache(false)
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

// =============================================================================
// HTTP Server
// =============================================================================

type server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
}

func newServer(runner *pipeline.Runner, logger *log.Logger, maxBody int64) *server {
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	return &server{runner: runner, logger: logger, maxBody: maxBody}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Get("/version", handleVersion)
	r.Get("/config/default", s.handleDefaultConfig)
	r.Post("/render", s.handleRender)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// observe attaches a request-scoped logger and reports each request to
// the server hooks.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := s.logger.With("req", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set("Server", buildinfo.UserAgent())

		next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), logger)))

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.Server().OnRequest(r.Context(), r.Method, route, status, time.Since(start))
		logger.Debug("handled request", "method", r.Method, "route", route, "status", status, "duration", time.Since(start))
	})
}

// renderRequest is the body of POST /render. Data is either a columnar
// JSON table or, with DataFormat "csv", a string holding CSV text.
type renderRequest struct {
	Data       json.RawMessage `json:"data"`
	DataFormat string          `json:"data_format,omitempty"`
	Config     json.RawMessage `json:"config,omitempty"`
	Width      float64         `json:"width,omitempty"`
	Height     float64         `json:"height,omitempty"`
	Format     string          `json:"format,omitempty"`
	Scale      float64         `json:"scale,omitempty"`
	Static     bool            `json:"static,omitempty"`
}

// options converts the request into pipeline options.
func (req renderRequest) options() (pipeline.Options, error) {
	opts := pipeline.Options{
		DataFormat: req.DataFormat,
		Width:      req.Width,
		Height:     req.Height,
		Scale:      req.Scale,
		Static:     req.Static,
	}
	if opts.DataFormat == "" {
		opts.DataFormat = dataset.FormatJSON
	}
	switch opts.DataFormat {
	case dataset.FormatJSON:
		opts.Data = req.Data
	case dataset.FormatCSV:
		var text string
		if err := json.Unmarshal(req.Data, &text); err != nil {
			return opts, sberrors.Wrap(sberrors.ErrCodeInvalidInput, err, "csv data must be a JSON string")
		}
		opts.Data = []byte(text)
	default:
		return opts, sberrors.New(sberrors.ErrCodeInvalidFormat, "unsupported data_format %q (want json or csv)", opts.DataFormat)
	}
	if len(req.Config) > 0 && string(req.Config) != "null" {
		opts.ConfigData = req.Config
		opts.ConfigFormat = "json"
	}
	format := req.Format
	if format == "" {
		format = defaultFormatReq
	}
	opts.Formats = []string{format}
	return opts, nil
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r.Context())

	var req renderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, sberrors.Wrap(sberrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	opts, err := req.options()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	opts.Logger = logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil && result == nil {
		writeError(w, statusFor(err), err)
		return
	}

	format := opts.Formats[0]
	status := http.StatusOK
	if err != nil {
		logger.Error("render failed", "err", err)
		status = http.StatusUnprocessableEntity
	}
	if msgs := result.Messages(); len(msgs) > 0 {
		w.Header().Set(messagesHeader, strings.Join(msgs, "; "))
	}
	w.Header().Set("Content-Type", sink.ContentType(format))
	w.WriteHeader(status)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *server) handleDefaultConfig(w http.ResponseWriter, _ *http.Request) {
	data, err := config.Encode(config.Default(), "json")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func handleVersion(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(buildinfo.Get())
}

// errorResponse is the JSON body of a failed request.
type errorResponse struct {
	Code   string `json:"code,omitempty"`
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:   string(sberrors.GetCode(err)),
		Error:  sberrors.UserMessage(err),
		Detail: err.Error(),
	})
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch sberrors.GetCode(err) {
	case sberrors.ErrCodeInvalidInput, sberrors.ErrCodeInvalidConfig,
		sberrors.ErrCodeInvalidFormat, sberrors.ErrCodeUnresolvedSelector:
		return http.StatusBadRequest
	case sberrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		if errors.Is(err, context.Canceled) {
			return http.StatusServiceUnavailable
		}
		return http.StatusInternalServerError
	}
}
