// Package main is the entry point for the analysis API server.
//
// It wires the classifier, the online corroboration pipeline, the
// summarizer stack, and optional Postgres history persistence into a
// single HTTP server with graceful shutdown.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	hhttp "newstrust/internal/handler/http"
	analyzehttp "newstrust/internal/handler/http/analyze"
	"newstrust/internal/handler/http/middleware"
	"newstrust/internal/handler/http/requestid"
	"newstrust/internal/handler/http/respond"
	"newstrust/internal/infra/adapter/persistence/postgres"
	"newstrust/internal/infra/classifier"
	"newstrust/internal/infra/db"
	"newstrust/internal/infra/fetcher"
	"newstrust/internal/infra/search"
	"newstrust/internal/infra/summarizer"
	"newstrust/internal/observability/logging"
	"newstrust/internal/observability/tracing"
	"newstrust/internal/registry"
	"newstrust/internal/repository"
	analyzeUC "newstrust/internal/usecase/analyze"
	"newstrust/internal/usecase/verify"
)

const (
	defaultPort     = "8080"
	shutdownTimeout = 5 * time.Second

	// maxRequestBody bounds request bodies at the middleware layer.
	// Article submissions are text, so 1MB is generous.
	maxRequestBody = 1 << 20

	maxPathLength = 2048

	rateLimitRequests = 60
	rateLimitWindow   = time.Minute

	// requestTimeout bounds one whole analysis. The summarizer alone may
	// take up to a minute, so this sits well above it.
	requestTimeout = 2 * time.Minute
)

func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the history database and applies migrations.
// History persistence is optional: when DATABASE_URL is unset the server
// runs without it and the analysis pipeline skips recording.
func initDatabase(logger *slog.Logger) *sql.DB {
	if os.Getenv("DATABASE_URL") == "" {
		logger.Info("DATABASE_URL not set, history persistence disabled")
		return nil
	}

	database := db.Open()

	if err := db.MigrateUp(database); err != nil {
		logger.Error("Failed to apply migrations",
			slog.String("error", respond.SanitizeError(err)))
		database.Close()
		os.Exit(1)
	}

	logger.Info("Database initialized")
	return database
}

func getVersion() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}

// buildPipeline assembles the analysis service from its parts. Every
// component degrades rather than failing: a missing model artifact, a
// search outage, or an absent summarizer API key all leave the service
// answering with whatever signals remain.
func buildPipeline(logger *slog.Logger, database *sql.DB) (*analyzeUC.Service, *classifier.Classifier, error) {
	clf := classifier.New(classifier.LoadConfigFromEnv())

	reg, err := registry.Load()
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Reliability registry loaded",
		slog.Int("outlets", reg.Len()))

	searchCfg, err := search.LoadConfigFromEnv()
	if err != nil {
		return nil, nil, err
	}

	verifier := &verify.Service{
		Provider: search.NewClient(searchCfg),
		Registry: reg,
	}

	var history repository.AnalysisRepository
	if database != nil {
		history = postgres.NewAnalysisRepo(database)
	}

	svc := &analyzeUC.Service{
		Classifier: clf,
		Verifier:   verifier,
		Summarizer: summarizer.NewFallback(selectSummarizer(logger)),
		Fetcher:    fetcher.NewReadabilityFetcher(fetcher.LoadConfigFromEnv()),
		History:    history,
	}
	return svc, clf, nil
}

// selectSummarizer picks the primary summarization backend from the
// available API keys. Claude wins when both are configured. With neither,
// the fallback extracts lead sentences locally.
func selectSummarizer(logger *slog.Logger) summarizer.Summarizer {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		logger.Info("Using Claude summarizer")
		return summarizer.NewClaude(key)
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg, err := summarizer.LoadOpenAIConfig()
		if err != nil {
			logger.Warn("OpenAI summarizer config invalid, using lead sentences",
				slog.String("error", err.Error()))
			return nil
		}
		logger.Info("Using OpenAI summarizer")
		return summarizer.NewOpenAI(key, cfg)
	}

	logger.Info("No summarizer API key set, using lead sentences")
	return nil
}

func setupRoutes(svc *analyzeUC.Service, database *sql.DB, modelLoaded bool) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /health", &hhttp.HealthHandler{
		DB:          database,
		Version:     getVersion(),
		ModelLoaded: modelLoaded,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	analyzehttp.Register(mux, svc, svc.History)

	return mux
}

// applyMiddleware wraps the handler in the shared middleware chain.
// Application order is the reverse of execution order: the last wrap
// runs first on each request.
func applyMiddleware(handler http.Handler, logger *slog.Logger, corsCfg *middleware.CORSConfig) http.Handler {
	handler = hhttp.MetricsMiddleware(handler)
	handler = tracing.Middleware(handler)
	handler = hhttp.LimitRequestPath(maxPathLength)(handler)
	handler = hhttp.Timeout(requestTimeout)(handler)
	handler = hhttp.LimitRequestBody(maxRequestBody)(handler)
	handler = hhttp.Logging(logger)(handler)
	handler = hhttp.Recover(logger)(handler)
	handler = hhttp.NewRateLimiter(rateLimitRequests, rateLimitWindow).Limit(handler)
	handler = requestid.Middleware(handler)
	handler = middleware.CORS(*corsCfg)(handler)
	return handler
}

func runServer(ctx context.Context, logger *slog.Logger, handler http.Handler) {
	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", port))
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed",
				slog.String("error", respond.SanitizeError(err)))
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info("Shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Graceful shutdown failed",
				slog.String("error", respond.SanitizeError(err)))
			os.Exit(1)
		}
		logger.Info("Server stopped")
	}
}

func main() {
	logger := initLogger()
	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, "newstrust-api")
	if err != nil {
		logger.Warn("Tracing setup failed, continuing without tracing",
			slog.String("error", err.Error()))
		shutdownTracing = func(context.Context) error { return nil }
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Tracing shutdown failed", slog.String("error", err.Error()))
		}
	}()

	database := initDatabase(logger)
	if database != nil {
		defer database.Close()
	}

	svc, clf, err := buildPipeline(logger, database)
	if err != nil {
		logger.Error("Failed to build analysis pipeline",
			slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}

	corsCfg, err := middleware.LoadCORSConfig()
	if err != nil {
		logger.Error("Invalid CORS configuration",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	handler := applyMiddleware(setupRoutes(svc, database, clf.Loaded()), logger, corsCfg)
	runServer(ctx, logger, handler)
}
