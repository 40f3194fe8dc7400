package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/scoutdex/internal/config"
	"github.com/kailas-cloud/scoutdex/internal/db"
	dbRedis "github.com/kailas-cloud/scoutdex/internal/db/redis"
	"github.com/kailas-cloud/scoutdex/internal/domain"
	domart "github.com/kailas-cloud/scoutdex/internal/domain/article"
	domco "github.com/kailas-cloud/scoutdex/internal/domain/company"
	dompost "github.com/kailas-cloud/scoutdex/internal/domain/posting"
	domskill "github.com/kailas-cloud/scoutdex/internal/domain/skill"
	logpkg "github.com/kailas-cloud/scoutdex/internal/logger"
	"github.com/kailas-cloud/scoutdex/internal/metrics"
	"github.com/kailas-cloud/scoutdex/internal/repository/embcache"
	indexrepo "github.com/kailas-cloud/scoutdex/internal/repository/index"
	"github.com/kailas-cloud/scoutdex/internal/repository/primary"
	chiTransport "github.com/kailas-cloud/scoutdex/internal/transport/chi"
	openaiEmb "github.com/kailas-cloud/scoutdex/internal/transport/openai"
	articleuc "github.com/kailas-cloud/scoutdex/internal/usecase/article"
	companyuc "github.com/kailas-cloud/scoutdex/internal/usecase/company"
	healthuc "github.com/kailas-cloud/scoutdex/internal/usecase/health"
	postinguc "github.com/kailas-cloud/scoutdex/internal/usecase/posting"
	skilluc "github.com/kailas-cloud/scoutdex/internal/usecase/skill"
	syncuc "github.com/kailas-cloud/scoutdex/internal/usecase/sync"
	"github.com/kailas-cloud/scoutdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting scoutdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	handle := db.NewHandle(func(context.Context) (db.Store, error) {
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Username: cfg.Database.Username,
			Password: cfg.Database.Password,
			DB:       cfg.Database.DB,
		})
	})
	defer handle.Reset()

	ctx := context.Background()
	store, err := handle.Get(ctx)
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}

	// Wait for database to be ready
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterIndexMetrics()

	// FT indexes for both backends
	if err := primary.EnsureIndexes(ctx, store); err != nil {
		logger.Fatal("Failed to ensure primary store indexes", zap.Error(err))
	}
	if err := indexrepo.EnsureIndexes(ctx, store, cfg.Index.Namespace, cfg.Embedding.Dimensions); err != nil {
		logger.Fatal("Failed to ensure vector indexes", zap.Error(err))
	}

	// Embedder chain: OpenAI provider wrapped in the embedding cache.
	provider := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   "openai",
		Logger:     logger,
	})
	var embedder domain.Embedder = embcache.New(
		provider, store,
		time.Duration(cfg.Embedding.CacheTTLSec)*time.Second,
		metrics.EmbeddingCacheTotal, logger,
	)
	logger.Info("Embedder created",
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	verify := indexrepo.VerifyPolicy{
		Attempts:     cfg.Index.Verify.Attempts,
		InitialDelay: time.Duration(cfg.Index.Verify.InitialDelayMS) * time.Millisecond,
		MaxDelay:     time.Duration(cfg.Index.Verify.MaxDelayMS) * time.Millisecond,
		Jitter:       cfg.Index.Verify.Jitter,
	}
	ns := cfg.Index.Namespace

	// One store/index/manager stack per entity type.
	companyMgr := syncuc.New[domco.Company](
		"company",
		primary.New[domco.Company](store, "company"),
		indexrepo.New(store, embedder, ns, "company", verify),
		logger,
	).WithFallback(cfg.Search.LexicalThreshold, cfg.Search.CandidateLimit)

	postingMgr := syncuc.New[dompost.Posting](
		"posting",
		primary.New[dompost.Posting](store, "posting"),
		indexrepo.New(store, embedder, ns, "posting", verify),
		logger,
	).WithFallback(cfg.Search.LexicalThreshold, cfg.Search.CandidateLimit)

	articleMgr := syncuc.New[domart.Article](
		"article",
		primary.New[domart.Article](store, "article"),
		indexrepo.New(store, embedder, ns, "article", verify),
		logger,
	).WithFallback(cfg.Search.LexicalThreshold, cfg.Search.CandidateLimit)

	skillMgr := syncuc.New[domskill.Skill](
		"skill",
		primary.New[domskill.Skill](store, "skill"),
		indexrepo.New(store, embedder, ns, "skill", verify),
		logger,
	).WithFallback(cfg.Search.LexicalThreshold, cfg.Search.CandidateLimit)

	companySvc := companyuc.New(companyMgr)
	postingSvc := postinguc.New(postingMgr, companySvc)
	articleSvc := articleuc.New(articleMgr)
	skillSvc := skilluc.New(skillMgr)

	healthSvc := healthuc.New(store, provider)

	server := chiTransport.NewServer(
		companySvc, postingSvc, articleSvc, skillSvc, healthSvc,
		logger, cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize,
	)

	var handler http.Handler = server.Router(cfg.Auth.APIKeys)
	handler = wideEventMiddleware(logger)(handler)
	handler = chiMiddleware.RequestID(handler)
	handler = jsonRecoverer(logger)(handler)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("http_request",
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
