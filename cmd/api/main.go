package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fhuszti/tourism-ms-go/internal/cache"
	"github.com/fhuszti/tourism-ms-go/internal/config"
	"github.com/fhuszti/tourism-ms-go/internal/db"
	"github.com/fhuszti/tourism-ms-go/internal/handler/api"
	"github.com/fhuszti/tourism-ms-go/internal/logger"
	cMiddleware "github.com/fhuszti/tourism-ms-go/internal/middleware"
	"github.com/fhuszti/tourism-ms-go/internal/port"
	"github.com/fhuszti/tourism-ms-go/internal/renderer"
	"github.com/fhuszti/tourism-ms-go/internal/repository/mariadb"
	"github.com/fhuszti/tourism-ms-go/internal/storage"
	"github.com/fhuszti/tourism-ms-go/internal/usecase/tourism"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// gates groups the per-method middlewares shared by every resource route.
type gates struct {
	write  func(http.Handler) http.Handler
	delete func(http.Handler) http.Handler
	id     func(http.Handler) http.Handler
}

func main() {
	logger.Init()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Errorf(ctx, "❌  Configuration error: %v", err)
		os.Exit(1)
	}

	database := initDb(ctx, cfg)

	r := initRouter(ctx, cfg.JWTPublicKey)
	g := initGates(ctx, cfg.JWTPublicKey)

	strg := initStorage(ctx, cfg)
	initBuckets(ctx, strg, tourism.Categories())

	var ca port.Cache
	if cfg.RedisAddr != "" {
		ca = cache.NewCache(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
		logger.Info(ctx, "✅  Redis cache enabled")
	} else {
		ca = cache.NewNoop()
		logger.Warn(ctx, "⚠️  Redis not configured, caching is disabled")
	}
	rendererSvc := renderer.NewHTTPRenderer(ca)
	limits := cMiddleware.UploadLimits{MaxFileSize: cfg.UploadMaxFileSize, MaxFiles: cfg.UploadMaxFiles}

	cities := mariadb.NewCityRepository(database.DB)

	citySvc := tourism.NewCityService(cities, ca)
	r.Route("/cities", func(r chi.Router) {
		r.With(g.write).Post("/", api.CreateCityHandler(citySvc.CreateCity))
		r.With(g.id).Get("/{id}", api.GetHandler(tourism.KindCity, rendererSvc, citySvc.GetCity))
		r.With(g.delete, g.id).Delete("/{id}", api.DeleteHandler(tourism.KindCity, citySvc.DeleteCity))
	})

	artsSvc := tourism.NewArtsCultureService(mariadb.NewArtsCultureRepository(database.DB), cities, strg, ca)
	artsUploads := cMiddleware.WithUploads(strg, tourism.CategoryArtsCulture, []cMiddleware.UploadSlot{
		{Name: "images"},
		{Name: "image", MaxCount: 1},
		{Name: "videos", Video: true},
	}, limits)
	r.Route("/arts-culture", func(r chi.Router) {
		r.With(g.write, artsUploads).
			Post("/", api.CreateHandler(tourism.KindArtsCulture, api.DecodeArtsCulture, artsSvc.CreateArtsCulture))
		r.With(g.id).Get("/{id}", api.GetHandler(tourism.KindArtsCulture, rendererSvc, artsSvc.GetArtsCulture))
		r.With(g.write, g.id, artsUploads).
			Put("/{id}", api.UpdateHandler(tourism.KindArtsCulture, api.DecodeArtsCulture, "keep_images", artsSvc.UpdateArtsCulture))
		r.With(g.delete, g.id).Delete("/{id}", api.DeleteHandler(tourism.KindArtsCulture, artsSvc.DeleteArtsCulture))
	})

	cafeSvc := tourism.NewCafeteriaService(mariadb.NewCafeteriaRepository(database.DB), cities, strg, ca)
	cafeUploads := cMiddleware.WithUploads(strg, tourism.CategoryCafeterias, singleImageSlots, limits)
	r.Route("/cafeterias", func(r chi.Router) {
		r.With(g.write, cafeUploads).
			Post("/", api.CreateHandler(tourism.KindCafeteria, api.DecodeCafeteria, cafeSvc.CreateCafeteria))
		r.With(g.id).Get("/{id}", api.GetHandler(tourism.KindCafeteria, rendererSvc, cafeSvc.GetCafeteria))
		r.With(g.write, g.id, cafeUploads).
			Put("/{id}", api.UpdateHandler(tourism.KindCafeteria, api.DecodeCafeteria, "keep_image", cafeSvc.UpdateCafeteria))
		r.With(g.delete, g.id).Delete("/{id}", api.DeleteHandler(tourism.KindCafeteria, cafeSvc.DeleteCafeteria))
	})

	festSvc := tourism.NewFestivalEventService(mariadb.NewFestivalEventRepository(database.DB), cities, strg, ca)
	festUploads := cMiddleware.WithUploads(strg, tourism.CategoryFestivals, []cMiddleware.UploadSlot{
		{Name: "images"},
		{Name: "videos", Video: true},
	}, limits)
	r.Route("/festivals", func(r chi.Router) {
		r.With(g.write, festUploads).
			Post("/", api.CreateHandler(tourism.KindFestivalEvent, api.DecodeFestivalEvent, festSvc.CreateFestivalEvent))
		r.With(g.id).Get("/{id}", api.GetHandler(tourism.KindFestivalEvent, rendererSvc, festSvc.GetFestivalEvent))
		r.With(g.write, g.id, festUploads).
			Put("/{id}", api.UpdateHandler(tourism.KindFestivalEvent, api.DecodeFestivalEvent, "keep_media", festSvc.UpdateFestivalEvent))
		r.With(g.delete, g.id).Delete("/{id}", api.DeleteHandler(tourism.KindFestivalEvent, festSvc.DeleteFestivalEvent))
	})

	transportSvc := tourism.NewPublicTransportService(mariadb.NewPublicTransportRepository(database.DB), cities, strg, ca)
	transportUploads := cMiddleware.WithUploads(strg, tourism.CategoryPublicTransport, singleImageSlots, limits)
	r.Route("/public-transport", func(r chi.Router) {
		r.With(g.write, transportUploads).
			Post("/", api.CreateHandler(tourism.KindPublicTransport, api.DecodePublicTransport, transportSvc.CreatePublicTransport))
		r.With(g.id).Get("/{id}", api.GetHandler(tourism.KindPublicTransport, rendererSvc, transportSvc.GetPublicTransport))
		r.With(g.write, g.id, transportUploads).
			Put("/{id}", api.UpdateHandler(tourism.KindPublicTransport, api.DecodePublicTransport, "keep_image", transportSvc.UpdatePublicTransport))
		r.With(g.delete, g.id).Delete("/{id}", api.DeleteHandler(tourism.KindPublicTransport, transportSvc.DeletePublicTransport))
	})

	listenRouter(ctx, r, cfg, database)
}

// single-image resources accept the file under either name; the service
// keeps one.
var singleImageSlots = []cMiddleware.UploadSlot{
	{Name: "image", MaxCount: 1},
	{Name: "images", MaxCount: 1},
}

func initDb(ctx context.Context, cfg *config.Settings) *db.Database {
	logger.Info(ctx, "initialising database...")

	database, err := db.New(db.MariaDbConfig{
		DSN:             cfg.MariaDBDSN,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to connect to db: %v", err)
		os.Exit(1)
	}

	return database
}

func initRouter(ctx context.Context, jwtKey string) *chi.Mux {
	logger.Info(ctx, "initialising router...")

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cMiddleware.WithAuth(jwtKey))

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.MethodNotAllowedHandler())

	return r
}

// initGates enforces roles only when tokens can be verified; without a key
// every route is open.
func initGates(ctx context.Context, jwtKey string) gates {
	g := gates{
		write:  passthrough,
		delete: passthrough,
		id:     cMiddleware.WithRecordID(),
	}
	if jwtKey == "" {
		logger.Warn(ctx, "⚠️  JWT_PUBLIC_KEY not set, write routes are unauthenticated")
		return g
	}
	g.write = cMiddleware.RequireAnyRole(cMiddleware.RoleAdmin, cMiddleware.RoleTenant)
	g.delete = cMiddleware.RequireAnyRole(cMiddleware.RoleAdmin)
	return g
}

func passthrough(next http.Handler) http.Handler { return next }

func initStorage(ctx context.Context, cfg *config.Settings) *storage.MinioStorage {
	strg, err := storage.NewMinioStorage(
		cfg.MinioEndpoint,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioUseSSL,
	)
	if err != nil {
		logger.Errorf(ctx, "❌  Failed to initialize MinIO client: %v", err)
		os.Exit(1)
	}

	return strg
}

func initBuckets(ctx context.Context, strg port.BlobStore, categories []string) {
	for _, c := range categories {
		if err := strg.InitBucket(ctx, c); err != nil {
			logger.Errorf(ctx, "❌  Failed to initialize bucket %q: %v", c, err)
			os.Exit(1)
		}
	}
}

func listenRouter(ctx context.Context, r *chi.Mux, cfg *config.Settings, database *db.Database) {
	srv := &http.Server{Addr: ":" + strconv.Itoa(cfg.ServerPort), Handler: r}

	go func() {
		logger.Infof(ctx, "🚀 API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "❌  Listen error: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info(ctx, "🛑 Shutdown signal received, exiting…")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(ctx, "❌  Server shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "✅  Server gracefully stopped")

	if err := database.Close(); err != nil {
		logger.Errorf(ctx, "DB close error: %v", err)
		os.Exit(1)
	}
}
