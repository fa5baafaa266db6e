package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	_ "github.com/jhoicas/gestiva/docs" // especificación Swagger
	"github.com/jhoicas/gestiva/internal/application/catalog"
	appmovement "github.com/jhoicas/gestiva/internal/application/movement"
	"github.com/jhoicas/gestiva/internal/domain/repository"
	"github.com/jhoicas/gestiva/internal/infrastructure/backend"
	infracache "github.com/jhoicas/gestiva/internal/infrastructure/cache"
	"github.com/jhoicas/gestiva/internal/infrastructure/draftstore"
	infrapdf "github.com/jhoicas/gestiva/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/gestiva/internal/interfaces/http"
	"github.com/jhoicas/gestiva/pkg/config"
	"github.com/jhoicas/gestiva/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando aplicación")

	// Sentry solo si hay DSN
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			Environment:      cfg.App.Env,
			TracesSampleRate: 0.2,
		}); err != nil {
			log.Error().Err(err).Msg("inicializar Sentry")
		} else {
			log.Info().Msg("Sentry inicializado")
			defer sentry.Flush(5 * time.Second)
		}
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Redis opcional: caché L2 de catálogos y, con DRAFT_STORE=redis, borradores.
	var redisClient *redis.Client
	if cfg.Cache.RedisURL != "" {
		redisClient, err = infracache.NewRedisClient(cfg.Cache.RedisURL, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, log)
		if err != nil {
			if cfg.Drafts.Store == "redis" {
				log.Fatal().Err(err).Msg("conexión a Redis")
			}
			log.Warn().Err(err).Msg("Redis no disponible, caché solo en memoria")
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var drafts repository.DraftRepository
	if cfg.Drafts.Store == "redis" {
		drafts = draftstore.NewRedisStore(redisClient, cfg.Drafts.TTL)
	} else {
		mem := draftstore.NewMemoryStore(cfg.Drafts.TTL)
		go mem.RunSweeper(ctx, time.Minute)
		drafts = mem
	}
	log.Info().Str("store", cfg.Drafts.Store).Dur("ttl", cfg.Drafts.TTL).Msg("almacén de borradores")

	ledger := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	catalogCache := infracache.NewCatalogCache(redisClient, cfg.Cache.MaxL1Size, cfg.Cache.TTL, log)
	catalogUC := catalog.NewUseCase(ledger, catalogCache, log)
	draftUC := appmovement.NewDraftUseCase(drafts, ledger, catalogUC, infrapdf.NewMarotoPDFGenerator(), log)
	movementUC := appmovement.NewMovementUseCase(ledger, catalogUC, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Backend.Timeout + 5*time.Second,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestiva API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		status := fiber.Map{"status": "ok", "service": cfg.App.Name, "drafts": cfg.Drafts.Store}
		if redisClient != nil {
			if err := redisClient.Ping(c.Context()).Err(); err != nil {
				status["redis"] = "error"
			} else {
				status["redis"] = "ok"
			}
		}
		status["catalog_cache"] = catalogCache.Stats()
		return c.JSON(status)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DraftUC:    draftUC,
		MovementUC: movementUC,
		CatalogUC:  catalogUC,
		JWTSecret:  cfg.JWT.Secret,
		JWTIssuer:  cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
