package main

import (
	"context"
	"flag"
	"log/slog"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/vitrineapp/vitrine/internal/config"
	"github.com/vitrineapp/vitrine/internal/infra/database"
	"github.com/vitrineapp/vitrine/internal/infra/gateway"
	"github.com/vitrineapp/vitrine/internal/infra/repository"
	"github.com/vitrineapp/vitrine/internal/present/rest"
	"github.com/vitrineapp/vitrine/internal/present/rest/middleware"
	"github.com/vitrineapp/vitrine/internal/service"
	"github.com/vitrineapp/vitrine/internal/usecase"
)

func main() {
	configPath := flag.String("c", "config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		panic("failed to connect database")
	}

	if err := database.MigratePostgres(db); err != nil {
		panic("failed to migrate database")
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
	mc := database.NewMemcached(conf.Server.MemcachedAddr)

	if conf.Server.EnableTrace {
		shutdown, err := setupTracer(conf.Server.TraceEndpoint)
		if err != nil {
			panic("failed to set up tracing: " + err.Error())
		}
		defer shutdown()
	}

	domainConf := conf.Domain()

	draftRepo := repository.NewDraftRepository(rdb)
	storeRepo := repository.NewStoreRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	pageCache := repository.NewPageCache(mc, conf.Server.PageCacheTTL)
	catalogGateway := gateway.NewCatalogGateway(catalogRepo)

	signalService := service.NewSignalService(rdb)
	authService := service.NewAuthService(&domainConf)
	editorService := service.NewEditorService()
	normalizer := service.NewMediaNormalizer()

	storeUsecase := usecase.NewStoreUsecase(draftRepo, storeRepo, pageCache, signalService)
	catalogUsecase := usecase.NewCatalogUsecase(catalogRepo, catalogGateway)
	mediaUsecase := usecase.NewMediaUsecase(normalizer, storeUsecase, catalogUsecase, conf.Media.Parallelism)
	renderUsecase := usecase.NewRenderUsecase(draftRepo, storeRepo, catalogGateway)

	handler := rest.NewHandler(
		domainConf,
		storeUsecase,
		mediaUsecase,
		catalogUsecase,
		renderUsecase,
		editorService,
		signalService,
		pageCache,
	)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	e := echo.New()
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("vitrine"))
	}

	handler.RegisterRoutes(e, authMiddleware)

	e.Logger.Fatal(e.Start(conf.Server.Listen))
}

func setupTracer(endpoint string) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", "vitrine"),
		)),
	)
	otel.SetTracerProvider(provider)

	return func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			slog.Error("tracer shutdown failed", slog.String("error", err.Error()))
		}
	}, nil
}
