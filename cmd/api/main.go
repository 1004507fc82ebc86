package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"go-catalog-ms/internal/config"
	"go-catalog-ms/internal/event"
	"go-catalog-ms/internal/handler"
	"go-catalog-ms/internal/model"
	"go-catalog-ms/internal/repository"
	"go-catalog-ms/internal/service"
	"go-catalog-ms/internal/transport"
	"go-catalog-ms/internal/ws"
	"go-catalog-ms/pkg/cache"
	"go-catalog-ms/pkg/database"
	"go-catalog-ms/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Load Env
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Logger())
	if envErr != nil {
		log.Warn().Msg(".env file not found, relying on system env")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("catalog service stopped with error")
	}
	log.Info().Msg("Server exited")
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.Database(), log)
	if err != nil {
		return err
	}
	if cfg.AutoMigrate {
		if err := db.AutoMigrate(model.All()...); err != nil {
			return err
		}
	}

	// 3. Tree cache (Redis when configured)
	treeStore := cache.NewNoop()
	if cfg.RedisAddr != "" {
		client := cache.NewRedisClient(cfg.RedisAddr, cache.WithPassword(cfg.RedisPassword), cache.WithDB(cfg.RedisDB))
		redisCache := cache.NewRedisCache(client, cfg.AppName)
		if err := redisCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable, product trees will not be cached")
		} else {
			treeStore = redisCache
		}
		defer redisCache.Close()
	}
	trees := service.NewTreeCache(treeStore, cfg.TreeCacheTTL)

	// 4. Events: in-process bus -> Kafka event topic + WebSocket feed
	writer := transport.NewWriter(cfg.KafkaBrokers)
	bus := event.NewBus()
	wsHub := ws.NewHub()
	go wsHub.Run()
	defer wsHub.Stop()

	publisher := transport.NewEventPublisher(writer, cfg.KafkaEventTopic, log)
	if err := bus.Subscribe(publisher.Handle); err != nil {
		return err
	}
	if err := bus.Subscribe(wsHub.Forward); err != nil {
		return err
	}

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	edgeRepo := repository.NewQuestionProductRepo(db)

	expander := service.NewQuestionTreeExpander(edgeRepo)
	invalidate := service.WithTreeInvalidation(trees)

	services := handler.Services{
		Chains:       service.NewCatalogService[model.Chain, service.CreateChainRequest, service.UpdateChainRequest]("Chain", repository.NewChainRepo(db)),
		Restaurants:  service.NewRestaurantService(repository.NewRestaurantRepo(db)),
		Categories:   service.NewCategoryService(repository.NewCategoryRepo(db)),
		Tags:         service.NewTagService(repository.NewTagRepo(db), trees),
		Ingredients:  service.NewIngredientService(repository.NewIngredientRepo(db), trees),
		Questions:    service.NewQuestionService(questionRepo, productRepo, edgeRepo, trees),
		Products:     service.NewProductService(productRepo, expander, trees, service.WithCreatedEvent(event.ProductCreated, bus)),
		Translations: service.NewTranslationService(repository.NewTranslationRepo(db)),

		Sizes: service.NewLinkService[model.ProductSize, service.SizeItem, service.UpdateSizeRequest](
			"ProductSize", repository.NewProductSizeRepo(db), productRepo,
			invalidate, service.WithCreatedEvent(event.ProductSizeCreated, bus)),
		Images: service.NewLinkService[model.ProductImage, service.ImageItem, service.UpdateImageRequest](
			"ProductImage", repository.NewProductImageRepo(db), productRepo, invalidate),
		Schedules: service.NewLinkService[model.ProductSchedule, service.ScheduleItem, service.UpdateScheduleRequest](
			"ProductSchedule", repository.NewProductScheduleRepo(db), productRepo, invalidate),
		Recipes: service.NewLinkService[model.ProductRecipe, service.RecipeItem, service.UpdateRecipeRequest](
			"ProductRecipe", repository.NewProductRecipeRepo(db), productRepo,
			invalidate, service.WithCreatedEvent(event.ProductRecipeCreated, bus)),
		ProductTags: service.NewLinkService[model.ProductTag, service.TagItem, service.UpdateTagLinkRequest](
			"ProductTag", repository.NewProductTagRepo(db), productRepo,
			invalidate, service.WithCreatedEvent(event.ProductTagCreated, bus)),
		ProductQuestions: service.NewLinkService[model.QuestionProduct, service.QuestionItem, service.UpdateQuestionLinkRequest](
			"QuestionProduct", edgeRepo, productRepo, invalidate),
	}

	router := transport.NewRouter(log)
	handler.NewMessageHandler(services).Register(router)
	log.Info().Int("patterns", len(router.Patterns())).Msg("message routes registered")

	// 6. Kafka request/reply server
	reader := transport.NewReader(cfg.KafkaBrokers, cfg.KafkaGroupID, cfg.KafkaCommandTopic)
	server, err := transport.NewServer(reader, writer, router, transport.ServerOptions{
		PoolSize:       cfg.WorkerPoolSize,
		HandlerTimeout: cfg.HandlerTimeout,
		Logger:         log,
	})
	if err != nil {
		return err
	}

	// 7. Setup Fiber
	app := handler.NewApp(handler.NewHTTPHandler(router), wsHub, handler.AppConfig{
		Name:       cfg.AppName,
		JWTSecret:  []byte(cfg.JWTSecret),
		RequestLog: cfg.LogLevel == "debug",
	})

	// 8. Run until SIGINT/SIGTERM, then shut everything down
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(gctx)
	})
	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")
		return app.ShutdownWithTimeout(10 * time.Second)
	})

	err = g.Wait()

	bus.Wait()
	if cerr := server.Close(); cerr != nil {
		log.Error().Err(cerr).Msg("failed to close kafka reader/writer")
	}
	if sqlDB, dberr := db.DB(); dberr == nil {
		sqlDB.Close()
	}
	return err
}
