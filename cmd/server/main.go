package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/contentflow/configs"
	"github.com/maheshrc27/contentflow/internal/api"
	"github.com/maheshrc27/contentflow/internal/api/handlers"
	"github.com/maheshrc27/contentflow/internal/api/middleware"
	"github.com/maheshrc27/contentflow/internal/cache"
	job "github.com/maheshrc27/contentflow/internal/jobs"
	"github.com/maheshrc27/contentflow/internal/queue"
	"github.com/maheshrc27/contentflow/internal/repository"
	"github.com/maheshrc27/contentflow/internal/service"
	"github.com/maheshrc27/contentflow/internal/timeutil"
	"github.com/maheshrc27/contentflow/internal/webhook"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	if len(cfg.SecretKey) != 32 {
		log.Fatalf("SECRET_KEY must be 32 bytes, got %d", len(cfg.SecretKey))
	}

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    20 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Timezone",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	store := service.Store{
		Entries:    repository.NewEntryRepository(db),
		Renderings: repository.NewRenderingRepository(db),
		Slides:     repository.NewSlideImageRepository(db),
		Uploads:    repository.NewUploadedImageRepository(db),
		WordPress:  repository.NewWordPressPostRepository(db),
		Profiles:   repository.NewProfileRepository(db),
		Tx:         repository.NewTransactor(db),
	}
	credentialRepo := repository.NewCredentialRepository(db)

	entryCache := cache.NewEntryCache(cfg.EntryCacheTTL)
	gateway := webhook.NewGateway(resty.New())
	enqueuer := queue.NewEnqueuer(client)

	entryService := service.NewEntryService(store, entryCache, gateway)
	cardService := service.NewCardService(store, entryCache, gateway, enqueuer)
	callbackService := service.NewCallbackService(store, entryCache, gateway)
	galleryService := service.NewGalleryService(store, entryCache, service.NewR2Service(cfg.R2))
	profileService := service.NewProfileService(store.Profiles)
	credentialService := service.NewCredentialService(*cfg, credentialRepo)

	viewer := handlers.Viewer{
		Locations:     timeutil.NewLocations(cfg.DefaultTimezone),
		DefaultLocale: cfg.DefaultLocale,
	}
	api.RegisterRoutes(app, api.Handlers{
		Entries:     handlers.NewEntryHandler(entryService),
		Cards:       handlers.NewCardHandler(cardService, galleryService, viewer),
		Profile:     handlers.NewProfileHandler(profileService),
		Credentials: handlers.NewCredentialHandler(credentialService, *cfg),
		Callbacks:   handlers.NewCallbackHandler(callbackService),
	}, middleware.NewAuthMiddleware(*cfg))

	// cron jobs
	sweepJob := job.NewCacheSweepJob(entryCache)
	c := cron.New()
	c.AddFunc(job.CacheSweepSpec, sweepJob.Sweep)
	c.Start()
	defer c.Stop()

	// queue
	queueW := queue.NewQueue(callbackService)
	worker := asynq.NewServer(redisConn, asynq.Config{Concurrency: 10})
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskTypeDownloadSlides, queueW.HandleDownloadSlidesTask)
	if err := worker.Start(mux); err != nil {
		log.Fatalf("Could not start Asynq server: %v", err)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("ContentFlow API listening on :%s", cfg.Port)

	waitForSignal()
	log.Println("Shutting down...")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	worker.Shutdown()
}

func waitForSignal() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v\n", err)
	}
}
