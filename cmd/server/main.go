package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/nick0der/video-summarizer/internal/cleanup"
	"github.com/nick0der/video-summarizer/internal/config"
	"github.com/nick0der/video-summarizer/internal/handlers"
	"github.com/nick0der/video-summarizer/internal/job"
	"github.com/nick0der/video-summarizer/internal/logging"
	"github.com/nick0der/video-summarizer/internal/media"
	"github.com/nick0der/video-summarizer/internal/summarize"
	"github.com/nick0der/video-summarizer/internal/transcribe"
	"github.com/nick0der/video-summarizer/internal/watch"
	"github.com/nick0der/video-summarizer/pkg/executor"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, logBuffer, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	if err := cleanup.EnsureTempDirExists(cfg.Storage.TempDir); err != nil {
		log.WithError(err).Fatal("Failed to create temp directory")
	}

	log.Info("Initializing components...")

	exec := executor.New()

	extractor := media.NewFFmpeg(
		cfg.FFmpeg.Binary,
		exec,
		cfg.Storage.TempDir,
		time.Duration(cfg.FFmpeg.TimeoutSeconds)*time.Second,
		time.Duration(cfg.FFmpeg.CheckTimeoutSeconds)*time.Second,
	)

	transcriber := transcribe.NewWhisper(
		cfg.Whisper.Binary,
		cfg.Whisper.Model,
		cfg.Whisper.Language,
		cfg.Whisper.Threads,
		exec,
		cfg.Storage.TempDir,
	)

	gemini := summarize.NewClient(cfg.Gemini.Model)

	controller := job.NewController(extractor, transcriber, gemini, log)

	scheduler := cleanup.NewScheduler(
		cfg.Storage.TempDir,
		cfg.Cleanup.IntervalMinutes,
		cfg.Cleanup.MaxAgeHours,
		log,
	)
	scheduler.Start()
	defer scheduler.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional drop-folder mode; requires a default API key in config.
	if cfg.Watch.Dir != "" {
		if err := os.MkdirAll(cfg.Watch.Dir, 0755); err != nil {
			log.WithError(err).Fatal("Failed to create watch directory")
		}

		length, err := summarize.ParseLength(cfg.Watch.SummaryLength)
		if err != nil {
			log.WithError(err).Fatal("Invalid watch.summary_length")
		}
		format, err := summarize.ParseFormat(cfg.Watch.SummaryFormat)
		if err != nil {
			log.WithError(err).Fatal("Invalid watch.summary_format")
		}

		watcher, err := watch.New(cfg.Watch.Dir, controller, cfg.Gemini.APIKey, length, format, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to create watcher")
		}
		defer watcher.Stop()

		go func() {
			if err := watcher.Start(ctx); err != nil && err != context.Canceled {
				log.WithError(err).Error("Watcher stopped")
			}
		}()
	}

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Limits.MaxFileSizeMB * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	processHandler := handlers.NewProcessHandler(controller, cfg.Storage.TempDir, cfg.Limits.MaxFileSizeMB, log)
	statusHandler := handlers.NewStatusHandler(controller)
	geminiHandler := handlers.NewGeminiHandler(gemini, log)
	streamHandler := handlers.NewProgressStreamHandler(controller, log)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	app.Post("/process", processHandler.Handle)
	app.Get("/progress", statusHandler.Progress)
	app.Get("/results", statusHandler.Results)
	app.Get("/download/transcript", statusHandler.DownloadTranscript)
	app.Get("/download/summary", statusHandler.DownloadSummary)
	app.Post("/test_api", geminiHandler.TestKey)
	app.Post("/regenerate_summary", geminiHandler.Regenerate)

	app.Get("/ws/progress", websocket.New(streamHandler.Handle))

	app.Get("/logs", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"logs": logBuffer.Lines(),
		})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Infof("Server starting on %s", addr)

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info("Shutting down gracefully...")
		cancel()
		app.Shutdown()
	}()

	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("Server failed")
	}
}
