package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nijaru/yt-transcript/config"
	"github.com/nijaru/yt-transcript/handlers"
	"github.com/nijaru/yt-transcript/logger"
	"github.com/nijaru/yt-transcript/middleware"
	"github.com/nijaru/yt-transcript/transcription"
	"github.com/nijaru/yt-transcript/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Config warnings must not reach stderr before logging is set up.
	logrus.SetOutput(io.Discard)

	cfg := config.LoadConfig()
	if err := config.ValidateConfig(cfg); err != nil {
		utils.WriteError(os.Stderr, err.Error())
		return 1
	}

	closer, err := logger.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		utils.WriteError(os.Stderr, err.Error())
		return 1
	}
	defer closer.Close()

	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: middleware.Chain(http.DefaultTransport,
			middleware.LoggingMiddleware,
			middleware.HeadersMiddleware(map[string]string{
				"User-Agent":      cfg.UserAgent,
				"Accept-Language": "en-US",
			}),
		),
	}

	client := transcription.NewClient(httpClient, "")
	service := transcription.NewTranscriptionService(client, cfg.Languages)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logrus.WithField("languages", cfg.Languages).Debug("Starting yt-transcript")
	return handlers.Execute(ctx, service, os.Args[1:], os.Stdout, os.Stderr)
}
