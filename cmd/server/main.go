// @title         askexpert API
// @version       1.0
// @description   Forwards a question, framed by the selected expert role, to a hosted chat model and returns the answer.
// @BasePath      /api/v1
// @schemes       http
// @host          localhost:8080
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	_ "github.com/artem13815/askexpert/docs"

	// internal imports
	"github.com/artem13815/askexpert/api/http"
	"github.com/artem13815/askexpert/api/http/handlers"
	"github.com/artem13815/askexpert/pkg/answer"
	"github.com/artem13815/askexpert/pkg/config"
	"github.com/artem13815/askexpert/pkg/expert"
	"github.com/artem13815/askexpert/pkg/health"
	"github.com/artem13815/askexpert/pkg/health/checkers"
	"github.com/artem13815/askexpert/pkg/llm/openai"
	"github.com/artem13815/askexpert/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration from env/.env and the secrets file
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	if cfg.HasCredential() {
		logger.Info("llm credential resolved", "source", cfg.CredentialSource)
	} else {
		logger.Warn("OPENAI_API_KEY not configured: every ask will return the setup message",
			"secrets_file", cfg.SecretsFile)
	}

	roles := expert.Default()

	llmClient := newChatModel(cfg)
	answerSvc := answer.NewService(roles, llmClient, cfg.OpenAIAPIKey, answer.WithLogger(logger))

	readiness := health.NewService(checkers.NewCredentialChecker(cfg.HasCredential()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := fiber.New(fiber.Config{
		AppName:               cfg.AppTitle,
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          cfg.AskTimeout + 10*time.Second,
	})
	app.Use(recover.New())
	app.Use(http.BaseContext(ctx))
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		Output: os.Stdout,
	}))

	http.Register(app,
		handlers.NewHealthHandler(readiness),
		handlers.NewRolesHandler(roles),
		handlers.NewAskHandler(answerSvc, cfg.AskTimeout),
		handlers.NewFormHandler(roles, answerSvc, cfg.AskTimeout, cfg.AppTitle),
	)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "port", cfg.Port, "model", llmClient.ModelName())
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// newChatModel builds the OpenAI client. Model id and temperature are fixed.
func newChatModel(cfg config.Config) *openai.Client {
	return openai.New(cfg.OpenAIAPIKey,
		openai.WithBaseURL(cfg.OpenAIBaseURL),
		openai.WithTimeout(cfg.AskTimeout),
		openai.WithAppTitle(cfg.AppTitle),
		openai.WithReferer(cfg.AppReferer),
	)
}
