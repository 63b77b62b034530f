package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	flag "github.com/spf13/pflag"

	"keyword-planner/internal/config"
	"keyword-planner/internal/handler"
	"keyword-planner/internal/service"
	"keyword-planner/pkg/ads"
	"keyword-planner/pkg/logger"
)

type Application struct {
	configPath string
	debug      bool
}

func main() {
	app := &Application{}

	flag.StringVar(&app.configPath, "config", "", "Path to google-ads.yaml (default $GOOGLE_ADS_CONFIGURATION_FILE_PATH or /app/google-ads.yaml)")
	flag.BoolVar(&app.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application failed: %v\n", err)
		os.Exit(1)
	}
}

func (app *Application) Run() error {
	cfg, err := config.NewManager().Load(config.ResolvePath(app.configPath))
	if err != nil {
		return err
	}

	if app.debug {
		cfg.Logger.Level = "debug"
	}
	logger.SetLogger(logger.New(cfg.Logger))
	log := logger.GetLogger().WithField("component", "server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc, err := service.NewKeywordService(ctx, cfg, ads.DefaultConnectionConfig())
	if err != nil {
		return err
	}
	defer svc.Close()

	server := fiber.New(fiber.Config{
		AppName:               "keyword-planner",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.RequestTimeout + 10*time.Second,
	})
	handler.NewController(svc.Fetcher, svc.Client).Register(server)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	errChan := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("Starting keyword-planner server")
		errChan <- server.Listen(addr)
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	case <-sigChan:
		log.Info("Shutdown signal received")
	}

	if err := server.ShutdownWithTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
