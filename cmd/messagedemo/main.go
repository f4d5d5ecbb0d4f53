// cmd/messagedemo/main.go
// Package main implements a headless demo harness for the message SDK. It
// fetches message content for the configured integration, prints the render
// parameters, and exercises the modal against a stub web surface.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/radeva/paypal-messages-go/internal/analytics"
	"github.com/radeva/paypal-messages-go/internal/config"
	"github.com/radeva/paypal-messages-go/internal/merchantprofile"
	"github.com/radeva/paypal-messages-go/internal/telemetry"
	"github.com/radeva/paypal-messages-go/messages"
	"github.com/radeva/paypal-messages-go/pkg/environment"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// stubSurface stands in for a real web view. It logs what the modal would
// do instead of rendering it.
type stubSurface struct{}

func (stubSurface) Load(ctx context.Context, url string) error {
	slog.Info("modal surface load", "url", url)
	return nil
}

func (stubSurface) Evaluate(ctx context.Context, script string) error {
	slog.Info("modal surface evaluate", "script", script)
	return nil
}

func (stubSurface) Loading() bool { return false }

// printer dumps lifecycle transitions and render parameters to the log.
type printer struct{}

func (printer) OnLoading(*messages.Message) { slog.Info("message loading") }

func (printer) OnSuccess(m *messages.Message) {
	params := m.RenderParameters()
	slog.Info("message ready",
		"message", params.Message,
		"link", params.LinkDescription,
		"logo_asset", params.LogoAsset,
		"accessibility_label", params.AccessibilityLabel,
	)
}

func (printer) OnError(_ *messages.Message, err error) {
	slog.Error("message fetch failed", "error", err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	// Configure structured logging for the demo
	logLevel := slog.LevelInfo
	if cfg.LogDebug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Initialize OpenTelemetry
	_, err = telemetry.InitTracer("paypal-messages-demo")
	if err != nil {
		logger.Error("failed to initialize OpenTelemetry tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		telemetry.ShutdownTracer(ctx)
	}()

	env := resolveEnvironment(cfg)

	// Initialize the merchant profile store (redis, file, or in-memory)
	var store merchantprofile.Store
	switch {
	case cfg.RedisAddr != "":
		store = merchantprofile.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
	case cfg.ProfileCachePath != "":
		store = merchantprofile.NewFileStore(cfg.ProfileCachePath)
	default:
		store = merchantprofile.NewMemoryStore()
	}

	messages.SetGlobalAnalytics("messagedemo", analytics.LibVersion, "", "")

	messageConfig := messages.Config{
		ClientID:      cfg.ClientID,
		MerchantID:    cfg.MerchantID,
		Environment:   env,
		BuyerCountry:  cfg.BuyerCountry,
		Placement:     messages.PlacementProduct,
		DevTouchpoint: cfg.DevTouchpoint,
		Style: messages.Style{
			LogoType:      messages.LogoInline,
			Color:         messages.ColorBlack,
			TextAlignment: messages.AlignLeft,
		},
	}
	if cfg.Amount != "" {
		amount, err := decimal.NewFromString(cfg.Amount)
		if err != nil {
			logger.Error("invalid PPM_AMOUNT", "error", err)
			os.Exit(1)
		}
		messageConfig.Amount = &amount
	}

	message := messages.NewMessage(messageConfig,
		messages.WithStateDelegate(printer{}),
		messages.WithProfileProvider(merchantprofile.NewProvider(store)),
		messages.WithWebSurface(func() messages.WebSurface { return stubSurface{} }),
	)
	defer message.Close()

	// Open the modal once content has arrived.
	go func() {
		for !message.IsInteractive() {
			time.Sleep(100 * time.Millisecond)
		}
		message.ShowModal(context.Background())
	}()

	logger.Info("message demo running", "env", env.RawValue(), "client_id", cfg.ClientID)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down, flushing telemetry")
	analytics.Reset()
	logger.Info("demo exited")
}

func resolveEnvironment(cfg config.Config) environment.Environment {
	switch cfg.Env {
	case "production":
		return environment.Live()
	case "stage":
		return environment.Stage(cfg.StageHost)
	case "local":
		return environment.Local("")
	default:
		return environment.Sandbox()
	}
}
