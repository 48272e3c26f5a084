package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/deutschlern/lagertrainer/internal/config"
	"github.com/deutschlern/lagertrainer/internal/delivery/telegram"
	"github.com/deutschlern/lagertrainer/internal/infra/postgres"
	"github.com/deutschlern/lagertrainer/internal/logger"
	"github.com/deutschlern/lagertrainer/internal/repository"
	"github.com/deutschlern/lagertrainer/internal/service"
	"github.com/deutschlern/lagertrainer/internal/tts"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.TelegramAPIToken == "" {
		log.Fatal(config.ErrMissingEnvironmentVariables)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		zlog.Fatal("failed to create bot", zap.Error(err))
	}

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{
			Command:     "livello",
			Description: "Inizia il livello attuale",
		},
		{
			Command:     "ripasso",
			Description: "Ripasso giornaliero",
		},
		{
			Command:     "progressi",
			Description: "Mostra i tuoi progressi",
		},
		{
			Command:     "aiuto",
			Description: "Aiuto",
		},
	}
	if _, err = bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		zlog.Warn("failed to set bot commands", zap.Error(err))
	}

	zlog.Info("authorized", zap.String("account", bot.Self.UserName))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	levels, err := repository.NewLevelRepository(cfg.ContentPath)
	if err != nil {
		zlog.Fatal("failed to load content table", zap.String("path", cfg.ContentPath), zap.Error(err))
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		zlog.Fatal("database url is not configured", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zlog.Fatal("failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	store := repository.NewPostgresProgressStore(pool)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	generator := service.NewQuestionGenerator(cfg.Quiz.OptionCount, rng)
	engine := service.NewEngine(levels, generator, cfg.Quiz.PassThreshold, zlog)

	var speaker telegram.Speaker
	if client, err := tts.NewClient(cfg.TTSAPIKey, "assets/audio/cache"); err != nil {
		zlog.Warn("voice notes disabled: tts cache unavailable", zap.Error(err))
	} else {
		speaker = client
	}

	handler := telegram.NewHandler(bot, zlog, engine, levels, store, speaker)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zlog.Fatal("handler stopped with error", zap.Error(err))
	}
}
