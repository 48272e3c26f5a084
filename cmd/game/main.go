package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/deutschlern/lagertrainer/internal/config"
	"github.com/deutschlern/lagertrainer/internal/delivery/cli"
	"github.com/deutschlern/lagertrainer/internal/logger"
	"github.com/deutschlern/lagertrainer/internal/repository"
	"github.com/deutschlern/lagertrainer/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	levels, err := repository.NewLevelRepository(cfg.ContentPath)
	if err != nil {
		zlog.Fatal("failed to load content table", zap.String("path", cfg.ContentPath), zap.Error(err))
	}

	store := repository.NewFileProgressStore(cfg.ProgressPath)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	generator := service.NewQuestionGenerator(cfg.Quiz.OptionCount, rng)
	engine := service.NewEngine(levels, generator, cfg.Quiz.PassThreshold, zlog)

	game := cli.New(engine, levels, store, zlog, os.Stdin, os.Stdout)
	if err := game.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zlog.Fatal("game exited with error", zap.Error(err))
	}
}
