package telegram

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/deutschlern/lagertrainer/internal/domain/entities"
	"github.com/deutschlern/lagertrainer/internal/service"
)

// Engine is the session engine as the bot sees it.
type Engine interface {
	StartLevel(progress *entities.Progress, number int) (*entities.Session, error)
	StartReview(progress *entities.Progress) (*entities.Session, error)
	Answer(session *entities.Session, question *entities.Question, selection string) service.AnswerResult
	Finish(session *entities.Session, progress *entities.Progress, now time.Time) service.SessionResult
	Completed(progress *entities.Progress) bool
}

// ProgressStore persists learner state per Telegram user.
type ProgressStore interface {
	Load(ctx context.Context, userID int64) (*entities.Progress, error)
	Save(ctx context.Context, userID int64, progress *entities.Progress) error
}

// Speaker synthesizes German pronunciation audio. A disabled speaker makes
// the bot silently skip voice notes.
type Speaker interface {
	Enabled() bool
	Synthesize(text string) ([]byte, error)
}

type Handler struct {
	bot      *tgbotapi.BotAPI
	logger   *zap.Logger
	engine   Engine
	levels   service.LevelRepo
	store    ProgressStore
	speaker  Speaker
	sessions *sessionRegistry
}

func NewHandler(
	bot *tgbotapi.BotAPI,
	logger *zap.Logger,
	engine Engine,
	levels service.LevelRepo,
	store ProgressStore,
	speaker Speaker,
) *Handler {
	return &Handler{
		bot:      bot,
		logger:   logger,
		engine:   engine,
		levels:   levels,
		store:    store,
		speaker:  speaker,
		sessions: newSessionRegistry(),
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID
	userID := update.Message.From.ID

	if !update.Message.IsCommand() {
		_ = h.send(newHTMLMessage(chatID, msgUnknownCommand))
		return
	}

	var err error
	switch update.Message.Command() {
	case "start":
		err = h.handleStart(chatID)
	case "livello":
		err = h.handleLevel(ctx, chatID, userID)
	case "ripasso":
		err = h.handleReview(ctx, chatID, userID)
	case "progressi":
		err = h.handleProgress(ctx, chatID, userID)
	case "aiuto":
		err = h.send(newHTMLMessage(chatID, msgHelp))
	default:
		err = h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}

	if err != nil {
		h.logger.Error("command handling failed",
			zap.Int64("chat_id", chatID),
			zap.String("command", update.Message.Command()),
			zap.Error(err),
		)
	}
}

func (h *Handler) send(c tgbotapi.Chattable) error {
	_, err := h.bot.Send(c)
	return err
}
