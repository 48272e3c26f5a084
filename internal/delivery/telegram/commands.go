package telegram

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/deutschlern/lagertrainer/internal/domain/entities"
)

func (h *Handler) handleStart(chatID int64) error {
	msg := newHTMLMessage(chatID, msgWelcome)
	msg.ReplyMarkup = buildMenuKeyboard()
	return h.send(msg)
}

// handleLevel starts a session for the learner's current level: intro text
// with the new vocabulary and grammar rules, then the first question.
func (h *Handler) handleLevel(ctx context.Context, chatID, userID int64) error {
	progress, err := h.store.Load(ctx, userID)
	if err != nil {
		h.logger.Error("load progress failed", zap.Int64("user_id", userID), zap.Error(err))
		return h.send(newHTMLMessage(chatID, msgInternalError))
	}

	if h.engine.Completed(progress) {
		msg := newHTMLMessage(chatID, msgAllLevelsDone)
		msg.ReplyMarkup = buildMenuKeyboard()
		return h.send(msg)
	}

	number := progress.CurrentLevel
	level, err := h.levels.GetByNumber(number)
	if err != nil {
		h.logger.Error("level lookup failed", zap.Int("level", number), zap.Error(err))
		return h.send(newHTMLMessage(chatID, msgInternalError))
	}

	session, err := h.engine.StartLevel(progress, number)
	if err != nil {
		h.logger.Error("start level failed", zap.Int("level", number), zap.Error(err))
		return h.send(newHTMLMessage(chatID, msgInternalError))
	}

	h.sessions.put(chatID, &activeSession{
		userID:   userID,
		progress: progress,
		session:  session,
	})

	if err := h.send(newHTMLMessage(chatID, formatLevelIntro(level))); err != nil {
		return err
	}

	return h.sendQuestion(chatID)
}

// handleReview starts a review session over the learned-set. A second review
// on the same day still runs but is announced as practice only, since it will
// not refresh the review date.
func (h *Handler) handleReview(ctx context.Context, chatID, userID int64) error {
	progress, err := h.store.Load(ctx, userID)
	if err != nil {
		h.logger.Error("load progress failed", zap.Int64("user_id", userID), zap.Error(err))
		return h.send(newHTMLMessage(chatID, msgInternalError))
	}

	session, err := h.engine.StartReview(progress)
	if err != nil {
		msg := newHTMLMessage(chatID, msgNothingToReview)
		msg.ReplyMarkup = buildMenuKeyboard()
		return h.send(msg)
	}

	h.sessions.put(chatID, &activeSession{
		userID:   userID,
		progress: progress,
		session:  session,
	})

	intro := msgReviewIntro
	if progress.ReviewedOn(time.Now()) {
		intro = msgReviewPracticeOnly
	}
	if err := h.send(newHTMLMessage(chatID, intro)); err != nil {
		return err
	}

	return h.sendQuestion(chatID)
}

// handleProgress renders the learner's progress summary.
func (h *Handler) handleProgress(ctx context.Context, chatID, userID int64) error {
	progress, err := h.store.Load(ctx, userID)
	if err != nil {
		h.logger.Error("load progress failed", zap.Int64("user_id", userID), zap.Error(err))
		return h.send(newHTMLMessage(chatID, msgInternalError))
	}

	msg := newHTMLMessage(chatID, h.formatProgress(progress))
	msg.ReplyMarkup = buildMenuKeyboard()
	return h.send(msg)
}

// sendQuestion shows the current question of the chat's active session with
// one inline button per option.
func (h *Handler) sendQuestion(chatID int64) error {
	active, ok := h.sessions.get(chatID)
	if !ok {
		return h.send(newHTMLMessage(chatID, msgNoActiveSession))
	}

	question := active.current()
	if question == nil {
		return nil
	}

	text := fmt.Sprintf(
		"<b>Domanda %d/%d</b>\n\n%s",
		active.index+1,
		len(active.session.Questions),
		question.Prompt,
	)

	msg := newHTMLMessage(chatID, text)
	msg.ReplyMarkup = buildOptionsKeyboard(active.index, question.Options)
	return h.send(msg)
}

func (h *Handler) formatProgress(progress *entities.Progress) string {
	var b strings.Builder

	b.WriteString("📊 <b>I tuoi progressi</b>\n\n")

	if h.engine.Completed(progress) {
		b.WriteString("🏁 Tutti i livelli completati!\n")
	} else {
		fmt.Fprintf(&b, "📖 Livello attuale: %d di %d\n", progress.CurrentLevel, h.levels.MaxLevel())
	}
	fmt.Fprintf(&b, "🧠 Vocaboli e regole imparati: %d\n", len(progress.LearnedItems))
	if progress.Score.Attempted > 0 {
		fmt.Fprintf(&b, "🎯 Precisione complessiva: %.0f%% (%d/%d)\n",
			progress.Accuracy()*100, progress.Score.Correct, progress.Score.Attempted)
	}
	if progress.LastReview != "" {
		fmt.Fprintf(&b, "📅 Ultimo ripasso: %s\n", progress.LastReview)
	}

	if len(progress.LevelScores) > 0 {
		b.WriteString("\n<b>Punteggi per livello</b>\n")
		numbers := make([]int, 0, len(progress.LevelScores))
		for key := range progress.LevelScores {
			if n, err := strconv.Atoi(key); err == nil {
				numbers = append(numbers, n)
			}
		}
		sort.Ints(numbers)
		for _, n := range numbers {
			fmt.Fprintf(&b, "Livello %d: %d%%\n", n, progress.LevelScores[strconv.Itoa(n)])
		}
	}

	return b.String()
}
