package telegram

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/deutschlern/lagertrainer/internal/domain/entities"
)

func (h *Handler) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Acknowledge the tap first so the button stops spinning.
	if _, err := h.bot.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		h.logger.Debug("callback ack failed", zap.Error(err))
	}

	if query.Message == nil {
		return
	}

	chatID := query.Message.Chat.ID
	userID := query.From.ID
	data := decodeCallback(query.Data)

	var err error
	switch data.Action {
	case actionAnswer:
		err = h.handleAnswerCallback(ctx, chatID, data)
	case actionMenu:
		err = h.handleMenuCallback(ctx, chatID, userID, data)
	default:
		h.logger.Debug("unknown callback action", zap.String("data", data.Raw))
	}

	if err != nil {
		h.logger.Error("callback handling failed",
			zap.Int64("chat_id", chatID),
			zap.String("data", data.Raw),
			zap.Error(err),
		)
	}
}

// handleAnswerCallback scores the tapped option, shows the feedback, sends
// the pronunciation voice note for vocabulary questions and moves the session
// forward.
func (h *Handler) handleAnswerCallback(ctx context.Context, chatID int64, data callbackData) error {
	active, ok := h.sessions.get(chatID)
	if !ok {
		return h.send(newHTMLMessage(chatID, msgNoActiveSession))
	}

	questionIndex, optionIndex, err := parseAnswerParams(data)
	if err != nil {
		return err
	}

	// A tap on an already answered question is stale, ignore it.
	if questionIndex != active.index {
		return nil
	}

	question := active.current()
	if question == nil || optionIndex < 0 || optionIndex >= len(question.Options) {
		return nil
	}

	result := h.engine.Answer(active.session, question, question.Options[optionIndex])

	feedback := fmt.Sprintf(msgWrongFmt, result.CorrectAnswer)
	if result.Correct {
		feedback = msgCorrect
	}
	if result.Explanation != "" {
		feedback += "\n\n<i>" + result.Explanation + "</i>"
	}
	if err := h.send(newHTMLMessage(chatID, feedback)); err != nil {
		return err
	}

	// Pronunciation of the canonical German form, vocabulary questions only.
	if question.Kind != entities.QuestionGrammar {
		h.sendPronunciation(chatID, result.CorrectAnswer)
	}

	active.index++
	if active.current() != nil {
		return h.sendQuestion(chatID)
	}

	return h.finishSession(ctx, chatID, active)
}

func (h *Handler) handleMenuCallback(ctx context.Context, chatID, userID int64, data callbackData) error {
	if len(data.Params) == 0 {
		return nil
	}

	switch data.Params[0] {
	case menuLevel:
		return h.handleLevel(ctx, chatID, userID)
	case menuReview:
		return h.handleReview(ctx, chatID, userID)
	case menuProgress:
		return h.handleProgress(ctx, chatID, userID)
	}
	return nil
}

// finishSession applies the session outcome to the learner's progress,
// persists it and reports the result.
func (h *Handler) finishSession(ctx context.Context, chatID int64, active *activeSession) error {
	h.sessions.remove(chatID)

	result := h.engine.Finish(active.session, active.progress, time.Now())

	var text string
	switch result.Mode {
	case entities.ModeLevel:
		if result.Passed {
			text = fmt.Sprintf(msgLevelPassedFmt, percent(result.Accuracy))
			if result.Advanced && h.engine.Completed(active.progress) {
				text += "\n\n" + msgAllLevelsDone
			}
		} else {
			text = fmt.Sprintf(msgLevelFailedFmt, percent(result.Accuracy))
		}
	case entities.ModeReview:
		text = fmt.Sprintf(msgReviewDoneFmt, percent(result.Accuracy))
		if !result.Counted {
			text += "\n" + msgReviewNotCounted
		}
	}

	if err := h.store.Save(ctx, active.userID, active.progress); err != nil {
		h.logger.Error("save progress failed",
			zap.Int64("user_id", active.userID),
			zap.Error(err),
		)
		text += "\n\n" + msgSaveFailed
	}

	msg := newHTMLMessage(chatID, text)
	msg.ReplyMarkup = buildMenuKeyboard()
	return h.send(msg)
}

// sendPronunciation sends a voice note for the given German form. Failures
// are logged and swallowed: audio is a nicety, never part of the game flow.
func (h *Handler) sendPronunciation(chatID int64, text string) {
	if h.speaker == nil || !h.speaker.Enabled() {
		return
	}

	audio, err := h.speaker.Synthesize(text)
	if err != nil {
		h.logger.Debug("tts synthesis failed", zap.String("text", text), zap.Error(err))
		return
	}

	voice := tgbotapi.NewVoice(chatID, tgbotapi.FileBytes{Name: "pronuncia.mp3", Bytes: audio})
	if err := h.send(voice); err != nil {
		h.logger.Debug("voice note send failed", zap.Error(err))
	}
}

func parseAnswerParams(data callbackData) (questionIndex, optionIndex int, err error) {
	if len(data.Params) != 2 {
		return 0, 0, fmt.Errorf("malformed answer callback: %q", data.Raw)
	}
	questionIndex, err = strconv.Atoi(data.Params[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed answer callback: %q", data.Raw)
	}
	optionIndex, err = strconv.Atoi(data.Params[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed answer callback: %q", data.Raw)
	}
	return questionIndex, optionIndex, nil
}

func percent(accuracy float64) int {
	return int(accuracy * 100)
}
