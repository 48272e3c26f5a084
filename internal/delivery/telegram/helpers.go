package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/deutschlern/lagertrainer/internal/domain/entities"
)

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

// formatLevelIntro renders the new vocabulary and grammar rules shown before
// a level's exercises start.
func formatLevelIntro(level *entities.Level) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🎓 <b>Livello %d</b>\n", level.Number)

	if len(level.Vocabulary) > 0 {
		b.WriteString("\nVocaboli introdotti in questo livello:\n")
		for _, item := range level.Vocabulary {
			fmt.Fprintf(&b, "• <b>%s</b> (plurale: %s) – %s\n",
				item.WithArticle(), item.PluralForm(), item.Translation)
		}
	}

	for _, topic := range level.Grammar {
		fmt.Fprintf(&b, "\n<b>Regola: %s</b>\n%s\n", topic.Name, topic.Explanation)
	}

	return b.String()
}
