package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/deutschlern/lagertrainer/internal/domain/entities"
	"github.com/deutschlern/lagertrainer/internal/service"
)

// localUserID keys the single local player in the progress store. The file
// store ignores it.
const localUserID = 0

// Game is the terminal presentation layer: it renders the menu and the
// questions, collects selections and drives the session engine. All game
// decisions (scoring, unlocking, persistence content) stay in the engine.
type Game struct {
	engine *service.Engine
	levels service.LevelRepo
	store  service.ProgressStore
	logger *zap.Logger
	in     *bufio.Scanner
	out    io.Writer
}

// New creates the terminal game reading selections from in and writing to out.
func New(
	engine *service.Engine,
	levels service.LevelRepo,
	store service.ProgressStore,
	logger *zap.Logger,
	in io.Reader,
	out io.Writer,
) *Game {
	return &Game{
		engine: engine,
		levels: levels,
		store:  store,
		logger: logger,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run loads the saved progress and loops over the three menu actions until
// the player exits or input ends.
func (g *Game) Run(ctx context.Context) error {
	progress, err := g.store.Load(ctx, localUserID)
	if err != nil {
		return fmt.Errorf("load progress: %w", err)
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		g.printMenu(progress.CurrentLevel)
		choice, ok := g.askChoice(3)
		if !ok {
			return nil
		}

		switch choice {
		case 1:
			g.runLevel(ctx, progress)
		case 2:
			g.runReview(ctx, progress)
		case 3:
			fmt.Fprintln(g.out, msgFarewell)
			return nil
		}
	}
}

func (g *Game) runLevel(ctx context.Context, progress *entities.Progress) {
	if g.engine.Completed(progress) {
		fmt.Fprintln(g.out, msgAllLevelsDone)
		return
	}

	number := progress.CurrentLevel
	level, err := g.levels.GetByNumber(number)
	if err != nil {
		g.logger.Error("level lookup failed", zap.Int("level", number), zap.Error(err))
		return
	}

	fmt.Fprintf(g.out, "\n*** Inizio del livello %d ***\n", number)
	g.printLevelIntro(level)

	session, err := g.engine.StartLevel(progress, number)
	if err != nil {
		g.logger.Error("start level failed", zap.Int("level", number), zap.Error(err))
		return
	}

	if !g.runQuestions(session) {
		return
	}

	result := g.engine.Finish(session, progress, time.Now())
	g.displayLevelResult(result.Passed, result.Accuracy)
	if result.Passed && !result.Advanced {
		fmt.Fprintln(g.out, msgLevelReplayed)
	}

	g.save(ctx, progress)
}

func (g *Game) runReview(ctx context.Context, progress *entities.Progress) {
	if progress.ReviewedOn(time.Now()) {
		fmt.Fprint(g.out, msgAlreadyReviewed)
		if !g.confirm() {
			return
		}
	}

	session, err := g.engine.StartReview(progress)
	if err != nil {
		fmt.Fprintln(g.out, msgNothingToReview)
		return
	}

	fmt.Fprintln(g.out, "\n*** Ripasso ***")
	if !g.runQuestions(session) {
		return
	}

	result := g.engine.Finish(session, progress, time.Now())
	fmt.Fprintf(g.out, "\nRipasso completato: %d%% di risposte corrette.\n", percent(result.Accuracy))

	g.save(ctx, progress)
}

// runQuestions walks the session's questions and reports whether every one
// was answered. A false return means input ended mid-session; the caller must
// discard the session without finishing or saving it.
func (g *Game) runQuestions(session *entities.Session) bool {
	total := len(session.Questions)
	for i := range session.Questions {
		question := &session.Questions[i]

		fmt.Fprintf(g.out, "\nDomanda %d/%d\n", i+1, total)
		selected, ok := g.displayQuestion(question.Prompt, question.Options)
		if !ok {
			return false
		}

		result := g.engine.Answer(session, question, question.Options[selected])
		g.displayFeedback(result)
	}
	return true
}

// displayQuestion shows a prompt with numbered options and returns the index
// of the selected option.
func (g *Game) displayQuestion(prompt string, options []string) (int, bool) {
	fmt.Fprintln(g.out, prompt)
	for i, opt := range options {
		fmt.Fprintf(g.out, "  %d. %s\n", i+1, opt)
	}

	choice, ok := g.askChoice(len(options))
	if !ok {
		return 0, false
	}
	return choice - 1, true
}

func (g *Game) displayFeedback(result service.AnswerResult) {
	if result.Correct {
		fmt.Fprintln(g.out, msgCorrect)
	} else {
		fmt.Fprintf(g.out, msgWrongFmt, result.CorrectAnswer)
	}
	if result.Explanation != "" {
		fmt.Fprintf(g.out, "Spiegazione: %s\n", result.Explanation)
	}
}

func (g *Game) displayLevelResult(passed bool, accuracy float64) {
	fmt.Fprintf(g.out, "\nHai risposto correttamente al %d%% delle domande.\n", percent(accuracy))
	if passed {
		fmt.Fprintln(g.out, msgLevelPassed)
	} else {
		fmt.Fprintln(g.out, msgLevelFailed)
	}
}

func (g *Game) printMenu(currentLevel int) {
	fmt.Fprintln(g.out, "\n=== Deutschland – Impara il tedesco ===")
	fmt.Fprintf(g.out, "Livello attuale: %d\n", currentLevel)
	fmt.Fprintln(g.out, "1. Inizia livello")
	fmt.Fprintln(g.out, "2. Ripasso giornaliero")
	fmt.Fprintln(g.out, "3. Esci")
}

// printLevelIntro shows the new vocabulary and grammar rules before the
// exercises start, then waits for ENTER.
func (g *Game) printLevelIntro(level *entities.Level) {
	if len(level.Vocabulary) > 0 {
		fmt.Fprintln(g.out, "Vocaboli introdotti in questo livello:")
		for _, item := range level.Vocabulary {
			fmt.Fprintf(g.out, "- %s (plurale: %s) – %s\n", item.WithArticle(), item.PluralForm(), item.Translation)
		}
	}
	for _, topic := range level.Grammar {
		fmt.Fprintf(g.out, "\nRegola: %s\n%s\n", topic.Name, topic.Explanation)
	}

	fmt.Fprint(g.out, "\nPremi INVIO per iniziare gli esercizi...")
	g.in.Scan()
}

// askChoice prompts until the player enters a number between 1 and n.
// The second return value is false when input ends.
func (g *Game) askChoice(n int) (int, bool) {
	for {
		fmt.Fprint(g.out, "Seleziona un'opzione: ")
		if !g.in.Scan() {
			return 0, false
		}

		choice, err := strconv.Atoi(strings.TrimSpace(g.in.Text()))
		if err == nil && choice >= 1 && choice <= n {
			return choice, true
		}
		fmt.Fprintf(g.out, "Inserisci un numero compreso tra 1 e %d.\n", n)
	}
}

// confirm reads an s/n answer, defaulting to no.
func (g *Game) confirm() bool {
	if !g.in.Scan() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(g.in.Text()), "s")
}

// save persists the progress. A failed save is reported but does not lose the
// in-memory state: the player can finish another session and retry.
func (g *Game) save(ctx context.Context, progress *entities.Progress) {
	if err := g.store.Save(ctx, localUserID, progress); err != nil {
		g.logger.Error("save progress failed", zap.Error(err))
		fmt.Fprintf(g.out, msgSaveFailedFmt, err)
	}
}

func percent(accuracy float64) int {
	return int(accuracy * 100)
}
