package entities

// QuestionKind tells which canonical form a question asks for.
type QuestionKind string

const (
	QuestionTranslation QuestionKind = "translation" // translation -> article + singular
	QuestionPlural      QuestionKind = "plural"      // singular -> plural form
	QuestionGrammar     QuestionKind = "grammar"     // authored grammar exercise
)

// Question is a single multiple-choice question derived from one vocabulary
// item or grammar topic at draw time. Questions are ephemeral: they live only
// for the duration of a session and are never persisted.
type Question struct {
	ItemID        string
	Kind          QuestionKind
	Prompt        string
	Options       []string
	CorrectIndex  int
	CorrectAnswer string
	Explanation   string
}
