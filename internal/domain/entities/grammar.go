package entities

// GrammarQuestion is a fixed multiple-choice exercise belonging to a grammar
// topic. Unlike vocabulary questions, its options are authored as part of the
// content and are not generated from sibling items.
type GrammarQuestion struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// GrammarTopic is a grammar rule introduced by a level: a short explanation
// shown before the exercises plus the exercises themselves.
type GrammarTopic struct {
	Level       int               `json:"level"`
	Name        string            `json:"name"`
	Explanation string            `json:"explanation"`
	Questions   []GrammarQuestion `json:"questions"`
}

// ID returns the stable identifier stored in the learned-set. Grammar topics
// share the learned-set with vocabulary items, so the identifier is prefixed
// to keep the two namespaces apart.
func (t GrammarTopic) ID() string {
	return "grammatik:" + t.Name
}
