package entities

// Article is the German definite article of a noun, encoding its grammatical
// gender: der (masculine), die (feminine), das (neuter). Non-noun content uses
// ArticleNone.
type Article string

const (
	ArticleDer  Article = "der"
	ArticleDie  Article = "die"
	ArticleDas  Article = "das"
	ArticleNone Article = ""
)

// VocabularyItem is a single German noun introduced by a level, together with
// its Italian translation and a short explanation shown after answering.
// Items are static content and never change at runtime.
type VocabularyItem struct {
	Level       int     `json:"level"`
	Singular    string  `json:"singular"`
	Article     Article `json:"article"`
	Plural      string  `json:"plural"`
	Translation string  `json:"translation"`
	Explanation string  `json:"explanation"`
}

// ID returns the stable identifier stored in the learned-set.
func (v VocabularyItem) ID() string {
	return v.Singular
}

// WithArticle returns the canonical nominative singular form, e.g.
// "der Gabelstapler".
func (v VocabularyItem) WithArticle() string {
	if v.Article == ArticleNone {
		return v.Singular
	}
	return string(v.Article) + " " + v.Singular
}

// PluralForm returns the canonical plural form. German plurals always take
// the article "die".
func (v VocabularyItem) PluralForm() string {
	return "die " + v.Plural
}
