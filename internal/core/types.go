package core

// Language is a supported reply language for the chat widget.
type Language string

const (
	LangFrench  Language = "fr"
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
)

var supportedLanguages = []Language{LangFrench, LangEnglish, LangArabic}

// ParseLanguage normalizes a caller-supplied language code. Anything that is
// not a supported code falls back to French, the site's primary language.
func ParseLanguage(code string) Language {
	switch Language(code) {
	case LangEnglish:
		return LangEnglish
	case LangArabic:
		return LangArabic
	default:
		return LangFrench
	}
}

// Message is one turn of the conversation, in the role/content shape the
// completion API expects. Request-scoped, never persisted.
type Message struct {
	Role    string `json:"role"` // "system", "user" or "assistant"
	Content string `json:"content"`
}

type ChatRequest struct {
	Messages []Message `json:"messages"`
	Language string    `json:"language,omitempty"`
}

type ChatResponse struct {
	Reply string `json:"reply"` // HTML-formatted
}
