package core

import "strings"

// The sentinel contract: the model signals "show the contact CTA" by
// appending this exact token, which post-processing strips before the reply
// reaches the widget.
const SentinelToken = "[SHOW_CTA]"

func languageDirective(lang Language) string {
	switch lang {
	case LangEnglish:
		return "Reply in English."
	case LangArabic:
		return "Reply in Arabic."
	default:
		return "Reply in French."
	}
}

// ComposeSystemPrompt merges the persona, language directive, formatting
// rules, catalog context and the sentinel instruction into the single system
// message sent ahead of the conversation history.
func ComposeSystemPrompt(contextBlock string, lang Language) string {
	var b strings.Builder
	b.WriteString(`You are an expert consultant for "Moussa Marbre", a premium marble company in Morocco.` + "\n")
	b.WriteString(languageDirective(lang) + "\n")
	b.WriteString("Use ONLY HTML tags for formatting. No markdown. Never wrap your reply in code fences.\n")
	b.WriteString(contextBlock)
	b.WriteString("\nIf the user's message concerns products, services, pricing, ordering, or technical stone/marble details, append \"" + SentinelToken + "\" at the end of your reply.\n")
	b.WriteString("Do NOT append it for greetings or pleasantries.")
	return b.String()
}

// WithSystemPrompt prepends the system message to the caller's conversation
// history, forming the full message list for the completion request.
func WithSystemPrompt(systemPrompt string, history []Message) []Message {
	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	return append(messages, history...)
}
