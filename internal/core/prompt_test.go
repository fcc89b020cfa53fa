package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	assert.Equal(t, LangFrench, ParseLanguage("fr"))
	assert.Equal(t, LangEnglish, ParseLanguage("en"))
	assert.Equal(t, LangArabic, ParseLanguage("ar"))
	assert.Equal(t, LangFrench, ParseLanguage(""), "absent language defaults to French")
	assert.Equal(t, LangFrench, ParseLanguage("de"), "unrecognized language defaults to French")
}

func TestComposeSystemPrompt(t *testing.T) {
	contextBlock := "\nCompany Background (Moussa Marbre):\n"

	tests := []struct {
		lang      Language
		directive string
	}{
		{LangFrench, "Reply in French."},
		{LangEnglish, "Reply in English."},
		{LangArabic, "Reply in Arabic."},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			prompt := ComposeSystemPrompt(contextBlock, tt.lang)

			assert.Contains(t, prompt, `expert consultant for "Moussa Marbre"`)
			assert.Contains(t, prompt, tt.directive)
			assert.Contains(t, prompt, "ONLY HTML tags")
			assert.Contains(t, prompt, contextBlock)
			assert.Contains(t, prompt, SentinelToken)
			assert.Contains(t, prompt, "Do NOT append it for greetings")
		})
	}
}

func TestWithSystemPrompt(t *testing.T) {
	history := []Message{
		{Role: "user", Content: "Bonjour"},
		{Role: "assistant", Content: "Bonjour !"},
		{Role: "user", Content: "Quel est le prix du marbre ?"},
	}

	messages := WithSystemPrompt("system prompt", history)

	require.Len(t, messages, 4)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "system prompt", messages[0].Content)
	assert.Equal(t, history, messages[1:])
}
